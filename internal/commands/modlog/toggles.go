// Package modlog - /modlog toggles command
package modlog

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	modlogsvc "github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createTogglesCommand creates the /modlog toggles subcommand
func createTogglesCommand() *discord.Command {
	return discord.NewCommand(
		"toggles",
		"Muestra el estado de todos los toggles de eventos",
		"modlog",
		togglesHandler,
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// togglesHandler handles the /modlog toggles command
func togglesHandler(ctx *discord.CommandContext) error {
	opCtx, cancel := opContext()
	defer cancel()

	store := modlogsvc.Get().Store()
	guildID := discord.ParseSnowflake(ctx.Interaction.GuildID)

	stored := store.EventToggles(opCtx, guildID)

	var b strings.Builder
	for _, key := range models.LoggableEvents {
		enabled, ok := stored[key]
		if !ok {
			// Unset toggles default to enabled
			enabled = true
		}
		icon := "✅"
		if !enabled {
			icon = "🚫"
		}
		fmt.Fprintf(&b, "%s `%s`\n", icon, key)
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "⚙️ Toggles de eventos",
		Color:       0x3498DB,
		Description: b.String(),
	})
}
