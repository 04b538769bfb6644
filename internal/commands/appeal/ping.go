// Package appeal - /appeal ping command
package appeal

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createPingCommand creates the /appeal ping subcommand
func createPingCommand() *discord.Command {
	return discord.NewCommand(
		"ping",
		"Configura la mención al rol moderador en cada apelación",
		"appeal",
		pingHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "activado",
			Description: "true para mencionar al rol moderador",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "rol",
			Description: "Rol moderador a mencionar",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionAdministrator).
		RequiresDatabase()
}

// pingHandler handles the /appeal ping command
func pingHandler(ctx *discord.CommandContext) error {
	enabled := ctx.GetBoolOption("activado")

	opCtx, cancel := opContext()
	defer cancel()

	store := modlog.Get().Store()
	guildID := discord.ParseSnowflake(ctx.Interaction.GuildID)

	if role := ctx.GetRoleOption("rol"); role != nil {
		if !store.SetSetting(opCtx, guildID, models.SettingModeratorRoleID, discord.ParseSnowflake(role.ID)) {
			return ctx.ReplyEphemeral("❌ No se pudo guardar el rol moderador.")
		}
	}

	if !store.SetSetting(opCtx, guildID, models.SettingPingOnBanAppeal, enabled) {
		return ctx.ReplyEphemeral("❌ No se pudo guardar la configuración.")
	}

	state := "mencionará"
	if !enabled {
		state = "no mencionará"
	}
	return ctx.Reply(fmt.Sprintf("✅ Se %s al rol moderador en cada apelación.", state))
}
