// Package mod - /mod clearinfractions command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createClearInfractionsCommand creates the /mod clearinfractions subcommand
func createClearInfractionsCommand() *discord.Command {
	return discord.NewCommand(
		"clearinfractions",
		"Elimina todo el historial de moderación de un usuario",
		"mod",
		clearInfractionsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario cuyo historial se eliminará",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón de la limpieza",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionAdministrator).
		RequiresDatabase()
}

// clearInfractionsHandler handles the /mod clearinfractions command
func clearInfractionsHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	reason := ctx.GetStringOption("razon")

	opCtx, cancel := opContext()
	defer cancel()

	store := modlog.Get().Store()
	guildID := discord.ParseSnowflake(ctx.Interaction.GuildID)
	targetID := discord.ParseSnowflake(user.ID)

	removed := store.ClearUserCases(opCtx, guildID, targetID)
	if removed == 0 {
		return ctx.ReplyEphemeral(fmt.Sprintf("ℹ️ **%s** no tiene casos registrados en este servidor.", user.Username))
	}

	auditReason := fmt.Sprintf("%d casos eliminados", removed)
	if reason != "" {
		auditReason += ": " + reason
	}
	recordAction(
		guildID,
		discord.ParseSnowflake(ctx.User().ID),
		targetID,
		models.ActionClearInfractions,
		auditReason,
		nil,
	)

	return ctx.Reply(fmt.Sprintf("🧹 Se eliminaron **%d** casos del historial de **%s**.", removed, user.Username))
}
