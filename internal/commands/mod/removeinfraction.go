// Package mod - /mod removeinfraction command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createRemoveInfractionCommand creates the /mod removeinfraction subcommand
func createRemoveInfractionCommand() *discord.Command {
	return discord.NewCommand(
		"removeinfraction",
		"Elimina un caso del historial de moderación",
		"mod",
		removeInfractionHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "caso",
			Description: "Número del caso a eliminar",
			Required:    true,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón de la eliminación",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionAdministrator).
		RequiresDatabase()
}

// removeInfractionHandler handles the /mod removeinfraction command
func removeInfractionHandler(ctx *discord.CommandContext) error {
	caseID := ctx.GetIntOption("caso")
	reason := ctx.GetStringOption("razon")

	opCtx, cancel := opContext()
	defer cancel()

	store := modlog.Get().Store()
	guildID := discord.ParseSnowflake(ctx.Interaction.GuildID)

	// Fetch before deleting so the audit record can name the target
	c := store.GuildCase(opCtx, caseID, guildID)
	if c == nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ El caso #%d no existe en este servidor.", caseID))
	}

	if !store.DeleteCase(opCtx, caseID, guildID) {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ No se pudo eliminar el caso #%d.", caseID))
	}

	auditReason := fmt.Sprintf("Caso #%d (%s) eliminado", caseID, c.ActionType)
	if reason != "" {
		auditReason += ": " + reason
	}
	recordAction(
		guildID,
		discord.ParseSnowflake(ctx.User().ID),
		c.TargetUserID,
		models.ActionRemoveInfraction,
		auditReason,
		nil,
	)

	return ctx.Reply(fmt.Sprintf("🗑️ El caso #%d ha sido eliminado del historial.", caseID))
}
