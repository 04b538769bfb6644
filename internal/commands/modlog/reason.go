// Package modlog - /modlog reason command
package modlog

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	modlogsvc "github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/bwmarrin/discordgo"
)

// createReasonCommand creates the /modlog reason subcommand
func createReasonCommand() *discord.Command {
	return discord.NewCommand(
		"reason",
		"Modifica la razón de un caso registrado",
		"modlog",
		reasonHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "caso",
			Description: "Número del caso",
			Required:    true,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Nueva razón",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// reasonHandler handles the /modlog reason command
func reasonHandler(ctx *discord.CommandContext) error {
	caseID := ctx.GetIntOption("caso")
	newReason := ctx.GetStringOption("razon")
	if newReason == "" {
		return ctx.ReplyEphemeral("❌ Debes especificar una razón.")
	}

	opCtx, cancel := opContext()
	defer cancel()

	guildID := discord.ParseSnowflake(ctx.Interaction.GuildID)
	editor := ctx.User().Mention()

	if !modlogsvc.Get().EditReason(opCtx, guildID, caseID, newReason, editor) {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ El caso #%d no existe en este servidor.", caseID))
	}

	return ctx.Reply(fmt.Sprintf("✏️ Razón del caso #%d actualizada.", caseID))
}
