// Package modlog - /modlog case command
package modlog

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	modlogsvc "github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/bwmarrin/discordgo"
)

// createCaseCommand creates the /modlog case subcommand
func createCaseCommand() *discord.Command {
	return discord.NewCommand(
		"case",
		"Muestra los detalles de un caso de moderación",
		"modlog",
		caseHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "caso",
			Description: "Número del caso",
			Required:    true,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// caseHandler handles the /modlog case command
func caseHandler(ctx *discord.CommandContext) error {
	caseID := ctx.GetIntOption("caso")

	opCtx, cancel := opContext()
	defer cancel()

	store := modlogsvc.Get().Store()
	guildID := discord.ParseSnowflake(ctx.Interaction.GuildID)

	c := store.GuildCase(opCtx, caseID, guildID)
	if c == nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ El caso #%d no existe en este servidor.", caseID))
	}

	moderator := fmt.Sprintf("<@%d>", c.Moderator.ID())
	if c.Moderator.IsAutomated() {
		moderator = "Sistema Automático"
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Usuario", Value: fmt.Sprintf("<@%d> (`%d`)", c.TargetUserID, c.TargetUserID), Inline: true},
		{Name: "Moderador", Value: moderator, Inline: true},
		{Name: "Fecha", Value: fmt.Sprintf("<t:%d:F>", c.Timestamp.Unix()), Inline: true},
		{Name: "Razón", Value: c.ReasonOr("Sin razón especificada.")},
	}
	if c.DurationSeconds != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Duración", Value: modlogsvc.FormatDuration(c.Duration()), Inline: true,
		})
	}
	if c.LogChannelID != nil && c.LogMessageID != nil {
		jump := fmt.Sprintf("https://discord.com/channels/%s/%d/%d",
			ctx.Interaction.GuildID, *c.LogChannelID, *c.LogMessageID)
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Mensaje del registro", Value: fmt.Sprintf("[Ir al mensaje](%s)", jump),
		})
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:     fmt.Sprintf("%s | Caso #%d", c.ActionType.Title(), c.CaseID),
		Color:     0x3498DB,
		Fields:    fields,
		Timestamp: c.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}
