// Package appeal - /appeal setup command
package appeal

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createSetupCommand creates the /appeal setup subcommand
func createSetupCommand() *discord.Command {
	return discord.NewCommand(
		"setup",
		"Publica el mensaje persistente con el botón de apelación",
		"appeal",
		setupHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "canal",
			Description:  "Canal donde publicar el botón (por defecto, el actual)",
			Required:     false,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		},
	).WithUserPermissions(discordgo.PermissionAdministrator)
}

// setupHandler handles the /appeal setup command
func setupHandler(ctx *discord.CommandContext) error {
	channelID := ctx.Interaction.ChannelID
	if channel := ctx.GetChannelOption("canal"); channel != nil {
		channelID = channel.ID
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📨 Apelaciones de Baneo",
		Color:       0x57F287,
		Description: "Si crees que tu baneo fue un error, pulsa el botón para enviar una apelación al equipo de moderación.",
	}

	_, err := ctx.Session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Apelar Baneo",
						Style:    discordgo.SuccessButton,
						CustomID: buttonPrefix + ctx.Interaction.GuildID,
					},
				},
			},
		},
	})
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ No se pudo publicar el mensaje: %v", err))
	}

	return ctx.ReplyEphemeral(fmt.Sprintf("✅ Botón de apelación publicado en <#%s>.", channelID))
}
