// Package utils - /utils credits command
package utils

import (
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createCreditsCommand creates the /utils credits subcommand
func createCreditsCommand() *discord.Command {
	return discord.NewCommand(
		"credits",
		"Muestra los créditos del bot",
		"utils",
		creditsHandler,
	)
}

// creditsHandler handles the /utils credits command
func creditsHandler(ctx *discord.CommandContext) error {
	embed := &discordgo.MessageEmbed{
		Title: "💫 Créditos de PancyGuard Go",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "🛠️ Desarrollo",
				Value: "PancyStudios",
			},
			{
				Name:  "📚 Librerías",
				Value: "discordgo, gin, mongo-driver, sqlite, paho.mqtt",
			},
			{
				Name:   "🤖 Versión",
				Value:  config.Version,
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text:    "💫 - Developed by PancyStudios",
			IconURL: ctx.Client.Session.State.User.AvatarURL(""),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return ctx.ReplyEmbed(embed)
}
