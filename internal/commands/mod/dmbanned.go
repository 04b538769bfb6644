// Package mod - /mod dmbanned command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createDMBannedCommand creates the /mod dmbanned subcommand
func createDMBannedCommand() *discord.Command {
	return discord.NewCommand(
		"dmbanned",
		"Envía un mensaje directo a un usuario baneado",
		"mod",
		dmBannedHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario baneado a contactar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "mensaje",
			Description: "Mensaje a enviar",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		RequiresDatabase()
}

// dmBannedHandler handles the /mod dmbanned command
func dmBannedHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	message := ctx.GetStringOption("mensaje")
	if message == "" {
		return ctx.ReplyEphemeral("❌ Debes especificar un mensaje.")
	}

	guildName := ctx.Interaction.GuildID
	if g := ctx.Guild(); g != nil {
		guildName = g.Name
	}

	channel, err := ctx.Session.UserChannelCreate(user.ID)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ No se pudo abrir el canal de DM: %v", err))
	}

	_, err = ctx.Session.ChannelMessageSend(channel.ID,
		fmt.Sprintf("📨 Mensaje de la moderación de **%s**:\n\n%s", guildName, message))
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ No se pudo enviar el mensaje (el usuario tiene los DMs cerrados): %v", err))
	}

	recordAction(
		discord.ParseSnowflake(ctx.Interaction.GuildID),
		discord.ParseSnowflake(ctx.User().ID),
		discord.ParseSnowflake(user.ID),
		models.ActionDMBanned,
		message,
		nil,
	)

	return ctx.ReplyEphemeral(fmt.Sprintf("✅ Mensaje enviado a **%s**.", user.Username))
}
