// Package mod - /mod warn command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createWarnCommand creates the /mod warn subcommand
func createWarnCommand() *discord.Command {
	return discord.NewCommand(
		"warn",
		"Advierte a un usuario",
		"mod",
		warnHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a advertir",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón de la advertencia",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// warnHandler handles the /mod warn command
func warnHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	reason := ctx.GetStringOption("razon")
	if reason == "" {
		return ctx.ReplyEphemeral("❌ Debes especificar una razón.")
	}

	recordAction(
		discord.ParseSnowflake(ctx.Interaction.GuildID),
		discord.ParseSnowflake(ctx.User().ID),
		discord.ParseSnowflake(user.ID),
		models.ActionWarn,
		reason,
		nil,
	)

	// Best-effort DM: a closed DM must not make the warn fail
	if channel, err := ctx.Session.UserChannelCreate(user.ID); err == nil {
		guildName := ctx.Interaction.GuildID
		if g := ctx.Guild(); g != nil {
			guildName = g.Name
		}
		ctx.Session.ChannelMessageSend(channel.ID,
			fmt.Sprintf("⚠️ Has recibido una advertencia en **%s**.\n**Razón:** %s", guildName, reason))
	}

	return ctx.Reply(fmt.Sprintf("⚠️ **%s** ha sido advertido.\n**Razón:** %s\n**Moderador:** %s",
		user.Username,
		reason,
		ctx.User().Username,
	))
}
