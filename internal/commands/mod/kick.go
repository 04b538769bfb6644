// Package mod - /mod kick command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createKickCommand creates the /mod kick subcommand
func createKickCommand() *discord.Command {
	return discord.NewCommand(
		"kick",
		"Expulsa a un usuario del servidor",
		"mod",
		kickHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a expulsar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón de la expulsión",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionKickMembers).
		WithBotPermissions(discordgo.PermissionKickMembers).
		RequiresDatabase()
}

// kickHandler handles the /mod kick command
func kickHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	reason := ctx.GetStringOption("razon")
	displayReason := reason
	if displayReason == "" {
		displayReason = "Sin razón especificada"
	}

	err := ctx.Session.GuildMemberDeleteWithReason(ctx.Interaction.GuildID, user.ID, displayReason)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Error al expulsar: %v", err))
	}

	recordAction(
		discord.ParseSnowflake(ctx.Interaction.GuildID),
		discord.ParseSnowflake(ctx.User().ID),
		discord.ParseSnowflake(user.ID),
		models.ActionKick,
		reason,
		nil,
	)

	return ctx.Reply(fmt.Sprintf("👢 **%s** ha sido expulsado.\n**Razón:** %s", user.Username, displayReason))
}
