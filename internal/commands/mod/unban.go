// Package mod - /mod unban command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createUnbanCommand creates the /mod unban subcommand
func createUnbanCommand() *discord.Command {
	return discord.NewCommand(
		"unban",
		"Retira el ban de un usuario",
		"mod",
		unbanHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a desbanear",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del desbaneo",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithBotPermissions(discordgo.PermissionBanMembers).
		RequiresDatabase()
}

// unbanHandler handles the /mod unban command
func unbanHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	reason := ctx.GetStringOption("razon")

	err := ctx.Session.GuildBanDelete(ctx.Interaction.GuildID, user.ID)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Error al desbanear: %v", err))
	}

	recordAction(
		discord.ParseSnowflake(ctx.Interaction.GuildID),
		discord.ParseSnowflake(ctx.User().ID),
		discord.ParseSnowflake(user.ID),
		models.ActionUnban,
		reason,
		nil,
	)

	return ctx.Reply(fmt.Sprintf("🕊️ **%s** ha sido desbaneado.", user.Username))
}
