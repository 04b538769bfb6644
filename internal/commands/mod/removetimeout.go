// Package mod - /mod removetimeout command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createRemoveTimeoutCommand creates the /mod removetimeout subcommand
func createRemoveTimeoutCommand() *discord.Command {
	return discord.NewCommand(
		"removetimeout",
		"Retira el silencio de un usuario",
		"mod",
		removeTimeoutHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a des-silenciar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// removeTimeoutHandler handles the /mod removetimeout command
func removeTimeoutHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	reason := ctx.GetStringOption("razon")

	err := ctx.Session.GuildMemberTimeout(ctx.Interaction.GuildID, user.ID, nil)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Error al retirar el silencio: %v", err))
	}

	recordAction(
		discord.ParseSnowflake(ctx.Interaction.GuildID),
		discord.ParseSnowflake(ctx.User().ID),
		discord.ParseSnowflake(user.ID),
		models.ActionRemoveTimeout,
		reason,
		nil,
	)

	return ctx.Reply(fmt.Sprintf("🔊 **%s** ya no está silenciado.", user.Username))
}
