// Package mod - /mod timeout command
package mod

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// maxTimeoutSeconds is Discord's 28-day communication timeout ceiling
const maxTimeoutSeconds int64 = 28 * 86400

// createTimeoutCommand creates the /mod timeout subcommand
func createTimeoutCommand() *discord.Command {
	return discord.NewCommand(
		"timeout",
		"Silencia a un usuario temporalmente",
		"mod",
		timeoutHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a silenciar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duracion",
			Description: "Duración (ej: 1d2h3m4s, 30m, 7d)",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del silencio",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// timeoutHandler handles the /mod timeout command
func timeoutHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	seconds, err := parseUserDuration(ctx.GetStringOption("duracion"))
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ %v", err))
	}
	if seconds > maxTimeoutSeconds {
		return ctx.ReplyEphemeral("❌ La duración máxima de un timeout es de 28 días.")
	}

	reason := ctx.GetStringOption("razon")

	timeoutUntil := time.Now().Add(time.Duration(seconds) * time.Second)
	err = ctx.Session.GuildMemberTimeout(ctx.Interaction.GuildID, user.ID, &timeoutUntil)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Error al silenciar: %v", err))
	}

	recordAction(
		discord.ParseSnowflake(ctx.Interaction.GuildID),
		discord.ParseSnowflake(ctx.User().ID),
		discord.ParseSnowflake(user.ID),
		models.ActionTimeout,
		reason,
		&seconds,
	)

	return ctx.Reply(fmt.Sprintf("🔇 **%s** ha sido silenciado por %s.",
		user.Username,
		modlog.FormatDuration(time.Duration(seconds)*time.Second),
	))
}
