// Package modlog - /modlog view command
package modlog

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	modlogsvc "github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/storage"
	"github.com/bwmarrin/discordgo"
)

// createViewCommand creates the /modlog view subcommand
func createViewCommand() *discord.Command {
	return discord.NewCommand(
		"view",
		"Muestra los casos de moderación recientes",
		"modlog",
		viewHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Limitar a los casos de un usuario",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// viewHandler handles the /modlog view command
func viewHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")

	// Goroutine para no bloquear el hilo principal
	go func() {
		defer errors.RecoverMiddleware()()

		if err := ctx.Defer(); err != nil {
			logger.Error(fmt.Sprintf("Error enviando defer de view: %v", err), "CMD-ModLogView")
			return
		}

		opCtx, cancel := opContext()
		defer cancel()

		store := modlogsvc.Get().Store()
		guildID := discord.ParseSnowflake(ctx.Interaction.GuildID)

		var cases []*models.Case
		var title string
		if user != nil {
			cases = store.UserCases(opCtx, guildID, discord.ParseSnowflake(user.ID), storage.DefaultCaseLimit)
			title = fmt.Sprintf("📋 Casos de %s (%s)", user.Username, user.ID)
		} else {
			cases = store.GuildCases(opCtx, guildID, storage.DefaultCaseLimit)
			title = "📋 Casos recientes del servidor"
		}

		if len(cases) == 0 {
			ctx.EditReplyEmbed(&discordgo.MessageEmbed{
				Title:       title,
				Color:       0x57F287,
				Description: "No hay casos registrados.",
			})
			return
		}

		var b strings.Builder
		for _, c := range cases {
			line := fmt.Sprintf("`Caso #%d` <t:%d:d> **%s** <@%d>", c.CaseID, c.Timestamp.Unix(), c.ActionType, c.TargetUserID)
			if c.Reason != nil && *c.Reason != "" {
				line += " — " + modlogsvc.Truncate(*c.Reason, 80)
			}
			b.WriteString(line + "\n")
			if b.Len() > 3800 {
				b.WriteString("…\n")
				break
			}
		}

		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       title,
			Color:       0x3498DB,
			Description: b.String(),
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("%d casos mostrados", len(cases)),
			},
		})
	}()

	return nil
}
