// Package mod - /mod infractions command
package mod

import (
	"fmt"
	"strings"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/storage"
	"github.com/bwmarrin/discordgo"
)

// createInfractionsCommand creates the /mod infractions subcommand
func createInfractionsCommand() *discord.Command {
	return discord.NewCommand(
		"infractions",
		"Muestra el historial de moderación de un usuario",
		"mod",
		infractionsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a consultar",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// infractionsHandler handles the /mod infractions command
func infractionsHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	// Goroutine para no bloquear el hilo principal
	go func() {
		defer errors.RecoverMiddleware()()

		if err := ctx.Defer(); err != nil {
			logger.Error(fmt.Sprintf("Error enviando defer de infractions: %v", err), "CMD-Infractions")
			return
		}

		opCtx, cancel := opContext()
		defer cancel()

		store := modlog.Get().Store()
		cases := store.UserCases(
			opCtx,
			discord.ParseSnowflake(ctx.Interaction.GuildID),
			discord.ParseSnowflake(user.ID),
			storage.DefaultCaseLimit,
		)

		if len(cases) == 0 {
			ctx.EditReplyEmbed(&discordgo.MessageEmbed{
				Title:       fmt.Sprintf("🔖 Historial de %s", user.Username),
				Color:       0x57F287,
				Description: fmt.Sprintf("Sin infracciones registradas en este servidor.\n\n> 🕒 **Fecha de consulta:** <t:%d>", time.Now().Unix()),
			})
			return
		}

		var b strings.Builder
		for _, c := range cases {
			line := fmt.Sprintf("`Caso #%d` <t:%d:d> **%s**", c.CaseID, c.Timestamp.Unix(), c.ActionType)
			if c.Reason != nil && *c.Reason != "" {
				line += " — " + *c.Reason
			}
			b.WriteString(line + "\n")
		}

		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       fmt.Sprintf("🔖 Historial de %s (%s)", user.Username, user.ID),
			Color:       0xE67E22,
			Description: b.String(),
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("%d casos más recientes", len(cases)),
			},
		})
	}()

	return nil
}
