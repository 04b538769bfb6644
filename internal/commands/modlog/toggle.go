// Package modlog - /modlog toggle command
package modlog

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	modlogsvc "github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// matchEventChoices builds autocomplete choices from the loggable event set,
// filtered by what the user has typed so far
func matchEventChoices(typed string) []*discordgo.ApplicationCommandOptionChoice {
	typed = strings.ToLower(strings.TrimSpace(typed))
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.LoggableEvents))
	for _, key := range models.LoggableEvents {
		if typed != "" && !strings.Contains(string(key), typed) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(key),
			Value: string(key),
		})
	}
	return choices
}

// createToggleCommand creates the /modlog toggle subcommand
func createToggleCommand() *discord.Command {
	return discord.NewCommand(
		"toggle",
		"Activa o desactiva el registro de una clase de evento",
		"modlog",
		toggleHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "evento",
			Description:  "Clase de evento",
			Required:     true,
			Autocomplete: true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "activado",
			Description: "true para registrar el evento, false para ignorarlo",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionAdministrator).
		WithAutoComplete(toggleAutoComplete).
		RequiresDatabase()
}

// toggleAutoComplete suggests event keys matching the typed prefix
func toggleAutoComplete(ctx *discord.CommandContext) {
	var typed string
	if opt := ctx.GetOption("evento"); opt != nil {
		typed, _ = opt.Value.(string)
	}

	if err := ctx.SendAutoCompleteChoices(matchEventChoices(typed)); err != nil {
		logger.Warn(fmt.Sprintf("Error enviando sugerencias de eventos: %v", err), "ModLog")
	}
}

// toggleHandler handles the /modlog toggle command
func toggleHandler(ctx *discord.CommandContext) error {
	key := models.EventKey(ctx.GetStringOption("evento"))
	if !models.ValidEventKey(key) {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Evento desconocido: `%s`.", key))
	}

	enabled := ctx.GetBoolOption("activado")

	opCtx, cancel := opContext()
	defer cancel()

	store := modlogsvc.Get().Store()
	guildID := discord.ParseSnowflake(ctx.Interaction.GuildID)

	if !store.SetEventEnabled(opCtx, guildID, key, enabled) {
		return ctx.ReplyEphemeral("❌ No se pudo guardar la configuración.")
	}

	state := "✅ activado"
	if !enabled {
		state = "🚫 desactivado"
	}
	return ctx.Reply(fmt.Sprintf("El registro del evento `%s` ha sido %s.", key, state))
}
