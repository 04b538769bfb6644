// Package appeal - button and modal interaction handlers
package appeal

import (
	"fmt"
	"strings"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// appealButtonHandler opens the appeal modal when the persistent button is
// pressed. The target guild travels in the custom ID so the button also works
// from an appeal server the banned user can still see.
func appealButtonHandler(ctx *discord.CommandContext) {
	guildID := strings.TrimPrefix(ctx.Interaction.MessageComponentData().CustomID, buttonPrefix)

	err := ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: modalPrefix + guildID,
			Title:    "Apelación de Baneo",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:  "appeal_reason",
							Label:     "¿Por qué deberíamos retirar tu baneo?",
							Style:     discordgo.TextInputParagraph,
							Required:  true,
							MaxLength: 1000,
						},
					},
				},
			},
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error abriendo el modal de apelación: %v", err), "Appeal")
	}
}

// appealModalHandler routes a submitted appeal to the configured channel,
// falling back to the mod log channel and finally the owner's DMs.
func appealModalHandler(ctx *discord.CommandContext) {
	data := ctx.Interaction.ModalSubmitData()
	guildSnowflake := strings.TrimPrefix(data.CustomID, modalPrefix)
	reason := extractTextInput(data, "appeal_reason")

	// Confirm to the user immediately, routing happens in the background
	if err := ctx.ReplyEphemeral("📨 Tu apelación ha sido enviada. El equipo de moderación la revisará."); err != nil {
		logger.Error(fmt.Sprintf("Error confirmando apelación: %v", err), "Appeal")
	}

	go func() {
		defer errors.RecoverMiddleware()()
		routeAppeal(ctx, guildSnowflake, reason)
	}()
}

// extractTextInput finds a text input value in the submitted modal data
func extractTextInput(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionsRow.Components {
			input, ok := comp.(*discordgo.TextInput)
			if ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}

// routeAppeal delivers the appeal embed with the configured fallback chain
func routeAppeal(ctx *discord.CommandContext, guildSnowflake, reason string) {
	guild, err := ctx.Session.State.Guild(guildSnowflake)
	if err != nil || guild == nil {
		logger.Warn(fmt.Sprintf("Apelación para un servidor desconocido: %s", guildSnowflake), "Appeal")
		return
	}

	opCtx, cancel := opContext()
	defer cancel()

	store := modlog.Get().Store()
	guildID := discord.ParseSnowflake(guildSnowflake)
	user := ctx.User()
	reference := uuid.New().String()

	embed := &discordgo.MessageEmbed{
		Title:       "📨 Nueva Apelación de Baneo",
		Color:       0xE67E22,
		Description: reason,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Usuario", Value: fmt.Sprintf("%s (`%s`)", user.Username, user.ID), Inline: false},
			{Name: "Servidor", Value: fmt.Sprintf("%s (`%s`)", guild.Name, guild.ID), Inline: false},
			{Name: "Referencia", Value: fmt.Sprintf("`%s`", reference), Inline: false},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	// Destination: appeal channel, then mod log channel, then owner DM
	var destChannelID string
	if id, ok := store.AppealChannelID(opCtx, guildID); ok && id != 0 {
		destChannelID = discord.FormatSnowflake(id)
	} else if id, ok := store.ModLogChannelID(opCtx, guildID); ok && id != 0 {
		destChannelID = discord.FormatSnowflake(id)
	} else if guild.OwnerID != "" {
		if dm, err := ctx.Session.UserChannelCreate(guild.OwnerID); err == nil {
			destChannelID = dm.ID
		} else {
			logger.Warn(fmt.Sprintf("No se pudo abrir DM con el dueño del servidor %s: %v", guildSnowflake, err), "Appeal")
		}
	}
	if destChannelID == "" {
		logger.Warn(fmt.Sprintf("No hay destino válido para la apelación %s del servidor %s", reference, guildSnowflake), "Appeal")
		return
	}

	var content string
	if store.PingOnBanAppeal(opCtx, guildID) {
		if roleID, ok := store.ModeratorRoleID(opCtx, guildID); ok && roleID != 0 {
			content = fmt.Sprintf("Nueva apelación de baneo. <@&%d>", roleID)
		}
	}

	_, err = ctx.Session.ChannelMessageSendComplex(destChannelID, &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error enviando la apelación %s al canal %s: %v", reference, destChannelID, err), "Appeal")
	}
}
