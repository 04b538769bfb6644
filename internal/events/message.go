// Package events provides event handlers for message events
package events

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// RegisterMessageEvents registers all message-related event handlers
func RegisterMessageEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onMessageDelete)
	client.Session.AddHandler(onMessageUpdate)
}

// onMessageDelete is called when a message is deleted
func onMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	if m.GuildID == "" {
		return
	}

	description := fmt.Sprintf("Mensaje eliminado en <#%s>.", m.ChannelID)
	// The cached content is only available while the message lives in state
	if m.BeforeDelete != nil && m.BeforeDelete.Content != "" {
		description += fmt.Sprintf("\n**Contenido:** %s", modlog.Truncate(m.BeforeDelete.Content, 1000))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🗑️ Mensaje eliminado",
		Description: description,
		Color:       0xED4245,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	eventNotify(s, m.GuildID, models.EventMessageDelete, embed)
}

// onMessageUpdate is called when a message is edited
func onMessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	if m.GuildID == "" || m.Author == nil || m.Author.Bot {
		return
	}

	description := fmt.Sprintf("Mensaje de %s editado en <#%s>.", m.Author.Mention(), m.ChannelID)
	if m.BeforeUpdate != nil && m.BeforeUpdate.Content != "" && m.BeforeUpdate.Content != m.Content {
		before := modlog.Truncate(m.BeforeUpdate.Content, 500)
		after := modlog.Truncate(m.Content, 500)
		description += fmt.Sprintf("\n**Antes:** %s\n**Después:** %s", before, after)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "✏️ Mensaje editado",
		Description: description,
		Color:       0xF1C40F,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	eventNotify(s, m.GuildID, models.EventMessageEdit, embed)
}
