// Package events - toggle-gated delivery of event notifications
package events

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/storage"
	"github.com/bwmarrin/discordgo"
	"github.com/goccy/go-json"
)

// eventNotify posts an event embed if the guild has the event class enabled.
// Preferred destination is the guild's logging webhook; otherwise the mod log
// channel when logging is active. Unset toggles default to enabled.
func eventNotify(s *discordgo.Session, guildSnowflake string, key models.EventKey, embed *discordgo.MessageEmbed) {
	svc := modlog.Get()
	if svc == nil {
		return
	}
	store := svc.Store()
	guildID := discord.ParseSnowflake(guildSnowflake)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if !store.IsEventEnabled(ctx, guildID, key, true) {
		return
	}

	// Webhook destination takes priority when configured
	webhookURL := storage.SettingValue(ctx, store, guildID, models.SettingLoggingWebhookURL, "")
	if webhookURL != "" {
		sendToWebhook(webhookURL, embed)
		return
	}

	if !store.ModLogEnabled(ctx, guildID) {
		return
	}
	channelID, ok := store.ModLogChannelID(ctx, guildID)
	if !ok || channelID == 0 {
		return
	}

	_, err := s.ChannelMessageSendEmbed(discord.FormatSnowflake(channelID), embed)
	if err != nil {
		logger.Warn(fmt.Sprintf("Error enviando notificación de evento %s en %s: %v", key, guildSnowflake, err), "Events")
	}
}

// sendToWebhook posts the embed payload to a Discord webhook URL
func sendToWebhook(url string, embed *discordgo.MessageEmbed) {
	payload := map[string]interface{}{
		"embeds": []interface{}{embed},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		logger.Warn(fmt.Sprintf("Error enviando evento al webhook: %v", err), "Events")
		return
	}
	resp.Body.Close()
}
