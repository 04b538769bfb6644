// Package events provides event handlers for member events
package events

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// RegisterMemberEvents registers all member-related event handlers
func RegisterMemberEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onMemberJoin)
	client.Session.AddHandler(onMemberLeave)
	client.Session.AddHandler(onBanAdd)
	client.Session.AddHandler(onBanRemove)
}

// onMemberJoin is called when a member joins a guild
func onMemberJoin(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	embed := &discordgo.MessageEmbed{
		Title:       "📥 Miembro nuevo",
		Description: fmt.Sprintf("%s (`%s`) se ha unido al servidor.", m.User.Mention(), m.User.ID),
		Color:       0x57F287,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: m.User.AvatarURL("128")},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	eventNotify(s, m.GuildID, models.EventMemberJoin, embed)
}

// onMemberLeave is called when a member leaves a guild
func onMemberLeave(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	embed := &discordgo.MessageEmbed{
		Title:       "📤 Miembro fuera",
		Description: fmt.Sprintf("**%s** (`%s`) ha salido del servidor.", m.User.Username, m.User.ID),
		Color:       0x99AAB5,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	eventNotify(s, m.GuildID, models.EventMemberLeave, embed)
}

// onBanAdd is called when a user is banned
func onBanAdd(s *discordgo.Session, b *discordgo.GuildBanAdd) {
	embed := &discordgo.MessageEmbed{
		Title:       "🔨 Usuario baneado",
		Description: fmt.Sprintf("**%s** (`%s`) ha sido baneado del servidor.", b.User.Username, b.User.ID),
		Color:       0xED4245,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: b.User.AvatarURL("128")},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	eventNotify(s, b.GuildID, models.EventMemberBan, embed)
}

// onBanRemove is called when a ban is lifted
func onBanRemove(s *discordgo.Session, b *discordgo.GuildBanRemove) {
	embed := &discordgo.MessageEmbed{
		Title:       "🕊️ Ban retirado",
		Description: fmt.Sprintf("**%s** (`%s`) ya no está baneado.", b.User.Username, b.User.ID),
		Color:       0x57F287,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	eventNotify(s, b.GuildID, models.EventMemberUnban, embed)
}
