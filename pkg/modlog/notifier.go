package modlog

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// Typed dispatch failures. They are logged and never propagated to callers.
var (
	// ErrPermissionDenied indicates the bot lacks permission in the log channel.
	ErrPermissionDenied = errors.New("sin permisos para publicar en el canal de registro")
	// ErrNotFound indicates the log channel or message no longer exists.
	ErrNotFound = errors.New("canal o mensaje de registro no encontrado")
)

// Notifier delivers rendered case embeds to a destination channel.
// Implementations return the sent message ID so the dispatch location can be
// written back to the case record.
type Notifier interface {
	// SendCaseMessage posts an embed and returns the new message ID.
	SendCaseMessage(channelID int64, embed *discordgo.MessageEmbed) (int64, error)
	// EditCaseMessage replaces the embed of a previously posted case message.
	EditCaseMessage(channelID, messageID int64, embed *discordgo.MessageEmbed) error
	// GuildName resolves a guild's display name, or "" if unknown.
	GuildName(guildID int64) string
}

// DiscordNotifier sends case embeds through a live discordgo session.
type DiscordNotifier struct {
	Session *discordgo.Session
}

// NewDiscordNotifier creates a Notifier backed by the given session.
func NewDiscordNotifier(session *discordgo.Session) *DiscordNotifier {
	return &DiscordNotifier{Session: session}
}

// SendCaseMessage posts the embed to the channel and returns the message ID.
func (n *DiscordNotifier) SendCaseMessage(channelID int64, embed *discordgo.MessageEmbed) (int64, error) {
	msg, err := n.Session.ChannelMessageSendEmbed(strconv.FormatInt(channelID, 10), embed)
	if err != nil {
		return 0, classifyRESTError(err)
	}
	messageID, err := strconv.ParseInt(msg.ID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ID de mensaje inválido %q: %w", msg.ID, err)
	}
	return messageID, nil
}

// EditCaseMessage replaces the embed of a posted case message.
func (n *DiscordNotifier) EditCaseMessage(channelID, messageID int64, embed *discordgo.MessageEmbed) error {
	_, err := n.Session.ChannelMessageEditEmbed(
		strconv.FormatInt(channelID, 10),
		strconv.FormatInt(messageID, 10),
		embed,
	)
	if err != nil {
		return classifyRESTError(err)
	}
	return nil
}

// GuildName resolves the guild name from the session state cache.
func (n *DiscordNotifier) GuildName(guildID int64) string {
	guild, err := n.Session.State.Guild(strconv.FormatInt(guildID, 10))
	if err != nil || guild == nil {
		return ""
	}
	return guild.Name
}

// classifyRESTError maps Discord REST failures onto the typed sentinels
func classifyRESTError(err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
	}
	return err
}
