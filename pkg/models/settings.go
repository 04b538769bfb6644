package models

// Claves de configuración por servidor almacenadas en el settings store
const (
	SettingModLogChannelID   = "mod_log_channel_id"
	SettingModLogEnabled     = "mod_log_enabled"
	SettingAppealChannelID   = "ban_appeal_channel_id"
	SettingModeratorRoleID   = "moderator_role_id"
	SettingPingOnBanAppeal   = "ping_on_ban_appeal"
	SettingLoggingWebhookURL = "logging_webhook_url"
)

// EventKey identifica una clase de evento registrable con toggle por servidor
type EventKey string

const (
	EventMessageDelete EventKey = "message_delete"
	EventMessageEdit   EventKey = "message_edit"
	EventMemberJoin    EventKey = "member_join"
	EventMemberLeave   EventKey = "member_leave"
	EventMemberBan     EventKey = "member_ban"
	EventMemberUnban   EventKey = "member_unban"
	EventMemberTimeout EventKey = "member_timeout"
	EventRoleChange    EventKey = "role_change"
	EventChannelChange EventKey = "channel_change"
	EventGuildUpdate   EventKey = "guild_update"
)

// LoggableEvents is the fixed set of event keys a guild can toggle
var LoggableEvents = []EventKey{
	EventMessageDelete,
	EventMessageEdit,
	EventMemberJoin,
	EventMemberLeave,
	EventMemberBan,
	EventMemberUnban,
	EventMemberTimeout,
	EventRoleChange,
	EventChannelChange,
	EventGuildUpdate,
}

// ValidEventKey reports whether the given key belongs to the loggable set
func ValidEventKey(key EventKey) bool {
	for _, k := range LoggableEvents {
		if k == key {
			return true
		}
	}
	return false
}
