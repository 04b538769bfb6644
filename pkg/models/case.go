// Package models contains the data structures persisted by the bot.
package models

import (
	"time"

	"github.com/goccy/go-json"
)

// ActionType identifica el tipo de acción de moderación registrada
type ActionType string

const (
	ActionBan               ActionType = "BAN"
	ActionUnban             ActionType = "UNBAN"
	ActionKick              ActionType = "KICK"
	ActionTimeout           ActionType = "TIMEOUT"
	ActionRemoveTimeout     ActionType = "REMOVE_TIMEOUT"
	ActionWarn              ActionType = "WARN"
	ActionRemoveInfraction  ActionType = "REMOVE_INFRACTION"
	ActionClearInfractions  ActionType = "CLEAR_INFRACTIONS"
	ActionDMBanned          ActionType = "DM_BANNED"
	ActionAIAlert           ActionType = "AI_ALERT"
	ActionAIDeleteRequested ActionType = "AI_DELETE_REQUESTED"
)

// Title returns a human-readable name for the action ("Remove Timeout" for REMOVE_TIMEOUT)
func (a ActionType) Title() string {
	out := make([]rune, 0, len(a))
	upper := true
	for _, r := range a {
		if r == '_' {
			out = append(out, ' ')
			upper = true
			continue
		}
		if upper {
			out = append(out, r)
			upper = false
		} else if r >= 'A' && r <= 'Z' {
			out = append(out, r+('a'-'A'))
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}

// automatedModeratorID is the reserved sentinel persisted for non-human actors
const automatedModeratorID int64 = 0

// Moderator identifica al autor de una acción: un usuario o el sistema automático.
// Se serializa como el ID entero (0 para el sistema) para mantener el formato
// de los archivos de datos.
type Moderator struct {
	id int64
}

// HumanModerator returns the moderator value for a real user ID
func HumanModerator(id int64) Moderator {
	return Moderator{id: id}
}

// AutomatedModerator returns the sentinel moderator used for automated actions
func AutomatedModerator() Moderator {
	return Moderator{id: automatedModeratorID}
}

// IsAutomated reports whether the action was taken by the automated system
func (m Moderator) IsAutomated() bool {
	return m.id == automatedModeratorID
}

// ID returns the persisted moderator ID (0 for the automated system)
func (m Moderator) ID() int64 {
	return m.id
}

// MarshalJSON serializes the moderator as its integer ID
func (m Moderator) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.id)
}

// UnmarshalJSON deserializes the moderator from its integer ID
func (m *Moderator) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &m.id)
}

// Case representa un registro de moderación persistido
type Case struct {
	CaseID          int64      `bson:"case_id" json:"case_id"`
	GuildID         int64      `bson:"guild_id" json:"guild_id"`
	Timestamp       time.Time  `bson:"timestamp" json:"timestamp"`
	Moderator       Moderator  `bson:"moderator_id" json:"moderator_id"`
	TargetUserID    int64      `bson:"target_user_id" json:"target_user_id"`
	ActionType      ActionType `bson:"action_type" json:"action_type"`
	Reason          *string    `bson:"reason" json:"reason"`
	DurationSeconds *int64     `bson:"duration_seconds" json:"duration_seconds"`
	LogMessageID    *int64     `bson:"log_message_id" json:"log_message_id"`
	LogChannelID    *int64     `bson:"log_channel_id" json:"log_channel_id"`
}

// Duration returns the recorded duration, or zero if the action was not time-bounded
func (c *Case) Duration() time.Duration {
	if c.DurationSeconds == nil {
		return 0
	}
	return time.Duration(*c.DurationSeconds) * time.Second
}

// ReasonOr returns the recorded reason or a fallback if none was given
func (c *Case) ReasonOr(fallback string) string {
	if c.Reason == nil || *c.Reason == "" {
		return fallback
	}
	return *c.Reason
}
