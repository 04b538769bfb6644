// Package storage provides the persistence layer for moderation cases,
// per-guild settings and log event toggles. A single Backend interface is
// implemented by three concrete stores (JSON files, SQLite, MongoDB)
// selected at construction time.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/goccy/go-json"
)

var (
	ErrCaseNotFound    = errors.New("caso de moderación no encontrado")
	ErrInvalidEventKey = errors.New("clave de evento desconocida")
)

// DefaultCaseLimit caps list queries when the caller does not provide a limit
const DefaultCaseLimit = 50

// Backend is the contract every concrete store implements. Case IDs are
// unique across the whole installation and assigned as max+1; allocation and
// insertion are atomic with respect to concurrent AddCase calls on the same
// store. DeleteCase and ClearUserCases enforce guild ownership: a case that
// exists but belongs to another guild behaves exactly like a missing case.
type Backend interface {
	AddCase(ctx context.Context, guildID int64, moderator models.Moderator, targetUserID int64, actionType models.ActionType, reason *string, durationSeconds *int64) (int64, error)
	Case(ctx context.Context, caseID int64) (*models.Case, error)
	UserCases(ctx context.Context, guildID, targetUserID int64, limit int) ([]*models.Case, error)
	GuildCases(ctx context.Context, guildID int64, limit int) ([]*models.Case, error)
	UpdateCaseReason(ctx context.Context, caseID int64, newReason string) error
	SetCaseDispatch(ctx context.Context, caseID, messageID, channelID int64) error
	DeleteCase(ctx context.Context, caseID, guildID int64) error
	ClearUserCases(ctx context.Context, guildID, targetUserID int64) (int, error)

	Setting(ctx context.Context, guildID int64, key string) (json.RawMessage, bool, error)
	SetSetting(ctx context.Context, guildID int64, key string, value any) error

	EventToggle(ctx context.Context, guildID int64, eventKey models.EventKey) (enabled bool, found bool, err error)
	SetEventToggle(ctx context.Context, guildID int64, eventKey models.EventKey, enabled bool) error
	EventToggles(ctx context.Context, guildID int64) (map[models.EventKey]bool, error)

	Ping(ctx context.Context) (time.Duration, error)
	Status() (string, bool)
	Close() error
}

// Service wraps a Backend with the caller-facing failure semantics: reads
// never fail (they fall back to the caller's default and log the I/O error),
// mutations report success as a bool instead of raising.
type Service struct {
	backend Backend
}

// NewService creates a Service over the given backend
func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// Backend exposes the underlying store for callers that need error details
func (s *Service) Backend() Backend {
	return s.backend
}

// AddCase records a new moderation case and returns its ID, or ok=false if
// persistence failed. The failure is logged, never raised.
func (s *Service) AddCase(ctx context.Context, guildID int64, moderator models.Moderator, targetUserID int64, actionType models.ActionType, reason *string, durationSeconds *int64) (int64, bool) {
	caseID, err := s.backend.AddCase(ctx, guildID, moderator, targetUserID, actionType, reason, durationSeconds)
	if err != nil {
		logger.Error(fmt.Sprintf("No se pudo registrar el caso (%s) en guild %d: %v", actionType, guildID, err), "Storage")
		return 0, false
	}
	return caseID, true
}

// Case returns a record by ID, or nil if it does not exist or the read failed
func (s *Service) Case(ctx context.Context, caseID int64) *models.Case {
	c, err := s.backend.Case(ctx, caseID)
	if err != nil {
		if !errors.Is(err, ErrCaseNotFound) {
			logger.Error(fmt.Sprintf("Error leyendo el caso %d: %v", caseID, err), "Storage")
		}
		return nil
	}
	return c
}

// GuildCase returns a record by ID only if it belongs to the given guild.
// Cross-tenant lookups behave exactly like a missing case.
func (s *Service) GuildCase(ctx context.Context, caseID, guildID int64) *models.Case {
	c := s.Case(ctx, caseID)
	if c == nil || c.GuildID != guildID {
		return nil
	}
	return c
}

// UserCases lists a user's cases in a guild, newest first, never more than limit
func (s *Service) UserCases(ctx context.Context, guildID, targetUserID int64, limit int) []*models.Case {
	cases, err := s.backend.UserCases(ctx, guildID, targetUserID, limit)
	if err != nil {
		logger.Error(fmt.Sprintf("Error listando casos del usuario %d en guild %d: %v", targetUserID, guildID, err), "Storage")
		return nil
	}
	return cases
}

// GuildCases lists a guild's cases, newest first, never more than limit
func (s *Service) GuildCases(ctx context.Context, guildID int64, limit int) []*models.Case {
	cases, err := s.backend.GuildCases(ctx, guildID, limit)
	if err != nil {
		logger.Error(fmt.Sprintf("Error listando casos de la guild %d: %v", guildID, err), "Storage")
		return nil
	}
	return cases
}

// UpdateCaseReason mutates only the reason field; false if the case is unknown
func (s *Service) UpdateCaseReason(ctx context.Context, caseID int64, newReason string) bool {
	if err := s.backend.UpdateCaseReason(ctx, caseID, newReason); err != nil {
		if !errors.Is(err, ErrCaseNotFound) {
			logger.Error(fmt.Sprintf("Error actualizando la razón del caso %d: %v", caseID, err), "Storage")
		}
		return false
	}
	return true
}

// SetCaseDispatch backfills the notification location once it has been posted
func (s *Service) SetCaseDispatch(ctx context.Context, caseID, messageID, channelID int64) bool {
	if err := s.backend.SetCaseDispatch(ctx, caseID, messageID, channelID); err != nil {
		if !errors.Is(err, ErrCaseNotFound) {
			logger.Error(fmt.Sprintf("Error guardando la ubicación del aviso del caso %d: %v", caseID, err), "Storage")
		}
		return false
	}
	return true
}

// DeleteCase removes a record only if it belongs to the given guild
func (s *Service) DeleteCase(ctx context.Context, caseID, guildID int64) bool {
	if err := s.backend.DeleteCase(ctx, caseID, guildID); err != nil {
		if !errors.Is(err, ErrCaseNotFound) {
			logger.Error(fmt.Sprintf("Error eliminando el caso %d en guild %d: %v", caseID, guildID, err), "Storage")
		}
		return false
	}
	return true
}

// ClearUserCases removes every case matching guild and target, returning the count
func (s *Service) ClearUserCases(ctx context.Context, guildID, targetUserID int64) int {
	n, err := s.backend.ClearUserCases(ctx, guildID, targetUserID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error limpiando los casos del usuario %d en guild %d: %v", targetUserID, guildID, err), "Storage")
		return 0
	}
	return n
}

// SetSetting persists an arbitrary per-guild setting; false on I/O failure
func (s *Service) SetSetting(ctx context.Context, guildID int64, key string, value any) bool {
	if err := s.backend.SetSetting(ctx, guildID, key, value); err != nil {
		logger.Error(fmt.Sprintf("Error guardando la configuración '%s' en guild %d: %v", key, guildID, err), "Storage")
		return false
	}
	return true
}

// SettingValue reads a per-guild setting into T, returning def when the guild
// or key is absent or the value cannot be decoded. Never fails.
func SettingValue[T any](ctx context.Context, s *Service, guildID int64, key string, def T) T {
	raw, found, err := s.backend.Setting(ctx, guildID, key)
	if err != nil {
		logger.Error(fmt.Sprintf("Error leyendo la configuración '%s' en guild %d: %v", key, guildID, err), "Storage")
		return def
	}
	if !found {
		return def
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.Warn(fmt.Sprintf("Configuración '%s' de guild %d con formato inesperado: %v", key, guildID, err), "Storage")
		return def
	}
	return out
}

// IsEventEnabled returns the stored toggle for an event key, or def if unset
func (s *Service) IsEventEnabled(ctx context.Context, guildID int64, eventKey models.EventKey, def bool) bool {
	enabled, found, err := s.backend.EventToggle(ctx, guildID, eventKey)
	if err != nil {
		logger.Error(fmt.Sprintf("Error leyendo el toggle '%s' en guild %d: %v", eventKey, guildID, err), "Storage")
		return def
	}
	if !found {
		return def
	}
	return enabled
}

// SetEventEnabled persists the toggle for an event key; false on failure
func (s *Service) SetEventEnabled(ctx context.Context, guildID int64, eventKey models.EventKey, enabled bool) bool {
	if err := s.backend.SetEventToggle(ctx, guildID, eventKey, enabled); err != nil {
		logger.Error(fmt.Sprintf("Error guardando el toggle '%s' en guild %d: %v", eventKey, guildID, err), "Storage")
		return false
	}
	return true
}

// EventToggles returns only the explicitly-set toggles for a guild
func (s *Service) EventToggles(ctx context.Context, guildID int64) map[models.EventKey]bool {
	toggles, err := s.backend.EventToggles(ctx, guildID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error listando los toggles de la guild %d: %v", guildID, err), "Storage")
		return map[models.EventKey]bool{}
	}
	return toggles
}

// ModLogChannelID returns the configured mod log channel, ok=false if unset
func (s *Service) ModLogChannelID(ctx context.Context, guildID int64) (int64, bool) {
	id := SettingValue(ctx, s, guildID, models.SettingModLogChannelID, int64(0))
	return id, id != 0
}

// SetModLogChannelID stores the mod log channel for a guild
func (s *Service) SetModLogChannelID(ctx context.Context, guildID, channelID int64) bool {
	return s.SetSetting(ctx, guildID, models.SettingModLogChannelID, channelID)
}

// ModLogEnabled reports whether mod logging is on (default: disabled)
func (s *Service) ModLogEnabled(ctx context.Context, guildID int64) bool {
	return SettingValue(ctx, s, guildID, models.SettingModLogEnabled, false)
}

// SetModLogEnabled stores the mod log enabled flag
func (s *Service) SetModLogEnabled(ctx context.Context, guildID int64, enabled bool) bool {
	return s.SetSetting(ctx, guildID, models.SettingModLogEnabled, enabled)
}

// AppealChannelID returns the ban appeal channel, ok=false if unset
func (s *Service) AppealChannelID(ctx context.Context, guildID int64) (int64, bool) {
	id := SettingValue(ctx, s, guildID, models.SettingAppealChannelID, int64(0))
	return id, id != 0
}

// SetAppealChannelID stores the ban appeal channel for a guild
func (s *Service) SetAppealChannelID(ctx context.Context, guildID, channelID int64) bool {
	return s.SetSetting(ctx, guildID, models.SettingAppealChannelID, channelID)
}

// ModeratorRoleID returns the configured moderator role, ok=false if unset
func (s *Service) ModeratorRoleID(ctx context.Context, guildID int64) (int64, bool) {
	id := SettingValue(ctx, s, guildID, models.SettingModeratorRoleID, int64(0))
	return id, id != 0
}

// PingOnBanAppeal reports whether appeal submissions ping the moderator role
func (s *Service) PingOnBanAppeal(ctx context.Context, guildID int64) bool {
	return SettingValue(ctx, s, guildID, models.SettingPingOnBanAppeal, false)
}
