package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/goccy/go-json"
)

// Archivos de datos dentro del directorio de almacenamiento
const (
	casesFile    = "moderation_logs.json"
	settingsFile = "guild_settings.json"
	togglesFile  = "log_event_toggles.json"
)

// JSONStore persists everything in flat JSON files under a data directory.
// Each file is guarded by its own mutex held across the whole
// read-modify-write sequence, so concurrent AddCase calls always observe the
// highest assigned case ID before allocating the next one.
type JSONStore struct {
	dir string

	casesMu    sync.Mutex
	settingsMu sync.Mutex
	togglesMu  sync.Mutex
}

// NewJSONStore creates the data directory and the three storage files if missing
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	s := &JSONStore{dir: dir}

	if err := ensureFile(filepath.Join(dir, casesFile), []byte("[]")); err != nil {
		return nil, err
	}
	if err := ensureFile(filepath.Join(dir, settingsFile), []byte("{}")); err != nil {
		return nil, err
	}
	if err := ensureFile(filepath.Join(dir, togglesFile), []byte("{}")); err != nil {
		return nil, err
	}

	logger.System(fmt.Sprintf("Almacenamiento JSON listo en %s", dir), "Storage")
	return s, nil
}

func ensureFile(path string, empty []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, empty, 0644); err != nil {
		return fmt.Errorf("initializing %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *JSONStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

// loadJSON decodes a storage file into out
func loadJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return nil
}

// saveJSON writes a storage file through a temp file so a crash mid-write
// never leaves the file half-written
func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *JSONStore) loadCases() ([]*models.Case, error) {
	var cases []*models.Case
	if err := loadJSON(s.path(casesFile), &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// AddCase allocates max+1 and appends the record under the cases lock
func (s *JSONStore) AddCase(ctx context.Context, guildID int64, moderator models.Moderator, targetUserID int64, actionType models.ActionType, reason *string, durationSeconds *int64) (int64, error) {
	s.casesMu.Lock()
	defer s.casesMu.Unlock()

	cases, err := s.loadCases()
	if err != nil {
		return 0, err
	}

	var caseID int64 = 1
	for _, c := range cases {
		if c.CaseID >= caseID {
			caseID = c.CaseID + 1
		}
	}

	cases = append(cases, &models.Case{
		CaseID:          caseID,
		GuildID:         guildID,
		Timestamp:       time.Now().UTC(),
		Moderator:       moderator,
		TargetUserID:    targetUserID,
		ActionType:      actionType,
		Reason:          reason,
		DurationSeconds: durationSeconds,
	})

	if err := saveJSON(s.path(casesFile), cases); err != nil {
		return 0, err
	}
	logger.Info(fmt.Sprintf("Caso #%d registrado (%s) en guild %d", caseID, actionType, guildID), "Storage")
	return caseID, nil
}

// Case returns a record by ID
func (s *JSONStore) Case(ctx context.Context, caseID int64) (*models.Case, error) {
	cases, err := s.loadCases()
	if err != nil {
		return nil, err
	}
	for _, c := range cases {
		if c.CaseID == caseID {
			return c, nil
		}
	}
	return nil, ErrCaseNotFound
}

// sortCasesDesc orders newest first, case ID as tiebreaker
func sortCasesDesc(cases []*models.Case) {
	sort.SliceStable(cases, func(i, j int) bool {
		if cases[i].Timestamp.Equal(cases[j].Timestamp) {
			return cases[i].CaseID > cases[j].CaseID
		}
		return cases[i].Timestamp.After(cases[j].Timestamp)
	})
}

func capCases(cases []*models.Case, limit int) []*models.Case {
	if limit <= 0 {
		limit = DefaultCaseLimit
	}
	if len(cases) > limit {
		return cases[:limit]
	}
	return cases
}

// UserCases lists a user's cases in a guild, newest first
func (s *JSONStore) UserCases(ctx context.Context, guildID, targetUserID int64, limit int) ([]*models.Case, error) {
	cases, err := s.loadCases()
	if err != nil {
		return nil, err
	}
	matched := make([]*models.Case, 0)
	for _, c := range cases {
		if c.GuildID == guildID && c.TargetUserID == targetUserID {
			matched = append(matched, c)
		}
	}
	sortCasesDesc(matched)
	return capCases(matched, limit), nil
}

// GuildCases lists a guild's cases, newest first
func (s *JSONStore) GuildCases(ctx context.Context, guildID int64, limit int) ([]*models.Case, error) {
	cases, err := s.loadCases()
	if err != nil {
		return nil, err
	}
	matched := make([]*models.Case, 0)
	for _, c := range cases {
		if c.GuildID == guildID {
			matched = append(matched, c)
		}
	}
	sortCasesDesc(matched)
	return capCases(matched, limit), nil
}

// UpdateCaseReason mutates only the reason field of an existing record
func (s *JSONStore) UpdateCaseReason(ctx context.Context, caseID int64, newReason string) error {
	s.casesMu.Lock()
	defer s.casesMu.Unlock()

	cases, err := s.loadCases()
	if err != nil {
		return err
	}
	for _, c := range cases {
		if c.CaseID == caseID {
			c.Reason = &newReason
			return saveJSON(s.path(casesFile), cases)
		}
	}
	return ErrCaseNotFound
}

// SetCaseDispatch fills in the notification location; idempotent
func (s *JSONStore) SetCaseDispatch(ctx context.Context, caseID, messageID, channelID int64) error {
	s.casesMu.Lock()
	defer s.casesMu.Unlock()

	cases, err := s.loadCases()
	if err != nil {
		return err
	}
	for _, c := range cases {
		if c.CaseID == caseID {
			c.LogMessageID = &messageID
			c.LogChannelID = &channelID
			return saveJSON(s.path(casesFile), cases)
		}
	}
	return ErrCaseNotFound
}

// DeleteCase removes a record only if it belongs to the given guild
func (s *JSONStore) DeleteCase(ctx context.Context, caseID, guildID int64) error {
	s.casesMu.Lock()
	defer s.casesMu.Unlock()

	cases, err := s.loadCases()
	if err != nil {
		return err
	}
	kept := cases[:0]
	removed := false
	for _, c := range cases {
		if c.CaseID == caseID && c.GuildID == guildID {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return ErrCaseNotFound
	}
	return saveJSON(s.path(casesFile), kept)
}

// ClearUserCases removes all cases matching guild and target, returning the count
func (s *JSONStore) ClearUserCases(ctx context.Context, guildID, targetUserID int64) (int, error) {
	s.casesMu.Lock()
	defer s.casesMu.Unlock()

	cases, err := s.loadCases()
	if err != nil {
		return 0, err
	}
	kept := cases[:0]
	removed := 0
	for _, c := range cases {
		if c.GuildID == guildID && c.TargetUserID == targetUserID {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := saveJSON(s.path(casesFile), kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// Setting returns the raw JSON value for (guild, key)
func (s *JSONStore) Setting(ctx context.Context, guildID int64, key string) (json.RawMessage, bool, error) {
	settings := map[string]map[string]json.RawMessage{}
	if err := loadJSON(s.path(settingsFile), &settings); err != nil {
		return nil, false, err
	}
	guild, ok := settings[fmt.Sprintf("%d", guildID)]
	if !ok {
		return nil, false, nil
	}
	raw, ok := guild[key]
	return raw, ok, nil
}

// SetSetting persists (guild, key) -> value, creating the guild bucket if absent
func (s *JSONStore) SetSetting(ctx context.Context, guildID int64, key string, value any) error {
	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()

	settings := map[string]map[string]json.RawMessage{}
	if err := loadJSON(s.path(settingsFile), &settings); err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding setting %q: %w", key, err)
	}
	guildKey := fmt.Sprintf("%d", guildID)
	if settings[guildKey] == nil {
		settings[guildKey] = map[string]json.RawMessage{}
	}
	settings[guildKey][key] = raw
	return saveJSON(s.path(settingsFile), settings)
}

// EventToggle returns the stored flag for (guild, eventKey)
func (s *JSONStore) EventToggle(ctx context.Context, guildID int64, eventKey models.EventKey) (bool, bool, error) {
	toggles := map[string]map[models.EventKey]bool{}
	if err := loadJSON(s.path(togglesFile), &toggles); err != nil {
		return false, false, err
	}
	guild, ok := toggles[fmt.Sprintf("%d", guildID)]
	if !ok {
		return false, false, nil
	}
	enabled, ok := guild[eventKey]
	return enabled, ok, nil
}

// SetEventToggle persists the flag for (guild, eventKey)
func (s *JSONStore) SetEventToggle(ctx context.Context, guildID int64, eventKey models.EventKey, enabled bool) error {
	if !models.ValidEventKey(eventKey) {
		return ErrInvalidEventKey
	}
	s.togglesMu.Lock()
	defer s.togglesMu.Unlock()

	toggles := map[string]map[models.EventKey]bool{}
	if err := loadJSON(s.path(togglesFile), &toggles); err != nil {
		return err
	}
	guildKey := fmt.Sprintf("%d", guildID)
	if toggles[guildKey] == nil {
		toggles[guildKey] = map[models.EventKey]bool{}
	}
	toggles[guildKey][eventKey] = enabled
	return saveJSON(s.path(togglesFile), toggles)
}

// EventToggles returns only the explicitly-set flags for a guild
func (s *JSONStore) EventToggles(ctx context.Context, guildID int64) (map[models.EventKey]bool, error) {
	toggles := map[string]map[models.EventKey]bool{}
	if err := loadJSON(s.path(togglesFile), &toggles); err != nil {
		return nil, err
	}
	guild, ok := toggles[fmt.Sprintf("%d", guildID)]
	if !ok {
		return map[models.EventKey]bool{}, nil
	}
	out := make(map[models.EventKey]bool, len(guild))
	for k, v := range guild {
		out[k] = v
	}
	return out, nil
}

// Ping measures a storage round trip by statting the cases file
func (s *JSONStore) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if _, err := os.Stat(s.path(casesFile)); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// Status returns the display status of the store
func (s *JSONStore) Status() (string, bool) {
	if _, err := os.Stat(s.path(casesFile)); err != nil {
		return "🔴 | Sin acceso a los archivos de datos", false
	}
	return "🟢 | Archivos JSON", true
}

// Close is a no-op for the file-backed store
func (s *JSONStore) Close() error {
	return nil
}
