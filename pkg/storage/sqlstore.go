package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

// sqlTimeLayout sorts lexicographically, so ORDER BY timestamp works on TEXT
const sqlTimeLayout = "2006-01-02 15:04:05.000000000"

// SQLStore persists everything in a SQLite database. Case ID allocation runs
// inside a transaction and under the store mutex, so two concurrent AddCase
// calls can never read the same MAX(case_id).
type SQLStore struct {
	db  *sql.DB
	sql sq.StatementBuilderType

	casesMu sync.Mutex
}

// OpenSQLStore opens (or creates) the SQLite database and its schema
func OpenSQLStore(ctx context.Context, dsn string) (*SQLStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn is empty")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// SQLite serializes writers; one connection avoids SQLITE_BUSY churn
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	logger.System("Almacenamiento SQLite listo", "Storage")
	return &SQLStore{
		db:  db,
		sql: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS moderation_logs (
    case_id INTEGER PRIMARY KEY,
    guild_id INTEGER NOT NULL,
    timestamp TEXT NOT NULL,
    moderator_id INTEGER NOT NULL,
    target_user_id INTEGER NOT NULL,
    action_type TEXT NOT NULL,
    reason TEXT,
    duration_seconds INTEGER,
    log_message_id INTEGER,
    log_channel_id INTEGER
);
CREATE INDEX IF NOT EXISTS idx_moderation_logs_guild ON moderation_logs (guild_id, timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_moderation_logs_target ON moderation_logs (guild_id, target_user_id, timestamp DESC);
CREATE TABLE IF NOT EXISTS guild_settings (
    guild_id INTEGER NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (guild_id, key)
);
CREATE TABLE IF NOT EXISTS log_event_toggles (
    guild_id INTEGER NOT NULL,
    event_key TEXT NOT NULL,
    enabled INTEGER NOT NULL,
    PRIMARY KEY (guild_id, event_key)
);`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// AddCase allocates MAX(case_id)+1 and inserts the record in one transaction
func (s *SQLStore) AddCase(ctx context.Context, guildID int64, moderator models.Moderator, targetUserID int64, actionType models.ActionType, reason *string, durationSeconds *int64) (int64, error) {
	s.casesMu.Lock()
	defer s.casesMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin add case: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var caseID int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(case_id), 0) + 1 FROM moderation_logs").Scan(&caseID); err != nil {
		return 0, fmt.Errorf("allocate case id: %w", err)
	}

	q := s.sql.Insert("moderation_logs").
		Columns("case_id", "guild_id", "timestamp", "moderator_id", "target_user_id", "action_type", "reason", "duration_seconds").
		Values(caseID, guildID, time.Now().UTC().Format(sqlTimeLayout), moderator.ID(), targetUserID, string(actionType), reason, durationSeconds)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build add case query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return 0, fmt.Errorf("insert case: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit add case: %w", err)
	}
	logger.Info(fmt.Sprintf("Caso #%d registrado (%s) en guild %d", caseID, actionType, guildID), "Storage")
	return caseID, nil
}

var caseColumns = []string{
	"case_id", "guild_id", "timestamp", "moderator_id", "target_user_id",
	"action_type", "reason", "duration_seconds", "log_message_id", "log_channel_id",
}

func scanCase(row sq.RowScanner) (*models.Case, error) {
	var (
		c         models.Case
		ts        string
		modID     int64
		reason    sql.NullString
		duration  sql.NullInt64
		messageID sql.NullInt64
		channelID sql.NullInt64
	)
	if err := row.Scan(&c.CaseID, &c.GuildID, &ts, &modID, &c.TargetUserID, &c.ActionType, &reason, &duration, &messageID, &channelID); err != nil {
		return nil, err
	}
	parsed, err := time.Parse(sqlTimeLayout, ts)
	if err != nil {
		return nil, fmt.Errorf("parse case timestamp: %w", err)
	}
	c.Timestamp = parsed.UTC()
	c.Moderator = models.HumanModerator(modID)
	if modID == 0 {
		c.Moderator = models.AutomatedModerator()
	}
	if reason.Valid {
		c.Reason = &reason.String
	}
	if duration.Valid {
		c.DurationSeconds = &duration.Int64
	}
	if messageID.Valid {
		c.LogMessageID = &messageID.Int64
	}
	if channelID.Valid {
		c.LogChannelID = &channelID.Int64
	}
	return &c, nil
}

// Case returns a record by ID
func (s *SQLStore) Case(ctx context.Context, caseID int64) (*models.Case, error) {
	q := s.sql.Select(caseColumns...).From("moderation_logs").Where(sq.Eq{"case_id": caseID})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get case query: %w", err)
	}
	c, err := scanCase(s.db.QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("get case: %w", err)
	}
	return c, nil
}

func (s *SQLStore) listCases(ctx context.Context, where sq.Eq, limit int) ([]*models.Case, error) {
	if limit <= 0 {
		limit = DefaultCaseLimit
	}
	q := s.sql.Select(caseColumns...).
		From("moderation_logs").
		Where(where).
		OrderBy("timestamp DESC", "case_id DESC").
		Limit(uint64(limit))
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list cases query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cases := make([]*models.Case, 0)
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// UserCases lists a user's cases in a guild, newest first
func (s *SQLStore) UserCases(ctx context.Context, guildID, targetUserID int64, limit int) ([]*models.Case, error) {
	return s.listCases(ctx, sq.Eq{"guild_id": guildID, "target_user_id": targetUserID}, limit)
}

// GuildCases lists a guild's cases, newest first
func (s *SQLStore) GuildCases(ctx context.Context, guildID int64, limit int) ([]*models.Case, error) {
	return s.listCases(ctx, sq.Eq{"guild_id": guildID}, limit)
}

func (s *SQLStore) updateCase(ctx context.Context, caseID int64, set map[string]any) error {
	q := s.sql.Update("moderation_logs").SetMap(set).Where(sq.Eq{"case_id": caseID})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update case query: %w", err)
	}
	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update case: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update case rows: %w", err)
	}
	if n == 0 {
		return ErrCaseNotFound
	}
	return nil
}

// UpdateCaseReason mutates only the reason field of an existing record
func (s *SQLStore) UpdateCaseReason(ctx context.Context, caseID int64, newReason string) error {
	return s.updateCase(ctx, caseID, map[string]any{"reason": newReason})
}

// SetCaseDispatch fills in the notification location; idempotent
func (s *SQLStore) SetCaseDispatch(ctx context.Context, caseID, messageID, channelID int64) error {
	return s.updateCase(ctx, caseID, map[string]any{
		"log_message_id": messageID,
		"log_channel_id": channelID,
	})
}

// DeleteCase removes a record only if it belongs to the given guild
func (s *SQLStore) DeleteCase(ctx context.Context, caseID, guildID int64) error {
	q := s.sql.Delete("moderation_logs").Where(sq.Eq{"case_id": caseID, "guild_id": guildID})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete case query: %w", err)
	}
	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete case: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete case rows: %w", err)
	}
	if n == 0 {
		return ErrCaseNotFound
	}
	return nil
}

// ClearUserCases removes all cases matching guild and target, returning the count
func (s *SQLStore) ClearUserCases(ctx context.Context, guildID, targetUserID int64) (int, error) {
	q := s.sql.Delete("moderation_logs").Where(sq.Eq{"guild_id": guildID, "target_user_id": targetUserID})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build clear cases query: %w", err)
	}
	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("clear cases: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear cases rows: %w", err)
	}
	return int(n), nil
}

// Setting returns the raw JSON value for (guild, key)
func (s *SQLStore) Setting(ctx context.Context, guildID int64, key string) (json.RawMessage, bool, error) {
	q := s.sql.Select("value").From("guild_settings").Where(sq.Eq{"guild_id": guildID, "key": key})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build get setting query: %w", err)
	}
	var value string
	if err := s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get setting: %w", err)
	}
	return json.RawMessage(value), true, nil
}

// SetSetting upserts (guild, key) -> value serialized as JSON
func (s *SQLStore) SetSetting(ctx context.Context, guildID int64, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding setting %q: %w", key, err)
	}
	q := s.sql.Insert("guild_settings").
		Columns("guild_id", "key", "value").
		Values(guildID, key, string(raw)).
		Suffix("ON CONFLICT(guild_id, key) DO UPDATE SET value=excluded.value")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build set setting query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

// EventToggle returns the stored flag for (guild, eventKey)
func (s *SQLStore) EventToggle(ctx context.Context, guildID int64, eventKey models.EventKey) (bool, bool, error) {
	q := s.sql.Select("enabled").From("log_event_toggles").Where(sq.Eq{"guild_id": guildID, "event_key": string(eventKey)})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return false, false, fmt.Errorf("build get toggle query: %w", err)
	}
	var enabled bool
	if err := s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&enabled); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("get toggle: %w", err)
	}
	return enabled, true, nil
}

// SetEventToggle upserts the flag for (guild, eventKey)
func (s *SQLStore) SetEventToggle(ctx context.Context, guildID int64, eventKey models.EventKey, enabled bool) error {
	if !models.ValidEventKey(eventKey) {
		return ErrInvalidEventKey
	}
	q := s.sql.Insert("log_event_toggles").
		Columns("guild_id", "event_key", "enabled").
		Values(guildID, string(eventKey), enabled).
		Suffix("ON CONFLICT(guild_id, event_key) DO UPDATE SET enabled=excluded.enabled")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build set toggle query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("set toggle: %w", err)
	}
	return nil
}

// EventToggles returns only the explicitly-set flags for a guild
func (s *SQLStore) EventToggles(ctx context.Context, guildID int64) (map[models.EventKey]bool, error) {
	q := s.sql.Select("event_key", "enabled").From("log_event_toggles").Where(sq.Eq{"guild_id": guildID})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list toggles query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list toggles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[models.EventKey]bool)
	for rows.Next() {
		var (
			key     string
			enabled bool
		)
		if err := rows.Scan(&key, &enabled); err != nil {
			return nil, err
		}
		out[models.EventKey(key)] = enabled
	}
	return out, rows.Err()
}

// Ping measures the database response time
func (s *SQLStore) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.db.PingContext(ctx); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// Status returns the display status of the store
func (s *SQLStore) Status() (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return "🔴 | Desconectado", false
	}
	return "🟢 | SQLite", true
}

// Close closes the database
func (s *SQLStore) Close() error {
	return s.db.Close()
}
