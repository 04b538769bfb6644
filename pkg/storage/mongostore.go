package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Colecciones de MongoDB
const (
	casesCollection    = "moderation_logs"
	settingsCollection = "guild_settings"
	togglesCollection  = "log_event_toggles"
)

// MongoStore persists everything in MongoDB. Case ID allocation reads the
// highest assigned ID and inserts under the store mutex, matching the
// serialization guarantee of the other backends.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database

	casesMu sync.Mutex
}

// caseDoc is the wire form of a case; the moderator is persisted as its
// integer ID (0 for the automated system)
type caseDoc struct {
	CaseID          int64             `bson:"case_id"`
	GuildID         int64             `bson:"guild_id"`
	Timestamp       time.Time         `bson:"timestamp"`
	ModeratorID     int64             `bson:"moderator_id"`
	TargetUserID    int64             `bson:"target_user_id"`
	ActionType      models.ActionType `bson:"action_type"`
	Reason          *string           `bson:"reason"`
	DurationSeconds *int64            `bson:"duration_seconds"`
	LogMessageID    *int64            `bson:"log_message_id"`
	LogChannelID    *int64            `bson:"log_channel_id"`
}

func (d *caseDoc) toModel() *models.Case {
	moderator := models.HumanModerator(d.ModeratorID)
	if d.ModeratorID == 0 {
		moderator = models.AutomatedModerator()
	}
	return &models.Case{
		CaseID:          d.CaseID,
		GuildID:         d.GuildID,
		Timestamp:       d.Timestamp.UTC(),
		Moderator:       moderator,
		TargetUserID:    d.TargetUserID,
		ActionType:      d.ActionType,
		Reason:          d.Reason,
		DurationSeconds: d.DurationSeconds,
		LogMessageID:    d.LogMessageID,
		LogChannelID:    d.LogChannelID,
	}
}

// OpenMongoStore connects to MongoDB and verifies the connection with a ping
func OpenMongoStore(ctx context.Context, mongoURL, dbName string) (*MongoStore, error) {
	logger.System("Intentando conectar a la base de datos...", "Storage")

	connCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(mongoURL).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(connCtx, clientOpts)
	if err != nil {
		logger.Critical("Fallo al conectar con la base de datos.", "Storage")
		return nil, err
	}

	if err := client.Ping(connCtx, readpref.Primary()); err != nil {
		logger.Critical("Fallo al verificar conexión con la base de datos.", "Storage")
		return nil, err
	}

	logger.Success("Conectado exitosamente a la base de datos.", "Storage")
	return &MongoStore{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// AddCase finds the highest case ID and inserts the new record under the lock
func (s *MongoStore) AddCase(ctx context.Context, guildID int64, moderator models.Moderator, targetUserID int64, actionType models.ActionType, reason *string, durationSeconds *int64) (int64, error) {
	s.casesMu.Lock()
	defer s.casesMu.Unlock()

	col := s.db.Collection(casesCollection)

	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var caseID int64 = 1
	var last caseDoc
	err := col.FindOne(opCtx, bson.M{}, options.FindOne().SetSort(bson.M{"case_id": -1})).Decode(&last)
	if err == nil {
		caseID = last.CaseID + 1
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("allocate case id: %w", err)
	}

	doc := caseDoc{
		CaseID:       caseID,
		GuildID:      guildID,
		Timestamp:    time.Now().UTC(),
		ModeratorID:  moderator.ID(),
		TargetUserID: targetUserID,
		ActionType:   actionType,
		Reason:       reason,

		DurationSeconds: durationSeconds,
	}
	if _, err := col.InsertOne(opCtx, doc); err != nil {
		return 0, fmt.Errorf("insert case: %w", err)
	}
	logger.Info(fmt.Sprintf("Caso #%d registrado (%s) en guild %d", caseID, actionType, guildID), "Storage")
	return caseID, nil
}

// Case returns a record by ID
func (s *MongoStore) Case(ctx context.Context, caseID int64) (*models.Case, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc caseDoc
	err := s.db.Collection(casesCollection).FindOne(opCtx, bson.M{"case_id": caseID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("get case: %w", err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) listCases(ctx context.Context, filter bson.M, limit int) ([]*models.Case, error) {
	if limit <= 0 {
		limit = DefaultCaseLimit
	}
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "case_id", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.db.Collection(casesCollection).Find(opCtx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer func() { _ = cursor.Close(opCtx) }()

	cases := make([]*models.Case, 0)
	for cursor.Next(opCtx) {
		var doc caseDoc
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		cases = append(cases, doc.toModel())
	}
	return cases, cursor.Err()
}

// UserCases lists a user's cases in a guild, newest first
func (s *MongoStore) UserCases(ctx context.Context, guildID, targetUserID int64, limit int) ([]*models.Case, error) {
	return s.listCases(ctx, bson.M{"guild_id": guildID, "target_user_id": targetUserID}, limit)
}

// GuildCases lists a guild's cases, newest first
func (s *MongoStore) GuildCases(ctx context.Context, guildID int64, limit int) ([]*models.Case, error) {
	return s.listCases(ctx, bson.M{"guild_id": guildID}, limit)
}

func (s *MongoStore) updateCase(ctx context.Context, filter, set bson.M) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := s.db.Collection(casesCollection).UpdateOne(opCtx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update case: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrCaseNotFound
	}
	return nil
}

// UpdateCaseReason mutates only the reason field of an existing record
func (s *MongoStore) UpdateCaseReason(ctx context.Context, caseID int64, newReason string) error {
	return s.updateCase(ctx, bson.M{"case_id": caseID}, bson.M{"reason": newReason})
}

// SetCaseDispatch fills in the notification location; idempotent
func (s *MongoStore) SetCaseDispatch(ctx context.Context, caseID, messageID, channelID int64) error {
	return s.updateCase(ctx, bson.M{"case_id": caseID}, bson.M{
		"log_message_id": messageID,
		"log_channel_id": channelID,
	})
}

// DeleteCase removes a record only if it belongs to the given guild
func (s *MongoStore) DeleteCase(ctx context.Context, caseID, guildID int64) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := s.db.Collection(casesCollection).DeleteOne(opCtx, bson.M{"case_id": caseID, "guild_id": guildID})
	if err != nil {
		return fmt.Errorf("delete case: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrCaseNotFound
	}
	return nil
}

// ClearUserCases removes all cases matching guild and target, returning the count
func (s *MongoStore) ClearUserCases(ctx context.Context, guildID, targetUserID int64) (int, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := s.db.Collection(casesCollection).DeleteMany(opCtx, bson.M{"guild_id": guildID, "target_user_id": targetUserID})
	if err != nil {
		return 0, fmt.Errorf("clear cases: %w", err)
	}
	return int(res.DeletedCount), nil
}

// settingDoc stores the JSON-encoded value for (guild, key)
type settingDoc struct {
	GuildID int64  `bson:"guild_id"`
	Key     string `bson:"key"`
	Value   string `bson:"value"`
}

// Setting returns the raw JSON value for (guild, key)
func (s *MongoStore) Setting(ctx context.Context, guildID int64, key string) (json.RawMessage, bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc settingDoc
	err := s.db.Collection(settingsCollection).FindOne(opCtx, bson.M{"guild_id": guildID, "key": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get setting: %w", err)
	}
	return json.RawMessage(doc.Value), true, nil
}

// SetSetting upserts (guild, key) -> value serialized as JSON
func (s *MongoStore) SetSetting(ctx context.Context, guildID int64, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding setting %q: %w", key, err)
	}

	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	_, err = s.db.Collection(settingsCollection).UpdateOne(
		opCtx,
		bson.M{"guild_id": guildID, "key": key},
		bson.M{"$set": bson.M{"value": string(raw)}},
		opts,
	)
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

// toggleDoc stores the flag for (guild, eventKey)
type toggleDoc struct {
	GuildID  int64  `bson:"guild_id"`
	EventKey string `bson:"event_key"`
	Enabled  bool   `bson:"enabled"`
}

// EventToggle returns the stored flag for (guild, eventKey)
func (s *MongoStore) EventToggle(ctx context.Context, guildID int64, eventKey models.EventKey) (bool, bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc toggleDoc
	err := s.db.Collection(togglesCollection).FindOne(opCtx, bson.M{"guild_id": guildID, "event_key": string(eventKey)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("get toggle: %w", err)
	}
	return doc.Enabled, true, nil
}

// SetEventToggle upserts the flag for (guild, eventKey)
func (s *MongoStore) SetEventToggle(ctx context.Context, guildID int64, eventKey models.EventKey, enabled bool) error {
	if !models.ValidEventKey(eventKey) {
		return ErrInvalidEventKey
	}

	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	_, err := s.db.Collection(togglesCollection).UpdateOne(
		opCtx,
		bson.M{"guild_id": guildID, "event_key": string(eventKey)},
		bson.M{"$set": bson.M{"enabled": enabled}},
		opts,
	)
	if err != nil {
		return fmt.Errorf("set toggle: %w", err)
	}
	return nil
}

// EventToggles returns only the explicitly-set flags for a guild
func (s *MongoStore) EventToggles(ctx context.Context, guildID int64) (map[models.EventKey]bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := s.db.Collection(togglesCollection).Find(opCtx, bson.M{"guild_id": guildID})
	if err != nil {
		return nil, fmt.Errorf("list toggles: %w", err)
	}
	defer func() { _ = cursor.Close(opCtx) }()

	out := make(map[models.EventKey]bool)
	for cursor.Next(opCtx) {
		var doc toggleDoc
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		out[models.EventKey(doc.EventKey)] = doc.Enabled
	}
	return out, cursor.Err()
}

// Ping measures the database response time
func (s *MongoStore) Ping(ctx context.Context) (time.Duration, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	err := s.client.Ping(opCtx, readpref.Primary())
	return time.Since(start), err
}

// Status returns the display status of the store
func (s *MongoStore) Status() (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return "🔴 | Desconectado", false
	}
	return "🟢 | MongoDB", true
}

// Close disconnects from MongoDB
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.client.Disconnect(ctx); err != nil {
		return err
	}
	logger.Warn("La base de datos ha sido desconectada", "Storage")
	return nil
}
