package modlog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/storage"
)

// Publisher feeds recorded cases to an external event bus. Optional.
type Publisher interface {
	PublishCase(c *models.Case)
}

// Entry describes a moderation action to record and announce.
type Entry struct {
	GuildID         int64
	Moderator       models.Moderator
	TargetUserID    int64
	ActionType      models.ActionType
	Reason          *string
	DurationSeconds *int64
	// AIDetails is set only for actions taken by the automated system.
	AIDetails *AIDetails
}

// Service records moderation cases and announces them in the guild's
// configured log channel. Dispatch failures never abort the record: a case is
// always retrievable even when its notification was lost.
type Service struct {
	store     *storage.Service
	notifier  Notifier
	publisher Publisher
}

// NewService creates the case log service. publisher may be nil.
func NewService(store *storage.Service, notifier Notifier, publisher Publisher) *Service {
	return &Service{store: store, notifier: notifier, publisher: publisher}
}

var (
	service *Service
	once    sync.Once
)

// Init initializes the global case log service
func Init(store *storage.Service, notifier Notifier, publisher Publisher) *Service {
	once.Do(func() {
		service = NewService(store, notifier, publisher)
	})
	return service
}

// Get returns the global case log service
func Get() *Service {
	return service
}

// LogAction is the command handlers' single entry point: it persists the case
// and, if the guild has logging enabled and a channel configured, renders and
// posts the embed and writes the message location back to the record. Every
// step after the record is best-effort.
func (s *Service) LogAction(ctx context.Context, e Entry) {
	// 1. Record. Failure here aborts: there is nothing to announce.
	caseID, ok := s.store.AddCase(ctx, e.GuildID, e.Moderator, e.TargetUserID, e.ActionType, e.Reason, e.DurationSeconds)
	if !ok {
		logger.Error(fmt.Sprintf("No se pudo registrar el caso %s en el servidor %d", e.ActionType, e.GuildID), "ModLog")
		return
	}

	c := &models.Case{
		CaseID:          caseID,
		GuildID:         e.GuildID,
		Timestamp:       time.Now().UTC(),
		Moderator:       e.Moderator,
		TargetUserID:    e.TargetUserID,
		ActionType:      e.ActionType,
		Reason:          e.Reason,
		DurationSeconds: e.DurationSeconds,
	}

	if s.publisher != nil {
		s.publisher.PublishCase(c)
	}

	// 2. Config check: silent record when logging is off or unconfigured.
	if !s.store.ModLogEnabled(ctx, e.GuildID) {
		return
	}
	channelID, ok := s.store.ModLogChannelID(ctx, e.GuildID)
	if !ok || channelID == 0 {
		logger.Warn(fmt.Sprintf("Registro activado sin canal configurado en el servidor %d (caso #%d)", e.GuildID, caseID), "ModLog")
		return
	}

	// 3. Render.
	embed := renderCase(c, s.notifier.GuildName(e.GuildID), e.AIDetails)

	// 4. Dispatch.
	messageID, err := s.notifier.SendCaseMessage(channelID, embed)
	if err != nil {
		logger.Error(fmt.Sprintf("No se pudo enviar el caso #%d al canal %d: %s", caseID, channelID, err.Error()), "ModLog")
		return
	}

	// 5. Backfill the dispatch location.
	if !s.store.SetCaseDispatch(ctx, caseID, messageID, channelID) {
		logger.Warn(fmt.Sprintf("No se pudo guardar la ubicación del mensaje para el caso #%d", caseID), "ModLog")
	}
}

// EditReason updates a case's reason and, when the case was announced,
// re-renders the posted embed. The embed edit is best-effort: a missing
// message or channel leaves the stored reason updated and reports success.
func (s *Service) EditReason(ctx context.Context, guildID, caseID int64, newReason, editorDisplay string) bool {
	c := s.store.GuildCase(ctx, caseID, guildID)
	if c == nil {
		return false
	}
	if !s.store.UpdateCaseReason(ctx, caseID, newReason) {
		return false
	}
	c.Reason = &newReason

	if c.LogChannelID == nil || c.LogMessageID == nil {
		return true
	}

	embed := renderCase(c, s.notifier.GuildName(guildID), nil)
	if editorDisplay != "" {
		embed.Footer.Text += " • Actualizado por: " + editorDisplay
	}
	if err := s.notifier.EditCaseMessage(*c.LogChannelID, *c.LogMessageID, embed); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo actualizar el embed del caso #%d: %s", caseID, err.Error()), "ModLog")
	}
	return true
}

// Store exposes the underlying storage service for read paths.
func (s *Service) Store() *storage.Service {
	return s.store
}
