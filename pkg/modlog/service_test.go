package modlog

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/storage"
	"github.com/bwmarrin/discordgo"
)

// fakeNotifier records dispatches in memory and can be told to fail
type fakeNotifier struct {
	sendErr    error
	editErr    error
	nextMsgID  int64
	sent       []sentMessage
	edited     []sentMessage
	guildNames map[int64]string
}

type sentMessage struct {
	channelID int64
	messageID int64
	embed     *discordgo.MessageEmbed
}

func (f *fakeNotifier) SendCaseMessage(channelID int64, embed *discordgo.MessageEmbed) (int64, error) {
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.nextMsgID++
	f.sent = append(f.sent, sentMessage{channelID: channelID, messageID: f.nextMsgID, embed: embed})
	return f.nextMsgID, nil
}

func (f *fakeNotifier) EditCaseMessage(channelID, messageID int64, embed *discordgo.MessageEmbed) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.edited = append(f.edited, sentMessage{channelID: channelID, messageID: messageID, embed: embed})
	return nil
}

func (f *fakeNotifier) GuildName(guildID int64) string {
	return f.guildNames[guildID]
}

type fakePublisher struct {
	published []*models.Case
}

func (f *fakePublisher) PublishCase(c *models.Case) {
	f.published = append(f.published, c)
}

func newTestService(t *testing.T) (*Service, *storage.Service, *fakeNotifier) {
	t.Helper()
	backend, err := storage.NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore returned error: %v", err)
	}
	t.Cleanup(func() { backend.Close() })

	store := storage.NewService(backend)
	notifier := &fakeNotifier{guildNames: map[int64]string{1: "Servidor de Prueba"}}
	return NewService(store, notifier, nil), store, notifier
}

func enableLogging(t *testing.T, store *storage.Service, guildID, channelID int64) {
	t.Helper()
	ctx := context.Background()
	if !store.SetModLogChannelID(ctx, guildID, channelID) {
		t.Fatal("SetModLogChannelID failed")
	}
	if !store.SetModLogEnabled(ctx, guildID, true) {
		t.Fatal("SetModLogEnabled failed")
	}
}

func TestLogActionDispatchesAndBackfills(t *testing.T) {
	svc, store, notifier := newTestService(t)
	ctx := context.Background()
	enableLogging(t, store, 1, 555)

	reason := "spam"
	svc.LogAction(ctx, Entry{
		GuildID:      1,
		Moderator:    models.HumanModerator(7),
		TargetUserID: 42,
		ActionType:   models.ActionBan,
		Reason:       &reason,
	})

	if len(notifier.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(notifier.sent))
	}
	msg := notifier.sent[0]
	if msg.channelID != 555 {
		t.Errorf("dispatched to channel %d, want 555", msg.channelID)
	}
	if msg.embed.Title != "Ban | Caso #1" {
		t.Errorf("embed title = %q, want %q", msg.embed.Title, "Ban | Caso #1")
	}
	if msg.embed.Color != colorRed {
		t.Errorf("embed color = %#x, want %#x", msg.embed.Color, colorRed)
	}
	if !strings.Contains(msg.embed.Footer.Text, "Servidor de Prueba") {
		t.Errorf("footer %q should carry the guild name", msg.embed.Footer.Text)
	}

	c := store.GuildCase(ctx, 1, 1)
	if c == nil {
		t.Fatal("case was not recorded")
	}
	if c.LogMessageID == nil || *c.LogMessageID != msg.messageID {
		t.Errorf("LogMessageID = %v, want %d", c.LogMessageID, msg.messageID)
	}
	if c.LogChannelID == nil || *c.LogChannelID != 555 {
		t.Errorf("LogChannelID = %v, want 555", c.LogChannelID)
	}
}

func TestLogActionSurvivesDispatchFailure(t *testing.T) {
	svc, store, notifier := newTestService(t)
	ctx := context.Background()
	enableLogging(t, store, 1, 555)
	notifier.sendErr = ErrPermissionDenied

	svc.LogAction(ctx, Entry{
		GuildID:      1,
		Moderator:    models.HumanModerator(7),
		TargetUserID: 42,
		ActionType:   models.ActionKick,
	})

	c := store.GuildCase(ctx, 1, 1)
	if c == nil {
		t.Fatal("case must be recorded even when dispatch fails")
	}
	if c.LogMessageID != nil || c.LogChannelID != nil {
		t.Error("dispatch location must stay empty after a failed send")
	}
}

func TestLogActionDisabledRecordsSilently(t *testing.T) {
	svc, store, notifier := newTestService(t)
	ctx := context.Background()
	// Channel configured but logging never enabled

	if !store.SetModLogChannelID(ctx, 1, 555) {
		t.Fatal("SetModLogChannelID failed")
	}

	svc.LogAction(ctx, Entry{
		GuildID:      1,
		Moderator:    models.HumanModerator(7),
		TargetUserID: 42,
		ActionType:   models.ActionWarn,
	})

	if len(notifier.sent) != 0 {
		t.Errorf("sent %d messages with logging disabled, want 0", len(notifier.sent))
	}
	if store.GuildCase(ctx, 1, 1) == nil {
		t.Error("case must still be recorded with logging disabled")
	}
}

func TestLogActionEnabledWithoutChannel(t *testing.T) {
	svc, store, notifier := newTestService(t)
	ctx := context.Background()
	if !store.SetModLogEnabled(ctx, 1, true) {
		t.Fatal("SetModLogEnabled failed")
	}

	svc.LogAction(ctx, Entry{
		GuildID:      1,
		Moderator:    models.HumanModerator(7),
		TargetUserID: 42,
		ActionType:   models.ActionWarn,
	})

	if len(notifier.sent) != 0 {
		t.Errorf("sent %d messages without a channel, want 0", len(notifier.sent))
	}
	if store.GuildCase(ctx, 1, 1) == nil {
		t.Error("case must still be recorded without a channel")
	}
}

func TestLogActionPublishesToFeed(t *testing.T) {
	backend, err := storage.NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore returned error: %v", err)
	}
	t.Cleanup(func() { backend.Close() })

	publisher := &fakePublisher{}
	svc := NewService(storage.NewService(backend), &fakeNotifier{guildNames: map[int64]string{}}, publisher)

	svc.LogAction(context.Background(), Entry{
		GuildID:      1,
		Moderator:    models.HumanModerator(7),
		TargetUserID: 42,
		ActionType:   models.ActionBan,
	})

	if len(publisher.published) != 1 {
		t.Fatalf("published %d cases, want 1", len(publisher.published))
	}
	if publisher.published[0].CaseID != 1 {
		t.Errorf("published case id = %d, want 1", publisher.published[0].CaseID)
	}
}

func TestEditReasonUpdatesEmbed(t *testing.T) {
	svc, store, notifier := newTestService(t)
	ctx := context.Background()
	enableLogging(t, store, 1, 555)

	reason := "spam"
	svc.LogAction(ctx, Entry{
		GuildID:      1,
		Moderator:    models.HumanModerator(7),
		TargetUserID: 42,
		ActionType:   models.ActionBan,
		Reason:       &reason,
	})

	if !svc.EditReason(ctx, 1, 1, "spam confirmado", "Mod#0001") {
		t.Fatal("EditReason returned false")
	}

	c := store.GuildCase(ctx, 1, 1)
	if c == nil || c.Reason == nil || *c.Reason != "spam confirmado" {
		t.Fatalf("stored reason not updated: %+v", c)
	}

	if len(notifier.edited) != 1 {
		t.Fatalf("edited %d messages, want 1", len(notifier.edited))
	}
	edit := notifier.edited[0]
	if edit.channelID != 555 || edit.messageID != notifier.sent[0].messageID {
		t.Errorf("edit targeted %d/%d, want 555/%d", edit.channelID, edit.messageID, notifier.sent[0].messageID)
	}
	if !strings.Contains(edit.embed.Footer.Text, "Actualizado por: Mod#0001") {
		t.Errorf("footer %q should name the editor", edit.embed.Footer.Text)
	}
}

func TestEditReasonWrongGuild(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	svc.LogAction(ctx, Entry{
		GuildID:      1,
		Moderator:    models.HumanModerator(7),
		TargetUserID: 42,
		ActionType:   models.ActionWarn,
	})

	if svc.EditReason(ctx, 2, 1, "nuevo", "") {
		t.Error("EditReason must refuse cases from other guilds")
	}
	c := store.GuildCase(ctx, 1, 1)
	if c == nil || c.Reason != nil {
		t.Errorf("reason should be untouched, got %+v", c)
	}
}

func TestEditReasonNeverAnnounced(t *testing.T) {
	svc, store, notifier := newTestService(t)
	ctx := context.Background()
	// No logging config: the case is recorded without a dispatch location

	svc.LogAction(ctx, Entry{
		GuildID:      1,
		Moderator:    models.HumanModerator(7),
		TargetUserID: 42,
		ActionType:   models.ActionWarn,
	})

	if !svc.EditReason(ctx, 1, 1, "ajustado", "Mod#0001") {
		t.Fatal("EditReason should succeed for an unannounced case")
	}
	if len(notifier.edited) != 0 {
		t.Errorf("edited %d messages for an unannounced case, want 0", len(notifier.edited))
	}
	c := store.GuildCase(ctx, 1, 1)
	if c == nil || c.Reason == nil || *c.Reason != "ajustado" {
		t.Errorf("stored reason not updated: %+v", c)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{90 * time.Second, "1m 30s"},
		{time.Hour, "1h"},
		{26*time.Hour + 3*time.Minute, "1d 2h 3m"},
		{24*time.Hour + 2*time.Hour + 3*time.Minute + 4*time.Second, "1d 2h 3m 4s"},
		{7 * 24 * time.Hour, "7d"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderCaseTimeout(t *testing.T) {
	dur := int64(3600)
	reason := "flood"
	now := time.Now().UTC()
	c := &models.Case{
		CaseID:          3,
		GuildID:         1,
		Timestamp:       now,
		Moderator:       models.HumanModerator(7),
		TargetUserID:    42,
		ActionType:      models.ActionTimeout,
		Reason:          &reason,
		DurationSeconds: &dur,
	}

	embed := renderCase(c, "Servidor", nil)
	if embed.Title != "Timeout | Caso #3" {
		t.Errorf("title = %q", embed.Title)
	}
	if embed.Color != colorGold {
		t.Errorf("color = %#x, want %#x", embed.Color, colorGold)
	}

	var duration, expires string
	for _, f := range embed.Fields {
		switch f.Name {
		case "Duración":
			duration = f.Value
		case "Expira":
			expires = f.Value
		}
	}
	if duration != "1h" {
		t.Errorf("Duración = %q, want 1h", duration)
	}
	want := "<t:" + strconv.FormatInt(now.Add(time.Hour).Unix(), 10) + ":R>"
	if expires != want {
		t.Errorf("Expira = %q, want %q", expires, want)
	}
}

func TestTruncateRuneBoundary(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"hola", 10, "hola"},
		{"hola mundo", 10, "hola mundo"},
		{"hola mundo!", 10, "hola mu..."},
		{strings.Repeat("ñ", 12), 10, strings.Repeat("ñ", 7) + "..."},
	}
	for _, tc := range cases {
		got := Truncate(tc.in, tc.max)
		if got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("Truncate(%q, %d) produced invalid UTF-8", tc.in, tc.max)
		}
	}
}

func TestRenderCaseMultiByteContentStaysValid(t *testing.T) {
	c := &models.Case{
		CaseID:       4,
		GuildID:      1,
		Timestamp:    time.Now().UTC(),
		Moderator:    models.AutomatedModerator(),
		TargetUserID: 42,
		ActionType:   models.ActionAIDeleteRequested,
	}
	details := &AIDetails{MessageContent: strings.Repeat("señal única 🚨 ", 120)}

	embed := renderCase(c, "Servidor", details)
	for _, f := range embed.Fields {
		if f.Name != "Contenido del Mensaje" {
			continue
		}
		if !utf8.ValidString(f.Value) {
			t.Fatal("truncated message content is not valid UTF-8")
		}
		if utf8.RuneCountInString(f.Value) > 1000 {
			t.Fatalf("message content is %d runes, want at most 1000", utf8.RuneCountInString(f.Value))
		}
		return
	}
	t.Fatal("embed has no message content field")
}

func TestRenderCaseAutomated(t *testing.T) {
	reason := "contenido prohibido"
	c := &models.Case{
		CaseID:       9,
		GuildID:      1,
		Timestamp:    time.Now().UTC(),
		Moderator:    models.AutomatedModerator(),
		TargetUserID: 42,
		ActionType:   models.ActionAIAlert,
		Reason:       &reason,
	}
	details := &AIDetails{RuleViolated: "Regla 3", Reasoning: "lenguaje ofensivo", Model: "guard-v2"}

	embed := renderCase(c, "Servidor", details)
	if embed.Color != colorBlurple {
		t.Errorf("automated color = %#x, want %#x", embed.Color, colorBlurple)
	}
	if !strings.HasPrefix(embed.Title, "🤖") {
		t.Errorf("automated title = %q", embed.Title)
	}
	if !strings.Contains(embed.Footer.Text, "guard-v2") {
		t.Errorf("footer %q should name the model", embed.Footer.Text)
	}

	var moderator string
	for _, f := range embed.Fields {
		if f.Name == "Moderador" {
			moderator = f.Value
		}
	}
	if moderator != "Sistema Automático" {
		t.Errorf("Moderador = %q", moderator)
	}
}
