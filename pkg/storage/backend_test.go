package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// newTestBackends builds a fresh instance of every backend that can run
// without external services
func newTestBackends(t *testing.T) map[string]Backend {
	t.Helper()

	jsonStore, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore returned error: %v", err)
	}

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	sqlStore, err := OpenSQLStore(context.Background(), dsn)
	if err != nil {
		t.Fatalf("OpenSQLStore returned error: %v", err)
	}

	backends := map[string]Backend{
		"json":   jsonStore,
		"sqlite": sqlStore,
	}
	t.Cleanup(func() {
		for _, b := range backends {
			b.Close()
		}
	})
	return backends
}

func strPtr(s string) *string { return &s }

func i64Ptr(n int64) *int64 { return &n }

func TestAddCaseAssignsSequentialIDs(t *testing.T) {
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for i := 1; i <= 5; i++ {
				id, err := backend.AddCase(ctx, 1, models.HumanModerator(7), int64(40+i), models.ActionWarn, nil, nil)
				if err != nil {
					t.Fatalf("AddCase returned error: %v", err)
				}
				if id != int64(i) {
					t.Errorf("AddCase id = %d, want %d", id, i)
				}
			}

			// IDs keep growing even across guilds
			id, err := backend.AddCase(ctx, 2, models.HumanModerator(7), 99, models.ActionBan, nil, nil)
			if err != nil {
				t.Fatalf("AddCase returned error: %v", err)
			}
			if id != 6 {
				t.Errorf("cross-guild AddCase id = %d, want 6", id)
			}
		})
	}
}

func TestConcurrentAddCaseNoDuplicates(t *testing.T) {
	const workers = 20

	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			var wg sync.WaitGroup
			ids := make(chan int64, workers)

			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(n int) {
					defer wg.Done()
					id, err := backend.AddCase(ctx, 1, models.HumanModerator(7), int64(n), models.ActionWarn, nil, nil)
					if err != nil {
						t.Errorf("AddCase returned error: %v", err)
						return
					}
					ids <- id
				}(i)
			}
			wg.Wait()
			close(ids)

			seen := make(map[int64]bool)
			for id := range ids {
				if seen[id] {
					t.Fatalf("duplicate case id assigned: %d", id)
				}
				seen[id] = true
			}
			if len(seen) != workers {
				t.Fatalf("got %d unique ids, want %d", len(seen), workers)
			}
			// No gaps: every id in 1..workers must have been handed out
			for i := int64(1); i <= workers; i++ {
				if !seen[i] {
					t.Errorf("case id %d was never assigned", i)
				}
			}
		})
	}
}

func TestCaseRoundTrip(t *testing.T) {
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			id, err := backend.AddCase(ctx, 1, models.HumanModerator(7), 42, models.ActionBan, strPtr("spam"), nil)
			if err != nil {
				t.Fatalf("AddCase returned error: %v", err)
			}
			if id != 1 {
				t.Fatalf("AddCase id = %d, want 1", id)
			}

			c, err := backend.Case(ctx, id)
			if err != nil {
				t.Fatalf("Case returned error: %v", err)
			}
			if c.GuildID != 1 || c.TargetUserID != 42 {
				t.Errorf("Case guild/target = %d/%d, want 1/42", c.GuildID, c.TargetUserID)
			}
			if c.ActionType != models.ActionBan {
				t.Errorf("ActionType = %s, want BAN", c.ActionType)
			}
			if c.Reason == nil || *c.Reason != "spam" {
				t.Errorf("Reason = %v, want spam", c.Reason)
			}
			if c.DurationSeconds != nil {
				t.Errorf("DurationSeconds = %v, want nil", c.DurationSeconds)
			}
			if c.Moderator.IsAutomated() || c.Moderator.ID() != 7 {
				t.Errorf("Moderator = %d, want human 7", c.Moderator.ID())
			}
			if c.LogMessageID != nil || c.LogChannelID != nil {
				t.Error("dispatch location should start empty")
			}

			if err := backend.UpdateCaseReason(ctx, id, "spam (confirmed)"); err != nil {
				t.Fatalf("UpdateCaseReason returned error: %v", err)
			}
			c, err = backend.Case(ctx, id)
			if err != nil {
				t.Fatalf("Case returned error: %v", err)
			}
			if c.Reason == nil || *c.Reason != "spam (confirmed)" {
				t.Errorf("Reason after update = %v, want spam (confirmed)", c.Reason)
			}

			n, err := backend.ClearUserCases(ctx, 1, 42)
			if err != nil {
				t.Fatalf("ClearUserCases returned error: %v", err)
			}
			if n != 1 {
				t.Errorf("ClearUserCases = %d, want 1", n)
			}
			if _, err := backend.Case(ctx, id); err != ErrCaseNotFound {
				t.Errorf("Case after clear error = %v, want ErrCaseNotFound", err)
			}
		})
	}
}

func TestAutomatedModeratorRoundTrip(t *testing.T) {
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			id, err := backend.AddCase(ctx, 1, models.AutomatedModerator(), 42, models.ActionAIAlert, strPtr("regla 3"), nil)
			if err != nil {
				t.Fatalf("AddCase returned error: %v", err)
			}

			c, err := backend.Case(ctx, id)
			if err != nil {
				t.Fatalf("Case returned error: %v", err)
			}
			if !c.Moderator.IsAutomated() {
				t.Error("Moderator should round-trip as automated")
			}
		})
	}
}

func TestUpdateReasonUnknownCase(t *testing.T) {
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			err := backend.UpdateCaseReason(context.Background(), 999, "nope")
			if err != ErrCaseNotFound {
				t.Errorf("UpdateCaseReason error = %v, want ErrCaseNotFound", err)
			}
		})
	}
}

func TestSetCaseDispatchBackfill(t *testing.T) {
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			id, err := backend.AddCase(ctx, 1, models.HumanModerator(7), 42, models.ActionKick, nil, nil)
			if err != nil {
				t.Fatalf("AddCase returned error: %v", err)
			}

			if err := backend.SetCaseDispatch(ctx, id, 111222, 333444); err != nil {
				t.Fatalf("SetCaseDispatch returned error: %v", err)
			}

			c, err := backend.Case(ctx, id)
			if err != nil {
				t.Fatalf("Case returned error: %v", err)
			}
			if c.LogMessageID == nil || *c.LogMessageID != 111222 {
				t.Errorf("LogMessageID = %v, want 111222", c.LogMessageID)
			}
			if c.LogChannelID == nil || *c.LogChannelID != 333444 {
				t.Errorf("LogChannelID = %v, want 333444", c.LogChannelID)
			}

			// Idempotent: setting again with the same values succeeds
			if err := backend.SetCaseDispatch(ctx, id, 111222, 333444); err != nil {
				t.Errorf("second SetCaseDispatch returned error: %v", err)
			}
		})
	}
}

func TestDeleteCaseGuildScoped(t *testing.T) {
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			id, err := backend.AddCase(ctx, 1, models.HumanModerator(7), 42, models.ActionWarn, nil, nil)
			if err != nil {
				t.Fatalf("AddCase returned error: %v", err)
			}

			// Wrong guild: must behave like a missing case and keep the record
			if err := backend.DeleteCase(ctx, id, 2); err != ErrCaseNotFound {
				t.Errorf("cross-guild DeleteCase error = %v, want ErrCaseNotFound", err)
			}
			if _, err := backend.Case(ctx, id); err != nil {
				t.Errorf("case should survive a cross-guild delete, got %v", err)
			}

			if err := backend.DeleteCase(ctx, id, 1); err != nil {
				t.Errorf("own-guild DeleteCase returned error: %v", err)
			}
			if _, err := backend.Case(ctx, id); err != ErrCaseNotFound {
				t.Errorf("Case after delete error = %v, want ErrCaseNotFound", err)
			}
		})
	}
}

func TestClearUserCasesGuildScoped(t *testing.T) {
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			// Three cases for the target in guild 1, one in guild 2, one for
			// another user in guild 1
			for i := 0; i < 3; i++ {
				if _, err := backend.AddCase(ctx, 1, models.HumanModerator(7), 42, models.ActionWarn, nil, nil); err != nil {
					t.Fatalf("AddCase returned error: %v", err)
				}
			}
			if _, err := backend.AddCase(ctx, 2, models.HumanModerator(7), 42, models.ActionWarn, nil, nil); err != nil {
				t.Fatalf("AddCase returned error: %v", err)
			}
			if _, err := backend.AddCase(ctx, 1, models.HumanModerator(7), 43, models.ActionWarn, nil, nil); err != nil {
				t.Fatalf("AddCase returned error: %v", err)
			}

			n, err := backend.ClearUserCases(ctx, 1, 42)
			if err != nil {
				t.Fatalf("ClearUserCases returned error: %v", err)
			}
			if n != 3 {
				t.Errorf("ClearUserCases = %d, want 3", n)
			}

			// Second clear finds nothing
			n, err = backend.ClearUserCases(ctx, 1, 42)
			if err != nil {
				t.Fatalf("second ClearUserCases returned error: %v", err)
			}
			if n != 0 {
				t.Errorf("second ClearUserCases = %d, want 0", n)
			}

			// The other guild's case and the other user's case survive
			others, err := backend.UserCases(ctx, 2, 42, DefaultCaseLimit)
			if err != nil || len(others) != 1 {
				t.Errorf("guild 2 cases = %d (err %v), want 1", len(others), err)
			}
			others, err = backend.UserCases(ctx, 1, 43, DefaultCaseLimit)
			if err != nil || len(others) != 1 {
				t.Errorf("user 43 cases = %d (err %v), want 1", len(others), err)
			}
		})
	}
}

func TestGuildCasesNewestFirstWithLimit(t *testing.T) {
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for i := 0; i < 10; i++ {
				if _, err := backend.AddCase(ctx, 1, models.HumanModerator(7), int64(100+i), models.ActionWarn, strPtr(fmt.Sprintf("caso %d", i)), nil); err != nil {
					t.Fatalf("AddCase returned error: %v", err)
				}
			}

			cases, err := backend.GuildCases(ctx, 1, 4)
			if err != nil {
				t.Fatalf("GuildCases returned error: %v", err)
			}
			if len(cases) != 4 {
				t.Fatalf("GuildCases len = %d, want 4", len(cases))
			}
			// Newest first: identical timestamps fall back to case id order
			for i := 1; i < len(cases); i++ {
				prev, cur := cases[i-1], cases[i]
				if cur.Timestamp.After(prev.Timestamp) {
					t.Errorf("cases out of order: %d before %d", prev.CaseID, cur.CaseID)
				}
				if cur.Timestamp.Equal(prev.Timestamp) && cur.CaseID > prev.CaseID {
					t.Errorf("tie-break out of order: %d before %d", prev.CaseID, cur.CaseID)
				}
			}
		})
	}
}

func TestCaseWithDuration(t *testing.T) {
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			id, err := backend.AddCase(ctx, 1, models.HumanModerator(7), 42, models.ActionTimeout, strPtr("flood"), i64Ptr(3600))
			if err != nil {
				t.Fatalf("AddCase returned error: %v", err)
			}

			c, err := backend.Case(ctx, id)
			if err != nil {
				t.Fatalf("Case returned error: %v", err)
			}
			if c.DurationSeconds == nil || *c.DurationSeconds != 3600 {
				t.Errorf("DurationSeconds = %v, want 3600", c.DurationSeconds)
			}
		})
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, found, err := backend.Setting(ctx, 1, models.SettingModLogChannelID); err != nil || found {
				t.Fatalf("unset Setting found=%v err=%v, want false/nil", found, err)
			}

			if err := backend.SetSetting(ctx, 1, models.SettingModLogChannelID, int64(123456)); err != nil {
				t.Fatalf("SetSetting returned error: %v", err)
			}
			if err := backend.SetSetting(ctx, 1, models.SettingModLogEnabled, true); err != nil {
				t.Fatalf("SetSetting returned error: %v", err)
			}

			svc := NewService(backend)
			if id, ok := svc.ModLogChannelID(ctx, 1); !ok || id != 123456 {
				t.Errorf("ModLogChannelID = %d/%v, want 123456/true", id, ok)
			}
			if !svc.ModLogEnabled(ctx, 1) {
				t.Error("ModLogEnabled should be true after SetSetting")
			}

			// Another guild stays isolated
			if _, ok := svc.ModLogChannelID(ctx, 2); ok {
				t.Error("guild 2 should have no mod log channel")
			}

			// Overwrite wins
			if err := backend.SetSetting(ctx, 1, models.SettingModLogChannelID, int64(654321)); err != nil {
				t.Fatalf("SetSetting returned error: %v", err)
			}
			if id, _ := svc.ModLogChannelID(ctx, 1); id != 654321 {
				t.Errorf("ModLogChannelID after overwrite = %d, want 654321", id)
			}
		})
	}
}

func TestEventToggles(t *testing.T) {
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := NewService(backend)

			// Unset toggles fall back to the caller's default
			if !svc.IsEventEnabled(ctx, 1, models.EventMessageDelete, true) {
				t.Error("unset toggle should return the default (true)")
			}
			if svc.IsEventEnabled(ctx, 1, models.EventMessageDelete, false) {
				t.Error("unset toggle should return the default (false)")
			}

			if !svc.SetEventEnabled(ctx, 1, models.EventMessageDelete, false) {
				t.Fatal("SetEventEnabled failed")
			}
			if svc.IsEventEnabled(ctx, 1, models.EventMessageDelete, true) {
				t.Error("toggle should be false after SetEventEnabled(false)")
			}

			toggles := svc.EventToggles(ctx, 1)
			if len(toggles) != 1 {
				t.Fatalf("EventToggles len = %d, want 1", len(toggles))
			}
			if enabled, ok := toggles[models.EventMessageDelete]; !ok || enabled {
				t.Errorf("EventToggles[message_delete] = %v/%v, want false/true", enabled, ok)
			}

			// Other guilds are unaffected
			if !svc.IsEventEnabled(ctx, 2, models.EventMessageDelete, true) {
				t.Error("guild 2 toggle should still default to true")
			}
		})
	}
}

func TestServiceGuildCaseCrossTenant(t *testing.T) {
	for name, backend := range newTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := NewService(backend)

			id, ok := svc.AddCase(ctx, 1, models.HumanModerator(7), 42, models.ActionBan, nil, nil)
			if !ok {
				t.Fatal("AddCase failed")
			}

			if svc.GuildCase(ctx, id, 2) != nil {
				t.Error("GuildCase should hide cases from other guilds")
			}
			if svc.GuildCase(ctx, id, 1) == nil {
				t.Error("GuildCase should return the case for its own guild")
			}
		})
	}
}
