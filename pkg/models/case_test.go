package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestModeratorJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(HumanModerator(123456789))
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(data) != "123456789" {
		t.Errorf("marshaled moderator = %s, want the bare integer", data)
	}

	var m Moderator
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if m.IsAutomated() || m.ID() != 123456789 {
		t.Errorf("round-trip moderator = %d/%v", m.ID(), m.IsAutomated())
	}
}

func TestAutomatedModeratorSentinel(t *testing.T) {
	data, err := json.Marshal(AutomatedModerator())
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(data) != "0" {
		t.Errorf("automated moderator = %s, want 0", data)
	}

	var m Moderator
	if err := json.Unmarshal([]byte("0"), &m); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if !m.IsAutomated() {
		t.Error("0 should decode as the automated sentinel")
	}
}

func TestActionTypeTitle(t *testing.T) {
	cases := map[ActionType]string{
		ActionBan:               "Ban",
		ActionRemoveTimeout:     "Remove Timeout",
		ActionClearInfractions:  "Clear Infractions",
		ActionAIDeleteRequested: "Ai Delete Requested",
	}
	for action, want := range cases {
		if got := action.Title(); got != want {
			t.Errorf("%s.Title() = %q, want %q", action, got, want)
		}
	}
}

func TestCaseReasonOr(t *testing.T) {
	c := &Case{}
	if got := c.ReasonOr("sin razón"); got != "sin razón" {
		t.Errorf("ReasonOr on nil = %q", got)
	}
	empty := ""
	c.Reason = &empty
	if got := c.ReasonOr("sin razón"); got != "sin razón" {
		t.Errorf("ReasonOr on empty = %q", got)
	}
	spam := "spam"
	c.Reason = &spam
	if got := c.ReasonOr("sin razón"); got != "spam" {
		t.Errorf("ReasonOr on set = %q", got)
	}
}
