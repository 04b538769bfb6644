package modlog

import (
	"testing"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

func TestMatchEventChoicesEmpty(t *testing.T) {
	choices := matchEventChoices("")
	if len(choices) != len(models.LoggableEvents) {
		t.Fatalf("empty input returned %d choices, want %d", len(choices), len(models.LoggableEvents))
	}
	for i, key := range models.LoggableEvents {
		if choices[i].Name != string(key) || choices[i].Value != string(key) {
			t.Errorf("choice %d = %s/%v, want %s", i, choices[i].Name, choices[i].Value, key)
		}
	}
}

func TestMatchEventChoicesFiltered(t *testing.T) {
	choices := matchEventChoices("member")
	if len(choices) == 0 {
		t.Fatal("member should match choices")
	}
	for _, c := range choices {
		if !models.ValidEventKey(models.EventKey(c.Name)) {
			t.Errorf("choice %s is not a loggable event", c.Name)
		}
	}

	want := map[string]bool{
		"member_join": true, "member_leave": true, "member_ban": true,
		"member_unban": true, "member_timeout": true,
	}
	if len(choices) != len(want) {
		t.Fatalf("member matched %d choices, want %d", len(choices), len(want))
	}
	for _, c := range choices {
		if !want[c.Name] {
			t.Errorf("unexpected choice %s for input member", c.Name)
		}
	}
}

func TestMatchEventChoicesCaseInsensitive(t *testing.T) {
	choices := matchEventChoices("  MESSAGE ")
	if len(choices) != 2 {
		t.Fatalf("MESSAGE matched %d choices, want 2", len(choices))
	}
}

func TestMatchEventChoicesNoMatch(t *testing.T) {
	if choices := matchEventChoices("voice"); len(choices) != 0 {
		t.Errorf("voice matched %d choices, want 0", len(choices))
	}
}
