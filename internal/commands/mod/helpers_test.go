package mod

import "testing"

func TestParseUserDuration(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1d2h3m4s", 93784},
		{"30m", 1800},
		{"7d", 604800},
		{"1h30m", 5400},
		{"90", 90},
		{" 10M ", 600},
		{"2h", 7200},
	}
	for _, tc := range cases {
		got, err := parseUserDuration(tc.in)
		if err != nil {
			t.Errorf("parseUserDuration(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseUserDuration(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseUserDurationInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1x", "d", "0", "-5", "5m3", "1d-2h"} {
		if _, err := parseUserDuration(in); err == nil {
			t.Errorf("parseUserDuration(%q) should fail", in)
		}
	}
}

func TestOptionalReason(t *testing.T) {
	if optionalReason("") != nil {
		t.Error("empty reason should map to nil")
	}
	if r := optionalReason("spam"); r == nil || *r != "spam" {
		t.Errorf("optionalReason(spam) = %v", r)
	}
}
