// Package mod provides moderation commands organized as subcommands under /mod
// Each command is in its own file for better organization
package mod

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// opTimeout bounds every storage round-trip made from a command handler
const opTimeout = 10 * time.Second

// opContext returns the bounded context used for storage calls
func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// optionalReason returns a *string for the case record, nil when empty
func optionalReason(reason string) *string {
	if reason == "" {
		return nil
	}
	return &reason
}

// parseUserDuration parses compound durations like "1d2h3m4s" into seconds.
// Single units ("30m", "7d") and bare seconds ("90") are also accepted.
func parseUserDuration(input string) (int64, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return 0, fmt.Errorf("duración vacía")
	}

	// Bare number means seconds
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("la duración debe ser positiva")
		}
		return n, nil
	}

	unitSeconds := map[byte]int64{'d': 86400, 'h': 3600, 'm': 60, 's': 1}
	var total int64
	var num strings.Builder

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			num.WriteByte(c)
			continue
		}
		mult, ok := unitSeconds[c]
		if !ok || num.Len() == 0 {
			return 0, fmt.Errorf("duración inválida: %q", input)
		}
		n, err := strconv.ParseInt(num.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("duración inválida: %q", input)
		}
		total += n * mult
		num.Reset()
	}
	if num.Len() > 0 {
		return 0, fmt.Errorf("duración inválida: unidad ausente en %q", input)
	}
	if total <= 0 {
		return 0, fmt.Errorf("la duración debe ser positiva")
	}
	return total, nil
}

// recordAction writes the moderation case through the log service
func recordAction(guildID, moderatorID, targetID int64, action models.ActionType, reason string, durationSeconds *int64) {
	svc := modlog.Get()
	if svc == nil {
		return
	}
	ctx, cancel := opContext()
	defer cancel()
	svc.LogAction(ctx, modlog.Entry{
		GuildID:         guildID,
		Moderator:       models.HumanModerator(moderatorID),
		TargetUserID:    targetID,
		ActionType:      action,
		Reason:          optionalReason(reason),
		DurationSeconds: durationSeconds,
	})
}
