package jwtx

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseLifetime parses a session-lifetime string into a duration. Accepted
// forms are "<int>d", "<int>h", "<int>m" and a bare integer meaning seconds
// ("7d", "12h", "30m", "3600"). Anything else is an error: a silently
// defaulted security lifetime is a latent bug, so callers should fail
// startup instead.
func ParseLifetime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("jwtx: empty lifetime")
	}

	// Bare integer means seconds.
	if secs, err := strconv.Atoi(s); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("jwtx: lifetime must be positive, got %q", s)
		}
		return time.Duration(secs) * time.Second, nil
	}

	unit := s[len(s)-1]
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return 0, fmt.Errorf("jwtx: invalid lifetime %q", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("jwtx: lifetime must be positive, got %q", s)
	}

	switch unit {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	default:
		return 0, fmt.Errorf("jwtx: unknown lifetime unit %q in %q", string(unit), s)
	}
}
