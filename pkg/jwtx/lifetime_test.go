package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLifetime(t *testing.T) {
	t.Parallel()

	t.Run("valid forms", func(t *testing.T) {
		cases := []struct {
			in   string
			want time.Duration
		}{
			{"7d", 7 * 24 * time.Hour},
			{"1d", 24 * time.Hour},
			{"12h", 12 * time.Hour},
			{"30m", 30 * time.Minute},
			{"3600", time.Hour},
			{"1", time.Second},
			{" 7d ", 7 * 24 * time.Hour},
		}
		for _, tc := range cases {
			got, err := ParseLifetime(tc.in)
			require.NoError(t, err, "input %q", tc.in)
			require.Equal(t, tc.want, got, "input %q", tc.in)
		}
	})

	t.Run("invalid forms are errors, never defaults", func(t *testing.T) {
		for _, in := range []string{"", "  ", "d", "7w", "7s", "x7d", "7.5h", "-1d", "0", "-30", "0h"} {
			_, err := ParseLifetime(in)
			require.Error(t, err, "input %q", in)
		}
	})
}
