package settings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDefaultIsValid ensures factory settings pass validation.
func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	s := Default()
	require.NoError(t, s.Validate())
	require.Equal(t, DefaultFreeQuota, s.FreeQuotaRemaining)

	d := s.Defaults()
	require.Equal(t, 1, d.SnoozeTaps)
	require.Equal(t, 3, d.DismissTaps)
	require.InDelta(t, 0.5, d.MoveSpeed, 1e-9)
	require.Equal(t, 5, d.SnoozeDuration())
}

// TestValidate rejects values outside their ranges.
func TestValidate(t *testing.T) {
	t.Parallel()

	cases := map[string]func(s *AppSettings){
		"snooze taps":  func(s *AppSettings) { s.DefaultSnoozeTaps = 0 },
		"dismiss taps": func(s *AppSettings) { s.DefaultDismissTaps = 11 },
		"move speed":   func(s *AppSettings) { s.DefaultMoveSpeed = 2 },
		"duration":     func(s *AppSettings) { s.SnoozeDurationMinutes = 0 },
		"volume":       func(s *AppSettings) { s.SoundVolume = -0.1 },
		"provider":     func(s *AppSettings) { s.AIProvider = "dall-e" },
		"quota":        func(s *AppSettings) { s.FreeQuotaRemaining = -1 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := Default()
			mutate(&s)

			require.ErrorIs(t, s.Validate(), ErrInvalidSettings)
		})
	}
}

// TestSnoozeDurationFallback checks the five-minute fallback.
func TestSnoozeDurationFallback(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultSnoozeDurationMinutes, Defaults{}.SnoozeDuration())
	require.Equal(t, 10, Defaults{SnoozeDurationMinutes: 10}.SnoozeDuration())
}

// TestClone verifies the API key pointer is not shared.
func TestClone(t *testing.T) {
	t.Parallel()

	key := "secret"
	s := Default()
	s.UserAPIKey = &key

	c := s.Clone()
	require.Equal(t, s, c)
	require.NotSame(t, s.UserAPIKey, c.UserAPIKey)
}
