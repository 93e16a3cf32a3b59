package settings

import (
	"errors"
	"fmt"

	"github.com/oshokin/wakey-wakey/internal/domain/alarm"
)

// AIProvider selects the image-generation backend. It is configuration only.
type AIProvider string

const (
	// ProviderMiniMax is the default provider.
	ProviderMiniMax AIProvider = "minimax"
	// ProviderOpenAI selects OpenAI image generation.
	ProviderOpenAI AIProvider = "openai"
	// ProviderStability selects Stability AI.
	ProviderStability AIProvider = "stability"
	// ProviderUserCustom uses the endpoint behind the user's own API key.
	ProviderUserCustom AIProvider = "user_custom"
)

const (
	// DefaultSnoozeDurationMinutes is used when the setting is missing or not positive.
	DefaultSnoozeDurationMinutes = 5
	// DefaultFreeQuota is the number of free AI generations restored by a reset.
	DefaultFreeQuota = 5
)

// ErrInvalidSettings is wrapped by every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Valid reports whether the provider is one of the known values.
func (p AIProvider) Valid() bool {
	switch p {
	case ProviderMiniMax, ProviderOpenAI, ProviderStability, ProviderUserCustom:
		return true
	default:
		return false
	}
}

// AppSettings holds the user preferences.
type AppSettings struct {
	// DefaultSnoozeTaps seeds Alarm.SnoozeCount.
	DefaultSnoozeTaps int
	// DefaultDismissTaps seeds Alarm.DismissCount.
	DefaultDismissTaps int
	// DefaultMoveSpeed seeds Alarm.MoveSpeed.
	DefaultMoveSpeed float64
	// SnoozeDurationMinutes is how far a snooze moves the alarm forward.
	SnoozeDurationMinutes int
	// SoundVolume is the ringing volume in [0, 1].
	SoundVolume float64
	// VibrationEnabled toggles vibration while ringing.
	VibrationEnabled bool
	// AIProvider is the selected image-generation backend.
	AIProvider AIProvider
	// UserAPIKey is the user's own provider key, nil when unset.
	UserAPIKey *string
	// FreeQuotaRemaining is the number of free AI generations left.
	FreeQuotaRemaining int
}

// Defaults are the values consumed when a new alarm is created.
type Defaults struct {
	SnoozeTaps            int
	DismissTaps           int
	MoveSpeed             float64
	SnoozeDurationMinutes int
}

// Default returns the factory settings.
func Default() AppSettings {
	return AppSettings{
		DefaultSnoozeTaps:     1,
		DefaultDismissTaps:    3,
		DefaultMoveSpeed:      0.5,
		SnoozeDurationMinutes: DefaultSnoozeDurationMinutes,
		SoundVolume:           0.8,
		VibrationEnabled:      true,
		AIProvider:            ProviderMiniMax,
		FreeQuotaRemaining:    DefaultFreeQuota,
	}
}

// Clone returns a copy that does not share the API key pointer.
func (s *AppSettings) Clone() AppSettings {
	cloned := *s

	if s.UserAPIKey != nil {
		key := *s.UserAPIKey
		cloned.UserAPIKey = &key
	}

	return cloned
}

// Defaults extracts the alarm-creation defaults.
func (s *AppSettings) Defaults() Defaults {
	return Defaults{
		SnoozeTaps:            s.DefaultSnoozeTaps,
		DismissTaps:           s.DefaultDismissTaps,
		MoveSpeed:             s.DefaultMoveSpeed,
		SnoozeDurationMinutes: s.SnoozeDurationMinutes,
	}
}

// Validate checks the settings against their allowed ranges.
func (s *AppSettings) Validate() error {
	if s.DefaultSnoozeTaps < alarm.MinTaps || s.DefaultSnoozeTaps > alarm.MaxTaps {
		return fmt.Errorf("%w: default snooze taps %d out of range", ErrInvalidSettings, s.DefaultSnoozeTaps)
	}

	if s.DefaultDismissTaps < alarm.MinTaps || s.DefaultDismissTaps > alarm.MaxTaps {
		return fmt.Errorf("%w: default dismiss taps %d out of range", ErrInvalidSettings, s.DefaultDismissTaps)
	}

	if s.DefaultMoveSpeed < alarm.MinMoveSpeed || s.DefaultMoveSpeed > alarm.MaxMoveSpeed {
		return fmt.Errorf("%w: default move speed %.2f out of range", ErrInvalidSettings, s.DefaultMoveSpeed)
	}

	if s.SnoozeDurationMinutes <= 0 {
		return fmt.Errorf("%w: snooze duration must be positive", ErrInvalidSettings)
	}

	if s.SoundVolume < 0 || s.SoundVolume > 1 {
		return fmt.Errorf("%w: sound volume %.2f out of range", ErrInvalidSettings, s.SoundVolume)
	}

	if !s.AIProvider.Valid() {
		return fmt.Errorf("%w: unknown ai provider %q", ErrInvalidSettings, s.AIProvider)
	}

	if s.FreeQuotaRemaining < 0 {
		return fmt.Errorf("%w: free quota cannot be negative", ErrInvalidSettings)
	}

	return nil
}

// SnoozeDuration returns the snooze duration in minutes, falling back to the
// default when the value is not positive.
func (d Defaults) SnoozeDuration() int {
	if d.SnoozeDurationMinutes <= 0 {
		return DefaultSnoozeDurationMinutes
	}

	return d.SnoozeDurationMinutes
}
