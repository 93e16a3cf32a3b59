package alarm

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ImageType selects which picture the presentation layer renders for an alarm.
type ImageType string

const (
	// ImageDefaultBunny is the bundled bunny mascot.
	ImageDefaultBunny ImageType = "default_bunny"
	// ImageDefaultLobster is the bundled lobster mascot.
	ImageDefaultLobster ImageType = "default_lobster"
	// ImageCustomPhoto uses CustomImageData supplied by the user.
	ImageCustomPhoto ImageType = "custom_photo"
	// ImageAIGenerated uses CustomImageData produced by an image provider.
	ImageAIGenerated ImageType = "ai_generated"
)

const (
	// DefaultLabel is used when an alarm is created without a label.
	DefaultLabel = "Wake up!"

	// MinTaps and MaxTaps bound SnoozeCount and DismissCount.
	MinTaps = 1
	MaxTaps = 10

	// MinMoveSpeed and MaxMoveSpeed bound MoveSpeed.
	MinMoveSpeed = 0.1
	MaxMoveSpeed = 1.0
)

// ErrInvalidAlarm is wrapped by every validation failure.
var ErrInvalidAlarm = errors.New("invalid alarm")

// Valid reports whether the image type is one of the known values.
func (t ImageType) Valid() bool {
	switch t {
	case ImageDefaultBunny, ImageDefaultLobster, ImageCustomPhoto, ImageAIGenerated:
		return true
	default:
		return false
	}
}

// Alarm is a user-defined reminder that fires at a time of day.
type Alarm struct {
	// ID uniquely identifies the alarm and its pending notification.
	ID string
	// Time is the wall-clock fire time. Only hour and minute are used for scheduling.
	Time time.Time
	// IsEnabled indicates whether the alarm has a pending notification.
	IsEnabled bool
	// RepeatDays lists the weekdays selected by the user, sorted and unique.
	RepeatDays []time.Weekday
	// Label is the free-text description shown when the alarm rings.
	Label string
	// ImageType selects the picture rendered for the alarm.
	ImageType ImageType
	// CustomImageData is an optional image blob, nil when absent.
	CustomImageData []byte
	// SnoozeCount is the number of taps required to snooze.
	SnoozeCount int
	// DismissCount is the number of taps required to dismiss.
	DismissCount int
	// MoveSpeed controls the mascot animation speed.
	MoveSpeed float64
}

// NewID returns a fresh alarm identifier.
func NewID() string {
	return uuid.NewString()
}

// Clone returns a deep copy of the alarm.
func (a *Alarm) Clone() *Alarm {
	if a == nil {
		return nil
	}

	cloned := *a
	cloned.RepeatDays = slices.Clone(a.RepeatDays)

	if a.CustomImageData != nil {
		cloned.CustomImageData = append([]byte{}, a.CustomImageData...)
	}

	return &cloned
}

// Normalize sorts and deduplicates RepeatDays and fills the default image.
func (a *Alarm) Normalize() {
	if len(a.RepeatDays) == 0 {
		a.RepeatDays = nil
	} else {
		slices.Sort(a.RepeatDays)
		a.RepeatDays = slices.Compact(a.RepeatDays)
	}

	if a.ImageType == "" {
		a.ImageType = ImageDefaultBunny
	}
}

// Validate checks the alarm fields against their allowed ranges.
func (a *Alarm) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidAlarm)
	}

	if a.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidAlarm)
	}

	if a.SnoozeCount < MinTaps || a.SnoozeCount > MaxTaps {
		return fmt.Errorf("%w: snooze count %d out of range [%d, %d]", ErrInvalidAlarm, a.SnoozeCount, MinTaps, MaxTaps)
	}

	if a.DismissCount < MinTaps || a.DismissCount > MaxTaps {
		return fmt.Errorf("%w: dismiss count %d out of range [%d, %d]", ErrInvalidAlarm, a.DismissCount, MinTaps, MaxTaps)
	}

	if a.MoveSpeed < MinMoveSpeed || a.MoveSpeed > MaxMoveSpeed {
		return fmt.Errorf("%w: move speed %.2f out of range [%.1f, %.1f]", ErrInvalidAlarm, a.MoveSpeed, MinMoveSpeed, MaxMoveSpeed)
	}

	if !a.ImageType.Valid() {
		return fmt.Errorf("%w: unknown image type %q", ErrInvalidAlarm, a.ImageType)
	}

	for _, day := range a.RepeatDays {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidAlarm, day)
		}
	}

	return nil
}

// TimeOfDay returns the hour and minute the alarm fires at in loc.
// A nil loc means the location stored in Time.
func (a *Alarm) TimeOfDay(loc *time.Location) (hour, minute int) {
	t := a.Time
	if loc != nil {
		t = t.In(loc)
	}

	return t.Hour(), t.Minute()
}
