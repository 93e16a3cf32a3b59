package alarm

import (
	"slices"
	"time"
)

// Phase is the state of the trigger state machine.
type Phase int

const (
	// PhaseIdle means no alarm is ringing.
	PhaseIdle Phase = iota
	// PhaseTriggering means CurrentAlarm is ringing and awaits snooze or dismiss.
	PhaseTriggering
)

// String returns the phase name.
func (p Phase) String() string {
	if p == PhaseTriggering {
		return "TRIGGERING"
	}

	return "IDLE"
}

// TriggerState is the transient ringing state. It is never persisted.
type TriggerState struct {
	// IsTriggering is true while CurrentAlarm awaits resolution.
	IsTriggering bool
	// CurrentAlarm is the alarm that is ringing, nil when idle.
	CurrentAlarm *Alarm
	// Queued holds alarm ids delivered while another alarm was ringing.
	Queued []string
}

// Phase returns the state machine phase derived from IsTriggering.
func (s *TriggerState) Phase() Phase {
	if s.IsTriggering {
		return PhaseTriggering
	}

	return PhaseIdle
}

// Clone returns a copy of the state to avoid leaking internal references.
func (s *TriggerState) Clone() *TriggerState {
	return &TriggerState{
		IsTriggering: s.IsTriggering,
		CurrentAlarm: s.CurrentAlarm.Clone(),
		Queued:       slices.Clone(s.Queued),
	}
}

// DeliveryAction is what the user (or the system) did with a notification.
type DeliveryAction string

const (
	// ActionDelivered means the notification was presented.
	ActionDelivered DeliveryAction = "delivered"
	// ActionSnooze means the user picked the snooze action on the notification.
	ActionSnooze DeliveryAction = "snooze"
	// ActionDismiss means the user picked the dismiss action on the notification.
	ActionDismiss DeliveryAction = "dismiss"
	// ActionDefaultTap means the user opened the app from the notification.
	ActionDefaultTap DeliveryAction = "default_tap"
)

// Valid reports whether the action is one of the known values.
func (a DeliveryAction) Valid() bool {
	switch a {
	case ActionDelivered, ActionSnooze, ActionDismiss, ActionDefaultTap:
		return true
	default:
		return false
	}
}

// Delivery is a single notification event for an alarm.
type Delivery struct {
	// AlarmID is the request identifier of the delivered notification.
	AlarmID string
	// Action is what happened to the notification.
	Action DeliveryAction
	// FireTime is the scheduled instant that produced the delivery.
	// Hooks reporting the same logical delivery carry the same FireTime.
	FireTime time.Time
}
