package alarm

import (
	"time"

	domain "github.com/oshokin/wakey-wakey/internal/domain/alarm"
	"github.com/oshokin/wakey-wakey/internal/domain/settings"
	"github.com/oshokin/wakey-wakey/internal/lifecycle"
)

// ToAlarmMessage converts a domain alarm to its wire form.
func ToAlarmMessage(a *domain.Alarm) AlarmMessage {
	msg := AlarmMessage{
		ID:           a.ID,
		Enabled:      a.IsEnabled,
		Label:        a.Label,
		ImageType:    string(a.ImageType),
		CustomImage:  a.CustomImageData,
		SnoozeCount:  a.SnoozeCount,
		DismissCount: a.DismissCount,
		MoveSpeed:    a.MoveSpeed,
	}

	if !a.Time.IsZero() {
		msg.TimeUnixNano = a.Time.UnixNano()
	}

	for _, day := range a.RepeatDays {
		msg.RepeatDays = append(msg.RepeatDays, int(day))
	}

	return msg
}

// FromAlarmMessage converts a wire alarm to the domain form.
func FromAlarmMessage(msg *AlarmMessage) domain.Alarm {
	a := domain.Alarm{
		ID:              msg.ID,
		IsEnabled:       msg.Enabled,
		Label:           msg.Label,
		ImageType:       domain.ImageType(msg.ImageType),
		CustomImageData: msg.CustomImage,
		SnoozeCount:     msg.SnoozeCount,
		DismissCount:    msg.DismissCount,
		MoveSpeed:       msg.MoveSpeed,
	}

	if msg.TimeUnixNano != 0 {
		a.Time = time.Unix(0, msg.TimeUnixNano).UTC()
	}

	for _, day := range msg.RepeatDays {
		a.RepeatDays = append(a.RepeatDays, time.Weekday(day))
	}

	return a
}

// ToTriggerStateMessage converts the trigger state to its wire form.
func ToTriggerStateMessage(s *domain.TriggerState) TriggerStateMessage {
	msg := TriggerStateMessage{
		Triggering: s.IsTriggering,
		Queued:     s.Queued,
	}

	if s.CurrentAlarm != nil {
		current := ToAlarmMessage(s.CurrentAlarm)
		msg.Current = &current
	}

	return msg
}

// ToSettingsMessage converts settings to their wire form.
func ToSettingsMessage(s *settings.AppSettings) SettingsMessage {
	return SettingsMessage{
		DefaultSnoozeTaps:     s.DefaultSnoozeTaps,
		DefaultDismissTaps:    s.DefaultDismissTaps,
		DefaultMoveSpeed:      s.DefaultMoveSpeed,
		SnoozeDurationMinutes: s.SnoozeDurationMinutes,
		SoundVolume:           s.SoundVolume,
		VibrationEnabled:      s.VibrationEnabled,
		AIProvider:            string(s.AIProvider),
		UserAPIKey:            s.UserAPIKey,
		FreeQuotaRemaining:    s.FreeQuotaRemaining,
	}
}

// FromSettingsMessage converts wire settings to the domain form.
func FromSettingsMessage(msg *SettingsMessage) settings.AppSettings {
	return settings.AppSettings{
		DefaultSnoozeTaps:     msg.DefaultSnoozeTaps,
		DefaultDismissTaps:    msg.DefaultDismissTaps,
		DefaultMoveSpeed:      msg.DefaultMoveSpeed,
		SnoozeDurationMinutes: msg.SnoozeDurationMinutes,
		SoundVolume:           msg.SoundVolume,
		VibrationEnabled:      msg.VibrationEnabled,
		AIProvider:            settings.AIProvider(msg.AIProvider),
		UserAPIKey:            msg.UserAPIKey,
		FreeQuotaRemaining:    msg.FreeQuotaRemaining,
	}
}

func toAlarmMessages(all []domain.Alarm) []AlarmMessage {
	result := make([]AlarmMessage, 0, len(all))
	for i := range all {
		result = append(result, ToAlarmMessage(&all[i]))
	}

	return result
}

func toWatchEvent(snap *lifecycle.Snapshot) *WatchEvent {
	return &WatchEvent{
		Alarms: toAlarmMessages(snap.Alarms),
		State:  ToTriggerStateMessage(&snap.Trigger),
	}
}
