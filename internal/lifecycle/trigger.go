package lifecycle

import (
	"context"
	"slices"
	"time"

	domain "github.com/oshokin/wakey-wakey/internal/domain/alarm"
	"github.com/oshokin/wakey-wakey/internal/logger"
)

// State returns a copy of the trigger state.
func (m *Manager) State() domain.TriggerState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return *m.trigger.Clone()
}

// TriggerAlarm makes the alarm with id ring. It reports whether the alarm
// became current: while another alarm rings the id is queued instead, and an
// unknown id is ignored.
func (m *Manager) TriggerAlarm(ctx context.Context, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	triggered := m.triggerAlarm(ctx, id)
	m.notify()

	return triggered
}

// DismissAlarm stops the ringing alarm and promotes the next queued one.
// It does nothing while idle.
func (m *Manager) DismissAlarm(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.trigger.IsTriggering {
		logger.Debug(ctx, "Dismiss ignored, no alarm is ringing")
		return
	}

	logger.InfoKV(ctx, "Alarm dismissed", "alarm_id", m.trigger.CurrentAlarm.ID)

	m.resolve(ctx)
	m.notify()
}

// SnoozeAlarm moves the ringing alarm to now plus the snooze duration,
// reschedules it and returns to idle. It does nothing while idle.
// The returned error comes from persisting or rescheduling the alarm;
// the trigger is cleared regardless.
func (m *Manager) SnoozeAlarm(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.snooze(ctx)
	m.notify()

	return err
}

// HandleDelivery routes a scheduler delivery into the state machine.
// Deliveries are deduplicated by alarm id and fire time, so the same logical
// event reported by several hooks changes the state once. A delivery older
// than the latest one handled for the alarm is stale and ignored.
func (m *Manager) HandleDelivery(ctx context.Context, d domain.Delivery) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx = logger.WithFields(ctx, "alarm_id", d.AlarmID, "action", string(d.Action))

	if !d.Action.Valid() {
		logger.Warn(ctx, "Delivery with unknown action ignored")
		return
	}

	last, seen := m.handled[d.AlarmID]
	if seen && d.FireTime.Before(last) {
		logger.DebugKV(ctx, "Stale delivery ignored", "fire_time", d.FireTime, "latest", last)
		return
	}

	duplicate := seen && last.Equal(d.FireTime)
	m.handled[d.AlarmID] = d.FireTime

	switch d.Action {
	case domain.ActionDismiss:
		if m.isCurrent(d.AlarmID) {
			logger.Info(ctx, "Alarm dismissed from notification")
			m.resolve(ctx)
		} else {
			m.dequeue(d.AlarmID)
		}
	case domain.ActionSnooze:
		if !duplicate {
			m.triggerAlarm(ctx, d.AlarmID)
		}

		if m.isCurrent(d.AlarmID) {
			if err := m.snooze(ctx); err != nil {
				logger.ErrorKV(ctx, "Snooze from notification failed", "error", err)
			}
		}
	default:
		if duplicate {
			logger.Debug(ctx, "Duplicate delivery ignored")
			return
		}

		m.triggerAlarm(ctx, d.AlarmID)
	}

	m.notify()
}

// triggerAlarm is TriggerAlarm without locking. Callers must hold mu.
func (m *Manager) triggerAlarm(ctx context.Context, id string) bool {
	idx := m.index(id)
	if idx < 0 {
		logger.WarnKV(ctx, "Trigger ignored, alarm not found", "alarm_id", id)
		return false
	}

	switch {
	case !m.trigger.IsTriggering:
		m.trigger.IsTriggering = true
		m.trigger.CurrentAlarm = m.alarms[idx].Clone()

		logger.InfoKV(ctx, "Alarm ringing", "alarm_id", id)

		return true
	case m.trigger.CurrentAlarm.ID == id:
		return false
	case !slices.Contains(m.trigger.Queued, id):
		m.trigger.Queued = append(m.trigger.Queued, id)

		logger.InfoKV(ctx, "Alarm queued behind the ringing one",
			"alarm_id", id,
			"ringing_id", m.trigger.CurrentAlarm.ID)
	}

	return false
}

// snooze is SnoozeAlarm without locking or notification. Callers must hold mu.
func (m *Manager) snooze(ctx context.Context) error {
	if !m.trigger.IsTriggering {
		logger.Debug(ctx, "Snooze ignored, no alarm is ringing")
		return nil
	}

	id := m.trigger.CurrentAlarm.ID

	idx := m.index(id)
	if idx < 0 {
		m.resolve(ctx)
		return nil
	}

	minutes := m.settings.Defaults().SnoozeDuration()

	snoozed := *m.alarms[idx].Clone()
	snoozed.Time = m.now().Add(time.Duration(minutes) * time.Minute)

	logger.InfoKV(ctx, "Alarm snoozed", "alarm_id", id, "until", snoozed.Time, "minutes", minutes)

	err := m.update(ctx, snoozed)

	m.resolve(ctx)

	return err
}

// resolve returns to idle and promotes the first queued alarm that still exists.
// Callers must hold mu.
func (m *Manager) resolve(ctx context.Context) {
	m.trigger.IsTriggering = false
	m.trigger.CurrentAlarm = nil

	for len(m.trigger.Queued) > 0 {
		next := m.trigger.Queued[0]
		m.trigger.Queued = m.trigger.Queued[1:]

		if m.triggerAlarm(ctx, next) {
			break
		}
	}

	if len(m.trigger.Queued) == 0 {
		m.trigger.Queued = nil
	}
}

// dequeue drops id from the queue. Callers must hold mu.
func (m *Manager) dequeue(id string) {
	m.trigger.Queued = slices.DeleteFunc(m.trigger.Queued, func(queued string) bool { return queued == id })
	if len(m.trigger.Queued) == 0 {
		m.trigger.Queued = nil
	}
}

// isCurrent reports whether id is the ringing alarm. Callers must hold mu.
func (m *Manager) isCurrent(id string) bool {
	return m.trigger.IsTriggering && m.trigger.CurrentAlarm.ID == id
}

// refreshCurrent keeps the ringing copy in step with an edited alarm.
// Callers must hold mu.
func (m *Manager) refreshCurrent(a *domain.Alarm) {
	if m.isCurrent(a.ID) {
		m.trigger.CurrentAlarm = a.Clone()
	}
}
