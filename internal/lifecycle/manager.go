package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	domain "github.com/oshokin/wakey-wakey/internal/domain/alarm"
	"github.com/oshokin/wakey-wakey/internal/domain/settings"
	"github.com/oshokin/wakey-wakey/internal/logger"
	"github.com/oshokin/wakey-wakey/internal/repository/alarms"
	"github.com/oshokin/wakey-wakey/internal/scheduler"
)

// SettingsReader supplies the defaults used when an alarm is created or snoozed.
type SettingsReader interface {
	Defaults() settings.Defaults
}

// NotificationLabels is the text attached to every scheduled notification.
type NotificationLabels struct {
	// Title is the notification title; the alarm label is the body.
	Title string
	// Snooze and Dismiss name the notification actions.
	Snooze  string
	Dismiss string
}

// DefaultLabels are used unless WithLabels overrides them.
//
//nolint:gochecknoglobals // Read-only default.
var DefaultLabels = NotificationLabels{
	Title:   "Wakey Wakey!",
	Snooze:  "Snooze",
	Dismiss: "Dismiss",
}

// ErrAlarmExists is returned when AddAlarm receives an id that is already stored.
var ErrAlarmExists = errors.New("alarm already exists")

// Manager is the alarm lifecycle manager.
type Manager struct {
	// repo persists the alarm collection.
	repo alarms.Repository
	// scheduler holds one pending notification per enabled alarm.
	scheduler scheduler.Scheduler
	// settings seeds new alarms and the snooze duration.
	settings SettingsReader
	// labels is the notification text.
	labels NotificationLabels
	// loc is the location alarm times are interpreted in.
	loc *time.Location
	// now returns the current time.
	now func() time.Time

	// alarms is the in-memory collection, in creation order.
	alarms []domain.Alarm
	// trigger is the transient ringing state.
	trigger domain.TriggerState
	// handled is the last delivery epoch processed per alarm id.
	handled map[string]time.Time
	// subscribers receive a snapshot after every change.
	subscribers map[int]chan Snapshot
	// nextSubscriber is the key of the next subscription.
	nextSubscriber int

	// mu is the sequential context: it guards every field above.
	mu sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLocation sets the location alarm times are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(m *Manager) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// WithLabels overrides the notification text.
func WithLabels(labels NotificationLabels) Option {
	return func(m *Manager) {
		m.labels = labels
	}
}

// New loads the alarm collection from repo and registers the manager as the
// scheduler's delivery handler.
func New(
	ctx context.Context,
	repo alarms.Repository,
	sched scheduler.Scheduler,
	settingsReader SettingsReader,
	opts ...Option,
) *Manager {
	m := &Manager{
		repo:        repo,
		scheduler:   sched,
		settings:    settingsReader,
		labels:      DefaultLabels,
		loc:         time.Local,
		now:         time.Now,
		handled:     make(map[string]time.Time),
		subscribers: make(map[int]chan Snapshot),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.alarms = repo.Load(ctx)
	for i := range m.alarms {
		m.alarms[i].Normalize()
	}

	sched.SetDeliveryHandler(m.HandleDelivery)

	logger.InfoKV(ctx, "Alarms loaded", "count", len(m.alarms))

	return m
}

// Start requests notification permission and reconciles the pending set.
// It runs once per process, the way the app does on launch.
func (m *Manager) Start(ctx context.Context) (Report, error) {
	granted, err := m.scheduler.RequestPermission(ctx, scheduler.AuthorizationOptions{
		Alert: true,
		Sound: true,
		Badge: true,
	})

	switch {
	case err != nil:
		logger.ErrorKV(ctx, "Notification permission request failed", "error", err)
	case !granted:
		logger.Warn(ctx, "Notification permission not granted, alarms will not ring")
	}

	return m.Reconcile(ctx)
}

// Alarms returns a copy of the collection.
func (m *Manager) Alarms() []domain.Alarm {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cloneAlarms()
}

// Alarm returns a copy of the alarm with id.
func (m *Manager) Alarm(id string) (domain.Alarm, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index(id)
	if idx < 0 {
		return domain.Alarm{}, false
	}

	return *m.alarms[idx].Clone(), true
}

// Pending returns the ids the scheduler currently holds.
func (m *Manager) Pending(ctx context.Context) []string {
	return m.scheduler.Pending(ctx)
}

// AddAlarm stores a new alarm and schedules it when enabled.
// Zero tap counts and move speed are seeded from the settings defaults
// and an empty label becomes the default one.
// A persistence or scheduling failure is returned, but the alarm stays added.
func (m *Manager) AddAlarm(ctx context.Context, a domain.Alarm) (domain.Alarm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a = *a.Clone()
	if a.ID == "" {
		a.ID = domain.NewID()
	}

	if m.index(a.ID) >= 0 {
		return domain.Alarm{}, fmt.Errorf("%w: %s", ErrAlarmExists, a.ID)
	}

	defaults := m.settings.Defaults()

	if a.SnoozeCount == 0 {
		a.SnoozeCount = defaults.SnoozeTaps
	}

	if a.DismissCount == 0 {
		a.DismissCount = defaults.DismissTaps
	}

	if a.MoveSpeed == 0 {
		a.MoveSpeed = defaults.MoveSpeed
	}

	if a.Label == "" {
		a.Label = domain.DefaultLabel
	}

	a.Normalize()

	if err := a.Validate(); err != nil {
		return domain.Alarm{}, err
	}

	ctx = logger.WithKV(ctx, "alarm_id", a.ID)

	m.alarms = append(m.alarms, a)

	var errs []error

	if err := m.persist(ctx); err != nil {
		errs = append(errs, err)
	}

	if a.IsEnabled {
		if err := m.schedule(ctx, &a); err != nil {
			errs = append(errs, err)
		}
	}

	logger.InfoKV(ctx, "Alarm added", "time", a.Time, "enabled", a.IsEnabled)
	m.notify()

	return *a.Clone(), errors.Join(errs...)
}

// UpdateAlarm replaces the alarm with the same id, then cancels its pending
// notification and schedules it again when enabled. Unknown ids are ignored.
func (m *Manager) UpdateAlarm(ctx context.Context, a domain.Alarm) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.update(ctx, *a.Clone())
	m.notify()

	return err
}

// DeleteAlarm removes the alarm and its pending notification. Unknown ids are ignored.
func (m *Manager) DeleteAlarm(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index(id)
	if idx < 0 {
		logger.DebugKV(ctx, "Delete ignored, alarm not found", "alarm_id", id)
		return nil
	}

	ctx = logger.WithKV(ctx, "alarm_id", id)

	m.alarms = slices.Delete(m.alarms, idx, idx+1)
	delete(m.handled, id)

	err := m.persist(ctx)

	m.scheduler.Cancel(ctx, id)

	m.dequeue(id)

	if m.isCurrent(id) {
		logger.Info(ctx, "Ringing alarm deleted, clearing trigger")
		m.resolve(ctx)
	}

	logger.Info(ctx, "Alarm deleted")
	m.notify()

	return err
}

// ToggleAlarm flips IsEnabled and schedules or cancels accordingly. Unknown ids are ignored.
func (m *Manager) ToggleAlarm(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index(id)
	if idx < 0 {
		logger.DebugKV(ctx, "Toggle ignored, alarm not found", "alarm_id", id)
		return nil
	}

	ctx = logger.WithKV(ctx, "alarm_id", id)

	m.alarms[idx].IsEnabled = !m.alarms[idx].IsEnabled
	a := m.alarms[idx]

	var errs []error

	if err := m.persist(ctx); err != nil {
		errs = append(errs, err)
	}

	if a.IsEnabled {
		if err := m.schedule(ctx, &a); err != nil {
			errs = append(errs, err)
		}
	} else {
		m.scheduler.Cancel(ctx, id)
	}

	m.refreshCurrent(&a)

	logger.InfoKV(ctx, "Alarm toggled", "enabled", a.IsEnabled)
	m.notify()

	return errors.Join(errs...)
}

// update is UpdateAlarm without locking or notification. Callers must hold mu.
func (m *Manager) update(ctx context.Context, a domain.Alarm) error {
	idx := m.index(a.ID)
	if idx < 0 {
		logger.DebugKV(ctx, "Update ignored, alarm not found", "alarm_id", a.ID)
		return nil
	}

	a.Normalize()

	if err := a.Validate(); err != nil {
		return err
	}

	ctx = logger.WithKV(ctx, "alarm_id", a.ID)

	m.alarms[idx] = a

	var errs []error

	if err := m.persist(ctx); err != nil {
		errs = append(errs, err)
	}

	m.scheduler.Cancel(ctx, a.ID)

	if a.IsEnabled {
		if err := m.schedule(ctx, &a); err != nil {
			errs = append(errs, err)
		}
	}

	m.refreshCurrent(&a)

	logger.InfoKV(ctx, "Alarm updated", "time", a.Time, "enabled", a.IsEnabled)

	return errors.Join(errs...)
}

// persist writes the whole collection. Callers must hold mu.
func (m *Manager) persist(ctx context.Context) error {
	if err := m.repo.Save(ctx, m.cloneAlarms()); err != nil {
		logger.ErrorKV(ctx, "Failed to persist alarms", "error", err)
		return err
	}

	return nil
}

// schedule asks the scheduler for the alarm's notification. Callers must hold mu.
func (m *Manager) schedule(ctx context.Context, a *domain.Alarm) error {
	hour, minute := a.TimeOfDay(m.loc)

	err := m.scheduler.Schedule(ctx, scheduler.Request{
		AlarmID:            a.ID,
		Hour:               hour,
		Minute:             minute,
		Weekdays:           a.RepeatDays,
		Title:              m.labels.Title,
		Body:               a.Label,
		SnoozeActionLabel:  m.labels.Snooze,
		DismissActionLabel: m.labels.Dismiss,
	})
	if err != nil {
		logger.WarnKV(ctx, "Alarm is enabled but not scheduled until the next reconciliation", "error", err)
		return err
	}

	return nil
}

// index returns the position of id in the collection, or -1.
func (m *Manager) index(id string) int {
	return slices.IndexFunc(m.alarms, func(a domain.Alarm) bool { return a.ID == id })
}

// cloneAlarms deep-copies the collection. Callers must hold mu.
func (m *Manager) cloneAlarms() []domain.Alarm {
	result := make([]domain.Alarm, 0, len(m.alarms))
	for i := range m.alarms {
		result = append(result, *m.alarms[i].Clone())
	}

	return result
}
