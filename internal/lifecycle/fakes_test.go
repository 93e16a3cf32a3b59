package lifecycle

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	domain "github.com/oshokin/wakey-wakey/internal/domain/alarm"
	"github.com/oshokin/wakey-wakey/internal/domain/settings"
	"github.com/oshokin/wakey-wakey/internal/scheduler"
)

var (
	errTestSave     = errors.New("test save error")
	errTestSchedule = errors.New("test schedule error")
)

// saturdayMorning is a fixed Saturday instant all manager tests start from.
//
//nolint:gochecknoglobals // Test fixture.
var saturdayMorning = time.Date(2026, time.October, 17, 6, 0, 0, 0, time.UTC)

// memoryRepository is an in-memory alarms.Repository.
type memoryRepository struct {
	// initial is returned by Load.
	initial []domain.Alarm
	// saveErr is returned by Save when set.
	saveErr error
	// saved is the last collection passed to Save, recorded even when saveErr is set.
	saved []domain.Alarm
	// saves counts Save calls.
	saves int

	mu sync.Mutex
}

func (r *memoryRepository) Load(context.Context) []domain.Alarm {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.initial)
}

func (r *memoryRepository) Save(_ context.Context, all []domain.Alarm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.saves++

	if r.saveErr != nil {
		return r.saveErr
	}

	r.saved = all

	return nil
}

func (r *memoryRepository) lastSaved() []domain.Alarm {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.saved
}

// fakeScheduler records requests and can reject them.
type fakeScheduler struct {
	// pending holds the last request per alarm id.
	pending map[string]scheduler.Request
	// failing makes Schedule reject every request.
	failing bool
	// denied makes RequestPermission refuse.
	denied bool
	// handler is the registered delivery handler.
	handler scheduler.Handler
	// cancelled records every cancelled id in call order.
	cancelled []string

	mu sync.Mutex
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{pending: make(map[string]scheduler.Request)}
}

func (s *fakeScheduler) RequestPermission(context.Context, scheduler.AuthorizationOptions) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return !s.denied, nil
}

func (s *fakeScheduler) Schedule(_ context.Context, req scheduler.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failing {
		return &scheduler.SchedulingError{AlarmID: req.AlarmID, Err: errTestSchedule}
	}

	s.pending[req.AlarmID] = req

	return nil
}

func (s *fakeScheduler) Cancel(_ context.Context, ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.pending, id)
		s.cancelled = append(s.cancelled, id)
	}
}

func (s *fakeScheduler) Pending(context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}

func (s *fakeScheduler) SetDeliveryHandler(h scheduler.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handler = h
}

func (s *fakeScheduler) setFailing(failing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failing = failing
}

func (s *fakeScheduler) request(id string) (scheduler.Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.pending[id]

	return req, ok
}

// staticSettings is a SettingsReader with fixed defaults.
type staticSettings struct {
	defaults settings.Defaults
}

func (s staticSettings) Defaults() settings.Defaults {
	return s.defaults
}

func defaultSettings() staticSettings {
	app := settings.Default()

	return staticSettings{defaults: app.Defaults()}
}

// testClock is a settable clock.
type testClock struct {
	now time.Time
	mu  sync.Mutex
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = t
}

// at returns the test day at hour:minute UTC.
func at(hour, minute int) time.Time {
	return time.Date(2026, time.October, 17, hour, minute, 0, 0, time.UTC)
}

// newAlarm returns a valid enabled alarm at hour:minute.
func newAlarm(id string, hour, minute int) domain.Alarm {
	return domain.Alarm{
		ID:           id,
		Time:         at(hour, minute),
		IsEnabled:    true,
		Label:        domain.DefaultLabel,
		ImageType:    domain.ImageDefaultBunny,
		SnoozeCount:  1,
		DismissCount: 3,
		MoveSpeed:    0.5,
	}
}
