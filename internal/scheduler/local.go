package scheduler

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	domain "github.com/oshokin/wakey-wakey/internal/domain/alarm"
	"github.com/oshokin/wakey-wakey/internal/logger"
)

// DefaultTickInterval is how often Local evaluates pending triggers.
const DefaultTickInterval = time.Second

// ErrNoDelivery is returned by Respond when the alarm has never been delivered.
var ErrNoDelivery = errors.New("no delivery to respond to")

// entry is one pending request and its next trigger instant.
type entry struct {
	req  Request
	next time.Time
}

// Local is an in-process Scheduler that evaluates calendar triggers on a ticker.
type Local struct {
	// pending maps alarm id to its pending request.
	pending map[string]*entry
	// lastFire remembers the most recent delivery epoch per alarm id.
	lastFire map[string]time.Time
	// handler receives deliveries.
	handler Handler
	// authorized is what the platform answers to a permission request.
	authorized bool
	// granted is set once a permission request succeeded.
	granted bool
	// repeatDaysFilter restricts firing to the requested weekdays.
	repeatDaysFilter bool
	// loc is the location triggers are evaluated in.
	loc *time.Location
	// now returns the current time.
	now func() time.Time
	// tick is the polling interval used by Run.
	tick time.Duration
	// mu protects every field above.
	mu sync.Mutex
}

// Option configures Local.
type Option func(*Local)

// WithLocation sets the location hour and minute are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(l *Local) {
		if loc != nil {
			l.loc = loc
		}
	}
}

// WithRepeatDaysFilter makes triggers honour Request.Weekdays.
// When disabled, every request repeats daily regardless of the selected days.
func WithRepeatDaysFilter(enabled bool) Option {
	return func(l *Local) {
		l.repeatDaysFilter = enabled
	}
}

// WithAuthorization sets the answer given to permission requests.
func WithAuthorization(authorized bool) Option {
	return func(l *Local) {
		l.authorized = authorized
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Local) {
		if now != nil {
			l.now = now
		}
	}
}

// WithTickInterval sets the polling interval used by Run.
func WithTickInterval(tick time.Duration) Option {
	return func(l *Local) {
		if tick > 0 {
			l.tick = tick
		}
	}
}

// NewLocal creates an in-process scheduler. Permission is authorized by default.
func NewLocal(opts ...Option) *Local {
	l := &Local{
		pending:    make(map[string]*entry),
		lastFire:   make(map[string]time.Time),
		authorized: true,
		loc:        time.Local,
		now:        time.Now,
		tick:       DefaultTickInterval,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// SetDeliveryHandler registers the single delivery handler.
func (l *Local) SetDeliveryHandler(h Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.handler = h
}

// RequestPermission asks for notification authorization.
func (l *Local) RequestPermission(ctx context.Context, opts AuthorizationOptions) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.granted = l.authorized

	logger.InfoKV(ctx, "Notification permission requested",
		"granted", l.granted,
		"alert", opts.Alert,
		"sound", opts.Sound,
		"badge", opts.Badge,
	)

	return l.granted, nil
}

// Schedule adds or replaces the pending request for req.AlarmID.
func (l *Local) Schedule(ctx context.Context, req Request) error {
	if err := req.Validate(); err != nil {
		return &SchedulingError{AlarmID: req.AlarmID, Err: err}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.granted {
		return &SchedulingError{AlarmID: req.AlarmID, Err: ErrPermissionDenied}
	}

	req.Weekdays = slices.Clone(req.Weekdays)

	next, err := l.nextFire(&req, l.now())
	if err != nil {
		return &SchedulingError{AlarmID: req.AlarmID, Err: err}
	}

	l.pending[req.AlarmID] = &entry{
		req:  req,
		next: next,
	}

	logger.DebugKV(ctx, "Notification scheduled", "alarm_id", req.AlarmID, "next_fire", next)

	return nil
}

// Cancel removes pending requests. Unknown ids are ignored.
func (l *Local) Cancel(ctx context.Context, ids ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, id := range ids {
		if _, ok := l.pending[id]; !ok {
			continue
		}

		delete(l.pending, id)
		logger.DebugKV(ctx, "Notification cancelled", "alarm_id", id)
	}
}

// Pending returns the sorted ids of pending requests.
func (l *Local) Pending(_ context.Context) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]string, 0, len(l.pending))
	for id := range l.pending {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// NextFireTime returns the next trigger instant of a pending request.
func (l *Local) NextFireTime(id string) (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.pending[id]
	if !ok {
		return time.Time{}, false
	}

	return e.next, true
}

// Run evaluates triggers every tick until ctx is done.
func (l *Local) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.Poll(ctx, l.now())
		}
	}
}

// Poll delivers every request due at or before now and advances it to its
// next occurrence. Triggers missed by more than one period are coalesced into
// a single delivery. It returns the number of deliveries made.
func (l *Local) Poll(ctx context.Context, now time.Time) int {
	l.mu.Lock()

	var due []domain.Delivery

	for id, e := range l.pending {
		if e.next.After(now) {
			continue
		}

		due = append(due, domain.Delivery{
			AlarmID:  id,
			Action:   domain.ActionDelivered,
			FireTime: e.next,
		})

		l.lastFire[id] = e.next

		next, err := l.nextFire(&e.req, now)
		if err != nil {
			logger.ErrorKV(ctx, "Unable to compute next trigger, dropping request", "alarm_id", id, "error", err)
			delete(l.pending, id)

			continue
		}

		e.next = next
	}

	handler := l.handler
	l.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].FireTime.Equal(due[j].FireTime) {
			return due[i].AlarmID < due[j].AlarmID
		}

		return due[i].FireTime.Before(due[j].FireTime)
	})

	l.deliver(ctx, handler, due...)

	return len(due)
}

// Respond reports a user response to the most recent delivery of id, the way
// the platform reports a response after having presented the notification.
func (l *Local) Respond(ctx context.Context, id string, action domain.DeliveryAction) error {
	l.mu.Lock()
	fireTime, ok := l.lastFire[id]
	handler := l.handler
	l.mu.Unlock()

	if !ok {
		return ErrNoDelivery
	}

	l.deliver(ctx, handler, domain.Delivery{
		AlarmID:  id,
		Action:   action,
		FireTime: fireTime,
	})

	return nil
}

// deliver invokes the handler outside the scheduler lock.
func (l *Local) deliver(ctx context.Context, handler Handler, deliveries ...domain.Delivery) {
	for _, d := range deliveries {
		if handler == nil {
			logger.WarnKV(ctx, "Delivery dropped, no handler registered", "alarm_id", d.AlarmID)
			continue
		}

		logger.DebugKV(ctx, "Delivering notification", "alarm_id", d.AlarmID, "action", d.Action, "fire_time", d.FireTime)
		handler(ctx, d)
	}
}

// nextFire computes the next trigger strictly after after. Callers must hold mu.
func (l *Local) nextFire(req *Request, after time.Time) (time.Time, error) {
	var weekdays []time.Weekday
	if l.repeatDaysFilter {
		weekdays = req.Weekdays
	}

	return NextOccurrence(req.Hour, req.Minute, weekdays, after, l.loc)
}
