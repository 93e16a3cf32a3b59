package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/oshokin/wakey-wakey/internal/domain/alarm"
)

// Scheduler is the notification API the lifecycle manager depends on.
type Scheduler interface {
	RequestPermission(ctx context.Context, opts AuthorizationOptions) (bool, error)
	Schedule(ctx context.Context, req Request) error
	Cancel(ctx context.Context, ids ...string)
	Pending(ctx context.Context) []string
	SetDeliveryHandler(h Handler)
}

// Handler receives every delivery. It must be idempotent per delivery:
// the same logical event may be reported by more than one hook.
type Handler func(ctx context.Context, d domain.Delivery)

// AuthorizationOptions are the capabilities requested from the platform.
type AuthorizationOptions struct {
	Alert bool
	Sound bool
	Badge bool
}

// Request describes one pending calendar notification.
type Request struct {
	// AlarmID doubles as the request identifier.
	AlarmID string
	// Hour and Minute define the daily trigger; seconds are always zero.
	Hour   int
	Minute int
	// Weekdays restricts firing when the scheduler honours repeat days.
	Weekdays []time.Weekday
	// Title and Body are the notification content.
	Title string
	Body  string
	// SnoozeActionLabel and DismissActionLabel name the notification actions.
	SnoozeActionLabel  string
	DismissActionLabel string
}

var (
	// ErrPermissionDenied is returned while notifications are not authorized.
	ErrPermissionDenied = errors.New("notification permission not granted")
	// ErrInvalidRequest is returned for requests the platform would reject.
	ErrInvalidRequest = errors.New("invalid notification request")
)

// SchedulingError reports a rejected Schedule call.
type SchedulingError struct {
	// AlarmID is the request that was rejected.
	AlarmID string
	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *SchedulingError) Error() string {
	return fmt.Sprintf("schedule alarm %s: %v", e.AlarmID, e.Err)
}

// Unwrap returns the underlying failure.
func (e *SchedulingError) Unwrap() error {
	return e.Err
}

// Validate checks the request the way the platform API would.
func (r *Request) Validate() error {
	if r.AlarmID == "" {
		return fmt.Errorf("%w: empty identifier", ErrInvalidRequest)
	}

	if r.Hour < 0 || r.Hour > 23 || r.Minute < 0 || r.Minute > 59 {
		return fmt.Errorf("%w: time %02d:%02d", ErrInvalidRequest, r.Hour, r.Minute)
	}

	for _, day := range r.Weekdays {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("%w: weekday %d", ErrInvalidRequest, day)
		}
	}

	return nil
}
