package ical

import (
	"errors"
	"fmt"
	"io"
	"time"

	goical "github.com/emersion/go-ical"

	domain "github.com/oshokin/wakey-wakey/internal/domain/alarm"
	"github.com/oshokin/wakey-wakey/internal/scheduler"
)

// ProductID identifies the exporter in the PRODID property.
const ProductID = "-//oshokin//wakey-wakey//EN"

// floatingLayout is a DATE-TIME without zone: the alarm rings at the same
// wall-clock time wherever the calendar is.
const floatingLayout = "20060102T150405"

// ErrNoAlarms is returned for an empty collection: a calendar needs at least one component.
var ErrNoAlarms = errors.New("no alarms to export")

// Option tunes Encode.
type Option func(*options)

type options struct {
	repeatDays bool
}

// WithRepeatDays makes events repeat weekly on the selected weekdays instead
// of daily. It mirrors the daemon's respect_repeat_days setting, so the
// calendar matches when alarms actually ring.
func WithRepeatDays(respect bool) Option {
	return func(o *options) {
		o.repeatDays = respect
	}
}

// Encode writes one recurring VEVENT with a display VALARM per alarm.
// Times are read in loc and start at the next occurrence after now.
// Events repeat daily unless WithRepeatDays(true) is given.
func Encode(w io.Writer, alarms []domain.Alarm, loc *time.Location, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return encode(w, alarms, loc, time.Now(), o)
}

func encode(w io.Writer, alarms []domain.Alarm, loc *time.Location, now time.Time, o options) error {
	if len(alarms) == 0 {
		return ErrNoAlarms
	}

	if loc == nil {
		loc = time.Local
	}

	cal := goical.NewCalendar()
	cal.Props.SetText(goical.PropVersion, "2.0")
	cal.Props.SetText(goical.PropProductID, ProductID)

	for i := range alarms {
		event, err := newEvent(&alarms[i], loc, now, o)
		if err != nil {
			return err
		}

		cal.Children = append(cal.Children, event.Component)
	}

	if err := goical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}

	return nil
}

func newEvent(a *domain.Alarm, loc *time.Location, now time.Time, o options) (*goical.Event, error) {
	hour, minute := a.TimeOfDay(loc)

	var weekdays []time.Weekday
	if o.repeatDays {
		weekdays = a.RepeatDays
	}

	start, err := scheduler.NextOccurrence(hour, minute, weekdays, now, loc)
	if err != nil {
		return nil, fmt.Errorf("alarm %s: %w", a.ID, err)
	}

	event := goical.NewEvent()
	event.Props.SetText(goical.PropUID, a.ID)
	event.Props.SetDateTime(goical.PropDateTimeStamp, now.UTC())
	event.Props.SetText(goical.PropSummary, a.Label)

	dtstart := goical.NewProp(goical.PropDateTimeStart)
	dtstart.SetValueType(goical.ValueDateTime)
	dtstart.Value = start.Format(floatingLayout)
	event.Props.Set(dtstart)

	rule := scheduler.RecurrenceOption(hour, minute, weekdays, start, loc)
	event.Props.SetRecurrenceRule(&rule)

	if !a.IsEnabled {
		event.Props.SetText(goical.PropStatus, "CANCELLED")
	}

	reminder := goical.NewComponent(goical.CompAlarm)
	reminder.Props.SetText(goical.PropAction, "DISPLAY")
	reminder.Props.SetText(goical.PropDescription, a.Label)

	trigger := goical.NewProp(goical.PropTrigger)
	trigger.Value = "PT0S"
	reminder.Props.Set(trigger)

	event.Children = append(event.Children, reminder)

	return event, nil
}
