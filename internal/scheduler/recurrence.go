package scheduler

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// rruleWeekdays maps time.Weekday to rrule weekdays.
//
//nolint:gochecknoglobals // Static lookup table.
var rruleWeekdays = [...]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// RecurrenceOption builds the calendar rule for a trigger at hour:minute.
// Without weekdays the rule repeats daily; with weekdays it repeats weekly on them.
// The rule starts on the day of from, in loc.
func RecurrenceOption(hour, minute int, weekdays []time.Weekday, from time.Time, loc *time.Location) rrule.ROption {
	base := from.In(loc)

	option := rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, loc),
	}

	if len(weekdays) > 0 {
		option.Freq = rrule.WEEKLY
		option.Byweekday = make([]rrule.Weekday, 0, len(weekdays))

		for _, day := range weekdays {
			option.Byweekday = append(option.Byweekday, rruleWeekdays[day])
		}
	}

	return option
}

// NextOccurrence returns the first trigger instant strictly after after.
func NextOccurrence(hour, minute int, weekdays []time.Weekday, after time.Time, loc *time.Location) (time.Time, error) {
	rule, err := rrule.NewRRule(RecurrenceOption(hour, minute, weekdays, after, loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("build recurrence: %w", err)
	}

	next := rule.After(after, false)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("%w: no occurrence after %s", ErrInvalidRequest, after.Format(time.RFC3339))
	}

	return next, nil
}
