package client

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	// errBadClock is returned for times that are not HH:MM.
	errBadClock = errors.New("time must be HH:MM")
	// errBadWeekday is returned for unknown weekday names.
	errBadWeekday = errors.New("unknown weekday")
)

//nolint:gochecknoglobals // Static lookup table.
var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

//nolint:gochecknoglobals // Static lookup table.
var weekdayGroups = map[string][]time.Weekday{
	"weekdays": {time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
	"weekends": {time.Sunday, time.Saturday},
	"daily":    nil,
	"none":     nil,
}

// ParseClock turns "HH:MM" into an instant on the day of now, in loc.
func ParseClock(value string, now time.Time, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", errBadClock, value)
	}

	day := now.In(loc)

	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}

// ParseWeekdays parses a comma separated list such as "mon,wed,fri".
// The groups "weekdays", "weekends", "daily" and "none" are accepted too.
// Full names and any letter case work.
func ParseWeekdays(value string) ([]time.Weekday, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return nil, nil
	}

	if group, ok := weekdayGroups[value]; ok {
		return slices.Clone(group), nil
	}

	var days []time.Weekday

	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if len(part) < 3 {
			return nil, fmt.Errorf("%w: %q", errBadWeekday, part)
		}

		day, ok := weekdayNames[part[:3]]
		if !ok {
			return nil, fmt.Errorf("%w: %q", errBadWeekday, part)
		}

		days = append(days, day)
	}

	slices.Sort(days)

	return slices.Compact(days), nil
}

// FormatWeekdays renders days the way ParseWeekdays reads them.
func FormatWeekdays(days []int) string {
	if len(days) == 0 {
		return "daily"
	}

	names := make([]string, 0, len(days))
	for _, day := range days {
		names = append(names, strings.ToLower(time.Weekday(day).String()[:3]))
	}

	return strings.Join(names, ",")
}
