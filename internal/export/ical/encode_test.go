package ical

import (
	"bytes"
	"strings"
	"testing"
	"time"

	goical "github.com/emersion/go-ical"
	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/wakey-wakey/internal/domain/alarm"
)

// Saturday.
var exportNow = time.Date(2026, time.October, 17, 8, 0, 0, 0, time.UTC)

func exportAlarms() []domain.Alarm {
	return []domain.Alarm{
		{
			ID:        "daily",
			Time:      time.Date(2026, time.October, 1, 7, 30, 0, 0, time.UTC),
			IsEnabled: true,
			Label:     "Wake up!",
		},
		{
			ID:         "weekdays",
			Time:       time.Date(2026, time.October, 1, 6, 45, 0, 0, time.UTC),
			RepeatDays: []time.Weekday{time.Monday, time.Friday},
			Label:      "Gym",
		},
	}
}

// TestEncode verifies events, rules and reminders of the exported calendar
// when alarms ring only on their selected weekdays.
func TestEncode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, encode(&buf, exportAlarms(), time.UTC, exportNow, options{repeatDays: true}))

	text := buf.String()
	require.Contains(t, text, "PRODID:"+ProductID)
	require.Contains(t, text, "RRULE:FREQ=DAILY")
	require.Contains(t, text, "RRULE:FREQ=WEEKLY;BYDAY=MO,FR")

	cal, err := goical.NewDecoder(strings.NewReader(text)).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	daily := events[0]
	require.Equal(t, "daily", daily.Props.Get(goical.PropUID).Value)
	require.Equal(t, "20261018T073000", daily.Props.Get(goical.PropDateTimeStart).Value)
	require.Nil(t, daily.Props.Get(goical.PropStatus))
	require.Len(t, daily.Children, 1)
	require.Equal(t, goical.CompAlarm, daily.Children[0].Name)

	summary, err := daily.Props.Text(goical.PropSummary)
	require.NoError(t, err)
	require.Equal(t, "Wake up!", summary)

	weekly := events[1]
	require.Equal(t, "20261019T064500", weekly.Props.Get(goical.PropDateTimeStart).Value)
	require.Equal(t, "CANCELLED", weekly.Props.Get(goical.PropStatus).Value)
}

// TestEncode_DailyByDefault verifies repeat days do not narrow the rule
// unless asked, matching alarms that ring every day.
func TestEncode_DailyByDefault(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, encode(&buf, exportAlarms(), time.UTC, exportNow, options{}))

	text := buf.String()
	require.NotContains(t, text, "FREQ=WEEKLY")
	require.Equal(t, 2, strings.Count(text, "RRULE:FREQ=DAILY"))

	cal, err := goical.NewDecoder(strings.NewReader(text)).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)
	require.Equal(t, "20261018T064500", events[1].Props.Get(goical.PropDateTimeStart).Value)
}

// TestEncode_Empty verifies an empty collection is rejected.
func TestEncode_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.ErrorIs(t, Encode(&buf, nil, nil, WithRepeatDays(true)), ErrNoAlarms)
	require.Zero(t, buf.Len())
}
