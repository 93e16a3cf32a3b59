package client

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	api "github.com/oshokin/wakey-wakey/internal/api/grpc/alarm"
)

// TestPrinter_Alarms checks the table layout and the scheduled marker.
func TestPrinter_Alarms(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	p := newPrinter(&out, time.UTC, true)

	p.alarms(nil, nil)
	require.Equal(t, "No alarms.\n", out.String())

	out.Reset()

	seven := time.Date(2026, time.October, 17, 7, 0, 0, 0, time.UTC).UnixNano()
	p.alarms([]api.AlarmMessage{
		{ID: "a", TimeUnixNano: seven, Enabled: true, RepeatDays: []int{1, 2, 3, 4, 5}, Label: "Work", SnoozeCount: 1, DismissCount: 3, MoveSpeed: 0.5},
		{ID: "b", TimeUnixNano: seven, Enabled: true, Label: "Gym", SnoozeCount: 2, DismissCount: 4, MoveSpeed: 1},
		{ID: "c", TimeUnixNano: seven, Label: "Off"},
	}, []string{"a"})

	lines := bytes.Split(bytes.TrimSuffix(out.Bytes(), []byte("\n")), []byte("\n"))
	require.Len(t, lines, 4)
	require.Contains(t, string(lines[0]), "ID")
	require.Contains(t, string(lines[1]), "07:00")
	require.Contains(t, string(lines[1]), "mon,tue,wed,thu,fri")
	require.Contains(t, string(lines[1]), "1/3")
	require.Contains(t, string(lines[2]), "on (unscheduled)")
	require.Contains(t, string(lines[3]), "off")
}

// TestPrinter_State covers idle, ringing and queued output.
func TestPrinter_State(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	p := newPrinter(&out, time.UTC, true)

	p.state(&api.TriggerStateMessage{})
	require.Equal(t, "IDLE\n", out.String())

	out.Reset()

	p.state(&api.TriggerStateMessage{
		Triggering: true,
		Current:    &api.AlarmMessage{ID: "a", Label: "Work", SnoozeCount: 1, DismissCount: 3},
		Queued:     []string{"b", "c"},
	})
	require.Contains(t, out.String(), "TRIGGERING a")
	require.Contains(t, out.String(), "Queued: b, c")
}

// TestPrinter_Reconcile prints only the non-empty groups.
func TestPrinter_Reconcile(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	p := newPrinter(&out, time.UTC, true)

	p.reconcile(new(api.ReconcileResponse))
	require.Contains(t, out.String(), "already match")

	out.Reset()

	p.reconcile(&api.ReconcileResponse{Scheduled: []string{"a"}, Warnings: []string{"disk full"}})
	require.Equal(t, "Scheduled: a\nwarning: disk full\n", out.String())
}
