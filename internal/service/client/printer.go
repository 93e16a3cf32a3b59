package client

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	api "github.com/oshokin/wakey-wakey/internal/api/grpc/alarm"
)

// printer renders daemon answers for a terminal.
type printer struct {
	out io.Writer
	loc *time.Location

	header   *color.Color
	enabled  *color.Color
	disabled *color.Color
	ringing  *color.Color
	warning  *color.Color
}

func newPrinter(out io.Writer, loc *time.Location, noColor bool) *printer {
	p := &printer{
		out:      out,
		loc:      loc,
		header:   color.New(color.Bold),
		enabled:  color.New(color.FgGreen),
		disabled: color.New(color.Faint),
		ringing:  color.New(color.FgRed, color.Bold),
		warning:  color.New(color.FgYellow),
	}

	if noColor {
		for _, c := range []*color.Color{p.header, p.enabled, p.disabled, p.ringing, p.warning} {
			c.DisableColor()
		}
	}

	return p
}

// clock renders the alarm time as HH:MM in the session location.
func (p *printer) clock(unixNano int64) string {
	if unixNano == 0 {
		return "--:--"
	}

	return time.Unix(0, unixNano).In(p.loc).Format("15:04")
}

// alarms prints the collection as a table, one colored line per alarm.
func (p *printer) alarms(list []api.AlarmMessage, pending []string) {
	if len(list) == 0 {
		p.disabled.Fprintln(p.out, "No alarms.")
		return
	}

	var buf bytes.Buffer

	table := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, "ID\tTIME\tSTATE\tREPEAT\tTAPS\tSPEED\tLABEL")

	for i := range list {
		a := &list[i]

		state := "off"

		switch {
		case a.Enabled && slices.Contains(pending, a.ID):
			state = "on"
		case a.Enabled:
			state = "on (unscheduled)"
		}

		fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%d/%d\t%.2f\t%s\n",
			a.ID, p.clock(a.TimeUnixNano), state, FormatWeekdays(a.RepeatDays),
			a.SnoozeCount, a.DismissCount, a.MoveSpeed, a.Label)
	}

	_ = table.Flush()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	p.header.Fprintln(p.out, lines[0])

	for i, line := range lines[1:] {
		if list[i].Enabled {
			p.enabled.Fprintln(p.out, line)
		} else {
			p.disabled.Fprintln(p.out, line)
		}
	}
}

// alarm prints a one-line summary after a mutation.
func (p *printer) alarm(verb string, a *api.AlarmMessage) {
	state := "disabled"
	c := p.disabled

	if a.Enabled {
		state = "enabled"
		c = p.enabled
	}

	c.Fprintf(p.out, "%s alarm %s at %s (%s, %s) %q\n",
		verb, a.ID, p.clock(a.TimeUnixNano), FormatWeekdays(a.RepeatDays), state, a.Label)
}

// state prints the trigger state.
func (p *printer) state(s *api.TriggerStateMessage) {
	if !s.Triggering || s.Current == nil {
		p.disabled.Fprintln(p.out, "IDLE")
		return
	}

	p.ringing.Fprintf(p.out, "TRIGGERING %s at %s %q (snooze %d taps, dismiss %d taps)\n",
		s.Current.ID, p.clock(s.Current.TimeUnixNano), s.Current.Label,
		s.Current.SnoozeCount, s.Current.DismissCount)

	if len(s.Queued) > 0 {
		p.warning.Fprintf(p.out, "Queued: %s\n", strings.Join(s.Queued, ", "))
	}
}

// warnings prints recoverable failures reported by the daemon.
func (p *printer) warnings(list []string) {
	for _, w := range list {
		p.warning.Fprintf(p.out, "warning: %s\n", w)
	}
}

// reconcile prints a reconciliation report.
func (p *printer) reconcile(r *api.ReconcileResponse) {
	if len(r.Scheduled)+len(r.Cancelled)+len(r.Failed) == 0 {
		p.enabled.Fprintln(p.out, "Pending notifications already match the enabled alarms.")
		return
	}

	if len(r.Scheduled) > 0 {
		p.enabled.Fprintf(p.out, "Scheduled: %s\n", strings.Join(r.Scheduled, ", "))
	}

	if len(r.Cancelled) > 0 {
		p.disabled.Fprintf(p.out, "Cancelled: %s\n", strings.Join(r.Cancelled, ", "))
	}

	if len(r.Failed) > 0 {
		p.ringing.Fprintf(p.out, "Failed: %s\n", strings.Join(r.Failed, ", "))
	}

	p.warnings(r.Warnings)
}

// settings prints the application settings.
func (p *printer) settings(s *api.SettingsMessage) {
	apiKey := "not set"
	if s.UserAPIKey != nil {
		apiKey = "set"
	}

	var buf bytes.Buffer

	table := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintf(table, "default snooze taps\t%d\n", s.DefaultSnoozeTaps)
	fmt.Fprintf(table, "default dismiss taps\t%d\n", s.DefaultDismissTaps)
	fmt.Fprintf(table, "default move speed\t%.2f\n", s.DefaultMoveSpeed)
	fmt.Fprintf(table, "snooze duration\t%d min\n", s.SnoozeDurationMinutes)
	fmt.Fprintf(table, "sound volume\t%.2f\n", s.SoundVolume)
	fmt.Fprintf(table, "vibration\t%t\n", s.VibrationEnabled)
	fmt.Fprintf(table, "ai provider\t%s\n", s.AIProvider)
	fmt.Fprintf(table, "api key\t%s\n", apiKey)
	fmt.Fprintf(table, "free ai quota\t%d\n", s.FreeQuotaRemaining)
	_ = table.Flush()

	fmt.Fprint(p.out, buf.String())
}

// quota prints the outcome of a quota operation.
func (p *printer) quota(q *api.QuotaResponse) {
	if !q.Allowed {
		p.ringing.Fprintln(p.out, "Free AI quota exhausted.")
		return
	}

	p.enabled.Fprintf(p.out, "Free AI generations left: %d\n", q.Remaining)
}
