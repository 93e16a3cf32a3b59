package lifecycle

import (
	"context"
	"errors"
	"slices"

	"github.com/oshokin/wakey-wakey/internal/logger"
)

// Report is the outcome of a reconciliation pass.
type Report struct {
	// Scheduled holds enabled alarms that were missing a pending notification.
	Scheduled []string
	// Cancelled holds pending notifications without an enabled alarm.
	Cancelled []string
	// Failed holds enabled alarms the scheduler rejected again.
	Failed []string
}

// Changed reports whether the pass touched the scheduler.
func (r *Report) Changed() bool {
	return len(r.Scheduled) > 0 || len(r.Cancelled) > 0
}

// Reconcile makes the pending notification set equal to the enabled alarm ids.
// Alarms that still cannot be scheduled are listed in Report.Failed and their
// errors are joined into the returned error.
func (m *Manager) Reconcile(ctx context.Context) (Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx = logger.WithName(ctx, "reconcile")

	pending := make(map[string]struct{})
	for _, id := range m.scheduler.Pending(ctx) {
		pending[id] = struct{}{}
	}

	var (
		report  Report
		errs    []error
		enabled = make(map[string]struct{}, len(m.alarms))
	)

	for i := range m.alarms {
		a := &m.alarms[i]
		if !a.IsEnabled {
			continue
		}

		enabled[a.ID] = struct{}{}

		if _, ok := pending[a.ID]; ok {
			continue
		}

		if err := m.schedule(logger.WithKV(ctx, "alarm_id", a.ID), a); err != nil {
			report.Failed = append(report.Failed, a.ID)
			errs = append(errs, err)

			continue
		}

		report.Scheduled = append(report.Scheduled, a.ID)
	}

	for id := range pending {
		if _, ok := enabled[id]; !ok {
			report.Cancelled = append(report.Cancelled, id)
		}
	}

	slices.Sort(report.Cancelled)

	if len(report.Cancelled) > 0 {
		m.scheduler.Cancel(ctx, report.Cancelled...)
	}

	if report.Changed() || len(report.Failed) > 0 {
		logger.InfoKV(ctx, "Pending notifications reconciled",
			"scheduled", len(report.Scheduled),
			"cancelled", len(report.Cancelled),
			"failed", len(report.Failed))
	}

	return report, errors.Join(errs...)
}
