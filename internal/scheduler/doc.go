// Package scheduler abstracts the platform's calendar-triggered, repeating
// notification API.
//
// A Scheduler keeps at most one pending request per alarm id and reports
// deliveries through a single registered Handler. Local is the in-process
// implementation used by the daemon: it evaluates calendar triggers on a
// ticker and invokes the handler from its polling goroutine.
package scheduler
