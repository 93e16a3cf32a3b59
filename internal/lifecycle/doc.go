// Package lifecycle owns the alarm collection and keeps the persisted store
// and the notification scheduler consistent with it.
//
// Manager serializes every CRUD call, trigger transition and scheduler
// delivery behind one lock, which is the single sequential context the rest
// of the daemon observes. Persistence is the source of truth: scheduling
// failures leave the alarm enabled and are repaired by Reconcile.
//
// The trigger state machine has two phases. A delivery moves IDLE to
// TRIGGERING; DismissAlarm and SnoozeAlarm move it back. Deliveries for other
// alarms that arrive while one is ringing are queued and promoted in order.
package lifecycle
