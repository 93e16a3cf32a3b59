// Package alarm contains core domain types for the alarm lifecycle.
//
// It defines Alarm (the persisted reminder record), TriggerState (the
// transient ringing state) and Delivery (a notification event reported by the
// scheduler), with Clone helpers to avoid leaking internal references.
package alarm
