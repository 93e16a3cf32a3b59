// Package settings persists the user preferences and exposes the read
// contract the lifecycle manager uses to seed new alarms.
//
// The Store keeps the current settings in memory and writes them through to
// a kv.Store on every change. Write failures are logged and the in-memory
// value stays applied.
package settings
