// Package alarms implements persistence for the alarm collection.
//
// The FileRepository stores the whole collection under one well-known key of
// a kv.Store and exposes a Repository interface that the lifecycle manager
// depends on. Loading is best effort: unreadable data yields an empty
// collection rather than an error.
package alarms
