// Package settings defines the user preferences that seed new alarms and the
// snooze duration, together with the free AI image-generation quota.
package settings
