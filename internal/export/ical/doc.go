// Package ical exports alarms as an iCalendar (RFC 5545) document so they can
// be imported into a desktop or phone calendar.
package ical
