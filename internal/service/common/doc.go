// Package common holds helpers shared by the daemon and the control CLI.
//
// It provides a gRPC client wrapper with per-call timeouts, detection of the
// calling user for request attribution, and a single-instance guard.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
