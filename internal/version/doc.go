// Package version exposes build metadata for wakey-server and wakey-ctl.
//
// Version, Commit and BuildTime are injected with -ldflags at build time.
package version
