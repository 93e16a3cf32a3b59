// Package client implements the wakey-ctl commands.
//
// A Session connects to the daemon with the configured address and timeout,
// sends one request per command and renders the answer with colored output.
package client
