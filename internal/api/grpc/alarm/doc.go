// Package alarm implements the gRPC transport for the alarm daemon.
//
// The service is described by hand in ServiceDesc and carries plain Go
// structs encoded with deterministic CBOR, registered as the "cbor" codec.
// Server adapts the lifecycle manager and the settings store to the wire
// messages; ServiceClient is the matching typed client.
package alarm
