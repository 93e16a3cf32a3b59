// Package server runs the wakey-server daemon.
//
// It wires the file store, the settings and alarm repositories, the local
// notification scheduler, the lifecycle manager and the gRPC API together,
// then runs the scheduler loop, the periodic reconciliation and the gRPC
// server until the context is cancelled.
package server
