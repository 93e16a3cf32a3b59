// Package logger wraps a global zap SugaredLogger for the daemon and the CLI.
//
// Loggers travel in the context: WithName and WithKV scope them to a component
// or an alarm id, and the level helpers (InfoKV, WarnKV and friends) read them
// back. The level comes from the log_level setting via Configure.
package logger
