// Package config defines the daemon and CLI settings and provides helpers to
// load, validate and save them in YAML format.
//
// Load reads the YAML file and applies WAKEY_* environment overrides;
// Validate fills in defaults for everything left empty.
package config
