package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	// Defaults.
	cfg := new(Config)

	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultListenAddress, cfg.ListenAddress)
	require.Equal(t, DefaultDataDir, cfg.DataDir)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, DefaultTickInterval, cfg.TickInterval)
	require.Equal(t, DefaultReconcileInterval, cfg.ReconcileInterval)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
	require.True(t, cfg.Authorized())
	require.False(t, cfg.RespectRepeatDays)

	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, time.Local, loc)

	// Bad address.
	require.Error(t, Validate(&Config{ListenAddress: "bad:address"}))

	// Negative interval.
	require.ErrorIs(t, Validate(&Config{TickInterval: -time.Second}), errNonPositiveInterval)

	// Unknown timezone.
	require.Error(t, Validate(&Config{Timezone: "Mars/Olympus_Mons"}))

	// Unknown log level.
	require.ErrorIs(t, Validate(&Config{LogLevel: "loud"}), errUnknownLogLevel)

	denied := false
	require.False(t, (&Config{NotificationsAuthorized: &denied}).Authorized())
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	denied := false
	cfg := &Config{
		ListenAddress:           "127.0.0.1:50051",
		DataDir:                 filepath.Join(dir, "data"),
		Timeout:                 3 * time.Second,
		Timezone:                "UTC",
		RespectRepeatDays:       true,
		NotificationsAuthorized: &denied,
		LogLevel:                "debug",
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.ListenAddress, loaded.ListenAddress)
	require.Equal(t, cfg.DataDir, loaded.DataDir)
	require.Equal(t, cfg.Timeout, loaded.Timeout)
	require.Equal(t, DefaultReconcileInterval, loaded.ReconcileInterval)
	require.True(t, loaded.RespectRepeatDays)
	require.False(t, loaded.Authorized())
	require.Equal(t, "debug", loaded.LogLevel)

	loc, err := loaded.Location()
	require.NoError(t, err)
	require.Equal(t, "UTC", loc.String())

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.Error(t, Save(path, nil))
}

// TestLoad_EnvironmentOverrides verifies WAKEY_* variables win over the file
// and that a missing file falls back to defaults.
func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	require.NoError(t, os.WriteFile(path, []byte("listen_addr: 127.0.0.1:50051\nlog_level: warn\n"), DefaultFilePermissions))

	t.Setenv("WAKEY_LISTEN_ADDR", "127.0.0.1:6000")
	t.Setenv("WAKEY_TICK_INTERVAL", "250ms")

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:6000", loaded.ListenAddress)
	require.Equal(t, 250*time.Millisecond, loaded.TickInterval)
	require.Equal(t, "warn", loaded.LogLevel)

	missing, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:6000", missing.ListenAddress)
	require.Equal(t, DefaultDataDir, missing.DataDir)
}
