package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/wakey-wakey/internal/logger"
)

// Config holds the settings shared by the daemon and the control CLI.
type Config struct {
	// ListenAddress is the gRPC address the daemon listens on and the CLI dials.
	ListenAddress string `yaml:"listen_addr" env:"WAKEY_LISTEN_ADDR"`
	// DataDir is the directory holding the persisted alarms and settings.
	DataDir string `yaml:"data_dir" env:"WAKEY_DATA_DIR"`
	// Timeout is the duration for RPC calls.
	Timeout time.Duration `yaml:"timeout" env:"WAKEY_TIMEOUT"`
	// TickInterval is how often the scheduler checks for due notifications.
	TickInterval time.Duration `yaml:"tick_interval" env:"WAKEY_TICK_INTERVAL"`
	// ReconcileInterval is how often the pending notifications are reconciled.
	ReconcileInterval time.Duration `yaml:"reconcile_interval" env:"WAKEY_RECONCILE_INTERVAL"`
	// Timezone is the IANA name alarm times are interpreted in. Empty means local time.
	Timezone string `yaml:"timezone" env:"WAKEY_TIMEZONE"`
	// RespectRepeatDays restricts notifications to the alarm's repeat days.
	// Off by default: alarms fire every day whatever their repeat days.
	RespectRepeatDays bool `yaml:"respect_repeat_days" env:"WAKEY_RESPECT_REPEAT_DAYS"`
	// NotificationsAuthorized simulates the user's answer to the permission
	// prompt. Nil means authorized.
	NotificationsAuthorized *bool `yaml:"notifications_authorized,omitempty"`
	// LogLevel is the minimum level of the global logger.
	LogLevel string `yaml:"log_level" env:"WAKEY_LOG_LEVEL"`
}

const (
	// DefaultConfigFilename is the default filename for the settings.
	DefaultConfigFilename = "wakey-settings.yaml"

	// DefaultListenAddress is the default gRPC address.
	DefaultListenAddress = "127.0.0.1:7311"

	// DefaultDataDir is the default directory for persisted data.
	DefaultDataDir = "wakey-data"

	// DefaultTimeout is the default duration for RPC calls.
	DefaultTimeout = 5 * time.Second

	// DefaultTickInterval is the default scheduler resolution.
	DefaultTickInterval = time.Second

	// DefaultReconcileInterval is the default period between reconciliations.
	DefaultReconcileInterval = time.Minute

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNonPositiveInterval is returned for negative durations.
	errNonPositiveInterval = errors.New("interval must be positive")
	// errUnknownLogLevel is returned for log levels zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Load reads configuration from the provided path, applies environment
// overrides and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	path = filepath.Clean(path)

	var cfg Config

	_, err := os.Stat(path)

	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		if err = cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read settings from environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("stat settings: %w", err)
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults and checks the provided settings.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.ListenAddress == "" {
		cfg.ListenAddress = DefaultListenAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", cfg.ListenAddress); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}

	intervals := []struct {
		name     string
		value    *time.Duration
		fallback time.Duration
	}{
		{"timeout", &cfg.Timeout, DefaultTimeout},
		{"tick_interval", &cfg.TickInterval, DefaultTickInterval},
		{"reconcile_interval", &cfg.ReconcileInterval, DefaultReconcileInterval},
	}

	for _, interval := range intervals {
		switch {
		case *interval.value == 0:
			*interval.value = interval.fallback
		case *interval.value < 0:
			return fmt.Errorf("%s: %w", interval.name, errNonPositiveInterval)
		}
	}

	if _, err := cfg.Location(); err != nil {
		return err
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	return nil
}

// Location returns the location alarm times are interpreted in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	return loc, nil
}

// Authorized reports whether notification permission is granted.
func (c *Config) Authorized() bool {
	return c.NotificationsAuthorized == nil || *c.NotificationsAuthorized
}
