package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/oshokin/wakey-wakey/internal/config"
	"github.com/oshokin/wakey-wakey/internal/logger"
	"github.com/oshokin/wakey-wakey/internal/service/common"
	"github.com/oshokin/wakey-wakey/internal/version"
)

// Options controls the wakey-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// DataDir overrides the directory holding the persisted alarms and settings.
	DataDir string
}

// ErrNoListenAddress indicates missing listen configuration.
var ErrNoListenAddress = errors.New("no listen address configured")

// Run starts the daemon and blocks until context is canceled or a component fails.
// Loads configuration first, then determines listen address and data directory
// from config or overrides.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "wakey-server")

	// Load configuration first to get server settings.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	logger.Configure(cfg.LogLevel)
	logger.InfoKV(ctx, "Starting alarm daemon", version.Fields()...)

	// Two daemons would deliver every alarm twice.
	if err = common.EnsureSingleInstance(); err != nil {
		return err
	}

	// Use DataDir from config unless overridden by command line option.
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}

	// Determine listen address: CLI argument overrides config.
	listenAddress, err := resolveListenAddress(cfg.ListenAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	d, err := newDaemon(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialise daemon: %w", err)
	}

	// Setup TCP listener for gRPC server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	logger.InfoKV(ctx, "Alarm daemon listening", "listen_address", lis.Addr().String(), "data_dir", cfg.DataDir)

	return d.serve(ctx, lis)
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise the configured address is used.
func resolveListenAddress(configAddr, override string) (string, error) {
	// Use override address if provided (e.g., ":9090", "127.0.0.1:8080").
	if override != "" {
		if _, _, err := net.SplitHostPort(override); err != nil {
			return "", fmt.Errorf("invalid listen address format %q: %w", override, err)
		}

		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoListenAddress
	}

	return configAddr, nil
}
