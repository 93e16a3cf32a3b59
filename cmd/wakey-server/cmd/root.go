package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/wakey-wakey/internal/config"
	"github.com/oshokin/wakey-wakey/internal/service/server"
	"github.com/oshokin/wakey-wakey/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// dataDir where alarms and settings are persisted.
	dataDir string

	// rootCmd represents the base command for running the alarm daemon.
	rootCmd = &cobra.Command{
		Use:   "wakey-server [listen-address]",
		Short: "Run the alarm daemon.",
		Long: `Starts the alarm daemon that owns the alarm collection, rings alarms on time
and keeps the pending notifications in line with the enabled alarms.

The daemon listens on the address from the configuration file unless one is given
as argument (e.g., :9090, 127.0.0.1:7311). Every setting can be overridden with a
WAKEY_* environment variable. Alarms and settings are persisted to the data directory
and restored on the next start.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			return server.Run(ctx, &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				DataDir:       dataDir,
			})
		},
	}
)

// Execute runs the wakey-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&dataDir, "data-dir", "d", "", "directory for persisted alarms and settings (overrides config)")
}
