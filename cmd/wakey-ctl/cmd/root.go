package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/wakey-wakey/internal/config"
	"github.com/oshokin/wakey-wakey/internal/logger"
	client "github.com/oshokin/wakey-wakey/internal/service/client"
	"github.com/oshokin/wakey-wakey/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// serverAddress overrides the daemon address from config.
	serverAddress string
	// noColor disables colored output.
	noColor bool
	// verbose enables debug logs.
	verbose bool

	// rootCmd represents the base command for controlling the alarm daemon.
	rootCmd = &cobra.Command{
		Use:   "wakey-ctl",
		Short: "Control a running wakey-server.",
		Long: `Manages alarms, the ringing alarm and the application settings of a running
wakey-server.

The daemon address is loaded from the configuration file and can be overridden
with --server. Every command sends one request and prints the answer.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// Only warnings reach the terminal unless asked otherwise.
			level := zapcore.WarnLevel
			if verbose {
				level = zapcore.DebugLevel
			}

			logger.SetLevel(level)
		},
	}
)

// Execute runs the wakey-ctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withSession connects to the daemon, runs fn and closes the connection.
func withSession(fn func(ctx context.Context, cmd *cobra.Command, args []string, s *client.Session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		session, err := client.Connect(ctx, &client.Options{
			ConfigPath:    cfgPath,
			ServerAddress: serverAddress,
			Out:           cmd.OutOrStdout(),
			NoColor:       noColor,
		})
		if err != nil {
			return err
		}

		defer func() {
			_ = session.Close()
		}()

		return fn(ctx, cmd, args, session)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&serverAddress, "server", "s", "", "daemon address (overrides config)")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&verbose, "verbose", "v", false, "print debug logs")

	rootCmd.AddCommand(
		newAddCommand(),
		newUpdateCommand(),
		newDeleteCommand(),
		newToggleCommand(),
		newListCommand(),
		newTriggerCommand(),
		newSnoozeCommand(),
		newDismissCommand(),
		newDeliverCommand(),
		newStateCommand(),
		newWatchCommand(),
		newReconcileCommand(),
		newSettingsCommand(),
		newQuotaCommand(),
		newExportCommand(),
	)
}
