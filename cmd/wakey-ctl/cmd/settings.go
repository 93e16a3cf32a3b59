package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	client "github.com/oshokin/wakey-wakey/internal/service/client"
)

func newSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the application settings.",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the application settings.",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, _ *cobra.Command, _ []string, s *client.Session) error {
			return s.ShowSettings(ctx)
		}),
	}

	set := &cobra.Command{
		Use:     "set",
		Short:   "Change the given settings.",
		Example: "  wakey-ctl settings set --snooze-minutes 10 --vibration=false",
		Args:    cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, cmd *cobra.Command, _ []string, s *client.Session) error {
			fs := cmd.Flags()

			return s.SetSettings(ctx, &client.SettingsParams{
				SnoozeTaps:            changed(fs, "snooze-taps", fs.GetInt),
				DismissTaps:           changed(fs, "dismiss-taps", fs.GetInt),
				MoveSpeed:             changed(fs, "speed", fs.GetFloat64),
				SnoozeDurationMinutes: changed(fs, "snooze-minutes", fs.GetInt),
				SoundVolume:           changed(fs, "volume", fs.GetFloat64),
				Vibration:             changed(fs, "vibration", fs.GetBool),
				AIProvider:            changed(fs, "ai-provider", fs.GetString),
				APIKey:                changed(fs, "api-key", fs.GetString),
			})
		}),
	}

	fs := set.Flags()
	fs.Int("snooze-taps", 0, "default taps needed to snooze")
	fs.Int("dismiss-taps", 0, "default taps needed to dismiss")
	fs.Float64("speed", 0, "default target move speed")
	fs.Int("snooze-minutes", 0, "snooze duration in minutes")
	fs.Float64("volume", 0, "sound volume from 0 to 1")
	fs.Bool("vibration", true, "vibrate while ringing")
	fs.String("ai-provider", "", "AI image provider: minimax, openai, stability, user_custom")
	fs.String("api-key", "", "user API key for the AI provider, empty to clear")

	cmd.AddCommand(show, set)

	return cmd
}

func newQuotaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Use or reset the free AI generation quota.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "use",
			Short: "Consume one free AI generation.",
			Args:  cobra.NoArgs,
			RunE: withSession(func(ctx context.Context, _ *cobra.Command, _ []string, s *client.Session) error {
				return s.UseQuota(ctx)
			}),
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the free AI generations.",
			Args:  cobra.NoArgs,
			RunE: withSession(func(ctx context.Context, _ *cobra.Command, _ []string, s *client.Session) error {
				return s.ResetQuota(ctx)
			}),
		},
	)

	return cmd
}

func newExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export the alarms as an iCalendar file.",
		Example: "  wakey-ctl export -o alarms.ics",
		Args:    cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, cmd *cobra.Command, _ []string, s *client.Session) error {
			var w io.Writer = cmd.OutOrStdout()

			if output != "" && output != "-" {
				f, err := os.Create(filepath.Clean(output))
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}

				defer func() {
					_ = f.Close()
				}()

				w = f
			}

			return s.Export(ctx, w)
		}),
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "file to write, - for standard output")

	return cmd
}
