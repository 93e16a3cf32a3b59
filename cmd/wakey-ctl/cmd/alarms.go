package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	client "github.com/oshokin/wakey-wakey/internal/service/client"
)

// alarmFlags registers the alarm field flags on fs.
func alarmFlags(fs *pflag.FlagSet) {
	fs.String("time", "", "time of day, HH:MM")
	fs.String("label", "", "alarm label")
	fs.String("repeat", "", "weekdays, e.g. mon,wed,fri or weekdays, weekends, daily")
	fs.Bool("enabled", true, "whether the alarm is enabled")
	fs.Int("snooze-taps", 0, "taps needed to snooze")
	fs.Int("dismiss-taps", 0, "taps needed to dismiss")
	fs.Float64("speed", 0, "target move speed")
	fs.String("image", "", "image type: default_bunny, default_lobster, custom_photo, ai_generated")
	fs.String("image-file", "", "photo to use as custom image")
}

// alarmParams reads the flags the user set.
func alarmParams(fs *pflag.FlagSet) *client.AlarmParams {
	params := new(client.AlarmParams)

	params.Time = changed(fs, "time", fs.GetString)
	params.Label = changed(fs, "label", fs.GetString)
	params.Repeat = changed(fs, "repeat", fs.GetString)
	params.Enabled = changed(fs, "enabled", fs.GetBool)
	params.SnoozeTaps = changed(fs, "snooze-taps", fs.GetInt)
	params.DismissTaps = changed(fs, "dismiss-taps", fs.GetInt)
	params.MoveSpeed = changed(fs, "speed", fs.GetFloat64)
	params.Image = changed(fs, "image", fs.GetString)
	params.ImageFile = changed(fs, "image-file", fs.GetString)

	return params
}

// changed returns the flag value when the user set it, nil otherwise.
func changed[T any](fs *pflag.FlagSet, name string, get func(string) (T, error)) *T {
	if !fs.Changed(name) {
		return nil
	}

	value, err := get(name)
	if err != nil {
		return nil
	}

	return &value
}

func newAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an alarm.",
		Long: `Creates an alarm. Tap counts and speed default to the application settings,
the label defaults to "Wake up!".`,
		Example: "  wakey-ctl add --time 07:30 --label Work --repeat weekdays",
		Args:    cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, cmd *cobra.Command, _ []string, s *client.Session) error {
			return s.Add(ctx, alarmParams(cmd.Flags()))
		}),
	}

	alarmFlags(cmd.Flags())

	if err := cmd.MarkFlagRequired("time"); err != nil {
		panic(err)
	}

	return cmd
}

func newUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update <alarm-id>",
		Short:   "Change fields of an alarm.",
		Example: "  wakey-ctl update 4f9c... --time 08:00 --repeat none",
		Args:    cobra.ExactArgs(1),
		RunE: withSession(func(ctx context.Context, cmd *cobra.Command, args []string, s *client.Session) error {
			return s.Update(ctx, args[0], alarmParams(cmd.Flags()))
		}),
	}

	alarmFlags(cmd.Flags())

	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <alarm-id>",
		Aliases: []string{"rm"},
		Short:   "Delete an alarm and cancel its notification.",
		Args:    cobra.ExactArgs(1),
		RunE: withSession(func(ctx context.Context, _ *cobra.Command, args []string, s *client.Session) error {
			return s.Delete(ctx, args[0])
		}),
	}
}

func newToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <alarm-id>",
		Short: "Enable a disabled alarm or disable an enabled one.",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(ctx context.Context, _ *cobra.Command, args []string, s *client.Session) error {
			return s.Toggle(ctx, args[0])
		}),
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List alarms and whether they are scheduled.",
		Args:    cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, _ *cobra.Command, _ []string, s *client.Session) error {
			return s.List(ctx)
		}),
	}
}
