package cmd

import (
	"context"

	"github.com/spf13/cobra"

	client "github.com/oshokin/wakey-wakey/internal/service/client"
)

func newTriggerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trigger <alarm-id>",
		Short: "Ring an alarm now.",
		Long:  `Rings an alarm now. If another alarm is ringing it is queued behind it.`,
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(ctx context.Context, _ *cobra.Command, args []string, s *client.Session) error {
			return s.Trigger(ctx, args[0])
		}),
	}
}

func newSnoozeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "snooze",
		Short: "Snooze the ringing alarm.",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, _ *cobra.Command, _ []string, s *client.Session) error {
			return s.Snooze(ctx)
		}),
	}
}

func newDismissCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss",
		Short: "Dismiss the ringing alarm.",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, _ *cobra.Command, _ []string, s *client.Session) error {
			return s.Dismiss(ctx)
		}),
	}
}

func newDeliverCommand() *cobra.Command {
	var fireTime string

	cmd := &cobra.Command{
		Use:   "deliver <alarm-id> <delivered|default_tap|snooze|dismiss>",
		Short: "Answer a notification as if the user acted on it.",
		Long: `Forwards a notification action to the daemon. Without --fire-time the action
refers to the latest delivery of the alarm.`,
		Args: cobra.ExactArgs(2),
		RunE: withSession(func(ctx context.Context, _ *cobra.Command, args []string, s *client.Session) error {
			return s.Deliver(ctx, args[0], args[1], fireTime)
		}),
	}

	cmd.Flags().StringVar(&fireTime, "fire-time", "", "fire time of the delivery, RFC 3339")

	return cmd
}

func newStateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the trigger state.",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, _ *cobra.Command, _ []string, s *client.Session) error {
			return s.State(ctx)
		}),
	}
}

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the trigger state after every change until interrupted.",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, _ *cobra.Command, _ []string, s *client.Session) error {
			return s.Watch(ctx)
		}),
	}
}

func newReconcileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Make the pending notifications match the enabled alarms.",
		Args:  cobra.NoArgs,
		RunE: withSession(func(ctx context.Context, _ *cobra.Command, _ []string, s *client.Session) error {
			return s.Reconcile(ctx)
		}),
	}
}
