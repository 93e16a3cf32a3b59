package client

import (
	"bytes"
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	api "github.com/oshokin/wakey-wakey/internal/api/grpc/alarm"
	"github.com/oshokin/wakey-wakey/internal/config"
	"github.com/oshokin/wakey-wakey/internal/lifecycle"
	"github.com/oshokin/wakey-wakey/internal/repository/alarms"
	"github.com/oshokin/wakey-wakey/internal/repository/kv"
	settingsrepo "github.com/oshokin/wakey-wakey/internal/repository/settings"
	"github.com/oshokin/wakey-wakey/internal/scheduler"
)

// startServer serves the control API on a free loopback port and writes a
// config file pointing at it.
func startServer(t *testing.T) (string, *lifecycle.Manager) {
	t.Helper()

	ctx := context.Background()

	store, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)

	local := scheduler.NewLocal(scheduler.WithLocation(time.UTC))
	settingsStore := settingsrepo.NewStore(ctx, store)
	manager := lifecycle.New(ctx, alarms.NewFileRepository(store), local, settingsStore, lifecycle.WithLocation(time.UTC))

	_, err = manager.Start(ctx)
	require.NoError(t, err)

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(api.UnaryActorInterceptor()),
		grpc.ChainStreamInterceptor(api.StreamActorInterceptor()),
	)
	api.NewServer(manager, settingsStore, local).Register(srv)

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		_ = srv.Serve(lis)
	}()

	t.Cleanup(srv.Stop)

	cfg := &config.Config{
		ListenAddress: lis.Addr().String(),
		Timezone:      "UTC",
	}
	require.NoError(t, config.Validate(cfg))

	path := filepath.Join(t.TempDir(), config.DefaultConfigFilename)
	require.NoError(t, config.Save(path, cfg))

	return path, manager
}

func connect(t *testing.T, configPath string) (*Session, *bytes.Buffer) {
	t.Helper()

	out := new(bytes.Buffer)

	session, err := Connect(context.Background(), &Options{
		ConfigPath: configPath,
		Out:        out,
		NoColor:    true,
	})
	require.NoError(t, err)

	session.now = func() time.Time {
		return time.Date(2026, time.October, 17, 6, 0, 0, 0, time.UTC)
	}

	t.Cleanup(func() {
		_ = session.Close()
	})

	return session, out
}

func ptr[T any](v T) *T {
	return &v
}

// TestSession_AlarmCommands drives add, update, toggle and delete through the daemon.
func TestSession_AlarmCommands(t *testing.T) {
	t.Parallel()

	configPath, manager := startServer(t)
	session, out := connect(t, configPath)
	ctx := context.Background()

	require.NoError(t, session.Add(ctx, &AlarmParams{
		Time:   ptr("07:30"),
		Label:  ptr("Work"),
		Repeat: ptr("weekdays"),
	}))
	require.Contains(t, out.String(), "Added alarm")

	list := manager.Alarms()
	require.Len(t, list, 1)

	added := list[0]
	require.Equal(t, "Work", added.Label)
	require.Len(t, added.RepeatDays, 5)
	require.Equal(t, 1, added.SnoozeCount)
	require.Equal(t, 3, added.DismissCount)

	require.NoError(t, session.Update(ctx, added.ID, &AlarmParams{
		Label:      ptr("Gym"),
		Repeat:     ptr("none"),
		SnoozeTaps: ptr(4),
	}))

	updated, ok := manager.Alarm(added.ID)
	require.True(t, ok)
	require.Equal(t, "Gym", updated.Label)
	require.Empty(t, updated.RepeatDays)
	require.Equal(t, 4, updated.SnoozeCount)
	require.True(t, updated.Time.Equal(added.Time))

	require.ErrorIs(t, session.Update(ctx, "missing", &AlarmParams{}), errAlarmNotFound)

	require.NoError(t, session.Toggle(ctx, added.ID))

	toggled, _ := manager.Alarm(added.ID)
	require.False(t, toggled.IsEnabled)

	out.Reset()
	require.NoError(t, session.List(ctx))
	require.Contains(t, out.String(), "Gym")

	require.NoError(t, session.Delete(ctx, added.ID))
	require.Empty(t, manager.Alarms())

	out.Reset()
	require.NoError(t, session.Toggle(ctx, added.ID))
	require.Equal(t, "No alarm "+added.ID+", nothing toggled\n", out.String())
	require.Empty(t, manager.Alarms())
}

// TestSession_TriggerCommands rings, snoozes and dismisses an alarm.
func TestSession_TriggerCommands(t *testing.T) {
	t.Parallel()

	configPath, manager := startServer(t)
	session, out := connect(t, configPath)
	ctx := context.Background()

	require.NoError(t, session.Add(ctx, &AlarmParams{Time: ptr("07:00")}))

	id := manager.Alarms()[0].ID

	out.Reset()
	require.NoError(t, session.Trigger(ctx, id))
	require.Contains(t, out.String(), "TRIGGERING "+id)

	out.Reset()
	require.NoError(t, session.Snooze(ctx))
	require.Equal(t, "IDLE\n", out.String())

	require.NoError(t, session.Trigger(ctx, id))

	out.Reset()
	require.NoError(t, session.Dismiss(ctx))
	require.Equal(t, "IDLE\n", out.String())

	require.Error(t, session.Deliver(ctx, id, "dismiss", "yesterday"))
}

// TestSession_Settings updates a subset of the settings and uses the quota.
func TestSession_Settings(t *testing.T) {
	t.Parallel()

	configPath, _ := startServer(t)
	session, out := connect(t, configPath)
	ctx := context.Background()

	require.NoError(t, session.SetSettings(ctx, &SettingsParams{
		SnoozeDurationMinutes: ptr(10),
		APIKey:                ptr("secret"),
	}))
	require.Contains(t, out.String(), "10 min")
	require.Regexp(t, `api key\s+set`, out.String())

	out.Reset()
	require.NoError(t, session.UseQuota(ctx))
	require.Contains(t, out.String(), "Free AI generations left: 4")

	out.Reset()
	require.NoError(t, session.ResetQuota(ctx))
	require.Contains(t, out.String(), "left: 5")
}

// TestSession_Export writes a calendar with one event per alarm whose rule
// follows the repeat-days setting.
func TestSession_Export(t *testing.T) {
	t.Parallel()

	configPath, _ := startServer(t)
	session, _ := connect(t, configPath)
	ctx := context.Background()

	require.NoError(t, session.Add(ctx, &AlarmParams{Time: ptr("07:00"), Label: ptr("Work"), Repeat: ptr("mon,fri")}))

	var calendar bytes.Buffer

	require.NoError(t, session.Export(ctx, &calendar))
	require.Contains(t, calendar.String(), "BEGIN:VEVENT")
	require.Contains(t, calendar.String(), "SUMMARY:Work")
	require.Contains(t, calendar.String(), "RRULE:FREQ=DAILY")

	session.repeatDays = true

	calendar.Reset()
	require.NoError(t, session.Export(ctx, &calendar))
	require.Contains(t, calendar.String(), "RRULE:FREQ=WEEKLY;BYDAY=MO,FR")
}
