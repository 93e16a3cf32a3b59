package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	api "github.com/oshokin/wakey-wakey/internal/api/grpc/alarm"
	"github.com/oshokin/wakey-wakey/internal/config"
	domain "github.com/oshokin/wakey-wakey/internal/domain/alarm"
	"github.com/oshokin/wakey-wakey/internal/export/ical"
	"github.com/oshokin/wakey-wakey/internal/logger"
	"github.com/oshokin/wakey-wakey/internal/service/common"
)

// Options configures how wakey-ctl reaches the daemon and prints answers.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// ServerAddress overrides the daemon address from config when specified.
	ServerAddress string
	// Out receives the command output. Defaults to os.Stdout.
	Out io.Writer
	// NoColor disables colored output.
	NoColor bool
}

// errAlarmNotFound is returned when a command addresses an unknown alarm.
var errAlarmNotFound = errors.New("alarm not found")

// Session is a connection to the daemon plus the output settings.
type Session struct {
	client  *common.Client
	printer *printer
	loc     *time.Location
	now     func() time.Time
	// repeatDays follows the daemon's respect_repeat_days setting.
	repeatDays bool
}

// Connect loads the configuration and dials the daemon.
func Connect(ctx context.Context, opts *Options) (*Session, error) {
	ctx = logger.WithName(ctx, "wakey-ctl")

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	// Use server address from options if provided, otherwise use config.
	serverAddress := cfg.ListenAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	// Identify current user and hostname for attribution on the daemon.
	actor, err := common.DetectActor()
	if err != nil {
		logger.WarnKV(ctx, "Unable to detect actor", "error", err)
	}

	client, err := common.Dial(ctx, serverAddress,
		common.WithCallTimeout(cfg.Timeout),
		common.WithActor(actor),
	)
	if err != nil {
		return nil, err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	logger.DebugKV(ctx, "Connected to alarm daemon", "address", serverAddress)

	return &Session{
		client:     client,
		printer:    newPrinter(out, loc, opts.NoColor),
		loc:        loc,
		now:        time.Now,
		repeatDays: cfg.RespectRepeatDays,
	}, nil
}

// Close releases the connection.
func (s *Session) Close() error {
	return s.client.Close()
}

// AlarmParams are the alarm fields given on the command line.
// Nil fields are left unchanged by Update and take defaults in Add.
type AlarmParams struct {
	// Time is "HH:MM".
	Time *string
	// Label is the alarm label.
	Label *string
	// Repeat is a weekday list accepted by ParseWeekdays.
	Repeat *string
	// Enabled sets the enabled flag.
	Enabled *bool
	// SnoozeTaps and DismissTaps are the tap counts.
	SnoozeTaps  *int
	DismissTaps *int
	// MoveSpeed is the target speed.
	MoveSpeed *float64
	// Image is the image type.
	Image *string
	// ImageFile is a photo to store as the custom image.
	ImageFile *string
}

// apply copies the given fields onto msg.
func (s *Session) apply(p *AlarmParams, msg *api.AlarmMessage) error {
	if p.Time != nil {
		at, err := ParseClock(*p.Time, s.now(), s.loc)
		if err != nil {
			return err
		}

		msg.TimeUnixNano = at.UnixNano()
	}

	if p.Repeat != nil {
		days, err := ParseWeekdays(*p.Repeat)
		if err != nil {
			return err
		}

		msg.RepeatDays = msg.RepeatDays[:0:0]
		for _, day := range days {
			msg.RepeatDays = append(msg.RepeatDays, int(day))
		}
	}

	if p.ImageFile != nil {
		data, err := os.ReadFile(filepath.Clean(*p.ImageFile))
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}

		msg.CustomImage = data
		msg.ImageType = string(domain.ImageCustomPhoto)
	}

	setIfPresent(&msg.Label, p.Label)
	setIfPresent(&msg.Enabled, p.Enabled)
	setIfPresent(&msg.SnoozeCount, p.SnoozeTaps)
	setIfPresent(&msg.DismissCount, p.DismissTaps)
	setIfPresent(&msg.MoveSpeed, p.MoveSpeed)
	setIfPresent(&msg.ImageType, p.Image)

	return nil
}

// Add creates an alarm. Unset tap counts and speed take the daemon defaults.
func (s *Session) Add(ctx context.Context, p *AlarmParams) error {
	msg := api.AlarmMessage{Enabled: true}

	if err := s.apply(p, &msg); err != nil {
		return err
	}

	resp, err := s.client.AddAlarm(ctx, &msg)
	if err != nil {
		return err
	}

	s.printer.alarm("Added", &resp.Alarm)
	s.printer.warnings(resp.Warnings)

	return nil
}

// Update changes the given fields of an alarm.
func (s *Session) Update(ctx context.Context, id string, p *AlarmParams) error {
	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.apply(p, current); err != nil {
		return err
	}

	resp, err := s.client.UpdateAlarm(ctx, current)
	if err != nil {
		return err
	}

	s.printer.alarm("Updated", current)
	s.printer.warnings(resp.Warnings)

	return nil
}

// Delete removes an alarm.
func (s *Session) Delete(ctx context.Context, id string) error {
	resp, err := s.client.DeleteAlarm(ctx, id)
	if err != nil {
		return err
	}

	s.printer.disabled.Fprintf(s.printer.out, "Deleted alarm %s\n", id)
	s.printer.warnings(resp.Warnings)

	return nil
}

// Toggle flips an alarm on or off.
func (s *Session) Toggle(ctx context.Context, id string) error {
	resp, err := s.client.ToggleAlarm(ctx, id)
	if err != nil {
		return err
	}

	if resp.Alarm.ID == "" {
		s.printer.disabled.Fprintf(s.printer.out, "No alarm %s, nothing toggled\n", id)
		return nil
	}

	s.printer.alarm("Toggled", &resp.Alarm)
	s.printer.warnings(resp.Warnings)

	return nil
}

// List prints every alarm.
func (s *Session) List(ctx context.Context) error {
	resp, err := s.client.ListAlarms(ctx)
	if err != nil {
		return err
	}

	s.printer.alarms(resp.Alarms, resp.Pending)

	return nil
}

// Trigger makes an alarm ring now.
func (s *Session) Trigger(ctx context.Context, id string) error {
	resp, err := s.client.TriggerAlarm(ctx, id)
	if err != nil {
		return err
	}

	s.printer.state(&resp.State)

	return nil
}

// Snooze snoozes the ringing alarm.
func (s *Session) Snooze(ctx context.Context) error {
	resp, err := s.client.SnoozeAlarm(ctx)
	if err != nil {
		return err
	}

	s.printer.state(&resp.State)
	s.printer.warnings(resp.Warnings)

	return nil
}

// Dismiss dismisses the ringing alarm.
func (s *Session) Dismiss(ctx context.Context) error {
	resp, err := s.client.DismissAlarm(ctx)
	if err != nil {
		return err
	}

	s.printer.state(&resp.State)

	return nil
}

// Deliver forwards a notification event. An empty fireTime targets the
// latest delivery of the alarm; otherwise it is RFC 3339.
func (s *Session) Deliver(ctx context.Context, id, action, fireTime string) error {
	var at time.Time

	if fireTime != "" {
		parsed, err := time.Parse(time.RFC3339, fireTime)
		if err != nil {
			return fmt.Errorf("parse fire time: %w", err)
		}

		at = parsed
	}

	resp, err := s.client.Deliver(ctx, id, action, at)
	if err != nil {
		return err
	}

	s.printer.state(&resp.State)

	return nil
}

// State prints the trigger state.
func (s *Session) State(ctx context.Context) error {
	resp, err := s.client.GetTriggerState(ctx)
	if err != nil {
		return err
	}

	s.printer.state(&resp.State)

	return nil
}

// Watch prints the trigger state after every change until ctx is done.
func (s *Session) Watch(ctx context.Context) error {
	return s.client.Watch(ctx, func(event *api.WatchEvent) error {
		fmt.Fprintf(s.printer.out, "[%s] %d alarms, ", s.now().In(s.loc).Format(time.TimeOnly), len(event.Alarms))
		s.printer.state(&event.State)

		return nil
	})
}

// Reconcile asks the daemon to repair the pending notifications.
func (s *Session) Reconcile(ctx context.Context) error {
	resp, err := s.client.Reconcile(ctx)
	if err != nil {
		return err
	}

	s.printer.reconcile(resp)

	return nil
}

// SettingsParams are the settings given on the command line. Nil fields are unchanged.
type SettingsParams struct {
	SnoozeTaps            *int
	DismissTaps           *int
	MoveSpeed             *float64
	SnoozeDurationMinutes *int
	SoundVolume           *float64
	Vibration             *bool
	AIProvider            *string

	// APIKey sets the user API key; an empty value clears it.
	APIKey *string
}

// ShowSettings prints the application settings.
func (s *Session) ShowSettings(ctx context.Context) error {
	resp, err := s.client.GetSettings(ctx)
	if err != nil {
		return err
	}

	s.printer.settings(&resp.Settings)

	return nil
}

// SetSettings changes the given settings.
func (s *Session) SetSettings(ctx context.Context, p *SettingsParams) error {
	current, err := s.client.GetSettings(ctx)
	if err != nil {
		return err
	}

	next := current.Settings

	setIfPresent(&next.DefaultSnoozeTaps, p.SnoozeTaps)
	setIfPresent(&next.DefaultDismissTaps, p.DismissTaps)
	setIfPresent(&next.DefaultMoveSpeed, p.MoveSpeed)
	setIfPresent(&next.SnoozeDurationMinutes, p.SnoozeDurationMinutes)
	setIfPresent(&next.SoundVolume, p.SoundVolume)
	setIfPresent(&next.VibrationEnabled, p.Vibration)
	setIfPresent(&next.AIProvider, p.AIProvider)

	if p.APIKey != nil {
		next.UserAPIKey = nil

		if *p.APIKey != "" {
			key := *p.APIKey
			next.UserAPIKey = &key
		}
	}

	resp, err := s.client.UpdateSettings(ctx, &next)
	if err != nil {
		return err
	}

	s.printer.settings(&resp.Settings)
	s.printer.warnings(resp.Warnings)

	return nil
}

// UseQuota consumes one free AI generation.
func (s *Session) UseQuota(ctx context.Context) error {
	resp, err := s.client.UseAIQuota(ctx)
	if err != nil {
		return err
	}

	s.printer.quota(resp)

	return nil
}

// ResetQuota restores the free AI generations.
func (s *Session) ResetQuota(ctx context.Context) error {
	resp, err := s.client.ResetQuota(ctx)
	if err != nil {
		return err
	}

	s.printer.quota(resp)

	return nil
}

// Export writes the alarms as an iCalendar document to w. Events repeat on
// the selected weekdays only when the daemon honors them.
func (s *Session) Export(ctx context.Context, w io.Writer) error {
	resp, err := s.client.ListAlarms(ctx)
	if err != nil {
		return err
	}

	alarms := make([]domain.Alarm, 0, len(resp.Alarms))
	for i := range resp.Alarms {
		alarms = append(alarms, api.FromAlarmMessage(&resp.Alarms[i]))
	}

	return ical.Encode(w, alarms, s.loc, ical.WithRepeatDays(s.repeatDays))
}

// find returns the alarm with id.
func (s *Session) find(ctx context.Context, id string) (*api.AlarmMessage, error) {
	resp, err := s.client.ListAlarms(ctx)
	if err != nil {
		return nil, err
	}

	for i := range resp.Alarms {
		if resp.Alarms[i].ID == id {
			return &resp.Alarms[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", errAlarmNotFound, id)
}

func setIfPresent[T any](dst *T, value *T) {
	if value != nil {
		*dst = *value
	}
}
