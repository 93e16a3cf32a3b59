//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	api "github.com/oshokin/wakey-wakey/internal/api/grpc/alarm"
	"github.com/oshokin/wakey-wakey/internal/config"
)

// Client wraps the gRPC AlarmService client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the daemon.
	conn *grpc.ClientConn
	// api is the typed AlarmService client.
	api *api.ServiceClient

	// actor is attached to every call as the caller identity.
	actor string
	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithActor sets the caller identity sent with every call.
func WithActor(actor string) Option {
	return func(c *Client) {
		c.actor = actor
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errAlarmIDRequired is returned when an alarm id is not provided.
	errAlarmIDRequired = errors.New("alarm id must be provided")
)

// Dial establishes a gRPC connection to the daemon.
// Note: this uses insecure transport credentials; the daemon is meant to
// listen on loopback.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
	)
	if err != nil {
		return nil, fmt.Errorf("dial alarm daemon: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         api.NewServiceClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// AddAlarm creates an alarm and returns it as stored.
func (c *Client) AddAlarm(ctx context.Context, alarm *api.AlarmMessage) (*api.AlarmResponse, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.AddAlarm(callCtx, &api.AlarmRequest{Alarm: *alarm})
	if err != nil {
		return nil, fmt.Errorf("add alarm: %w", err)
	}

	return resp, nil
}

// UpdateAlarm replaces an alarm.
func (c *Client) UpdateAlarm(ctx context.Context, alarm *api.AlarmMessage) (*api.MutationResponse, error) {
	if alarm.ID == "" {
		return nil, errAlarmIDRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.UpdateAlarm(callCtx, &api.AlarmRequest{Alarm: *alarm})
	if err != nil {
		return nil, fmt.Errorf("update alarm: %w", err)
	}

	return resp, nil
}

// DeleteAlarm removes an alarm.
func (c *Client) DeleteAlarm(ctx context.Context, id string) (*api.MutationResponse, error) {
	if id == "" {
		return nil, errAlarmIDRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.DeleteAlarm(callCtx, &api.AlarmIDRequest{ID: id})
	if err != nil {
		return nil, fmt.Errorf("delete alarm: %w", err)
	}

	return resp, nil
}

// ToggleAlarm flips an alarm.
func (c *Client) ToggleAlarm(ctx context.Context, id string) (*api.AlarmResponse, error) {
	if id == "" {
		return nil, errAlarmIDRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.ToggleAlarm(callCtx, &api.AlarmIDRequest{ID: id})
	if err != nil {
		return nil, fmt.Errorf("toggle alarm: %w", err)
	}

	return resp, nil
}

// ListAlarms returns every alarm and the pending notification ids.
func (c *Client) ListAlarms(ctx context.Context) (*api.ListAlarmsResponse, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.ListAlarms(callCtx)
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}

	return resp, nil
}

// GetTriggerState returns the trigger state.
func (c *Client) GetTriggerState(ctx context.Context) (*api.TriggerStateResponse, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.GetTriggerState(callCtx)
	if err != nil {
		return nil, fmt.Errorf("get trigger state: %w", err)
	}

	return resp, nil
}

// TriggerAlarm makes an alarm ring.
func (c *Client) TriggerAlarm(ctx context.Context, id string) (*api.TriggerStateResponse, error) {
	if id == "" {
		return nil, errAlarmIDRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.TriggerAlarm(callCtx, &api.AlarmIDRequest{ID: id})
	if err != nil {
		return nil, fmt.Errorf("trigger alarm: %w", err)
	}

	return resp, nil
}

// SnoozeAlarm snoozes the ringing alarm.
func (c *Client) SnoozeAlarm(ctx context.Context) (*api.TriggerStateResponse, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.SnoozeAlarm(callCtx)
	if err != nil {
		return nil, fmt.Errorf("snooze alarm: %w", err)
	}

	return resp, nil
}

// DismissAlarm dismisses the ringing alarm.
func (c *Client) DismissAlarm(ctx context.Context) (*api.TriggerStateResponse, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.DismissAlarm(callCtx)
	if err != nil {
		return nil, fmt.Errorf("dismiss alarm: %w", err)
	}

	return resp, nil
}

// Deliver forwards a notification delivery or user response.
// A zero fireTime refers to the latest delivery of the alarm.
func (c *Client) Deliver(ctx context.Context, id, action string, fireTime time.Time) (*api.TriggerStateResponse, error) {
	if id == "" {
		return nil, errAlarmIDRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	request := &api.DeliverRequest{
		AlarmID: id,
		Action:  action,
	}

	if !fireTime.IsZero() {
		request.FireTimeUnixNano = fireTime.UnixNano()
	}

	resp, err := c.api.Deliver(callCtx, request)
	if err != nil {
		return nil, fmt.Errorf("deliver: %w", err)
	}

	return resp, nil
}

// Reconcile aligns the pending notifications with the enabled alarms.
func (c *Client) Reconcile(ctx context.Context) (*api.ReconcileResponse, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.Reconcile(callCtx)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}

	return resp, nil
}

// GetSettings returns the application settings.
func (c *Client) GetSettings(ctx context.Context) (*api.SettingsResponse, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.GetSettings(callCtx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return resp, nil
}

// UpdateSettings replaces the application settings.
func (c *Client) UpdateSettings(ctx context.Context, settings *api.SettingsMessage) (*api.SettingsResponse, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.UpdateSettings(callCtx, &api.SettingsRequest{Settings: *settings})
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	return resp, nil
}

// UseAIQuota consumes one free AI generation.
func (c *Client) UseAIQuota(ctx context.Context) (*api.QuotaResponse, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.UseAIQuota(callCtx)
	if err != nil {
		return nil, fmt.Errorf("use AI quota: %w", err)
	}

	return resp, nil
}

// ResetQuota restores the free AI generations.
func (c *Client) ResetQuota(ctx context.Context) (*api.QuotaResponse, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.ResetQuota(callCtx)
	if err != nil {
		return nil, fmt.Errorf("reset quota: %w", err)
	}

	return resp, nil
}

// Watch calls fn with every snapshot until ctx is done or the stream ends.
// The stream is not subject to the call timeout.
func (c *Client) Watch(ctx context.Context, fn func(*api.WatchEvent) error) error {
	stream, err := c.api.Watch(api.WithActor(ctx, c.actor))
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	for {
		event, err := stream.Recv()

		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("watch: %w", err)
		}

		if err = fn(event); err != nil {
			return err
		}
	}
}

// callContext returns a context carrying the actor with the client's call
// timeout if configured, otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = api.WithActor(ctx, c.actor)

	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
