package alarm

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceClient is the typed client of the alarm service.
type ServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewServiceClient returns a client over cc. Calls use the CBOR codec.
func NewServiceClient(cc grpc.ClientConnInterface) *ServiceClient {
	return &ServiceClient{cc: cc}
}

// AddAlarm calls AlarmService.AddAlarm.
func (c *ServiceClient) AddAlarm(ctx context.Context, in *AlarmRequest, opts ...grpc.CallOption) (*AlarmResponse, error) {
	return invoke[AlarmResponse](ctx, c.cc, AddAlarmMethod, in, opts)
}

// UpdateAlarm calls AlarmService.UpdateAlarm.
func (c *ServiceClient) UpdateAlarm(ctx context.Context, in *AlarmRequest, opts ...grpc.CallOption) (*MutationResponse, error) {
	return invoke[MutationResponse](ctx, c.cc, UpdateAlarmMethod, in, opts)
}

// DeleteAlarm calls AlarmService.DeleteAlarm.
func (c *ServiceClient) DeleteAlarm(ctx context.Context, in *AlarmIDRequest, opts ...grpc.CallOption) (*MutationResponse, error) {
	return invoke[MutationResponse](ctx, c.cc, DeleteAlarmMethod, in, opts)
}

// ToggleAlarm calls AlarmService.ToggleAlarm.
func (c *ServiceClient) ToggleAlarm(ctx context.Context, in *AlarmIDRequest, opts ...grpc.CallOption) (*AlarmResponse, error) {
	return invoke[AlarmResponse](ctx, c.cc, ToggleAlarmMethod, in, opts)
}

// ListAlarms calls AlarmService.ListAlarms.
func (c *ServiceClient) ListAlarms(ctx context.Context, opts ...grpc.CallOption) (*ListAlarmsResponse, error) {
	return invoke[ListAlarmsResponse](ctx, c.cc, ListAlarmsMethod, new(Empty), opts)
}

// GetTriggerState calls AlarmService.GetTriggerState.
func (c *ServiceClient) GetTriggerState(ctx context.Context, opts ...grpc.CallOption) (*TriggerStateResponse, error) {
	return invoke[TriggerStateResponse](ctx, c.cc, GetTriggerStateMethod, new(Empty), opts)
}

// TriggerAlarm calls AlarmService.TriggerAlarm.
func (c *ServiceClient) TriggerAlarm(ctx context.Context, in *AlarmIDRequest, opts ...grpc.CallOption) (*TriggerStateResponse, error) {
	return invoke[TriggerStateResponse](ctx, c.cc, TriggerAlarmMethod, in, opts)
}

// SnoozeAlarm calls AlarmService.SnoozeAlarm.
func (c *ServiceClient) SnoozeAlarm(ctx context.Context, opts ...grpc.CallOption) (*TriggerStateResponse, error) {
	return invoke[TriggerStateResponse](ctx, c.cc, SnoozeAlarmMethod, new(Empty), opts)
}

// DismissAlarm calls AlarmService.DismissAlarm.
func (c *ServiceClient) DismissAlarm(ctx context.Context, opts ...grpc.CallOption) (*TriggerStateResponse, error) {
	return invoke[TriggerStateResponse](ctx, c.cc, DismissAlarmMethod, new(Empty), opts)
}

// Deliver calls AlarmService.Deliver.
func (c *ServiceClient) Deliver(ctx context.Context, in *DeliverRequest, opts ...grpc.CallOption) (*TriggerStateResponse, error) {
	return invoke[TriggerStateResponse](ctx, c.cc, DeliverMethod, in, opts)
}

// Reconcile calls AlarmService.Reconcile.
func (c *ServiceClient) Reconcile(ctx context.Context, opts ...grpc.CallOption) (*ReconcileResponse, error) {
	return invoke[ReconcileResponse](ctx, c.cc, ReconcileMethod, new(Empty), opts)
}

// GetSettings calls AlarmService.GetSettings.
func (c *ServiceClient) GetSettings(ctx context.Context, opts ...grpc.CallOption) (*SettingsResponse, error) {
	return invoke[SettingsResponse](ctx, c.cc, GetSettingsMethod, new(Empty), opts)
}

// UpdateSettings calls AlarmService.UpdateSettings.
func (c *ServiceClient) UpdateSettings(ctx context.Context, in *SettingsRequest, opts ...grpc.CallOption) (*SettingsResponse, error) {
	return invoke[SettingsResponse](ctx, c.cc, UpdateSettingsMethod, in, opts)
}

// UseAIQuota calls AlarmService.UseAIQuota.
func (c *ServiceClient) UseAIQuota(ctx context.Context, opts ...grpc.CallOption) (*QuotaResponse, error) {
	return invoke[QuotaResponse](ctx, c.cc, UseAIQuotaMethod, new(Empty), opts)
}

// ResetQuota calls AlarmService.ResetQuota.
func (c *ServiceClient) ResetQuota(ctx context.Context, opts ...grpc.CallOption) (*QuotaResponse, error) {
	return invoke[QuotaResponse](ctx, c.cc, ResetQuotaMethod, new(Empty), opts)
}

// Watch opens the snapshot stream.
func (c *ServiceClient) Watch(ctx context.Context, opts ...grpc.CallOption) (grpc.ServerStreamingClient[WatchEvent], error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)

	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], WatchMethod, opts...)
	if err != nil {
		return nil, err
	}

	typed := &grpc.GenericClientStream[Empty, WatchEvent]{ClientStream: stream}

	if err = typed.SendMsg(new(Empty)); err != nil {
		return nil, err
	}

	if err = typed.CloseSend(); err != nil {
		return nil, err
	}

	return typed, nil
}

func invoke[Resp any](
	ctx context.Context,
	cc grpc.ClientConnInterface,
	method string,
	in any,
	opts []grpc.CallOption,
) (*Resp, error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)

	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
