package alarm

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "wakey.v1.AlarmService"

// Full method names.
const (
	AddAlarmMethod        = "/" + ServiceName + "/AddAlarm"
	UpdateAlarmMethod     = "/" + ServiceName + "/UpdateAlarm"
	DeleteAlarmMethod     = "/" + ServiceName + "/DeleteAlarm"
	ToggleAlarmMethod     = "/" + ServiceName + "/ToggleAlarm"
	ListAlarmsMethod      = "/" + ServiceName + "/ListAlarms"
	GetTriggerStateMethod = "/" + ServiceName + "/GetTriggerState"
	TriggerAlarmMethod    = "/" + ServiceName + "/TriggerAlarm"
	SnoozeAlarmMethod     = "/" + ServiceName + "/SnoozeAlarm"
	DismissAlarmMethod    = "/" + ServiceName + "/DismissAlarm"
	DeliverMethod         = "/" + ServiceName + "/Deliver"
	ReconcileMethod       = "/" + ServiceName + "/Reconcile"
	GetSettingsMethod     = "/" + ServiceName + "/GetSettings"
	UpdateSettingsMethod  = "/" + ServiceName + "/UpdateSettings"
	UseAIQuotaMethod      = "/" + ServiceName + "/UseAIQuota"
	ResetQuotaMethod      = "/" + ServiceName + "/ResetQuota"
	WatchMethod           = "/" + ServiceName + "/Watch"
)

// AlarmServiceServer is the server API of the alarm service.
type AlarmServiceServer interface {
	AddAlarm(ctx context.Context, req *AlarmRequest) (*AlarmResponse, error)
	UpdateAlarm(ctx context.Context, req *AlarmRequest) (*MutationResponse, error)
	DeleteAlarm(ctx context.Context, req *AlarmIDRequest) (*MutationResponse, error)
	ToggleAlarm(ctx context.Context, req *AlarmIDRequest) (*AlarmResponse, error)
	ListAlarms(ctx context.Context, req *Empty) (*ListAlarmsResponse, error)
	GetTriggerState(ctx context.Context, req *Empty) (*TriggerStateResponse, error)
	TriggerAlarm(ctx context.Context, req *AlarmIDRequest) (*TriggerStateResponse, error)
	SnoozeAlarm(ctx context.Context, req *Empty) (*TriggerStateResponse, error)
	DismissAlarm(ctx context.Context, req *Empty) (*TriggerStateResponse, error)
	Deliver(ctx context.Context, req *DeliverRequest) (*TriggerStateResponse, error)
	Reconcile(ctx context.Context, req *Empty) (*ReconcileResponse, error)
	GetSettings(ctx context.Context, req *Empty) (*SettingsResponse, error)
	UpdateSettings(ctx context.Context, req *SettingsRequest) (*SettingsResponse, error)
	UseAIQuota(ctx context.Context, req *Empty) (*QuotaResponse, error)
	ResetQuota(ctx context.Context, req *Empty) (*QuotaResponse, error)
	Watch(req *Empty, stream grpc.ServerStreamingServer[WatchEvent]) error
}

// ServiceDesc describes the alarm service for grpc.Server.RegisterService.
//
//nolint:gochecknoglobals // Service descriptors are package-level by convention.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AlarmServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddAlarm", Handler: unary(AddAlarmMethod, AlarmServiceServer.AddAlarm)},
		{MethodName: "UpdateAlarm", Handler: unary(UpdateAlarmMethod, AlarmServiceServer.UpdateAlarm)},
		{MethodName: "DeleteAlarm", Handler: unary(DeleteAlarmMethod, AlarmServiceServer.DeleteAlarm)},
		{MethodName: "ToggleAlarm", Handler: unary(ToggleAlarmMethod, AlarmServiceServer.ToggleAlarm)},
		{MethodName: "ListAlarms", Handler: unary(ListAlarmsMethod, AlarmServiceServer.ListAlarms)},
		{MethodName: "GetTriggerState", Handler: unary(GetTriggerStateMethod, AlarmServiceServer.GetTriggerState)},
		{MethodName: "TriggerAlarm", Handler: unary(TriggerAlarmMethod, AlarmServiceServer.TriggerAlarm)},
		{MethodName: "SnoozeAlarm", Handler: unary(SnoozeAlarmMethod, AlarmServiceServer.SnoozeAlarm)},
		{MethodName: "DismissAlarm", Handler: unary(DismissAlarmMethod, AlarmServiceServer.DismissAlarm)},
		{MethodName: "Deliver", Handler: unary(DeliverMethod, AlarmServiceServer.Deliver)},
		{MethodName: "Reconcile", Handler: unary(ReconcileMethod, AlarmServiceServer.Reconcile)},
		{MethodName: "GetSettings", Handler: unary(GetSettingsMethod, AlarmServiceServer.GetSettings)},
		{MethodName: "UpdateSettings", Handler: unary(UpdateSettingsMethod, AlarmServiceServer.UpdateSettings)},
		{MethodName: "UseAIQuota", Handler: unary(UseAIQuotaMethod, AlarmServiceServer.UseAIQuota)},
		{MethodName: "ResetQuota", Handler: unary(ResetQuotaMethod, AlarmServiceServer.ResetQuota)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       watchHandler,
			ServerStreams: true,
		},
	},
	Metadata: "wakey/v1/alarm.proto",
}

// RegisterAlarmServiceServer registers srv on s.
func RegisterAlarmServiceServer(s grpc.ServiceRegistrar, srv AlarmServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary adapts a typed method to a grpc.MethodHandler.
func unary[Req, Resp any](
	fullMethod string,
	call func(AlarmServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		req := new(Req)
		if err := dec(req); err != nil {
			return nil, err
		}

		server, _ := srv.(AlarmServiceServer)

		if interceptor == nil {
			return call(server, ctx, req)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}

		handler := func(ctx context.Context, req any) (any, error) {
			typed, _ := req.(*Req)
			return call(server, ctx, typed)
		}

		return interceptor(ctx, req, info, handler)
	}
}

func watchHandler(srv any, stream grpc.ServerStream) error {
	req := new(Empty)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}

	server, _ := srv.(AlarmServiceServer)

	return server.Watch(req, &grpc.GenericServerStream[Empty, WatchEvent]{ServerStream: stream})
}
