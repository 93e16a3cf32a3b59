package alarm

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/oshokin/wakey-wakey/internal/domain/alarm"
	"github.com/oshokin/wakey-wakey/internal/domain/settings"
	"github.com/oshokin/wakey-wakey/internal/lifecycle"
	"github.com/oshokin/wakey-wakey/internal/scheduler"
)

// Service abstracts the lifecycle operations the transport layer depends on.
type Service interface {
	Alarms() []domain.Alarm
	Pending(ctx context.Context) []string
	AddAlarm(ctx context.Context, a domain.Alarm) (domain.Alarm, error)
	UpdateAlarm(ctx context.Context, a domain.Alarm) error
	DeleteAlarm(ctx context.Context, id string) error
	ToggleAlarm(ctx context.Context, id string) error
	Alarm(id string) (domain.Alarm, bool)
	State() domain.TriggerState
	TriggerAlarm(ctx context.Context, id string) bool
	SnoozeAlarm(ctx context.Context) error
	DismissAlarm(ctx context.Context)
	HandleDelivery(ctx context.Context, d domain.Delivery)
	Reconcile(ctx context.Context) (lifecycle.Report, error)
	Subscribe() (<-chan lifecycle.Snapshot, func())
}

// SettingsService abstracts the settings store.
type SettingsService interface {
	Get() settings.AppSettings
	Update(ctx context.Context, next settings.AppSettings) error
	UseAIQuota(ctx context.Context) bool
	ResetQuota(ctx context.Context)
}

// Responder replays a user response against the latest delivery of an alarm.
type Responder interface {
	Respond(ctx context.Context, id string, action domain.DeliveryAction) error
}

// Server implements AlarmServiceServer.
type Server struct {
	// service is the alarm lifecycle manager.
	service Service
	// settings is the application settings store.
	settings SettingsService
	// responder resolves deliveries sent without a fire time. Optional.
	responder Responder
}

var _ AlarmServiceServer = (*Server)(nil)

// NewServer wires the provided services into a gRPC handler.
func NewServer(service Service, settingsService SettingsService, responder Responder) *Server {
	return &Server{
		service:   service,
		settings:  settingsService,
		responder: responder,
	}
}

// Register registers the server on s.
func (s *Server) Register(registrar grpc.ServiceRegistrar) {
	RegisterAlarmServiceServer(registrar, s)
}

// AddAlarm creates an alarm.
func (s *Server) AddAlarm(ctx context.Context, req *AlarmRequest) (*AlarmResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	added, err := s.service.AddAlarm(ctx, FromAlarmMessage(&req.Alarm))

	warnings, err := classify(err)
	if err != nil {
		return nil, err
	}

	return &AlarmResponse{
		Alarm:    ToAlarmMessage(&added),
		Warnings: warnings,
	}, nil
}

// UpdateAlarm replaces an alarm. Unknown ids are ignored.
func (s *Server) UpdateAlarm(ctx context.Context, req *AlarmRequest) (*MutationResponse, error) {
	if req == nil || req.Alarm.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "alarm id is required")
	}

	warnings, err := classify(s.service.UpdateAlarm(ctx, FromAlarmMessage(&req.Alarm)))
	if err != nil {
		return nil, err
	}

	return &MutationResponse{Warnings: warnings}, nil
}

// DeleteAlarm removes an alarm. Unknown ids are ignored.
func (s *Server) DeleteAlarm(ctx context.Context, req *AlarmIDRequest) (*MutationResponse, error) {
	if req == nil || req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "alarm id is required")
	}

	warnings, err := classify(s.service.DeleteAlarm(ctx, req.ID))
	if err != nil {
		return nil, err
	}

	return &MutationResponse{Warnings: warnings}, nil
}

// ToggleAlarm flips an alarm and returns it. Unknown ids are ignored and
// answered with an empty alarm.
func (s *Server) ToggleAlarm(ctx context.Context, req *AlarmIDRequest) (*AlarmResponse, error) {
	if req == nil || req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "alarm id is required")
	}

	warnings, err := classify(s.service.ToggleAlarm(ctx, req.ID))
	if err != nil {
		return nil, err
	}

	toggled, ok := s.service.Alarm(req.ID)
	if !ok {
		return &AlarmResponse{Warnings: warnings}, nil
	}

	return &AlarmResponse{
		Alarm:    ToAlarmMessage(&toggled),
		Warnings: warnings,
	}, nil
}

// ListAlarms returns every alarm and the pending notification ids.
func (s *Server) ListAlarms(ctx context.Context, _ *Empty) (*ListAlarmsResponse, error) {
	return &ListAlarmsResponse{
		Alarms:  toAlarmMessages(s.service.Alarms()),
		Pending: s.service.Pending(ctx),
	}, nil
}

// GetTriggerState returns the current trigger state.
func (s *Server) GetTriggerState(context.Context, *Empty) (*TriggerStateResponse, error) {
	return s.stateResponse(false, nil), nil
}

// TriggerAlarm makes an alarm ring, or queues it behind the ringing one.
func (s *Server) TriggerAlarm(ctx context.Context, req *AlarmIDRequest) (*TriggerStateResponse, error) {
	if req == nil || req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "alarm id is required")
	}

	triggered := s.service.TriggerAlarm(ctx, req.ID)

	return s.stateResponse(triggered, nil), nil
}

// SnoozeAlarm snoozes the ringing alarm.
func (s *Server) SnoozeAlarm(ctx context.Context, _ *Empty) (*TriggerStateResponse, error) {
	warnings, err := classify(s.service.SnoozeAlarm(ctx))
	if err != nil {
		return nil, err
	}

	return s.stateResponse(false, warnings), nil
}

// DismissAlarm dismisses the ringing alarm.
func (s *Server) DismissAlarm(ctx context.Context, _ *Empty) (*TriggerStateResponse, error) {
	s.service.DismissAlarm(ctx)

	return s.stateResponse(false, nil), nil
}

// Deliver forwards a notification delivery or user response.
func (s *Server) Deliver(ctx context.Context, req *DeliverRequest) (*TriggerStateResponse, error) {
	if req == nil || req.AlarmID == "" {
		return nil, status.Error(codes.InvalidArgument, "alarm id is required")
	}

	action := domain.DeliveryAction(req.Action)
	if !action.Valid() {
		return nil, status.Errorf(codes.InvalidArgument, "unknown delivery action %q", req.Action)
	}

	if req.FireTimeUnixNano != 0 {
		s.service.HandleDelivery(ctx, domain.Delivery{
			AlarmID:  req.AlarmID,
			Action:   action,
			FireTime: time.Unix(0, req.FireTimeUnixNano).UTC(),
		})

		return s.stateResponse(false, nil), nil
	}

	if s.responder == nil {
		return nil, status.Error(codes.InvalidArgument, "fire time is required")
	}

	err := s.responder.Respond(ctx, req.AlarmID, action)
	if errors.Is(err, scheduler.ErrNoDelivery) {
		return nil, status.Errorf(codes.FailedPrecondition, "alarm %s has not been delivered yet", req.AlarmID)
	}

	if err != nil {
		return nil, status.Error(codes.Internal, "unable to deliver response")
	}

	return s.stateResponse(false, nil), nil
}

// Reconcile aligns the pending notifications with the enabled alarms.
func (s *Server) Reconcile(ctx context.Context, _ *Empty) (*ReconcileResponse, error) {
	report, err := s.service.Reconcile(ctx)

	return &ReconcileResponse{
		Scheduled: report.Scheduled,
		Cancelled: report.Cancelled,
		Failed:    report.Failed,
		Warnings:  warningsOf(err),
	}, nil
}

// GetSettings returns the application settings.
func (s *Server) GetSettings(context.Context, *Empty) (*SettingsResponse, error) {
	current := s.settings.Get()

	return &SettingsResponse{Settings: ToSettingsMessage(&current)}, nil
}

// UpdateSettings replaces the application settings.
func (s *Server) UpdateSettings(ctx context.Context, req *SettingsRequest) (*SettingsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	warnings, err := classify(s.settings.Update(ctx, FromSettingsMessage(&req.Settings)))
	if err != nil {
		return nil, err
	}

	current := s.settings.Get()

	return &SettingsResponse{
		Settings: ToSettingsMessage(&current),
		Warnings: warnings,
	}, nil
}

// UseAIQuota consumes one free AI generation.
func (s *Server) UseAIQuota(ctx context.Context, _ *Empty) (*QuotaResponse, error) {
	allowed := s.settings.UseAIQuota(ctx)

	return &QuotaResponse{
		Allowed:   allowed,
		Remaining: s.settings.Get().FreeQuotaRemaining,
	}, nil
}

// ResetQuota restores the free AI generations.
func (s *Server) ResetQuota(ctx context.Context, _ *Empty) (*QuotaResponse, error) {
	s.settings.ResetQuota(ctx)

	return &QuotaResponse{
		Allowed:   true,
		Remaining: s.settings.Get().FreeQuotaRemaining,
	}, nil
}

// Watch streams a snapshot after every change until the client goes away.
func (s *Server) Watch(_ *Empty, stream grpc.ServerStreamingServer[WatchEvent]) error {
	updates, cancel := s.service.Subscribe()
	defer cancel()

	ctx := stream.Context()

	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-updates:
			if !ok {
				return nil
			}

			if err := stream.Send(toWatchEvent(&snap)); err != nil {
				return err
			}
		}
	}
}

func (s *Server) stateResponse(triggered bool, warnings []string) *TriggerStateResponse {
	state := s.service.State()

	return &TriggerStateResponse{
		Triggered: triggered,
		State:     ToTriggerStateMessage(&state),
		Warnings:  warnings,
	}
}

// classify maps validation failures to status errors and turns the
// recoverable ones into response warnings.
func classify(err error) ([]string, error) {
	switch {
	case err == nil:
		return nil, nil
	case errors.Is(err, domain.ErrInvalidAlarm), errors.Is(err, settings.ErrInvalidSettings):
		return nil, status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, lifecycle.ErrAlarmExists):
		return nil, status.Error(codes.AlreadyExists, err.Error())
	default:
		return warningsOf(err), nil
	}
}

func warningsOf(err error) []string {
	if err == nil {
		return nil
	}

	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		warnings := make([]string, 0, len(joined.Unwrap()))
		for _, e := range joined.Unwrap() {
			warnings = append(warnings, e.Error())
		}

		return warnings
	}

	return []string{err.Error()}
}
