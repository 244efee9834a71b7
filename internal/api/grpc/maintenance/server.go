package maintenance

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/door-guard/internal/domain/door"
	"github.com/oshokin/door-guard/internal/hardware"
	"github.com/oshokin/door-guard/internal/logger"
)

// Service abstracts the Control node operations the transport layer depends on.
type Service interface {
	Snapshot() *door.Snapshot
	SetOccupancy(ctx context.Context, actor *door.Actor, reading hardware.Reading) error
}

// Server implements the maintenance gRPC API.
type Server struct {
	// service provides the Control node state and overrides.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// GetStatus returns the latest Control node snapshot.
func (s *Server) GetStatus(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	actor, _ := ActorFromContext(ctx)
	logger.DebugKV(ctx, "Status requested", "actor", actor)

	result, err := toStruct(s.service.Snapshot())
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode status")
	}

	return result, nil
}

// SetOccupancy overrides the simulated occupancy sensor.
func (s *Server) SetOccupancy(ctx context.Context, req *wrapperspb.BoolValue) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	actor, ok := ActorFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "actor is required")
	}

	reading := hardware.ReadingClear
	if req.GetValue() {
		reading = hardware.ReadingPresent
	}

	err := s.service.SetOccupancy(ctx, actor, reading)

	switch {
	case err == nil:
		return new(emptypb.Empty), nil
	case errors.Is(err, door.ErrOccupancyNotSimulated):
		return nil, status.Error(codes.FailedPrecondition, err.Error())
	default:
		return nil, status.Error(codes.Internal, "unable to set occupancy")
	}
}

// Status field names.
const (
	FieldTimestamp   = "timestamp"
	FieldPhase       = "phase"
	FieldDoorCycle   = "door_cycle"
	FieldAttempts    = "attempts"
	FieldAlarmWindow = "alarm_window"
	FieldElapsed     = "elapsed_ticks"
	FieldActuator    = "actuator"
	FieldAlarm       = "alarm_signal"
	FieldDiagnostic  = "diagnostic_raised"
	FieldOccupancy   = "occupancy"
)

// toStruct converts a snapshot to the status message.
func toStruct(s *door.Snapshot) (*structpb.Struct, error) {
	if s == nil {
		return new(structpb.Struct), nil
	}

	fields := map[string]any{
		FieldPhase:       s.Phase.String(),
		FieldDoorCycle:   s.Cycle.String(),
		FieldAttempts:    s.Attempts,
		FieldAlarmWindow: s.AlarmWindow,
		FieldElapsed:     int64(s.ElapsedTicks),
		FieldActuator:    s.Actuator.String(),
		FieldAlarm:       s.AlarmSignal,
		FieldDiagnostic:  s.DiagnosticRaised,
		FieldOccupancy:   s.Occupancy.String(),
	}

	if !s.Timestamp.IsZero() {
		fields[FieldTimestamp] = s.Timestamp.UTC().Format(time.RFC3339Nano)
	}

	return structpb.NewStruct(fields)
}
