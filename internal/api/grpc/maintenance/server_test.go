package maintenance

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/door-guard/internal/domain/door"
	"github.com/oshokin/door-guard/internal/hardware"
)

// fakeService implements Service for unit testing the transport.
type fakeService struct {
	snapshot *door.Snapshot
	// setErr is returned from SetOccupancy when set.
	setErr error
	// reading and actor record the last SetOccupancy call.
	reading hardware.Reading
	actor   *door.Actor
}

func (f *fakeService) Snapshot() *door.Snapshot { return f.snapshot.Clone() }

func (f *fakeService) SetOccupancy(_ context.Context, actor *door.Actor, reading hardware.Reading) error {
	if f.setErr != nil {
		return f.setErr
	}

	f.actor, f.reading = actor, reading

	return nil
}

func actorContext() context.Context {
	return metadata.NewIncomingContext(context.Background(),
		metadata.Pairs(ActorMetadataKey, "o.shokin@door-01"))
}

// TestServer_GetStatus checks the snapshot fields of the status message.
func TestServer_GetStatus(t *testing.T) {
	t.Parallel()

	s := NewServer(&fakeService{snapshot: &door.Snapshot{
		Timestamp:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Phase:        door.PhaseAlarm,
		Cycle:        door.CycleIdle,
		AlarmWindow:  true,
		ElapsedTicks: 42,
		AlarmSignal:  true,
		Occupancy:    hardware.ReadingClear,
	}})

	resp, err := s.GetStatus(context.Background(), new(emptypb.Empty))
	require.NoError(t, err)

	fields := resp.GetFields()
	require.Equal(t, "alarm", fields[FieldPhase].GetStringValue())
	require.Equal(t, "idle", fields[FieldDoorCycle].GetStringValue())
	require.InDelta(t, 42, fields[FieldElapsed].GetNumberValue(), 0)
	require.True(t, fields[FieldAlarmWindow].GetBoolValue())
	require.True(t, fields[FieldAlarm].GetBoolValue())
	require.Equal(t, "clear", fields[FieldOccupancy].GetStringValue())
	require.Equal(t, "stop", fields[FieldActuator].GetStringValue())
	require.Equal(t, "2026-01-02T03:04:05Z", fields[FieldTimestamp].GetStringValue())
}

// TestServer_SetOccupancy_Validation ensures invalid requests are rejected with the right codes.
func TestServer_SetOccupancy_Validation(t *testing.T) {
	t.Parallel()

	s := NewServer(new(fakeService))

	_, err := s.SetOccupancy(actorContext(), nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.SetOccupancy(context.Background(), wrapperspb.Bool(true))
	require.Equal(t, codes.InvalidArgument, status.Code(err), "actor is required")

	s = NewServer(&fakeService{setErr: door.ErrOccupancyNotSimulated})

	_, err = s.SetOccupancy(actorContext(), wrapperspb.Bool(false))
	require.Equal(t, codes.FailedPrecondition, status.Code(err))
}

// TestServer_SetOccupancy passes the reading and the actor through.
func TestServer_SetOccupancy(t *testing.T) {
	t.Parallel()

	svc := new(fakeService)
	s := NewServer(svc)

	_, err := s.SetOccupancy(actorContext(), wrapperspb.Bool(false))
	require.NoError(t, err)
	require.Equal(t, hardware.ReadingClear, svc.reading)
	require.Equal(t, &door.Actor{Hostname: "door-01", Username: "o.shokin"}, svc.actor)
}

// TestServiceDesc_Roundtrip calls both methods through a real gRPC server.
func TestServiceDesc_Roundtrip(t *testing.T) {
	t.Parallel()

	listener := bufconn.Listen(1 << 16)
	svc := &fakeService{snapshot: &door.Snapshot{Phase: door.PhaseDoorWaiting}}

	server := grpc.NewServer()
	RegisterMaintenanceServiceServer(server, NewServer(svc))

	go func() { _ = server.Serve(listener) }()

	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	client := NewMaintenanceServiceClient(conn)
	ctx := WithActor(context.Background(), &door.Actor{Hostname: "bench", Username: "tech"})

	resp, err := client.GetStatus(ctx, new(emptypb.Empty))
	require.NoError(t, err)
	require.Equal(t, "door-waiting", resp.GetFields()[FieldPhase].GetStringValue())

	_, err = client.SetOccupancy(ctx, wrapperspb.Bool(false))
	require.NoError(t, err)
	require.Equal(t, "tech@bench", svc.actor.String())
}

// TestActorFromContext rejects malformed metadata.
func TestActorFromContext(t *testing.T) {
	t.Parallel()

	_, ok := ActorFromContext(context.Background())
	require.False(t, ok)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(ActorMetadataKey, "nobody"))
	_, ok = ActorFromContext(ctx)
	require.False(t, ok)

	actor, ok := ActorFromContext(actorContext())
	require.True(t, ok)
	require.Equal(t, "o.shokin", actor.Username)
}
