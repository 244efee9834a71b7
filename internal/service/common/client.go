//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/door-guard/internal/api/grpc/maintenance"
	"github.com/oshokin/door-guard/internal/config"
	"github.com/oshokin/door-guard/internal/domain/door"
)

// Client wraps the maintenance gRPC client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the Control node.
	conn *grpc.ClientConn
	// api is the maintenance service client.
	api maintenance.MaintenanceServiceClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
	// dialOptions are passed to grpc.NewClient.
	dialOptions []grpc.DialOption
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

// WithDialOptions appends gRPC dial options, mainly for tests.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *Client) {
		c.dialOptions = append(c.dialOptions, opts...)
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errActorRequired is returned when an actor is not provided but is required for the operation.
	errActorRequired = errors.New("actor must be provided")
)

// Dial establishes a gRPC connection to the Control node maintenance API.
// Note: this uses insecure transport credentials; the API is meant for the
// bench network next to the door.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	client := &Client{
		callTimeout: config.DefaultTimeout,
		dialOptions: []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())},
	}

	for _, opt := range opts {
		opt(client)
	}

	// Use the non-context NewClient API recommended by grpc-go
	// (DialContext is deprecated as of grpc-go v1.60+).
	conn, err := grpc.NewClient(address, client.dialOptions...)
	if err != nil {
		return nil, fmt.Errorf("dial control node: %w", err)
	}

	client.conn = conn
	client.api = maintenance.NewMaintenanceServiceClient(conn)

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// GetStatus retrieves the Control node status.
func (c *Client) GetStatus(ctx context.Context, actor *door.Actor) (*structpb.Struct, error) {
	callCtx, cancel := c.callContext(maintenance.WithActor(ctx, actor))
	defer cancel()

	resp, err := c.api.GetStatus(callCtx, new(emptypb.Empty))
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}

	return resp, nil
}

// SetOccupancy overrides the simulated occupancy sensor.
func (c *Client) SetOccupancy(ctx context.Context, actor *door.Actor, present bool) error {
	if actor == nil {
		return errActorRequired
	}

	callCtx, cancel := c.callContext(maintenance.WithActor(ctx, actor))
	defer cancel()

	if _, err := c.api.SetOccupancy(callCtx, wrapperspb.Bool(present)); err != nil {
		return fmt.Errorf("set occupancy: %w", err)
	}

	return nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
