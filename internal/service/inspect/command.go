package inspect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/door-guard/internal/config"
	"github.com/oshokin/door-guard/internal/domain/door"
	"github.com/oshokin/door-guard/internal/logger"
	"github.com/oshokin/door-guard/internal/service/common"
)

// Options controls the door-inspect behavior and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Address overrides the maintenance API address from the config.
	Address string
	// Watch keeps polling the status until the context is canceled.
	Watch bool
	// Interval is the delay between polls in watch mode.
	Interval time.Duration
	// Out receives the status documents, stdout when nil.
	Out io.Writer
}

// DefaultInterval is the watch polling interval.
const DefaultInterval = time.Second

// ErrNoMaintenanceAddress indicates missing maintenance API configuration.
var ErrNoMaintenanceAddress = errors.New("no maintenance address configured")

// session is a connected client plus the caller identity.
type session struct {
	client *common.Client
	actor  *door.Actor
}

// RunStatus prints the Control node status once, or repeatedly in watch mode.
func RunStatus(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "door-inspect")

	s, err := connect(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		_ = s.client.Close()
	}()

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if err := s.printStatus(ctx, out); err != nil || !opts.Watch {
		return err
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")

			return nil
		case <-ticker.C:
			if err := s.printStatus(ctx, out); err != nil {
				// Keep watching across transient failures.
				logger.ErrorKV(ctx, "GetStatus failed", "error", err)
			}
		}
	}
}

// RunOccupancy overrides the simulated occupancy sensor.
func RunOccupancy(ctx context.Context, opts *Options, present bool) error {
	ctx = logger.WithName(ctx, "door-inspect")

	s, err := connect(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		_ = s.client.Close()
	}()

	if err := s.client.SetOccupancy(ctx, s.actor, present); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Occupancy overridden", "present", present, "actor", s.actor)

	return nil
}

func connect(ctx context.Context, opts *Options) (*session, error) {
	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	// Determine server address: command line argument overrides config.
	address := cfg.Control.MaintenanceAddress
	if opts.Address != "" {
		address = opts.Address
	}

	if address == "" {
		return nil, ErrNoMaintenanceAddress
	}

	// Detect current system actor for audit logging.
	actor, err := common.DetectActor()
	if err != nil {
		return nil, fmt.Errorf("detect actor: %w", err)
	}

	client, err := common.Dial(ctx, address, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("dial control node: %w", err)
	}

	return &session{client: client, actor: actor}, nil
}

func (s *session) printStatus(ctx context.Context, out io.Writer) error {
	resp, err := s.client.GetStatus(ctx, s.actor)
	if err != nil {
		return err
	}

	return writeStatus(out, resp)
}

// writeStatus renders one status document as indented JSON.
func writeStatus(out io.Writer, status *structpb.Struct) error {
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(status)
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}

	if _, err := fmt.Fprintln(out, string(data)); err != nil {
		return fmt.Errorf("write status: %w", err)
	}

	return nil
}
