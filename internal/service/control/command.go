package control

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/oshokin/door-guard/internal/api/grpc/maintenance"
	"github.com/oshokin/door-guard/internal/config"
	phase "github.com/oshokin/door-guard/internal/control"
	"github.com/oshokin/door-guard/internal/hardware"
	"github.com/oshokin/door-guard/internal/hardware/gpio"
	"github.com/oshokin/door-guard/internal/link"
	"github.com/oshokin/door-guard/internal/logger"
	"github.com/oshokin/door-guard/internal/repository/credential"
	"github.com/oshokin/door-guard/internal/timebase"
)

// Options controls the door-control process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// Device overrides the serial device from the config.
	Device string
	// Address overrides the TCP link address from the config.
	Address string
	// StorageFile overrides the credential store image.
	StorageFile string
	// Hardware overrides the hardware backend.
	Hardware string
	// MaintenanceAddress overrides the maintenance API listen address.
	MaintenanceAddress string
}

// Run opens every collaborator and runs the phase machine until ctx is canceled
// or the link fails.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "door-control")

	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	store, err := credential.OpenFileStore(settings.Control.StorageFile)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}

	devices, bench, err := openHardware(&settings.Control)
	if err != nil {
		return err
	}

	l, err := link.Open(ctx, &settings.Link, link.RoleControl)
	if err != nil {
		return fmt.Errorf("open link: %w", err)
	}

	defer func() {
		_ = l.Close()
	}()

	// A blocking receive only returns once the link is closed.
	stopClose := context.AfterFunc(ctx, func() {
		_ = l.Close()
	})
	defer stopClose()

	clock := timebase.New()

	machine, err := phase.New(phase.Deps{
		Link:    l,
		Store:   store,
		Devices: devices,
		Clock:   clock,
	}, &settings.Control)
	if err != nil {
		return fmt.Errorf("build phase machine: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go clock.Run(ctx, settings.Control.TickPeriod)

	if settings.Control.MaintenanceAddress != "" {
		stop, err := serveMaintenance(ctx, settings.Control.MaintenanceAddress, newService(machine, bench))
		if err != nil {
			return err
		}

		defer stop()
	}

	logger.InfoKV(ctx, "Control node running",
		"hardware", settings.Control.Hardware,
		"storage_file", settings.Control.StorageFile,
		"tick_period", settings.Control.TickPeriod.String())

	return machine.Run(ctx)
}

// loadSettings reads the config file and applies command line overrides.
func loadSettings(opts *Options) (*config.Config, error) {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	switch {
	case opts.Device != "":
		settings.Link.Device, settings.Link.Address = opts.Device, ""
	case opts.Address != "":
		settings.Link.Device, settings.Link.Address = "", opts.Address
	}

	if opts.StorageFile != "" {
		settings.Control.StorageFile = opts.StorageFile
	}

	if opts.Hardware != "" {
		settings.Control.Hardware = opts.Hardware
	}

	if opts.MaintenanceAddress != "" {
		settings.Control.MaintenanceAddress = opts.MaintenanceAddress
	}

	if err := config.Validate(settings); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	return settings, nil
}

// openHardware builds the configured backend.
// The bench is returned only for the simulated backend.
func openHardware(settings *config.Control) (hardware.Devices, *hardware.Bench, error) {
	if settings.Hardware == config.HardwareGPIO {
		board, err := gpio.Open(&settings.Pins)
		if err != nil {
			return hardware.Devices{}, nil, fmt.Errorf("open gpio board: %w", err)
		}

		return board.Devices(), nil, nil
	}

	bench := hardware.NewBench()

	return bench.Devices(), bench, nil
}

// serveMaintenance starts the maintenance gRPC server in the background.
// The returned function stops it and waits until it has fully stopped.
func serveMaintenance(ctx context.Context, address string, svc maintenance.Service) (func(), error) {
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", address, err)
	}

	grpcServer := grpc.NewServer()
	maintenance.RegisterMaintenanceServiceServer(grpcServer, maintenance.NewServer(svc))

	logger.InfoKV(ctx, "Maintenance API listening", "listen_address", lis.Addr().String())

	// Done channel is closed once Serve returns.
	done := make(chan struct{})

	go func() {
		defer close(done)

		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			logger.ErrorKV(ctx, "Maintenance API failed", "error", err)
		}
	}()

	return func() {
		logger.Info(ctx, "Shutting down maintenance API")
		grpcServer.GracefulStop()
		<-done
		logger.Info(ctx, "Maintenance API stopped")
	}, nil
}
