package hmi

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/oshokin/door-guard/internal/config"
	phase "github.com/oshokin/door-guard/internal/hmi"
	"github.com/oshokin/door-guard/internal/link"
	"github.com/oshokin/door-guard/internal/logger"
	"github.com/oshokin/door-guard/internal/panel"
)

// Options controls the door-hmi process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// Device overrides the serial device from the config.
	Device string
	// Address overrides the TCP link address from the config.
	Address string
	// LogFile overrides where logs go while the panel owns the terminal.
	LogFile string
}

// Run connects to the Control node and shows the panel until the operator
// quits, ctx is canceled or the link fails.
func Run(ctx context.Context, opts *Options) error {
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	// The panel owns the terminal, logs go to a file.
	fileLogger, closeLog, err := logger.NewFile(logger.AtomicLevel(), settings.HMI.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	defer func() {
		_ = closeLog()
	}()

	ctx = logger.WithName(logger.ToContext(ctx, fileLogger), "door-hmi")

	l, err := link.Open(ctx, &settings.Link, link.RoleHMI)
	if err != nil {
		return fmt.Errorf("open link: %w", err)
	}

	defer func() {
		_ = l.Close()
	}()

	p := panel.New()

	machine, err := phase.New(phase.Deps{
		Link:      l,
		Keypad:    p.Keypad(),
		Display:   p.Display(),
		Indicator: p.Indicator(),
	}, &settings.HMI)
	if err != nil {
		return fmt.Errorf("build phase machine: %w", err)
	}

	return runTogether(ctx, l, machine.Run, func(ctx context.Context) error {
		return p.Run(ctx)
	})
}

// runTogether runs the machine and the panel until either returns.
// The link is closed on the way out so a blocked receive returns.
func runTogether(
	ctx context.Context,
	l link.Link,
	machine func(context.Context) error,
	ui func(context.Context) error,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg                   sync.WaitGroup
		machineErr, panelErr error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		defer cancel()

		machineErr = machine(ctx)
	}()

	go func() {
		defer wg.Done()
		defer cancel()

		panelErr = ui(ctx)
	}()

	<-ctx.Done()
	_ = l.Close()

	wg.Wait()

	logger.Info(ctx, "HMI node stopped")

	return errors.Join(machineErr, panelErr)
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

	if opts.LogFile != "" {
		settings.HMI.LogFile = opts.LogFile
	}

	if err := config.Validate(settings); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	return settings, nil
}
