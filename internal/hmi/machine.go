package hmi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/door-guard/internal/config"
	"github.com/oshokin/door-guard/internal/link"
	"github.com/oshokin/door-guard/internal/logger"
	"github.com/oshokin/door-guard/internal/protocol"
)

// Deps bundles the collaborators of the machine.
type Deps struct {
	Link      link.Link
	Keypad    Keypad
	Display   Display
	Indicator Indicator
}

// Machine is the HMI phase machine.
type Machine struct {
	state    Context
	deps     Deps
	settings config.HMI
	sleep    func(ctx context.Context, d time.Duration) error
}

var (
	// ErrMissingDependency is returned by New when a collaborator is nil.
	ErrMissingDependency = errors.New("missing hmi dependency")
	// ErrUnknownPhase is returned by Step when the phase value is corrupt.
	ErrUnknownPhase = errors.New("unknown hmi phase")
)

// New builds a machine that starts with the initial credential setup.
func New(deps Deps, settings *config.HMI) (*Machine, error) {
	switch {
	case deps.Link == nil:
		return nil, fmt.Errorf("%w: link", ErrMissingDependency)
	case deps.Keypad == nil:
		return nil, fmt.Errorf("%w: keypad", ErrMissingDependency)
	case deps.Display == nil:
		return nil, fmt.Errorf("%w: display", ErrMissingDependency)
	case deps.Indicator == nil:
		return nil, fmt.Errorf("%w: indicator", ErrMissingDependency)
	case settings == nil:
		return nil, fmt.Errorf("%w: settings", ErrMissingDependency)
	}

	return &Machine{
		deps:     deps,
		settings: *settings,
		sleep:    sleepContext,
	}, nil
}

// Phase returns the active phase.
func (m *Machine) Phase() Phase {
	return m.state.Phase
}

// Mode returns the active entry mode.
func (m *Machine) Mode() Mode {
	return m.state.Mode
}

// Step runs exactly one phase handler. Entry phases consume one key.
func (m *Machine) Step(ctx context.Context) error {
	switch m.state.Phase {
	case PhaseSetOrReenter:
		return m.setOrReenter(ctx)
	case PhaseConfirm:
		return m.confirm(ctx)
	case PhaseMenu:
		return m.menu(ctx)
	case PhaseDoorStatus:
		return m.doorStatus(ctx)
	case PhaseLockout:
		return m.lockout(ctx)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPhase, m.state.Phase)
	}
}

// Run steps the machine until ctx is done or a collaborator fails.
func (m *Machine) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "hmi")

	logger.InfoKV(ctx, "HMI phase machine started", "phase", m.state.Phase, "mode", m.state.Mode)

	for ctx.Err() == nil {
		err := m.Step(ctx)

		switch {
		case err == nil:
		case errors.Is(err, link.ErrReceiveTimeout):
			logger.Warn(ctx, "No reply from the control node")
		case ctx.Err() != nil:
			return nil
		default:
			return err
		}
	}

	logger.Info(ctx, "HMI phase machine stopped")

	return nil
}

func (m *Machine) enter(ctx context.Context, p Phase) {
	logger.InfoKV(ctx, "Phase changed", "from", m.state.Phase, "to", p, "mode", m.state.Mode)
	m.state.enter(p)
}

// prompt draws the phase screen once per phase entry.
func (m *Machine) prompt(lines ...string) {
	if m.state.prompted {
		return
	}

	m.deps.Display.Clear()

	for row, line := range lines {
		m.deps.Display.Show(row, 0, line)
	}

	m.state.prompted = true
}

// collect reads one key into the entry buffer.
// It reports whether the key submitted a complete entry.
func (m *Machine) collect(ctx context.Context) (bool, error) {
	key, err := m.deps.Keypad.Key(ctx)
	if err != nil {
		return false, fmt.Errorf("read key: %w", err)
	}

	switch {
	case key.IsDigit():
		if pos, ok := m.state.push(byte(key)); ok {
			m.deps.Display.Show(1, pos, maskCharacter)
		}
	case key == KeySubmit && m.state.full():
		return true, nil
	default:
		logger.DebugKV(ctx, "Key ignored", "key", key, "phase", m.state.Phase)
	}

	return false, nil
}

// sendRequest writes a request byte followed by the buffered digits.
func (m *Machine) sendRequest(ctx context.Context, request byte, digits []byte) error {
	if err := m.send(ctx, request); err != nil {
		return err
	}

	for _, d := range digits {
		if err := m.send(ctx, d); err != nil {
			return err
		}

		if err := m.sleep(ctx, m.settings.SendGap); err != nil {
			return fmt.Errorf("pause between digits: %w", err)
		}
	}

	return nil
}

func (m *Machine) send(ctx context.Context, b byte) error {
	if err := m.deps.Link.SendByte(b); err != nil {
		return fmt.Errorf("send %s: %w", protocol.Describe(b), err)
	}

	if !protocol.IsDigit(b) {
		logger.DebugKV(ctx, "Byte sent", "byte", protocol.Describe(b))
	}

	return nil
}

func (m *Machine) receive(ctx context.Context) (byte, error) {
	b, err := m.deps.Link.ReceiveByte()
	if err != nil {
		return 0, fmt.Errorf("receive: %w", err)
	}

	logger.DebugKV(ctx, "Byte received", "byte", protocol.Describe(b))

	return b, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
