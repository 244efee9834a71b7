package control

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/oshokin/door-guard/internal/config"
	"github.com/oshokin/door-guard/internal/domain/door"
	"github.com/oshokin/door-guard/internal/hardware"
	"github.com/oshokin/door-guard/internal/link"
	"github.com/oshokin/door-guard/internal/logger"
	"github.com/oshokin/door-guard/internal/protocol"
	"github.com/oshokin/door-guard/internal/repository/credential"
	"github.com/oshokin/door-guard/internal/timebase"
)

// Deps bundles the collaborators of the machine.
type Deps struct {
	// Link is the channel to the HMI node.
	Link link.Link
	// Store holds the credential.
	Store credential.Store
	// Devices are the actuator, sensor, alarm and diagnostic signals.
	Devices hardware.Devices
	// Clock is the time base. The machine registers itself as its tick handler.
	Clock *timebase.Clock
}

// Machine is the Control phase machine.
type Machine struct {
	state    Context
	deps     Deps
	settings config.Control
	// sleep pauses between persistent writes and idle loop iterations.
	sleep func(ctx context.Context, d time.Duration) error
	// actuator and alarm mirror the last commands for snapshots.
	actuator   atomic.Uint32
	alarm      atomic.Bool
	diagnostic atomic.Bool
	snapshot   atomic.Pointer[door.Snapshot]
}

var (
	// ErrMissingDependency is returned by New when a collaborator is nil.
	ErrMissingDependency = errors.New("missing control dependency")
	// ErrUnknownPhase is returned by Step when the phase value is corrupt.
	ErrUnknownPhase = errors.New("unknown control phase")
)

// New builds a machine in CREDENTIAL_CHECK and registers it with the clock.
func New(deps Deps, settings *config.Control) (*Machine, error) {
	switch {
	case deps.Link == nil:
		return nil, fmt.Errorf("%w: link", ErrMissingDependency)
	case deps.Store == nil:
		return nil, fmt.Errorf("%w: store", ErrMissingDependency)
	case deps.Clock == nil:
		return nil, fmt.Errorf("%w: clock", ErrMissingDependency)
	case deps.Devices.Actuator == nil, deps.Devices.Occupancy == nil,
		deps.Devices.Alarm == nil, deps.Devices.Diagnostic == nil:
		return nil, fmt.Errorf("%w: devices", ErrMissingDependency)
	case settings == nil:
		return nil, fmt.Errorf("%w: settings", ErrMissingDependency)
	}

	m := &Machine{
		deps:     deps,
		settings: *settings,
		sleep:    sleepContext,
	}

	if err := deps.Clock.Register(m); err != nil {
		return nil, fmt.Errorf("register tick handler: %w", err)
	}

	m.publish()

	return m, nil
}

// OnTick tells the clock how to treat a tick in the active phase.
// It runs on the tick goroutine and only reads atomics.
func (m *Machine) OnTick() timebase.Action {
	switch m.state.Phase() {
	case door.PhaseDoorOpening, door.PhaseDoorClosing, door.PhaseAlarm:
		return timebase.ActionCount
	case door.PhaseDoorWaiting:
		return timebase.ActionHold
	default:
		return timebase.ActionDrop
	}
}

// Phase returns the active phase.
func (m *Machine) Phase() door.Phase {
	return m.state.Phase()
}

// Snapshot returns the state published after the last handler.
func (m *Machine) Snapshot() *door.Snapshot {
	return m.snapshot.Load().Clone()
}

// Step runs exactly one phase handler.
func (m *Machine) Step(ctx context.Context) error {
	defer m.publish()

	switch phase := m.state.Phase(); phase {
	case door.PhaseCredentialCheck:
		return m.checkCredential(ctx)
	case door.PhaseDoorOpening:
		return m.openDoor(ctx)
	case door.PhaseDoorWaiting:
		return m.waitForClear(ctx)
	case door.PhaseDoorClosing:
		return m.closeDoor(ctx)
	case door.PhaseAlarm:
		return m.runAlarm(ctx)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPhase, phase)
	}
}

// Run steps the machine until ctx is done or the link fails.
// Phases that do not block on the link are paced by the poll interval.
func (m *Machine) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "control")

	logger.InfoKV(ctx, "Control phase machine started", "phase", m.state.Phase())

	for ctx.Err() == nil {
		err := m.Step(ctx)

		switch {
		case err == nil:
		case errors.Is(err, link.ErrReceiveTimeout):
			logger.Debug(ctx, "Receive timed out, pending entry dropped")
		case ctx.Err() != nil:
			return nil
		default:
			return err
		}

		if m.state.Phase() == door.PhaseCredentialCheck {
			continue
		}

		if err := m.sleep(ctx, m.settings.PollInterval); err != nil {
			return nil //nolint:nilerr // Cancellation ends the loop.
		}
	}

	logger.Info(ctx, "Control phase machine stopped")

	return nil
}

// enter switches phase and logs the transition.
func (m *Machine) enter(ctx context.Context, p door.Phase) {
	logger.InfoKV(ctx, "Phase changed", "from", m.state.Phase(), "to", p)
	m.state.enter(p)
}

// send writes one byte to the HMI node.
func (m *Machine) send(ctx context.Context, b byte) error {
	if err := m.deps.Link.SendByte(b); err != nil {
		return fmt.Errorf("send %s: %w", protocol.Describe(b), err)
	}

	logger.DebugKV(ctx, "Byte sent", "byte", protocol.Describe(b))

	return nil
}

func (m *Machine) publish() {
	m.snapshot.Store(&door.Snapshot{
		Timestamp:        time.Now(),
		Phase:            m.state.Phase(),
		Cycle:            m.state.Cycle,
		Attempts:         m.state.Attempts,
		AlarmWindow:      m.state.AlarmWindow(),
		ElapsedTicks:     m.deps.Clock.Elapsed(),
		DiagnosticRaised: m.diagnostic.Load(),
		Actuator:         hardware.Direction(m.actuator.Load()), //nolint:gosec // Only Direction values are stored.
		AlarmSignal:      m.alarm.Load(),
		Occupancy:        m.deps.Devices.Occupancy.Occupancy(),
	})
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
