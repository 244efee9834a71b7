package control

import (
	"context"
	"fmt"

	"github.com/oshokin/door-guard/internal/domain/door"
	"github.com/oshokin/door-guard/internal/hardware"
	"github.com/oshokin/door-guard/internal/logger"
	"github.com/oshokin/door-guard/internal/protocol"
)

// openDoor drives the actuator forward until the open window has passed.
func (m *Machine) openDoor(ctx context.Context) error {
	if !m.state.statusSent {
		if err := m.drive(hardware.DirectionForward); err != nil {
			return err
		}

		if err := m.send(ctx, protocol.StatusOpening); err != nil {
			return err
		}

		m.state.statusSent = true
	}

	if m.deps.Clock.Elapsed() <= m.settings.OpenTicks {
		return nil
	}

	if err := m.drive(hardware.DirectionStop); err != nil {
		return err
	}

	m.deps.Clock.Reset()
	m.state.Cycle = door.CycleWaitingForClear
	m.enter(ctx, door.PhaseDoorWaiting)

	return nil
}

// waitForClear holds the door open until the doorway is empty.
func (m *Machine) waitForClear(ctx context.Context) error {
	if !m.state.statusSent {
		if err := m.drive(hardware.DirectionStop); err != nil {
			return err
		}

		if err := m.send(ctx, protocol.StatusWaiting); err != nil {
			return err
		}

		m.state.statusSent = true
	}

	if m.deps.Devices.Occupancy.Occupancy() != hardware.ReadingClear {
		return nil
	}

	m.deps.Clock.Reset()
	m.state.Cycle = door.CycleClosing
	m.enter(ctx, door.PhaseDoorClosing)

	return nil
}

// closeDoor drives the actuator in reverse until the close window has passed.
func (m *Machine) closeDoor(ctx context.Context) error {
	if !m.state.statusSent {
		if err := m.drive(hardware.DirectionReverse); err != nil {
			return err
		}

		if err := m.send(ctx, protocol.StatusClosing); err != nil {
			return err
		}

		m.state.statusSent = true
	}

	if m.deps.Clock.Elapsed() <= m.settings.OpenTicks {
		return nil
	}

	if err := m.drive(hardware.DirectionStop); err != nil {
		return err
	}

	if err := m.send(ctx, protocol.StatusCycleComplete); err != nil {
		return err
	}

	m.state.Cycle = door.CycleIdle
	m.enter(ctx, door.PhaseCredentialCheck)

	return nil
}

// runAlarm keeps the alarm on until the lockout window has passed.
func (m *Machine) runAlarm(ctx context.Context) error {
	if !m.state.statusSent {
		if err := m.setAlarm(true); err != nil {
			return err
		}

		m.state.statusSent = true
	}

	if m.deps.Clock.Elapsed() < m.settings.AlarmTicks {
		return nil
	}

	if err := m.setAlarm(false); err != nil {
		return err
	}

	if err := m.send(ctx, protocol.StatusAlarmCleared); err != nil {
		return err
	}

	m.state.alarmWindow.Store(false)
	m.state.Attempts = 0

	logger.Info(ctx, "Alarm lockout cleared")
	m.enter(ctx, door.PhaseCredentialCheck)

	return nil
}

func (m *Machine) drive(d hardware.Direction) error {
	var err error

	switch d {
	case hardware.DirectionForward:
		err = m.deps.Devices.Actuator.Forward(m.settings.MotorSpeed)
	case hardware.DirectionReverse:
		err = m.deps.Devices.Actuator.Reverse(m.settings.MotorSpeed)
	default:
		err = m.deps.Devices.Actuator.Stop()
	}

	if err != nil {
		return fmt.Errorf("drive actuator %s: %w", d, err)
	}

	m.actuator.Store(uint32(d))

	return nil
}

func (m *Machine) setAlarm(on bool) error {
	var err error
	if on {
		err = m.deps.Devices.Alarm.On()
	} else {
		err = m.deps.Devices.Alarm.Off()
	}

	if err != nil {
		return fmt.Errorf("switch alarm signal: %w", err)
	}

	m.alarm.Store(on)

	return nil
}
