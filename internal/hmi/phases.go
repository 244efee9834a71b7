package hmi

import (
	"context"
	"fmt"

	"github.com/oshokin/door-guard/internal/logger"
	"github.com/oshokin/door-guard/internal/protocol"
)

// setOrReenter collects an entry and either verifies it or keeps it for confirmation.
func (m *Machine) setOrReenter(ctx context.Context) error {
	m.prompt(textEnterPass)

	submitted, err := m.collect(ctx)
	if err != nil || !submitted {
		return err
	}

	if m.state.Mode == ModeSetup {
		m.state.first = protocol.Credential(m.state.entry)
		m.enter(ctx, PhaseConfirm)

		return nil
	}

	if err := m.sendRequest(ctx, protocol.RequestVerify, m.state.entry[:]); err != nil {
		return err
	}

	return m.awaitOutcome(ctx)
}

// awaitOutcome blocks until the Control node answers a verify request.
// Bytes that are not outcomes are skipped.
func (m *Machine) awaitOutcome(ctx context.Context) error {
	for {
		b, err := m.receive(ctx)
		if err != nil {
			m.state.clearEntry()
			m.state.prompted = false

			return err
		}

		switch b {
		case protocol.OutcomeMismatch:
			logger.Warn(ctx, "Credential rejected")
			m.state.clearEntry()
			m.state.prompted = false

			return nil
		case protocol.OutcomeMatch:
			m.deps.Display.Clear()
			m.enter(ctx, PhaseDoorStatus)

			return nil
		case protocol.OutcomeAlarm:
			logger.Warn(ctx, "System locked")
			m.enter(ctx, PhaseLockout)

			return nil
		}
	}
}

// confirm collects the second entry of a new credential and compares it to the first.
func (m *Machine) confirm(ctx context.Context) error {
	m.prompt(textReenterPass)

	submitted, err := m.collect(ctx)
	if err != nil || !submitted {
		return err
	}

	second := protocol.Credential(m.state.entry)
	first := m.state.first
	m.state.first = protocol.Credential{}

	if !first.Equal(second) {
		logger.Warn(ctx, "Confirmation does not match")
		m.state.Mode = ModeSetup
		m.enter(ctx, PhaseSetOrReenter)

		return nil
	}

	if err := m.sendRequest(ctx, protocol.RequestStore, first.Bytes()); err != nil {
		return err
	}

	m.enter(ctx, PhaseMenu)

	return nil
}

// menu waits for the operator to pick opening the door or changing the credential.
func (m *Machine) menu(ctx context.Context) error {
	m.prompt(textMenuOpen, textMenuChange)

	key, err := m.deps.Keypad.Key(ctx)
	if err != nil {
		return fmt.Errorf("read key: %w", err)
	}

	var request byte

	switch key {
	case KeyPlus:
		request, m.state.Mode = protocol.RequestOpen, ModeVerify
	case KeyMinus:
		request, m.state.Mode = protocol.RequestChange, ModeSetup
	default:
		return nil
	}

	m.deps.Display.Clear()

	if err := m.send(ctx, request); err != nil {
		return err
	}

	m.enter(ctx, PhaseSetOrReenter)

	return nil
}

// doorStatus shows one status byte of the door cycle.
func (m *Machine) doorStatus(ctx context.Context) error {
	b, err := m.receive(ctx)
	if err != nil {
		return err
	}

	switch b {
	case protocol.StatusOpening:
		m.showLines(textUnlocking, textPleaseWait)
	case protocol.StatusWaiting:
		m.showLines(textWaitPeople, textToEnter)
	case protocol.StatusClosing:
		m.showLines(textLocking, textBlankLine)
	default:
		m.enter(ctx, PhaseMenu)
	}

	return nil
}

// lockout shows the locked screen until the lockout ends.
func (m *Machine) lockout(ctx context.Context) error {
	m.showLines(textLocked, textWaitMinute)
	m.deps.Indicator.Toggle()

	b, err := m.receive(ctx)
	if err != nil {
		return err
	}

	if b == protocol.StatusAlarmCleared {
		logger.Info(ctx, "Lockout ended")
		m.enter(ctx, PhaseMenu)
	}

	return nil
}

func (m *Machine) showLines(first, second string) {
	m.deps.Display.Show(0, 0, first)
	m.deps.Display.Show(1, 0, second)
}
