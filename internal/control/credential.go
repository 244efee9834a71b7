package control

import (
	"context"
	"fmt"

	"github.com/oshokin/door-guard/internal/domain/door"
	"github.com/oshokin/door-guard/internal/logger"
	"github.com/oshokin/door-guard/internal/protocol"
	"github.com/oshokin/door-guard/internal/repository/credential"
)

// checkCredential blocks on one request byte and serves it.
func (m *Machine) checkCredential(ctx context.Context) error {
	request, err := m.deps.Link.ReceiveByte()
	if err != nil {
		return fmt.Errorf("receive request: %w", err)
	}

	switch request {
	case protocol.RequestVerify:
		if err := m.readEntry(); err != nil {
			return fmt.Errorf("receive verify digits: %w", err)
		}

		return m.verify(ctx)
	case protocol.RequestStore:
		if err := m.readEntry(); err != nil {
			return fmt.Errorf("receive store digits: %w", err)
		}

		return m.store(ctx)
	case protocol.RequestOpen, protocol.RequestChange:
		logger.InfoKV(ctx, "Menu request received", "request", protocol.Describe(request))
	case protocol.Blank:
	default:
		logger.WarnKV(ctx, "Unexpected byte while waiting for a request", "byte", protocol.Describe(request))
	}

	return nil
}

// readEntry fills the entry buffer with five bytes, skipping blanks.
func (m *Machine) readEntry() error {
	m.state.clearEntry()

	for m.state.entryLen < protocol.CredentialLength {
		b, err := m.deps.Link.ReceiveByte()
		if err != nil {
			m.state.clearEntry()

			return err
		}

		if b == protocol.Blank {
			continue
		}

		m.state.entry[m.state.entryLen] = b
		m.state.entryLen++
	}

	return nil
}

// verify compares the entry buffer with the stored credential.
func (m *Machine) verify(ctx context.Context) error {
	matched := true

	for i := range protocol.CredentialLength {
		stored, err := m.deps.Store.ReadCell(credential.DigitAddress(i))
		if err != nil {
			m.raiseDiagnostic(ctx, err)
		}

		if stored != m.state.entry[i] {
			matched = false

			break
		}
	}

	m.state.clearEntry()

	if matched {
		m.state.Attempts = 0

		logger.Info(ctx, "Credential matched")

		if err := m.send(ctx, protocol.OutcomeMatch); err != nil {
			return err
		}

		m.deps.Clock.Reset()
		m.state.Cycle = door.CycleOpening
		m.enter(ctx, door.PhaseDoorOpening)

		return nil
	}

	m.state.Attempts++

	logger.WarnKV(ctx, "Credential mismatch", "attempts", m.state.Attempts)

	if m.state.Attempts < m.settings.MaxAttempts {
		return m.send(ctx, protocol.OutcomeMismatch)
	}

	m.state.Attempts = 0
	m.state.alarmWindow.Store(true)
	m.deps.Clock.Reset()
	m.enter(ctx, door.PhaseAlarm)

	return m.send(ctx, protocol.OutcomeAlarm)
}

// store writes the entry buffer to persistent storage.
func (m *Machine) store(ctx context.Context) error {
	entry := m.state.entry
	m.state.clearEntry()

	cred, err := protocol.NewCredential(entry[:])
	if err != nil {
		logger.WarnKV(ctx, "Store request discarded", "error", err)

		return nil
	}

	for i, digit := range cred {
		if i > 0 {
			if err := m.sleep(ctx, m.settings.SettleDelay); err != nil {
				return fmt.Errorf("settle between writes: %w", err)
			}
		}

		if err := m.deps.Store.WriteCell(credential.DigitAddress(i), digit); err != nil {
			return fmt.Errorf("write credential digit %d: %w", i, err)
		}
	}

	logger.InfoKV(ctx, "Credential stored", "credential", cred)

	return nil
}

// raiseDiagnostic reports a storage read fault on the diagnostic pin.
func (m *Machine) raiseDiagnostic(ctx context.Context, cause error) {
	logger.ErrorKV(ctx, "Credential store read fault", "error", cause)

	if err := m.deps.Devices.Diagnostic.Raise(); err != nil {
		logger.ErrorKV(ctx, "Failed to raise diagnostic signal", "error", err)
	}

	m.diagnostic.Store(true)
}
