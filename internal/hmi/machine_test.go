package hmi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/door-guard/internal/config"
	"github.com/oshokin/door-guard/internal/link"
	"github.com/oshokin/door-guard/internal/protocol"
)

// rig wires a machine to in-memory devices and plays the Control side of the link.
type rig struct {
	machine *Machine
	keys    *KeyQueue
	screen  *Screen
	lamp    *Lamp
	peer    link.Link
}

func newRig(t *testing.T) *rig {
	t.Helper()

	hmiSide, controlSide := link.Pair()
	t.Cleanup(func() { _ = hmiSide.Close() })

	r := &rig{
		keys:   NewKeyQueue(64),
		screen: NewScreen(nil),
		lamp:   new(Lamp),
		peer:   controlSide,
	}

	m, err := New(Deps{
		Link:      hmiSide,
		Keypad:    r.keys,
		Display:   r.screen,
		Indicator: r.lamp,
	}, &config.HMI{})
	require.NoError(t, err)

	r.machine = m

	return r
}

// press queues keys and runs one step per key.
func (r *rig) press(t *testing.T, keys ...Key) {
	t.Helper()

	for _, k := range keys {
		require.True(t, r.keys.Press(k))
		require.NoError(t, r.machine.Step(context.Background()))
	}
}

// enter types a five digit entry followed by submit.
func (r *rig) enter(t *testing.T, digits string) {
	t.Helper()

	c, err := protocol.ParseCredential(digits)
	require.NoError(t, err)

	keys := make([]Key, 0, protocol.CredentialLength+1)
	for _, d := range c {
		keys = append(keys, Key(d))
	}

	r.press(t, append(keys, KeySubmit)...)
}

func (r *rig) reply(t *testing.T, bytes ...byte) {
	t.Helper()

	for _, b := range bytes {
		require.NoError(t, r.peer.SendByte(b))
	}
}

// expectRequest reads a request byte and its digits from the link.
func (r *rig) expectRequest(t *testing.T, request byte, digits string) {
	t.Helper()

	c, err := protocol.ParseCredential(digits)
	require.NoError(t, err)

	for _, want := range append([]byte{request}, c.Bytes()...) {
		got, err := r.peer.ReceiveByte()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func (r *rig) expectByte(t *testing.T, want byte) {
	t.Helper()

	got, err := r.peer.ReceiveByte()
	require.NoError(t, err)
	require.Equal(t, protocol.Describe(want), protocol.Describe(got))
}

func (r *rig) step(t *testing.T) {
	t.Helper()
	require.NoError(t, r.machine.Step(context.Background()))
}

// setUp runs the initial setup and confirmation and leaves the machine in the menu.
func (r *rig) setUp(t *testing.T, digits string) {
	t.Helper()

	r.enter(t, digits)
	require.Equal(t, PhaseConfirm, r.machine.Phase())

	r.enter(t, digits)
	r.expectRequest(t, protocol.RequestStore, digits)
	require.Equal(t, PhaseMenu, r.machine.Phase())
}

// TestSetup_MasksDigitsAndConfirms walks the initial setup.
func TestSetup_MasksDigitsAndConfirms(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	require.Equal(t, PhaseSetOrReenter, r.machine.Phase())
	require.Equal(t, ModeSetup, r.machine.Mode())

	r.press(t, 1, 2, 3)
	require.Equal(t, "PLZ enter pass:", r.screen.Line(0))
	require.Equal(t, "***", r.screen.Line(1))

	r.press(t, KeySubmit)
	require.Equal(t, PhaseSetOrReenter, r.machine.Phase(), "submit needs five digits")

	r.press(t, 4, 5, 6, KeySubmit)
	require.Equal(t, "*****", r.screen.Line(1))
	require.Equal(t, PhaseConfirm, r.machine.Phase())

	r.press(t, 1, 2, 3, 4, 5, KeySubmit)
	require.Equal(t, "Re_enter pass:", r.screen.Line(0))
	r.expectRequest(t, protocol.RequestStore, "12345")
	require.Equal(t, PhaseMenu, r.machine.Phase())

	r.press(t, 0)
	require.Equal(t, "+ : Open Door", r.screen.Line(0))
	require.Equal(t, "- : Change Pass", r.screen.Line(1))
}

// TestConfirm_MismatchRestartsSetup checks that a wrong confirmation discards both entries.
func TestConfirm_MismatchRestartsSetup(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	r.enter(t, "12345")
	r.enter(t, "12340")

	require.Equal(t, PhaseSetOrReenter, r.machine.Phase())
	require.Equal(t, ModeSetup, r.machine.Mode())

	r.setUp(t, "55555")
}

// TestMenu_MinusChangesCredential checks that '-' sends the change request and re-runs setup.
func TestMenu_MinusChangesCredential(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	r.setUp(t, "12345")

	r.press(t, 7, KeyMinus)
	r.expectByte(t, protocol.RequestChange)
	require.Equal(t, PhaseSetOrReenter, r.machine.Phase())
	require.Equal(t, ModeSetup, r.machine.Mode())

	r.setUp(t, "67890")
}

// TestVerify_MismatchThenDoorCycle checks the verify path and the door status screens.
func TestVerify_MismatchThenDoorCycle(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	r.setUp(t, "12345")

	r.press(t, KeyPlus)
	r.expectByte(t, protocol.RequestOpen)
	require.Equal(t, ModeVerify, r.machine.Mode())

	// Stray bytes before the outcome are skipped.
	r.reply(t, protocol.StatusWaiting, protocol.OutcomeMismatch)
	r.enter(t, "99999")
	r.expectRequest(t, protocol.RequestVerify, "99999")
	require.Equal(t, PhaseSetOrReenter, r.machine.Phase())
	require.Equal(t, ModeVerify, r.machine.Mode())

	r.reply(t, protocol.OutcomeMatch)
	r.enter(t, "12345")
	r.expectRequest(t, protocol.RequestVerify, "12345")
	require.Equal(t, PhaseDoorStatus, r.machine.Phase())

	r.reply(t, protocol.StatusOpening)
	r.step(t)
	require.Equal(t, "Door Unlocking", r.screen.Line(0))
	require.Equal(t, "Please wait..", r.screen.Line(1))

	r.reply(t, protocol.StatusWaiting)
	r.step(t)
	require.Equal(t, "Wait For People", r.screen.Line(0))
	require.Equal(t, "   to enter..", r.screen.Line(1))

	r.reply(t, protocol.StatusClosing)
	r.step(t)
	require.Equal(t, "  Door locking", r.screen.Line(0))
	require.Empty(t, r.screen.Line(1))

	r.reply(t, protocol.StatusCycleComplete)
	r.step(t)
	require.Equal(t, PhaseMenu, r.machine.Phase())
}

// TestLockout_UntilAlarmCleared checks the lockout screen and indicator.
func TestLockout_UntilAlarmCleared(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	r.setUp(t, "12345")
	r.press(t, KeyPlus)
	r.expectByte(t, protocol.RequestOpen)

	r.reply(t, protocol.OutcomeAlarm)
	r.enter(t, "00000")
	r.expectRequest(t, protocol.RequestVerify, "00000")
	require.Equal(t, PhaseLockout, r.machine.Phase())

	r.reply(t, protocol.StatusWaiting)
	r.step(t)
	require.Equal(t, PhaseLockout, r.machine.Phase())
	require.Equal(t, "SYSTEM LOCKED", r.screen.Line(0))
	require.Equal(t, "Wait for 1 min", r.screen.Line(1))
	require.True(t, r.lamp.Lit())

	r.reply(t, protocol.StatusAlarmCleared)
	r.step(t)
	require.Equal(t, PhaseMenu, r.machine.Phase())
	require.EqualValues(t, 2, r.lamp.Toggles())
}

// TestRun_StopsOnCancel checks that a cancelled keypad wait ends the loop cleanly.
func TestRun_StopsOnCancel(t *testing.T) {
	t.Parallel()

	r := newRig(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, r.machine.Run(ctx))
}

// TestRun_ReturnsLinkError checks that a closed link ends the loop with an error.
func TestRun_ReturnsLinkError(t *testing.T) {
	t.Parallel()

	r := newRig(t)
	require.NoError(t, r.peer.Close())

	for _, k := range []Key{1, 2, 3, 4, 5, KeySubmit, 1, 2, 3, 4, 5, KeySubmit} {
		require.True(t, r.keys.Press(k))
	}

	err := r.machine.Run(context.Background())
	require.ErrorIs(t, err, link.ErrClosed)
}
