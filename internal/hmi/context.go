package hmi

import (
	"fmt"

	"github.com/oshokin/door-guard/internal/protocol"
)

// Phase is the active state of the HMI phase machine.
type Phase uint8

const (
	// PhaseSetOrReenter collects a five digit entry.
	PhaseSetOrReenter Phase = iota
	// PhaseConfirm collects the confirmation of a new credential.
	PhaseConfirm
	// PhaseMenu offers opening the door or changing the credential.
	PhaseMenu
	// PhaseDoorStatus shows the door cycle pushed by the Control node.
	PhaseDoorStatus
	// PhaseLockout shows the lockout screen.
	PhaseLockout
)

// String returns the lower-case name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSetOrReenter:
		return "set-or-reenter"
	case PhaseConfirm:
		return "confirm"
	case PhaseMenu:
		return "menu"
	case PhaseDoorStatus:
		return "door-status"
	case PhaseLockout:
		return "lockout"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Mode selects what a submitted entry in PhaseSetOrReenter does.
type Mode uint8

const (
	// ModeSetup keeps the entry locally and moves on to confirmation.
	ModeSetup Mode = iota
	// ModeVerify sends the entry to the Control node for verification.
	ModeVerify
)

// String returns the lower-case name of the mode.
func (m Mode) String() string {
	if m == ModeVerify {
		return "verify"
	}

	return "setup"
}

// Context is the mutable state of the HMI node.
type Context struct {
	// Phase is the active phase.
	Phase Phase
	// Mode is the re-entry flag of PhaseSetOrReenter.
	Mode Mode
	// entry is the PendingEntryBuffer.
	entry [protocol.CredentialLength]byte
	// entryLen is the number of buffered digits.
	entryLen int
	// first holds the setup entry while it is confirmed.
	first protocol.Credential
	// prompted records that the phase screen has been drawn.
	prompted bool
}

// enter switches to p and clears everything a phase exit must clear.
func (c *Context) enter(p Phase) {
	c.Phase = p
	c.prompted = false
	c.clearEntry()
}

func (c *Context) clearEntry() {
	c.entry = [protocol.CredentialLength]byte{}
	c.entryLen = 0
}

// push appends a digit unless the buffer is full and returns its position.
func (c *Context) push(d byte) (int, bool) {
	if c.entryLen >= protocol.CredentialLength {
		return 0, false
	}

	pos := c.entryLen
	c.entry[pos] = d
	c.entryLen++

	return pos, true
}

func (c *Context) full() bool {
	return c.entryLen == protocol.CredentialLength
}
