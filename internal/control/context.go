package control

import (
	"sync/atomic"

	"github.com/oshokin/door-guard/internal/domain/door"
	"github.com/oshokin/door-guard/internal/protocol"
)

// Context is the mutable state of the Control node.
// Only the phase and the alarm window are read from the tick goroutine.
type Context struct {
	// phase holds a door.Phase.
	phase atomic.Uint32
	// alarmWindow is set while the lockout runs.
	alarmWindow atomic.Bool
	// Cycle is the door automation stage.
	Cycle door.Cycle
	// Attempts counts consecutive mismatches.
	Attempts int
	// statusSent records that the active phase has run its entry actions.
	statusSent bool
	// entry is the PendingEntryBuffer.
	entry [protocol.CredentialLength]byte
	// entryLen is the number of buffered digits.
	entryLen int
}

// Phase returns the active phase.
func (c *Context) Phase() door.Phase {
	return door.Phase(c.phase.Load()) //nolint:gosec // Only door.Phase values are stored.
}

// AlarmWindow reports whether the lockout window is active.
func (c *Context) AlarmWindow() bool {
	return c.alarmWindow.Load()
}

// enter switches to p and clears everything a phase exit must clear.
func (c *Context) enter(p door.Phase) {
	c.statusSent = false
	c.clearEntry()
	c.phase.Store(uint32(p))
}

func (c *Context) clearEntry() {
	c.entry = [protocol.CredentialLength]byte{}
	c.entryLen = 0
}
