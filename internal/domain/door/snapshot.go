package door

import (
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/door-guard/internal/hardware"
)

// Phase is the active state of the Control phase machine.
type Phase uint8

const (
	// PhaseCredentialCheck waits for a verify or store request.
	PhaseCredentialCheck Phase = iota
	// PhaseDoorOpening drives the door open.
	PhaseDoorOpening
	// PhaseDoorWaiting holds the door open until the doorway clears.
	PhaseDoorWaiting
	// PhaseDoorClosing drives the door closed.
	PhaseDoorClosing
	// PhaseAlarm is the lockout after too many mismatches.
	PhaseAlarm
)

// String returns the lower-case name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseCredentialCheck:
		return "credential-check"
	case PhaseDoorOpening:
		return "door-opening"
	case PhaseDoorWaiting:
		return "door-waiting"
	case PhaseDoorClosing:
		return "door-closing"
	case PhaseAlarm:
		return "alarm"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Cycle is the door automation stage.
type Cycle uint8

const (
	// CycleIdle means no door cycle is running.
	CycleIdle Cycle = iota
	// CycleOpening means the door is opening.
	CycleOpening
	// CycleWaitingForClear means the door is open and waits for the doorway to clear.
	CycleWaitingForClear
	// CycleClosing means the door is closing.
	CycleClosing
)

// String returns the lower-case name of the cycle stage.
func (c Cycle) String() string {
	switch c {
	case CycleIdle:
		return "idle"
	case CycleOpening:
		return "opening"
	case CycleWaitingForClear:
		return "waiting-for-clear"
	case CycleClosing:
		return "closing"
	default:
		return fmt.Sprintf("cycle(%d)", uint8(c))
	}
}

// Snapshot is a point-in-time view of the Control node.
type Snapshot struct {
	// Timestamp is when the snapshot was taken.
	Timestamp time.Time
	// Phase is the active phase.
	Phase Phase
	// Cycle is the door automation stage.
	Cycle Cycle
	// Attempts is the consecutive mismatch count.
	Attempts int
	// AlarmWindow reports whether the lockout window is active.
	AlarmWindow bool
	// ElapsedTicks is the time base count.
	ElapsedTicks uint32
	// DiagnosticRaised reports whether a storage read fault has been seen.
	DiagnosticRaised bool
	// Actuator is the last commanded drive state.
	Actuator hardware.Direction
	// AlarmSignal is the last commanded alarm output.
	AlarmSignal bool
	// Occupancy is the sensor reading at snapshot time.
	Occupancy hardware.Reading
}

// Clone returns a copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}

	cloned := *s

	return &cloned
}

// Actor identifies who performed a maintenance action.
type Actor struct {
	// Hostname is the machine name where the action was performed.
	Hostname string
	// Username is the system user who triggered the action.
	Username string
}

// Clone returns a copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// String renders the actor as user@host.
func (a *Actor) String() string {
	if a == nil {
		return "<unknown>"
	}

	return a.Username + "@" + a.Hostname
}

// ErrOccupancyNotSimulated is returned when the occupancy sensor is real hardware
// and cannot be overridden.
var ErrOccupancyNotSimulated = errors.New("occupancy sensor is not simulated")
