package hardware

import (
	"sync/atomic"
)

// Bench simulates every Control node signal in memory.
// It is safe for concurrent use.
type Bench struct {
	direction  atomic.Uint32
	speed      atomic.Int32
	occupancy  atomic.Uint32
	alarm      atomic.Bool
	diagnostic atomic.Bool
}

// NewBench returns a bench with a stopped actuator and someone in the doorway.
func NewBench() *Bench {
	b := new(Bench)
	b.SetOccupancy(ReadingPresent)

	return b
}

// Devices exposes the bench through the signal contracts.
func (b *Bench) Devices() Devices {
	return Devices{
		Actuator:   b,
		Occupancy:  b,
		Alarm:      b,
		Diagnostic: b,
	}
}

// Forward drives the actuator forward.
func (b *Bench) Forward(speed int) error {
	b.drive(DirectionForward, speed)

	return nil
}

// Reverse drives the actuator in reverse.
func (b *Bench) Reverse(speed int) error {
	b.drive(DirectionReverse, speed)

	return nil
}

// Stop halts the actuator.
func (b *Bench) Stop() error {
	b.drive(DirectionStop, 0)

	return nil
}

func (b *Bench) drive(d Direction, speed int) {
	b.direction.Store(uint32(d))
	b.speed.Store(int32(speed)) //nolint:gosec // Speed is a percentage.
}

// Direction returns the current drive state.
func (b *Bench) Direction() Direction {
	return Direction(b.direction.Load()) //nolint:gosec // Only Direction values are stored.
}

// Speed returns the current duty.
func (b *Bench) Speed() int {
	return int(b.speed.Load())
}

// Occupancy returns the simulated sensor reading.
func (b *Bench) Occupancy() Reading {
	return Reading(b.occupancy.Load()) //nolint:gosec // Only Reading values are stored.
}

// SetOccupancy changes the simulated sensor reading.
func (b *Bench) SetOccupancy(r Reading) {
	b.occupancy.Store(uint32(r))
}

// On activates the alarm.
func (b *Bench) On() error {
	b.alarm.Store(true)

	return nil
}

// Off deactivates the alarm.
func (b *Bench) Off() error {
	b.alarm.Store(false)

	return nil
}

// AlarmActive reports whether the alarm signal is on.
func (b *Bench) AlarmActive() bool {
	return b.alarm.Load()
}

// Raise sets the diagnostic output.
func (b *Bench) Raise() error {
	b.diagnostic.Store(true)

	return nil
}

// DiagnosticRaised reports whether the diagnostic output is set.
func (b *Bench) DiagnosticRaised() bool {
	return b.diagnostic.Load()
}
