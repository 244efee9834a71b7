package hardware

// Direction is the actuator drive state.
type Direction uint8

const (
	// DirectionStop means the actuator is not driven.
	DirectionStop Direction = iota
	// DirectionForward opens the door.
	DirectionForward
	// DirectionReverse closes the door.
	DirectionReverse
)

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionReverse:
		return "reverse"
	default:
		return "stop"
	}
}

// Reading is the occupancy sensor output.
type Reading uint8

const (
	// ReadingPresent means someone is in the doorway.
	ReadingPresent Reading = iota
	// ReadingClear means the doorway is empty.
	ReadingClear
)

// String returns the lower-case name of the reading.
func (r Reading) String() string {
	if r == ReadingClear {
		return "clear"
	}

	return "present"
}

// Actuator drives the door. Speed is a duty in percent.
type Actuator interface {
	Forward(speed int) error
	Reverse(speed int) error
	Stop() error
}

// OccupancySensor reports whether the doorway is clear.
type OccupancySensor interface {
	Occupancy() Reading
}

// AlarmSignal is the audible or visual alarm output.
type AlarmSignal interface {
	On() error
	Off() error
}

// DiagnosticPin is raised on a persistent-storage read fault and never
// cleared automatically.
type DiagnosticPin interface {
	Raise() error
}

// Devices bundles the signals the Control node owns.
type Devices struct {
	Actuator   Actuator
	Occupancy  OccupancySensor
	Alarm      AlarmSignal
	Diagnostic DiagnosticPin
}
