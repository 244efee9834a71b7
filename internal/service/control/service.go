package control

import (
	"context"

	phase "github.com/oshokin/door-guard/internal/control"
	"github.com/oshokin/door-guard/internal/domain/door"
	"github.com/oshokin/door-guard/internal/hardware"
	"github.com/oshokin/door-guard/internal/logger"
)

// service backs the maintenance API with the running phase machine.
type service struct {
	// machine publishes the snapshots.
	machine *phase.Machine
	// bench is nil unless the hardware is simulated.
	bench *hardware.Bench
}

func newService(machine *phase.Machine, bench *hardware.Bench) *service {
	return &service{
		machine: machine,
		bench:   bench,
	}
}

// Snapshot returns the latest machine snapshot.
func (s *service) Snapshot() *door.Snapshot {
	return s.machine.Snapshot()
}

// SetOccupancy overrides the simulated sensor.
func (s *service) SetOccupancy(ctx context.Context, actor *door.Actor, reading hardware.Reading) error {
	if s.bench == nil {
		return door.ErrOccupancyNotSimulated
	}

	s.bench.SetOccupancy(reading)

	logger.InfoKV(ctx, "Occupancy overridden", "occupancy", reading, "actor", actor)

	return nil
}
