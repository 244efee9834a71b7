// Package hardware declares the signal contracts of the Control node:
// the door actuator, the occupancy sensor, the alarm signal and the
// diagnostic output.
//
// Bench is a simulated implementation used by tests, by the maintenance
// API and by deployments without real pins; package gpio drives physical
// lines through periph.io.
package hardware
