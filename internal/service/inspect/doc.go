// Package inspect implements door-inspect: it queries the Control node
// maintenance API and overrides the simulated occupancy sensor.
package inspect
