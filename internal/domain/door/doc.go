// Package door contains the core domain types shared across the Control
// node: the phase and door-cycle enumerations, the Snapshot published by
// the phase machine after every handler, and the Actor that tags
// maintenance requests.
package door
