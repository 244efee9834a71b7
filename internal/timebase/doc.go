// Package timebase implements the Control node's software time base.
//
// A Clock holds a tick counter that only the periodic tick path and explicit
// Reset calls mutate. What a tick does (count, hold at zero, or nothing) is
// decided by a single Handler registered once at startup; with no handler
// registered ticks are dropped.
package timebase
