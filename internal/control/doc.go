// Package control implements the Control node phase machine.
//
// The machine owns credential verification, the door cycle and the alarm
// lockout. It runs one phase handler per Step and decides through OnTick
// how the time base treats every tick.
package control
