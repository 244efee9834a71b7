// Package gpio drives the Control node signals through periph.io.
//
// The actuator is an H-bridge with two direction lines and a PWM enable
// line for speed. The occupancy sensor is an input pulled up, reading low
// while the doorway is clear. The alarm and diagnostic outputs are plain
// active-high lines.
package gpio
