// Package control runs the Control node: it loads settings, opens the
// link, the credential store and the hardware backend, drives the time
// base and serves the maintenance API next to the phase machine.
package control
