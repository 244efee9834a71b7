// Package config defines the settings shared by the door binaries and
// provides helpers to load, validate and save them in YAML format.
//
// Config groups the serial link parameters, the Control node timing and
// hardware wiring, and the HMI node options. Validate fills in defaults for
// everything that has a sensible one.
package config
