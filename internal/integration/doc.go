// Package integration holds end-to-end tests that run both phase machines
// against each other.
package integration
