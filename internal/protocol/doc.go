// Package protocol defines the byte vocabulary spoken between the Control
// node and the HMI node over the serial link.
//
// The link is unframed and carries no checksum: every message is a single
// byte, and credentials travel as five raw digit bytes (0-9) following a
// request byte. Credential is the fixed-length digit sequence both nodes
// exchange and the Control node persists.
package protocol
