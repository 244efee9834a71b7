// Package version exposes build metadata shared by the door binaries.
//
// Version, Commit and BuildTime are injected with -ldflags; Protocol names
// the link byte protocol revision so operators can tell whether a Control
// and an HMI build can talk to each other.
package version
