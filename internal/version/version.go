package version

import "fmt"

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "0.1.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
	// Protocol is the revision of the byte protocol spoken over the link.
	Protocol = "1"
)

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns a human-readable version line for the named binary.
func Full(binary string) string {
	return fmt.Sprintf("%s %s (protocol %s, commit %s, built at %s)", binary, Version, Protocol, Commit, BuildTime)
}
