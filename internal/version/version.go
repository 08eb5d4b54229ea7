// Package version exposes build information stamped via -ldflags.
package version

//nolint:revive // Overwritten by the linker at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
