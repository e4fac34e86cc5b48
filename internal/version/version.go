// Package version exposes build metadata for the About dialog.
package version

// Stamped at build time via -ldflags; the defaults cover plain go build.
var (
	// Version is the release version.
	Version = "0.1.0"

	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"

	// GitCommit is the source revision the binary was built from.
	GitCommit = "unknown"
)
