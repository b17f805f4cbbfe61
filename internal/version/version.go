// Package version holds build metadata for the command-line tools.
package version

// Set at build time via -ldflags, e.g.
//
//	go build -ldflags "-X landmark-calib/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// Version is the semantic version.
	Version = "0.1.0"

	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"
)
