// Package version holds build-time version metadata, set via -ldflags.
package version

var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit hash the build was produced from.
	Commit = "unknown"
)
