// Package version carries build identification, injected at link time.
package version

var (
	// Version is the semantic version of the build, set via -ldflags.
	Version = "dev"

	// Commit is the git commit the build was produced from.
	Commit = "unknown"
)
