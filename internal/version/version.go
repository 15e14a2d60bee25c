package version

import (
	"fmt"
	"strings"

	"github.com/oshokin/buildmeta/internal/release"
)

var (
	// Version is the version of the build. It can be overridden via ldflags.
	Version = "0.1.0-dev-local"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// Branch is the git branch the binary was built from (or "unknown").
	Branch = "unknown"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the version string.
func Short() string {
	return Version
}

// Full returns a human-readable version string with the build metadata.
func Full() string {
	var b strings.Builder

	fmt.Fprintf(&b, "version: %s", Version)

	if label, ok := release.ParseLabel(Version); ok && label != "" {
		fmt.Fprintf(&b, " (%s)", label)
	}

	fmt.Fprintf(&b, ", commit: %s, branch: %s, built at: %s", Commit, Branch, BuildTime)

	return b.String()
}
