// Package version holds build metadata injected with -ldflags.
package version

import "fmt"

//nolint:gochecknoglobals // Set at build time via -ldflags "-X".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersion returns the release version.
func GetVersion() string {
	return version
}

// GetCommit returns the commit the binary was built from.
func GetCommit() string {
	return commit
}

// String returns the version with build details, as shown by --version.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}
