// Package buildinfo holds version information set at link time with -ldflags.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("catenary %s (commit=%s, date=%s)", Version, Commit, Date)
}
