// Package buildinfo holds the build identity stamped in by the linker:
//
//	go build -ldflags "-X watchface/internal/buildinfo.Version=v0.3.0 -X watchface/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the version, else the commit, else "dev". It is shown in the
// window title and the boot log line.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// String is the full identity printed by -version.
func String() string {
	return fmt.Sprintf("watchface %s (commit %s, built %s)", Version, Commit, Date)
}
