package version

import (
	"fmt"
	"runtime/debug"
)

const modulePath = "github.com/mydehq/mediascout"

var (
	// These variables are set via -ldflags during build
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Get returns the version, falling back to the module version recorded in
// the build info for `go install` builds.
func Get() string {
	if Version != "dev" {
		return Version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Version
	}
	if info.Main.Path == modulePath && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	for _, dep := range info.Deps {
		if dep.Path == modulePath {
			return dep.Version
		}
	}
	return Version
}

// revision returns the commit, from ldflags or the VCS stamp
func revision() string {
	if Commit != "none" {
		return Commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return Commit
}

// String returns a formatted version string
func String() string {
	return fmt.Sprintf("%s (Commit: %s, Built: %s)", Get(), revision(), Date)
}
