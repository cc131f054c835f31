// Package version reports the chartkit build. Release builds set the
// variables with -ldflags "-X".
package version

import (
	"fmt"
	"runtime/debug"
)

const unknown = "unknown"

// Build metadata.
var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

// String formats the build for "chartkit version".
func String() string {
	version, commit := Version, Commit

	if info, ok := debug.ReadBuildInfo(); ok {
		if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}

		if commit == unknown {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && s.Value != "" {
					commit = s.Value
				}
			}
		}
	}

	return fmt.Sprintf("chartkit %s (commit: %s, built: %s)", version, commit, Date)
}
