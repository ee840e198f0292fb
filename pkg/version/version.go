// Package version carries the build identity of the commitlens binary.
package version

import "runtime/debug"

// Build metadata, overridden with -ldflags "-X" at release time.
var (
	Version = "dev"
	Commit  = "<unknown>"
	Date    = "<unknown>"
)

const shortCommit = 12

// InitBinaryVersion fills in metadata the linker did not set from the module
// build information embedded by the go tool.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "<unknown>" {
				Commit = s.Value
				if len(Commit) > shortCommit {
					Commit = Commit[:shortCommit]
				}
			}
		case "vcs.time":
			if Date == "<unknown>" {
				Date = s.Value
			}
		}
	}
}

// String renders the version line printed by the CLI.
func String() string {
	return "commitlens " + Version + " (commit: " + Commit + ", built: " + Date + ")"
}
