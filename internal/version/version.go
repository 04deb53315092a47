package version

import (
	"fmt"
	"runtime"
)

//nolint:gochecknoglobals // Overridden via ldflags.
var (
	// Version is the semantic version of the build.
	Version = "0.1.0-dev"
	// Commit is the short git SHA of the build.
	Commit = "none"
	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
	GoVersion string
}

// Current returns the metadata of the running binary.
func Current() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// String renders the metadata on one line.
func (i Info) String() string {
	return fmt.Sprintf("flow-compiler %s (commit %s, built %s, %s)", i.Version, i.Commit, i.BuildTime, i.GoVersion)
}

// KV returns the metadata as logger key-value pairs.
func (i Info) KV() []any {
	return []any{"version", i.Version, "commit", i.Commit, "build_time", i.BuildTime}
}
