// Package version reports build information for the logsweep binaries.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set by ldflags during build.
var (
	version   = "dev"     // App version (e.g., v1.0.0)
	buildDate = "unknown" // Build date (RFC3339)
	gitCommit = "unknown" // Git commit SHA
)

// BuildInfo contains version and build details.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
	GoVersion string `json:"goVersion"`
}

// Get returns the build information. Without ldflags the commit is taken from
// the VCS stamp embedded by the Go toolchain, when present.
func Get() BuildInfo {
	info := BuildInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
		GoVersion: runtime.Version(),
	}
	if info.GitCommit == "unknown" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					info.GitCommit = s.Value[:7]
				}
			}
		}
	}
	return info
}

// String renders the build information on one line.
func (b BuildInfo) String() string {
	return fmt.Sprintf("logsweep %s (commit %s, built %s, %s)", b.Version, b.GitCommit, b.BuildDate, b.GoVersion)
}

// KeyVals returns the build information as logger key/value pairs.
func (b BuildInfo) KeyVals() []interface{} {
	return []interface{}{"version", b.Version, "commit", b.GitCommit, "go_version", b.GoVersion}
}
