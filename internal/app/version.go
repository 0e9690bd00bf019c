package app

import (
	"fmt"
	"runtime/debug"
)

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/heartmarshall/langcoach-backend/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"built"`
	GoVersion string `json:"go"`
}

// Build returns the ldflags values, falling back to the VCS stamp the Go
// toolchain embeds when the binary was built without them.
func Build() BuildInfo {
	info := BuildInfo{Version: Version, Commit: Commit, BuildTime: BuildTime}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" && len(s.Value) >= 12 {
				info.Commit = s.Value[:12]
			}
		case "vcs.time":
			if info.BuildTime == "unknown" {
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

// BuildVersion returns a formatted version string for startup logs and health endpoints.
func BuildVersion() string {
	b := Build()
	return fmt.Sprintf("%s (commit: %s, built: %s)", b.Version, b.Commit, b.BuildTime)
}
