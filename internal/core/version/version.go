// Package version reports what build is running
package version

import (
	"fmt"
	"runtime/debug"
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Service   string `json:"service"    example:"bazi-api"`
	Version   string `json:"version"    example:"v0.1.0"`
	Commit    string `json:"commit"     example:"3f2c1d0"`
	Date      string `json:"date"       example:"2026-10-01T12:00:00Z"`
	GoVersion string `json:"go_version" example:"go1.25.0"`
}

// Set with -ldflags "-X bazi/internal/core/version.version=v0.1.0 -X ...commit=... -X ...date=..."
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// readBuildInfo is swapped in tests
var readBuildInfo = debug.ReadBuildInfo

// Info returns the build description. Values from -ldflags win; otherwise
// the module version and VCS stamps recorded by the Go toolchain fill in.
func Info() BuildInfo {
	bi := BuildInfo{Service: "bazi-api", Version: version, Commit: commit, Date: date}
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return bi
	}
	bi.GoVersion = info.GoVersion
	if bi.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		bi.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && bi.Commit == "none":
			bi.Commit = s.Value
		case s.Key == "vcs.time" && bi.Date == "unknown":
			bi.Date = s.Value
		}
	}
	return bi
}

// String renders "v0.1.0 (3f2c1d0, 2026-10-01T12:00:00Z)"
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", b.Version, b.Commit, b.Date)
}
