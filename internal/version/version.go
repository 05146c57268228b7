// Package version provides build version information for the heron tools.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const (
	unknownValue     = "unknown"
	commitHashLength = 7
)

// Build-time variables set by ldflags
var (
	Version   = "dev"
	BuildDate = unknownValue
	GitCommit = unknownValue
	GoVersion = runtime.Version()
)

// BuildInfo contains build information for display.
type BuildInfo struct {
	Version    string `json:"version"`
	BuildDate  string `json:"build_date"`
	GitCommit  string `json:"git_commit"`
	GoVersion  string `json:"go_version"`
	ModulePath string `json:"module_path"`
}

// Info returns the build information, enriched from the runtime where
// available.
func Info() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: GoVersion,
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info.ModulePath = buildInfo.Main.Path
	}

	return info
}

// String returns a formatted version string.
func (b BuildInfo) String() string {
	var sb strings.Builder
	sb.WriteString("heron table engine\n")
	sb.WriteString(fmt.Sprintf("Version: %s\n", b.Version))

	if b.BuildDate != unknownValue {
		sb.WriteString(fmt.Sprintf("Build Date: %s\n", b.BuildDate))
	}

	if b.GitCommit != unknownValue {
		commit := b.GitCommit
		if len(commit) > commitHashLength {
			commit = commit[:commitHashLength]
		}
		sb.WriteString(fmt.Sprintf("Git Commit: %s\n", commit))
	}

	sb.WriteString(fmt.Sprintf("Go Version: %s\n", b.GoVersion))

	if b.ModulePath != "" {
		sb.WriteString(fmt.Sprintf("Module: %s\n", b.ModulePath))
	}

	return sb.String()
}

// IsRelease returns true if this is a release version (not dev)
func IsRelease() bool {
	return Version != "dev" && !strings.Contains(Version, "-")
}
