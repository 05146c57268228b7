package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoDefaults(t *testing.T) {
	info := Info()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, GoVersion, info.GoVersion)
}

func TestStringFormat(t *testing.T) {
	info := BuildInfo{
		Version:   "1.2.3",
		BuildDate: "2026-01-15T10:00:00Z",
		GitCommit: "abcdef1234567890",
		GoVersion: "go1.24.4",
	}

	out := info.String()
	assert.Contains(t, out, "Version: 1.2.3")
	assert.Contains(t, out, "Build Date: 2026-01-15T10:00:00Z")
	// Commits are truncated to a short hash.
	assert.Contains(t, out, "Git Commit: abcdef1")
	assert.False(t, strings.Contains(out, "abcdef1234567890"))
}

func TestStringOmitsUnknownFields(t *testing.T) {
	info := BuildInfo{
		Version:   "dev",
		BuildDate: unknownValue,
		GitCommit: unknownValue,
		GoVersion: "go1.24.4",
	}

	out := info.String()
	assert.NotContains(t, out, "Build Date")
	assert.NotContains(t, out, "Git Commit")
}

func TestIsRelease(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	Version = "dev"
	assert.False(t, IsRelease())

	Version = "1.0.0"
	assert.True(t, IsRelease())

	Version = "1.0.0-rc.1"
	assert.False(t, IsRelease())
}
