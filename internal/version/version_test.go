package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, GitCommit, info.GitCommit)
	assert.Equal(t, BuildDate, info.BuildDate)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.NotEmpty(t, info.CUESDKVersion)
	assert.NotEmpty(t, info.OTelVersion)
}

func TestInfo_String(t *testing.T) {
	info := Info{
		Version:       "v1.2.3",
		GitCommit:     "abc123",
		BuildDate:     "2026-01-01",
		GoVersion:     "go1.25.0",
		CUESDKVersion: "v0.15.4",
		OTelVersion:   "v1.39.0",
	}

	s := info.String()
	assert.Contains(t, s, "evb version v1.2.3")
	assert.Contains(t, s, "abc123")
	assert.Contains(t, s, "2026-01-01")
	assert.Contains(t, s, "go1.25.0")
	assert.Contains(t, s, "v0.15.4")
	assert.Contains(t, s, "v1.39.0")
}

func TestDependencyVersions(t *testing.T) {
	bi := &debug.BuildInfo{
		Deps: []*debug.Module{
			{Path: cueModule, Version: "v0.15.4"},
			{Path: otelModule, Version: "v1.39.0", Replace: &debug.Module{Path: "../otel", Version: ""}},
			{Path: "example.com/forked", Version: "v1.0.0", Replace: &debug.Module{Path: "example.com/fork", Version: "v1.0.1"}},
		},
	}

	got := dependencyVersions(bi)
	assert.Equal(t, "v0.15.4", got[cueModule])
	assert.Equal(t, "v1.39.0", got[otelModule], "local replace keeps the required version")
	assert.Equal(t, "v1.0.1", got["example.com/forked"])
}
