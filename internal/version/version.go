// Package version provides version information for the evb CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Modules whose versions are reported alongside the CLI version.
const (
	cueModule  = "cuelang.org/go"
	otelModule = "go.opentelemetry.io/otel"
)

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version" yaml:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate" yaml:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion" yaml:"goVersion"`

	// CUESDKVersion is the version of the CUE SDK that validates registry files.
	CUESDKVersion string `json:"cueSDKVersion" yaml:"cueSDKVersion"`

	// OTelVersion is the version of the OpenTelemetry API used for phase spans.
	OTelVersion string `json:"otelVersion" yaml:"otelVersion"`
}

// Get returns the current version information.
func Get() Info {
	info := Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		CUESDKVersion: "unknown",
		OTelVersion:   "unknown",
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		deps := dependencyVersions(bi)
		if v, ok := deps[cueModule]; ok {
			info.CUESDKVersion = v
		}
		if v, ok := deps[otelModule]; ok {
			info.OTelVersion = v
		}
	}
	return info
}

// dependencyVersions maps module paths to the versions linked into the
// binary, following replace directives.
func dependencyVersions(bi *debug.BuildInfo) map[string]string {
	out := make(map[string]string, len(bi.Deps))
	for _, dep := range bi.Deps {
		v := dep.Version
		if dep.Replace != nil && dep.Replace.Version != "" {
			v = dep.Replace.Version
		}
		out[dep.Path] = v
	}
	return out
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("evb version %s\n  Commit:    %s\n  Built:     %s\n  Go:        %s\n  CUE SDK:   %s\n  OTel:      %s",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.CUESDKVersion, i.OTelVersion)
}
