// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// EnvVars lists every EVB_ variable the CLI reads.
var EnvVars = []string{
	"EVB_CONFIG",
	"EVB_THEME",
	"EVB_LEGACY",
	"EVB_REGISTRY",
	"EVB_ASSETS_BASEURL",
	"EVB_ASSETS_VERSION",
	"EVB_LOG_TIMESTAMPS",
	"EVB_TRACING_ENABLED",
	"EVB_TRACING_EXPORTER",
	"EVB_TRACING_ENDPOINT",
	"EVB_TRACING_SAMPLERATE",
	"EVB_SERVE_ADDR",
	"EVB_SERVE_CACHETTL",
}

// SmallRegistry is a minimal valid registry file: an auto base module, one
// dependent module and a default layout.
const SmallRegistry = `modules:
  - name: base
    resource: css/base.css
    auto: true
  - name: grid
    resource: css/grid.css
    dependencies: [base]
layouts:
  default: css/layout.css
`

// Isolate points HOME at a fresh temp dir and unsets the EVB_ variables
// for the duration of the test. It returns the new HOME.
func Isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range EnvVars {
		// Setenv registers the restore; Unsetenv makes the key absent.
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
	return home
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteRegistry writes content to registry.yaml in a fresh temp dir.
func WriteRegistry(t *testing.T, content string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "registry.yaml", content)
}
