// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// AssetsConfig controls how stylesheet locators are turned into URLs.
type AssetsConfig struct {
	// BaseURL prefixes every resource locator in rendered markup.
	// Env: EVB_ASSETS_BASEURL
	BaseURL string `mapstructure:"baseURL" yaml:"baseURL"`

	// Version is appended to every URL as ?ver=<version>. Empty omits it.
	// Env: EVB_ASSETS_VERSION
	Version string `mapstructure:"version" yaml:"version,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// TracingConfig controls the OpenTelemetry exporter for render phase spans.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Exporter is one of "none", "stdout" or "otlp".
	Exporter string `mapstructure:"exporter" yaml:"exporter"`

	// Endpoint is the OTLP gRPC collector address, e.g. "localhost:4317".
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`

	// SampleRate is the fraction of renders traced, 0 to 1.
	SampleRate float64 `mapstructure:"sampleRate" yaml:"sampleRate"`
}

// ServeConfig configures `evb serve`.
type ServeConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`

	// CacheTTL is how long rendered head markup is cached per query.
	// Zero disables the cache.
	CacheTTL time.Duration `mapstructure:"cacheTTL" yaml:"cacheTTL"`
}

// Config represents the evb CLI configuration, loaded from
// ~/.evb/config.yaml.
type Config struct {
	// Theme is the active theme, used to pick the layout stylesheet.
	// Env: EVB_THEME
	Theme string `mapstructure:"theme" yaml:"theme"`

	// Legacy switches every render to the monolithic legacy bundle.
	// Env: EVB_LEGACY
	Legacy bool `mapstructure:"legacy" yaml:"legacy"`

	// Registry is the path to a registry YAML file. Empty uses the
	// built-in catalog.
	// Env: EVB_REGISTRY
	Registry string `mapstructure:"registry" yaml:"registry,omitempty"`

	Assets  AssetsConfig  `mapstructure:"assets" yaml:"assets"`
	Log     LogConfig     `mapstructure:"log" yaml:"log,omitempty"`
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing"`
	Serve   ServeConfig   `mapstructure:"serve" yaml:"serve"`
}

// Exporter names accepted by tracing.exporter.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// DefaultConfig returns a Config with all default values populated.
// Used by `evb config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Theme: "default",
		Assets: AssetsConfig{
			BaseURL: "/wp-content/plugins/events-manager/includes/",
		},
		Tracing: TracingConfig{
			Exporter:   ExporterNone,
			SampleRate: 1,
		},
		Serve: ServeConfig{
			Addr:     "127.0.0.1:8089",
			CacheTTL: 5 * time.Minute,
		},
	}
}

// defaultConfigHeader is written above the generated config file.
const defaultConfigHeader = `# evb configuration
#
# Every key can be overridden with an EVB_ environment variable, e.g.
# EVB_THEME or EVB_ASSETS_BASEURL, and some with command-line flags.
`

// DefaultConfigYAML returns the default configuration file contents.
func DefaultConfigYAML() ([]byte, error) {
	body, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	return append([]byte(defaultConfigHeader+"\n"), body...), nil
}
