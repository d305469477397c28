package config

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
)

// themeRegex matches theme slugs.
var themeRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks a loaded configuration. It returns ValidationErrors
// listing every problem, or nil.
func Validate(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if cfg.Theme != "" && !themeRegex.MatchString(cfg.Theme) {
		add("theme", "must be a theme slug (lowercase alphanumeric with hyphens or underscores)")
	}

	if cfg.Registry != "" && strings.TrimSpace(cfg.Registry) == "" {
		add("registry", "must not be empty or whitespace only")
	}

	if cfg.Assets.BaseURL != "" {
		if _, err := url.Parse(cfg.Assets.BaseURL); err != nil {
			add("assets.baseURL", fmt.Sprintf("must be a URL or path: %v", err))
		}
	}

	switch cfg.Tracing.Exporter {
	case "", ExporterNone, ExporterStdout:
	case ExporterOTLP:
		if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
			add("tracing.endpoint", "is required when tracing.exporter is otlp")
		}
	default:
		add("tracing.exporter", fmt.Sprintf("must be one of %s, %s or %s", ExporterNone, ExporterStdout, ExporterOTLP))
	}
	if cfg.Tracing.SampleRate < 0 || cfg.Tracing.SampleRate > 1 {
		add("tracing.sampleRate", "must be between 0 and 1")
	}

	if cfg.Serve.Addr != "" {
		if _, _, err := net.SplitHostPort(cfg.Serve.Addr); err != nil {
			add("serve.addr", "must be host:port")
		}
	}
	if cfg.Serve.CacheTTL < 0 {
		add("serve.cacheTTL", "must not be negative")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateFile loads and validates the configuration file at path.
func ValidateFile(path string) (*Config, error) {
	cfg, err := NewLoader().Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config file: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
