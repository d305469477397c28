// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/render, internal/cmd/config, ...).
package cmdtypes

import (
	"github.com/eventblocks/cli/internal/config"
	oerrors "github.com/eventblocks/cli/internal/errors"
	"github.com/eventblocks/cli/internal/tracing"
)

// GlobalFlags holds the raw values of the root command's persistent flags.
type GlobalFlags struct {
	Config     string
	Verbose    bool
	Timestamps bool
	Registry   string
	Theme      string
	Legacy     bool
}

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded configuration with flag overrides applied.
	Config *config.Config

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// Resolved records where every configuration value came from.
	Resolved []config.ResolvedValue

	// Tracing is the provider whose tracer the scheduler uses. Nil until
	// PersistentPreRunE runs.
	Tracing *tracing.Provider

	Flags GlobalFlags
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess         = oerrors.ExitSuccess
	ExitGeneralError    = oerrors.ExitGeneralError
	ExitValidationError = oerrors.ExitValidationError
	ExitNotFound        = oerrors.ExitNotFound
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
