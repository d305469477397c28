package config

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventblocks/cli/internal/cmdtypes"
	"github.com/eventblocks/cli/internal/config"
	oerrors "github.com/eventblocks/cli/internal/errors"
	"github.com/eventblocks/cli/internal/output"
)

// NewVetCmd creates the config vet command.
func NewVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the evb configuration file",
		Long: `Validate the evb configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. Every value is in range (theme slug, exporter, sample rate, listen address)

The config path is resolved using precedence:
  --config flag > EVB_CONFIG env > ~/.evb/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			path, err := configPath(cfg)
			if err != nil {
				return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
			}

			exists, err := config.ConfigFileExists(path)
			if err != nil {
				return fmt.Errorf("checking config file: %w", err)
			}
			if !exists {
				return &cmdtypes.ExitError{
					Code: cmdtypes.ExitNotFound,
					Err: &oerrors.DetailError{
						Type:     "not found",
						Message:  "configuration file not found",
						Location: path,
						Hint:     "Run 'evb config init' to create default configuration",
						Cause:    oerrors.ErrNotFound,
					},
				}
			}

			if _, err := config.ValidateFile(path); err != nil {
				var verrs config.ValidationErrors
				if errors.As(err, &verrs) {
					stderr := c.ErrOrStderr()
					fmt.Fprintln(stderr, "Error: config validation failed")
					fmt.Fprintf(stderr, "  File: %s\n\n", path)
					for _, e := range verrs {
						fmt.Fprintf(stderr, "  %s: %s\n", e.Field, e.Message)
					}
					return &cmdtypes.ExitError{Code: cmdtypes.ExitValidationError, Err: err, Printed: true}
				}
				return &cmdtypes.ExitError{Code: cmdtypes.ExitValidationError, Err: err}
			}

			fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+path))
			return nil
		},
	}
}
