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

// NewInitCmd creates the config init command.
func NewInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new evb configuration file",
		Long: `Create a new evb configuration file with default values.

The configuration file is created at ~/.evb/config.yaml by default.
Use --config flag or EVB_CONFIG to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			path, err := configPath(cfg)
			if err != nil {
				return fmt.Errorf("resolving config path: %w", err)
			}

			if err := config.WriteDefault(path, force); err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return &cmdtypes.ExitError{
						Code: cmdtypes.ExitGeneralError,
						Err: &oerrors.DetailError{
							Type:     "already exists",
							Message:  "config file already exists",
							Location: path,
							Hint:     "Use --force to overwrite it",
							Cause:    err,
						},
					}
				}
				return err
			}

			fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file created: "+path))
			return nil
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}
