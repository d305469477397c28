package modules

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eventblocks/cli/internal/cmdtypes"
	"github.com/eventblocks/cli/internal/cmdutil"
	"github.com/eventblocks/cli/internal/output"
)

// NewListCmd creates the modules list command.
func NewListCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var outputFlag string

	c := &cobra.Command{
		Use:   "list",
		Short: "List registered modules",
		Long: `List the modules of the active registry.

The YAML output is itself a valid registry file, so it is a starting point
for a custom registry passed with --registry.

Examples:
  # Styled table
  evb modules list

  # Export the built-in registry
  evb modules list -o yaml > registry.yaml`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runList(c.OutOrStdout(), cfg, outputFlag)
		},
	}

	c.Flags().StringVarP(&outputFlag, "output", "o", "table",
		"Output format: table, yaml, json")

	return c
}

func runList(w io.Writer, cfg *cmdtypes.GlobalConfig, outputFmt string) error {
	format, err := output.ParseOutputFormatFor(outputFmt, output.ValidListFormats())
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}

	reg, err := cmdutil.LoadRegistry(cmdutil.RegistryPath(cfg))
	if err != nil {
		return cmdutil.ExitErrorFor(err)
	}

	if err := output.WriteRegistry(w, reg.Document(), format); err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("writing registry: %w", err)}
	}
	return nil
}
