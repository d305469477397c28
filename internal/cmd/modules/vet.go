package modules

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eventblocks/cli/internal/assets"
	"github.com/eventblocks/cli/internal/cmdtypes"
	"github.com/eventblocks/cli/internal/cmdutil"
	"github.com/eventblocks/cli/internal/output"
)

// NewVetCmd creates the modules vet command.
func NewVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet [file]",
		Short: "Validate a registry file",
		Long: `Validate a registry file against the registry schema and check that
every dependency and page context names a registered module and that no
dependency cycle exists.

Arguments:
  file    Registry file (default: --registry, or the built-in registry)

Examples:
  # Validate a custom registry
  evb modules vet ./registry.yaml

  # Validate the registry from the config file
  evb modules vet`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path := cmdutil.RegistryPath(cfg)
			if len(args) > 0 {
				path = args[0]
			}
			return runVet(c.Context(), c.OutOrStdout(), c.ErrOrStderr(), path)
		},
	}
}

func runVet(ctx context.Context, stdout, stderr io.Writer, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var reg *assets.Registry
	err := output.RunWithSpinner(ctx, stderr, func(context.Context) error {
		var err error
		reg, err = cmdutil.LoadRegistry(path)
		return err
	}, output.WithTitle("Validating registry..."))
	if err != nil {
		return cmdutil.PrintError(stderr, "registry validation failed", err)
	}

	source := path
	if source == "" {
		source = "built-in registry"
	}
	fmt.Fprintln(stdout, output.FormatCheckmark(fmt.Sprintf(
		"%s is valid: %d modules, %d auto, %d layouts",
		source, len(reg.AllModules()), len(reg.AutoModules()), len(reg.Themes()))))
	return nil
}
