// Package modules provides the `evb modules` command group.
package modules

import (
	"github.com/spf13/cobra"

	"github.com/eventblocks/cli/internal/cmdtypes"
)

// NewModulesCmd creates the modules command group.
func NewModulesCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:     "modules",
		Aliases: []string{"mod"},
		Short:   "Module registry operations",
		Long:    `Commands for inspecting and validating the stylesheet module registry.`,
	}

	c.AddCommand(
		NewListCmd(cfg),
		NewVetCmd(cfg),
		NewResolveCmd(cfg),
	)

	return c
}
