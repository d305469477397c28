package modules

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eventblocks/cli/internal/assets"
	"github.com/eventblocks/cli/internal/cmdtypes"
	"github.com/eventblocks/cli/internal/cmdutil"
	oerrors "github.com/eventblocks/cli/internal/errors"
	"github.com/eventblocks/cli/internal/output"
)

// resolveOptions holds the flags for the resolve command.
type resolveOptions struct {
	tree bool
}

// NewResolveCmd creates the modules resolve command.
func NewResolveCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &resolveOptions{}

	c := &cobra.Command{
		Use:   "resolve [name...]",
		Short: "Show the load order of modules and their dependencies",
		Long: `Print the modules that loading the named modules would emit, in load
order: every dependency before its dependents, each module once.

Arguments:
  name    Module names (default: every registered module)

Examples:
  # Load order for an event page with a booking form
  evb modules resolve event-single booking-form

  # Dependency tree instead of a flat list
  evb modules resolve locations-list --tree`,
		RunE: func(c *cobra.Command, args []string) error {
			return runResolve(c.OutOrStdout(), cfg, args, opts)
		},
	}

	c.Flags().BoolVar(&opts.tree, "tree", false, "Print a dependency tree")

	return c
}

func runResolve(w io.Writer, cfg *cmdtypes.GlobalConfig, args []string, opts *resolveOptions) error {
	reg, err := cmdutil.LoadRegistry(cmdutil.RegistryPath(cfg))
	if err != nil {
		return cmdutil.ExitErrorFor(err)
	}

	names := cmdutil.ResolveNames(args, reg)
	if unknown := unknownModules(reg, names); len(unknown) > 0 {
		return cmdutil.ExitErrorFor(oerrors.NewNotFoundError(
			fmt.Sprintf("unknown modules: %s", strings.Join(unknown, ", ")),
			cmdutil.RegistryPath(cfg),
			"Run 'evb modules list' to see registered modules"))
	}

	if opts.tree {
		fmt.Fprint(w, output.RenderDependencyTree(reg, names...))
		return nil
	}

	for i, name := range reg.Closure(names...) {
		m, _ := reg.Module(name)
		fmt.Fprintf(w, "%2d  %s  %s\n", i+1, output.StyleNoun.Render(m.Name), m.Resource)
	}
	return nil
}

func unknownModules(reg *assets.Registry, names []string) []string {
	var out []string
	for _, name := range names {
		if _, ok := reg.Module(name); !ok {
			out = append(out, name)
		}
	}
	return out
}
