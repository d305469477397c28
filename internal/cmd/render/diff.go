package render

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eventblocks/cli/internal/cmdtypes"
	"github.com/eventblocks/cli/internal/cmdutil"
	"github.com/eventblocks/cli/internal/output"
)

// diffOptions holds the flags for the render diff command.
type diffOptions struct {
	a, b    cmdutil.RenderFlags
	themeB  string
	legacyB bool
}

// NewDiffCmd creates the render diff command.
func NewDiffCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &diffOptions{}

	c := &cobra.Command{
		Use:   "diff",
		Short: "Compare the stylesheets of two page renders",
		Long: `Render two pages and show which stylesheets were added, removed or changed.

The second render is described by the -b flags. Any -b flag left unset takes
the value of the first render, so a diff usually names only what differs.

Examples:
  # What does an event page load that the event archive does not?
  evb render diff --page archive:event --page-b single:event

  # Effect of switching themes
  evb render diff --page single:event --theme-b astra

  # Modular loading against the legacy bundle
  evb render diff --page single:location --legacy-b`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			opts.b.Inherit(c, opts.a)
			if !c.Flags().Changed("theme-b") {
				opts.themeB = cmdutil.Theme(cfg)
			}
			if !c.Flags().Changed("legacy-b") {
				opts.legacyB = cmdutil.Legacy(cfg)
			}
			return runDiff(c.Context(), c.OutOrStdout(), cfg, opts)
		},
	}

	opts.a.AddTo(c)
	opts.b.AddSecondTo(c)
	c.Flags().StringVar(&opts.themeB, "theme-b", "",
		"Theme of the second render (default: --theme)")
	c.Flags().BoolVar(&opts.legacyB, "legacy-b", false,
		"Use legacy fallback for the second render (default: --legacy)")

	return c
}

func runDiff(ctx context.Context, stdout io.Writer, cfg *cmdtypes.GlobalConfig, opts *diffOptions) error {
	s, err := cmdutil.NewScheduler(cfg)
	if err != nil {
		return err
	}

	before := cmdutil.RenderPage(ctx, s, cmdutil.RenderPageOpts{
		Flags:  opts.a,
		Theme:  cmdutil.Theme(cfg),
		Legacy: cmdutil.Legacy(cfg),
	})
	after := cmdutil.RenderPage(ctx, s, cmdutil.RenderPageOpts{
		Flags:  opts.b,
		Theme:  opts.themeB,
		Legacy: opts.legacyB,
	})

	useColor := output.UseColor(stdout)
	d, err := output.DiffManifests(before, after, useColor)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("comparing renders: %w", err)}
	}

	styles := output.NoColorStyles()
	if useColor {
		styles = output.GetStyles()
	}
	fmt.Fprintln(stdout, output.RenderDiff(d, styles))
	return nil
}
