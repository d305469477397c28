// Package render provides the `evb render` command group.
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

// renderOptions holds the flags for the render command.
type renderOptions struct {
	flags  cmdutil.RenderFlags
	output string
	out    string
}

// NewRenderCmd creates the render command.
func NewRenderCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &renderOptions{}

	c := &cobra.Command{
		Use:   "render",
		Short: "Simulate a page render and print its stylesheets",
		Long: `Simulate one page render and print the stylesheets it emits.

The render runs every phase in order: auto modules and the modules tied to
the page context load first, then the modules requested by --block, then the
theme layout. Blocks given with --late-block render in the page body and
load their stylesheets on request.

Examples:
  # Single event page with a booking form
  evb render --page single:event --block booking-form

  # Location archive with a late search block, as a table
  evb render --page archive:location --late-block search -o table

  # Head markup for the astra theme, written to a file
  evb render --page archive:event --theme astra -o html --out head.html`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runRender(c.Context(), c.OutOrStdout(), c.ErrOrStderr(), cfg, opts)
		},
	}

	opts.flags.AddTo(c)
	c.Flags().StringVarP(&opts.output, "output", "o", "yaml",
		"Output format: yaml, json, table, html")
	c.Flags().StringVar(&opts.out, "out", "",
		"Write output to a file instead of stdout")

	c.AddCommand(NewDiffCmd(cfg))

	return c
}

func runRender(ctx context.Context, stdout, stderr io.Writer, cfg *cmdtypes.GlobalConfig, opts *renderOptions) error {
	format, err := output.ParseOutputFormatFor(opts.output, output.ValidRenderFormats())
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}

	s, err := cmdutil.NewScheduler(cfg)
	if err != nil {
		return err
	}

	m := cmdutil.RenderPage(ctx, s, cmdutil.RenderPageOpts{
		Flags:  opts.flags,
		Theme:  cmdutil.Theme(cfg),
		Legacy: cmdutil.Legacy(cfg),
	})

	if cfg != nil && cfg.Flags.Verbose {
		fmt.Fprint(stderr, output.RenderEmissionLines(m))
	}

	head := cmdutil.HeadRenderer(cfg)
	write := func(w io.Writer) error {
		if format == output.FormatHTML {
			return head.Render(w, m)
		}
		return output.WriteManifest(w, m, format)
	}
	if err := cmdutil.WriteOutput(stdout, opts.out, write); err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("writing render output: %w", err)}
	}

	if opts.out != "" {
		output.ScopedLogger(m.Page).Info(output.FormatCheckmark(
			fmt.Sprintf("wrote %d stylesheets to %s", len(m.Emissions), opts.out)),
			"digest", m.Digest())
	}
	return nil
}
