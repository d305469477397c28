// Package cmdutil provides shared command utilities for the render, modules
// and serve commands. It centralizes flag groups, registry and scheduler
// construction, and output helpers.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/eventblocks/cli/internal/assets"
)

// secondSuffix names the flags of the second render in `render diff`.
const secondSuffix = "-b"

// RenderFlags holds the flags that describe one simulated page render
// (render, render diff).
type RenderFlags struct {
	Page       string
	Blocks     []string
	LateBlocks []string
}

// AddTo registers the render flags on the given cobra command.
func (f *RenderFlags) AddTo(cmd *cobra.Command) {
	f.addTo(cmd, "", "")
}

// AddSecondTo registers the flags of a second render, suffixed with -b.
// Flags left unset inherit from the first render; see Inherit.
func (f *RenderFlags) AddSecondTo(cmd *cobra.Command) {
	f.addTo(cmd, secondSuffix, " of the second render")
}

func (f *RenderFlags) addTo(cmd *cobra.Command, suffix, which string) {
	cmd.Flags().StringVar(&f.Page, "page"+suffix, "",
		"Page context"+which+", e.g. single:event or archive:location")
	cmd.Flags().StringSliceVar(&f.Blocks, "block"+suffix, nil,
		"Content block kinds"+which+" rendered before stylesheets are flushed (can be repeated)")
	cmd.Flags().StringSliceVar(&f.LateBlocks, "late-block"+suffix, nil,
		"Content block kinds"+which+" rendered in the page body (can be repeated)")
}

// Inherit copies every -b flag the user did not set from base.
func (f *RenderFlags) Inherit(cmd *cobra.Command, base RenderFlags) {
	if !cmd.Flags().Changed("page" + secondSuffix) {
		f.Page = base.Page
	}
	if !cmd.Flags().Changed("block" + secondSuffix) {
		f.Blocks = base.Blocks
	}
	if !cmd.Flags().Changed("late-block" + secondSuffix) {
		f.LateBlocks = base.LateBlocks
	}
}

// PageContext parses the --page value. An empty value is an "other" page.
func (f *RenderFlags) PageContext() assets.PageContext {
	return assets.ParsePageContext(f.Page)
}

// ResolveNames returns module names from command args, defaulting to every
// module in the registry.
func ResolveNames(args []string, reg *assets.Registry) []string {
	if len(args) > 0 {
		return args
	}
	return reg.Names()
}
