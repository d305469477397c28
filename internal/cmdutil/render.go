package cmdutil

import (
	"context"
	"fmt"

	"github.com/eventblocks/cli/internal/assets"
	"github.com/eventblocks/cli/internal/cmdtypes"
	"github.com/eventblocks/cli/internal/config"
	"github.com/eventblocks/cli/internal/output"
	"github.com/eventblocks/cli/internal/page"
)

// LoadRegistry loads the registry file at path, or the built-in registry
// when path is empty.
func LoadRegistry(path string) (*assets.Registry, error) {
	if path == "" {
		output.Debug("using built-in registry")
		return assets.DefaultRegistry()
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("expanding registry path: %w", err)
	}
	output.Debug("loading registry", "path", expanded)
	return assets.LoadRegistryFile(expanded)
}

// RegistryPath returns the registry file configured for this invocation.
// Empty means the built-in registry.
func RegistryPath(cfg *cmdtypes.GlobalConfig) string {
	if cfg == nil || cfg.Config == nil {
		return ""
	}
	return cfg.Config.Registry
}

// Theme returns the active theme.
func Theme(cfg *cmdtypes.GlobalConfig) string {
	if cfg == nil || cfg.Config == nil {
		return config.DefaultConfig().Theme
	}
	return cfg.Config.Theme
}

// Legacy reports whether legacy fallback is switched on globally.
func Legacy(cfg *cmdtypes.GlobalConfig) bool {
	return cfg != nil && cfg.Config != nil && cfg.Config.Legacy
}

// HeadRenderer returns the head renderer for the configured asset URLs.
func HeadRenderer(cfg *cmdtypes.GlobalConfig) page.HeadRenderer {
	assetsCfg := config.DefaultConfig().Assets
	if cfg != nil && cfg.Config != nil {
		assetsCfg = cfg.Config.Assets
	}
	return page.HeadRenderer{BaseURL: assetsCfg.BaseURL, Version: assetsCfg.Version}
}

// NewScheduler loads the configured registry and returns a scheduler that
// logs through the global logger and traces through cfg.Tracing.
//
// On failure it returns an *ExitError with the appropriate exit code.
func NewScheduler(cfg *cmdtypes.GlobalConfig) (*assets.Scheduler, error) {
	reg, err := LoadRegistry(RegistryPath(cfg))
	if err != nil {
		return nil, ExitErrorFor(err)
	}

	opts := []assets.SchedulerOption{assets.WithLogger(output.Logger())}
	if cfg != nil && cfg.Tracing != nil {
		opts = append(opts, assets.WithTracer(cfg.Tracing.Tracer()))
	}
	return assets.NewScheduler(reg, opts...), nil
}

// RenderPageOpts holds the inputs for RenderPage.
type RenderPageOpts struct {
	Flags  RenderFlags
	Theme  string
	Legacy bool
	// Catalog maps block kinds to modules. Nil uses page.DefaultCatalog.
	Catalog page.Catalog
}

// RenderPage simulates one page render and returns its manifest.
func RenderPage(ctx context.Context, s *assets.Scheduler, opts RenderPageOpts) *assets.Manifest {
	catalog := opts.Catalog
	if catalog == nil {
		catalog = page.DefaultCatalog()
	}

	kinds := append(append([]string(nil), opts.Flags.Blocks...), opts.Flags.LateBlocks...)
	for _, kind := range UnknownBlocks(s.Registry(), catalog, kinds) {
		output.Warn("block requests no registered module", "block", kind)
	}

	info := assets.PageInfo{
		Context: opts.Flags.PageContext(),
		Theme:   opts.Theme,
		Legacy:  opts.Legacy,
	}
	output.Debug("rendering page",
		"page", info.Context.Key(),
		"theme", info.Theme,
		"legacy", info.Legacy,
		"blocks", len(opts.Flags.Blocks),
		"late", len(opts.Flags.LateBlocks),
	)
	return s.Render(ctx, info, catalog.Blocks(opts.Flags.Blocks), catalog.Blocks(opts.Flags.LateBlocks))
}

// UnknownBlocks returns the block kinds, in order and without repeats,
// none of whose modules is registered.
func UnknownBlocks(reg *assets.Registry, catalog page.Catalog, kinds []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, kind := range kinds {
		if kind == "" || seen[kind] {
			continue
		}
		seen[kind] = true

		known := false
		for _, name := range catalog.Modules(kind) {
			if _, ok := reg.Module(name); ok {
				known = true
				break
			}
		}
		if !known {
			out = append(out, kind)
		}
	}
	return out
}
