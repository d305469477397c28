// Package cmd provides the evb root command.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventblocks/cli/internal/cmd/config"
	"github.com/eventblocks/cli/internal/cmd/modules"
	"github.com/eventblocks/cli/internal/cmd/render"
	"github.com/eventblocks/cli/internal/cmd/serve"
	"github.com/eventblocks/cli/internal/cmdtypes"
	evbconfig "github.com/eventblocks/cli/internal/config"
	"github.com/eventblocks/cli/internal/output"
	"github.com/eventblocks/cli/internal/tracing"
	"github.com/eventblocks/cli/internal/version"
)

// NewRootCmd creates the root command for the evb CLI.
func NewRootCmd() *cobra.Command {
	cfg := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "evb",
		Short: "Event blocks stylesheet loader",
		Long: `evb decides which stylesheets a page of event, artist and location
blocks needs, in which order, exactly once.

It provides commands to:
  - Simulate page renders and print their stylesheet manifests
  - Compare the stylesheets of two renders
  - Inspect and validate module registries
  - Serve rendered stylesheet heads over HTTP`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return initializeGlobals(c, cfg)
		},
		PersistentPostRunE: func(c *cobra.Command, args []string) error {
			return shutdownGlobals(commandContext(c), cfg)
		},
	}

	f := &cfg.Flags
	rootCmd.PersistentFlags().StringVar(&f.Config, "config", "", "Path to config file (env: EVB_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&f.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&f.Timestamps, "timestamps", true, "Show timestamps in log output")
	rootCmd.PersistentFlags().StringVar(&f.Registry, "registry", "", "Path to a registry YAML file (env: EVB_REGISTRY)")
	rootCmd.PersistentFlags().StringVar(&f.Theme, "theme", "", "Active theme, picks the layout stylesheet (env: EVB_THEME)")
	rootCmd.PersistentFlags().BoolVar(&f.Legacy, "legacy", false, "Serve the monolithic legacy bundle (env: EVB_LEGACY)")

	rootCmd.AddCommand(
		render.NewRenderCmd(cfg),
		modules.NewModulesCmd(cfg),
		serve.NewServeCmd(cfg),
		config.NewConfigCmd(cfg),
		NewVersionCmd(cfg),
	)

	return rootCmd
}

// initializeGlobals loads configuration, applies flag overrides, and sets up
// logging and tracing.
func initializeGlobals(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	pathResult, err := evbconfig.ResolveConfigPath(evbconfig.ResolveConfigPathOptions{
		FlagValue: cfg.Flags.Config,
	})
	if err != nil {
		output.Debug("could not resolve config path", "error", err)
	}
	cfg.ConfigPath = pathResult.ConfigPath

	loader := evbconfig.NewLoader()
	loaded, err := loader.Load(cfg.ConfigPath)
	if err != nil {
		// Commands that need a valid file (config vet) report it themselves.
		output.Debug("config load error", "error", err)
		loaded = evbconfig.DefaultConfig()
	}

	flags := globalFlagValues(c, cfg.Flags)
	applyFlags(loaded, flags)
	cfg.Config = loaded

	output.SetupLogging(output.LogConfig{
		Verbose:    cfg.Flags.Verbose,
		Timestamps: loaded.Log.Timestamps,
	})

	info := version.Get()
	output.Debug("evb started",
		"version", info.Version,
		"cue_sdk", info.CUESDKVersion,
		"config", cfg.ConfigPath,
	)

	cfg.Resolved = loader.ResolveAll(flags)
	if cfg.Flags.Verbose {
		evbconfig.LogResolvedValues(cfg.Resolved)
	}

	if err := evbconfig.Validate(loaded); err != nil {
		output.Warn("configuration has problems, run 'evb config vet'", "error", err)
	}

	provider, err := tracing.NewProvider(commandContext(c), tracing.Config{
		Enabled:    loaded.Tracing.Enabled,
		Exporter:   loaded.Tracing.Exporter,
		Endpoint:   loaded.Tracing.Endpoint,
		SampleRate: loaded.Tracing.SampleRate,
		Writer:     c.ErrOrStderr(),
	})
	if err != nil {
		output.Warn("tracing disabled", "error", err)
		return nil
	}
	cfg.Tracing = provider
	return nil
}

// globalFlagValues maps config keys to the persistent flags bound to them.
func globalFlagValues(c *cobra.Command, f cmdtypes.GlobalFlags) map[string]evbconfig.FlagValue {
	changed := c.Flags().Changed
	return map[string]evbconfig.FlagValue{
		"theme":          {Value: f.Theme, Set: changed("theme")},
		"legacy":         {Value: f.Legacy, Set: changed("legacy")},
		"registry":       {Value: f.Registry, Set: changed("registry")},
		"log.timestamps": {Value: f.Timestamps, Set: changed("timestamps")},
	}
}

// applyFlags overrides loaded values with the flags the user set.
func applyFlags(cfg *evbconfig.Config, flags map[string]evbconfig.FlagValue) {
	if v := flags["theme"]; v.Set {
		cfg.Theme = v.Value.(string)
	}
	if v := flags["legacy"]; v.Set {
		cfg.Legacy = v.Value.(bool)
	}
	if v := flags["registry"]; v.Set {
		cfg.Registry = v.Value.(string)
	}
	if v := flags["log.timestamps"]; v.Set {
		cfg.Log.Timestamps = output.BoolPtr(v.Value.(bool))
	}
}

func shutdownGlobals(ctx context.Context, cfg *cmdtypes.GlobalConfig) error {
	if cfg.Tracing == nil {
		return nil
	}
	if err := cfg.Tracing.Shutdown(ctx); err != nil {
		return fmt.Errorf("flushing traces: %w", err)
	}
	return nil
}

func commandContext(c *cobra.Command) context.Context {
	if ctx := c.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
