// Package serve provides the `evb serve` command.
package serve

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eventblocks/cli/internal/cmdtypes"
	"github.com/eventblocks/cli/internal/cmdutil"
	"github.com/eventblocks/cli/internal/config"
	"github.com/eventblocks/cli/internal/output"
	"github.com/eventblocks/cli/internal/server"
)

// serveOptions holds the flags for the serve command.
type serveOptions struct {
	addr     string
	cacheTTL time.Duration
}

// NewServeCmd creates the serve command.
func NewServeCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &serveOptions{}

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered stylesheet heads over HTTP",
		Long: `Serve stylesheet renders over HTTP. Every request is its own render; only
the registry is shared.

Endpoints:
  GET /head?page=&block=&late=&theme=&legacy=   head markup (text/html)
  GET /manifest?page=&block=&late=&theme=&legacy=   render manifest (JSON)
  GET /healthz                                   liveness

Examples:
  # Serve on the configured address
  evb serve

  # Serve on all interfaces without caching
  evb serve --addr :8089 --cache-ttl 0`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			settings := serveSettings(cfg, opts, c.Flags().Changed("addr"), c.Flags().Changed("cache-ttl"))
			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, settings)
		},
	}

	defaults := config.DefaultConfig().Serve
	c.Flags().StringVar(&opts.addr, "addr", defaults.Addr,
		"Listen address (default: serve.addr from config)")
	c.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", defaults.CacheTTL,
		"How long rendered heads are cached, 0 disables (default: serve.cacheTTL from config)")

	return c
}

// serveSettings applies the flags the user set over the configured values.
func serveSettings(cfg *cmdtypes.GlobalConfig, opts *serveOptions, addrSet, ttlSet bool) config.ServeConfig {
	settings := config.DefaultConfig().Serve
	if cfg != nil && cfg.Config != nil {
		settings = cfg.Config.Serve
	}
	if addrSet {
		settings.Addr = opts.addr
	}
	if ttlSet {
		settings.CacheTTL = opts.cacheTTL
	}
	return settings
}

func runServe(ctx context.Context, cfg *cmdtypes.GlobalConfig, settings config.ServeConfig) error {
	s, err := cmdutil.NewScheduler(cfg)
	if err != nil {
		return err
	}

	h := server.NewHandler(server.HandlerConfig{
		Scheduler: s,
		Head:      cmdutil.HeadRenderer(cfg),
		Theme:     cmdutil.Theme(cfg),
		Legacy:    cmdutil.Legacy(cfg),
		CacheTTL:  settings.CacheTTL,
		Logger:    output.ScopedLogger("serve"),
	})

	srv, err := server.NewServer(settings.Addr, h)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}
	if err := srv.Run(ctx); err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("serving: %w", err)}
	}
	return nil
}
