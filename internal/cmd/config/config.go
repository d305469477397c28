// Package config provides CLI command implementations for the config command group.
package config

import (
	"github.com/spf13/cobra"

	"github.com/eventblocks/cli/internal/cmdtypes"
	"github.com/eventblocks/cli/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the evb CLI.`,
	}

	c.AddCommand(NewInitCmd(cfg))
	c.AddCommand(NewVetCmd(cfg))

	return c
}

// configPath returns the config file the command operates on: the path
// resolved at startup, or flag > EVB_CONFIG > default when run standalone.
func configPath(cfg *cmdtypes.GlobalConfig) (string, error) {
	if cfg != nil && cfg.ConfigPath != "" {
		return config.ExpandPath(cfg.ConfigPath)
	}
	flag := ""
	if cfg != nil {
		flag = cfg.Flags.Config
	}
	result, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{FlagValue: flag})
	if err != nil {
		return "", err
	}
	return config.ExpandPath(result.ConfigPath)
}
