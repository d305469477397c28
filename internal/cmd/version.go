package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eventblocks/cli/internal/cmdtypes"
	"github.com/eventblocks/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	var format string
	c := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show the evb version, commit and build date, with the versions of the
CUE SDK used for registry schema checks and of OpenTelemetry used for
render phase spans.

Examples:
  evb version
  evb version -o json`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return writeVersion(c.OutOrStdout(), format, version.Get())
		},
	}
	c.Flags().StringVarP(&format, "output", "o", "text", "Output format (text, json, yaml)")
	return c
}

func writeVersion(w io.Writer, format string, info version.Info) error {
	switch format {
	case "text", "":
		_, err := fmt.Fprintln(w, info.String())
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(info)
	default:
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitGeneralError,
			Err:  fmt.Errorf("invalid output format %q (valid: text, json, yaml)", format),
		}
	}
}
