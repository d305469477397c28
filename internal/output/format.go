package output

import (
	"fmt"
	"strings"
)

// OutputFormat selects how a manifest or registry is written.
type OutputFormat string

const (
	FormatYAML  OutputFormat = "yaml"
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"

	// FormatHTML writes the <link> markup a page head would carry.
	FormatHTML OutputFormat = "html"
)

// formatNames maps accepted spellings, lower-cased, to formats.
var formatNames = map[string]OutputFormat{
	"yaml":  FormatYAML,
	"yml":   FormatYAML,
	"json":  FormatJSON,
	"table": FormatTable,
	"html":  FormatHTML,
}

func (f OutputFormat) String() string {
	return string(f)
}

// IsValid reports whether f is a known format.
func (f OutputFormat) IsValid() bool {
	got, ok := formatNames[string(f)]
	return ok && got == f
}

// ParseOutputFormat parses s case-insensitively. Unknown or empty input
// yields FormatYAML.
func ParseOutputFormat(s string) OutputFormat {
	if f, ok := formatNames[strings.ToLower(s)]; ok {
		return f
	}
	return FormatYAML
}

// ParseOutputFormatFor parses s and checks it against the formats a command
// supports.
func ParseOutputFormatFor(s string, allowed []string) (OutputFormat, error) {
	f, ok := formatNames[strings.ToLower(s)]
	if ok {
		for _, a := range allowed {
			if OutputFormat(a) == f {
				return f, nil
			}
		}
	}
	return "", fmt.Errorf("invalid output format %q (valid: %s)", s, strings.Join(allowed, ", "))
}

// ValidRenderFormats returns valid formats for the render command.
func ValidRenderFormats() []string {
	return []string{"yaml", "json", "table", "html"}
}

// ValidListFormats returns valid formats for listing commands.
func ValidListFormats() []string {
	return []string{"table", "yaml", "json"}
}
