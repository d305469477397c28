package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: module names, themes, pages.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for modules emitted by the Base phase.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for modules emitted by the Queued phase.
	ColorYellow = lipgloss.Color("220")

	// ColorMagenta is used for layout stylesheets.
	ColorMagenta = lipgloss.Color("213")

	// ColorRed is used for removals in diffs.
	ColorRed = lipgloss.Color("196")

	// ColorBoldRed is used for late emissions and errors.
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Emission status labels shown next to each stylesheet.
const (
	StatusBase   = "base"
	StatusQueued = "queued"
	StatusLayout = "layout"
	StatusLate   = "late"
	StatusLegacy = "legacy"
)

// StatusStyle returns the style for an emission status label. Unknown
// statuses are unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusBase:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusQueued:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusLayout:
		return lipgloss.NewStyle().Foreground(ColorMagenta)
	case StatusLate:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	case StatusLegacy:
		return lipgloss.NewStyle().Faint(true)
	default:
		return lipgloss.NewStyle()
	}
}

// minModuleColumnWidth keeps status labels aligned across lines.
const minModuleColumnWidth = 40

// FormatEmissionLine renders "m:<name>  <resource>  <status>" with the
// status right-aligned.
func FormatEmissionLine(name, resource, status string) string {
	path := fmt.Sprintf("%s  %s", name, resource)
	padding := minModuleColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}
	return StyleDim.Render("m:") + StyleNoun.Render(name) + "  " + resource +
		strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// Styles groups the styles used by tree and diff rendering.
type Styles struct {
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// GetStyles returns the default style set.
func GetStyles() *Styles {
	return &Styles{
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(ColorDimGray),
		Success: lipgloss.NewStyle().Foreground(ColorGreen),
		Warning: lipgloss.NewStyle().Foreground(ColorYellow),
		Error:   lipgloss.NewStyle().Foreground(ColorRed),
	}
}

// NoColorStyles returns a style set that renders plain text.
func NoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{Bold: plain, Muted: plain, Success: plain, Warning: plain, Error: plain}
}
