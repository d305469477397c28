package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"gopkg.in/yaml.v3"

	"github.com/eventblocks/cli/internal/assets"
)

// ModifiedItem is a stylesheet present in both renders whose entry changed.
type ModifiedItem struct {
	Name string
	Diff string
}

// ManifestDiff is the difference between two renders.
type ManifestDiff struct {
	Added    []string
	Removed  []string
	Modified []ModifiedItem
}

// IsEmpty reports whether the renders emitted the same stylesheets in the
// same order.
func (d *ManifestDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0
}

// orderItem names the synthetic entry recording an emission order change.
const orderItem = "(emission order)"

// DiffManifests compares two renders stylesheet by stylesheet. Entries are
// matched by name; changed entries carry a dyff report. A change in the
// relative order of the shared stylesheets is reported as one extra
// modified item.
func DiffManifests(before, after *assets.Manifest, useColor bool) (*ManifestDiff, error) {
	d := &ManifestDiff{}

	beforeByName := indexEmissions(before)
	afterByName := indexEmissions(after)

	for _, e := range after.Emissions {
		if _, ok := beforeByName[e.Name]; !ok {
			d.Added = append(d.Added, e.Name)
		}
	}
	for _, e := range before.Emissions {
		if _, ok := afterByName[e.Name]; !ok {
			d.Removed = append(d.Removed, e.Name)
		}
	}

	var sharedBefore, sharedAfter []string
	for _, e := range before.Emissions {
		a, ok := afterByName[e.Name]
		if !ok {
			continue
		}
		sharedBefore = append(sharedBefore, e.Name)

		from, err := yaml.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", e.Name, err)
		}
		to, err := yaml.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", a.Name, err)
		}
		diff, err := diffYAML(from, to, useColor)
		if err != nil {
			return nil, fmt.Errorf("comparing %s: %w", e.Name, err)
		}
		if diff != "" {
			d.Modified = append(d.Modified, ModifiedItem{Name: e.Name, Diff: diff})
		}
	}
	for _, e := range after.Emissions {
		if _, ok := beforeByName[e.Name]; ok {
			sharedAfter = append(sharedAfter, e.Name)
		}
	}
	if strings.Join(sharedBefore, ",") != strings.Join(sharedAfter, ",") {
		d.Modified = append(d.Modified, ModifiedItem{
			Name: orderItem,
			Diff: "before: " + strings.Join(sharedBefore, ", ") + "\nafter:  " + strings.Join(sharedAfter, ", "),
		})
	}

	return d, nil
}

func indexEmissions(m *assets.Manifest) map[string]assets.Emission {
	out := make(map[string]assets.Emission, len(m.Emissions))
	for _, e := range m.Emissions {
		out[e.Name] = e
	}
	return out
}

// diffYAML computes a YAML-aware diff using dyff. It returns "" when the
// documents are equal.
func diffYAML(from, to []byte, useColor bool) (string, error) {
	if len(from) == 0 && len(to) == 0 {
		return "", nil
	}

	fromInput, err := parseYAMLInput("before", from)
	if err != nil {
		return "", fmt.Errorf("parsing before YAML: %w", err)
	}
	toInput, err := parseYAMLInput("after", to)
	if err != nil {
		return "", fmt.Errorf("parsing after YAML: %w", err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderDyffReport(report, useColor)
}

func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	return ytbx.InputFile{Location: name, Documents: docs}, nil
}

func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}
	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// RenderDiff renders a manifest diff.
func RenderDiff(d *ManifestDiff, styles *Styles) string {
	if d == nil || d.IsEmpty() {
		return "No changes detected."
	}

	var sb strings.Builder

	if len(d.Added) > 0 {
		sb.WriteString(styles.Success.Render("Added:"))
		sb.WriteString("\n")
		for _, name := range d.Added {
			sb.WriteString("  + ")
			sb.WriteString(styles.Success.Render(name))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(d.Removed) > 0 {
		sb.WriteString(styles.Error.Render("Removed:"))
		sb.WriteString("\n")
		for _, name := range d.Removed {
			sb.WriteString("  - ")
			sb.WriteString(styles.Error.Render(name))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(d.Modified) > 0 {
		sb.WriteString(styles.Warning.Render("Modified:"))
		sb.WriteString("\n")
		for _, mod := range d.Modified {
			sb.WriteString("  ~ ")
			sb.WriteString(styles.Warning.Render(mod.Name))
			sb.WriteString("\n")
			sb.WriteString(IndentDiff(mod.Diff, "    "))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("Summary: ")
	sb.WriteString(diffSummary(len(d.Added), len(d.Removed), len(d.Modified)))
	sb.WriteString("\n")

	return sb.String()
}

// IndentDiff prefixes every non-empty line of diff with indent.
func IndentDiff(diff, indent string) string {
	var sb strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if line == "" {
			continue
		}
		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func diffSummary(added, removed, modified int) string {
	if added == 0 && removed == 0 && modified == 0 {
		return "No changes"
	}

	parts := make([]string, 0, 3)
	if added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", added))
	}
	if removed > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", removed))
	}
	if modified > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", modified))
	}
	return strings.Join(parts, ", ")
}
