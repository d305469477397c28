package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/eventblocks/cli/internal/assets"
)

// WriteManifest writes a render manifest in the given format. FormatHTML is
// rendered by the page package and is rejected here.
func WriteManifest(w io.Writer, m *assets.Manifest, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, m)
	case FormatTable:
		_, err := io.WriteString(w, RenderManifestTable(m)+"\n")
		return err
	case FormatHTML:
		return fmt.Errorf("format %s not supported for manifest output", format)
	}
	return writeYAML(w, m)
}

// WriteRegistry writes a registry document. YAML output is a valid
// registry file.
func WriteRegistry(w io.Writer, doc assets.RegistryDocument, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, doc)
	case FormatTable:
		_, err := io.WriteString(w, RenderRegistryTable(doc)+"\n")
		return err
	case FormatHTML:
		return fmt.Errorf("format %s not supported for registry output", format)
	}
	data, err := sigsyaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding registry: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// EmissionStatus returns the status label for one emission of m.
func EmissionStatus(m *assets.Manifest, e assets.Emission) string {
	switch {
	case m.Legacy:
		return StatusLegacy
	case e.Layout:
		return StatusLayout
	case e.Late:
		return StatusLate
	case e.Phase == assets.PhaseBase:
		return StatusBase
	default:
		return StatusQueued
	}
}

// RenderManifestTable renders the emissions of m in order.
func RenderManifestTable(m *assets.Manifest) string {
	t := NewTable("#", "MODULE", "RESOURCE", "PHASE", "STATUS")
	for i, e := range m.Emissions {
		status := EmissionStatus(m, e)
		t.Row(fmt.Sprintf("%d", i+1), e.Name, e.Resource, e.Phase.String(), StatusStyle(status).Render(status))
	}
	return t.String()
}

// RenderEmissionLines renders one aligned line per emission, for verbose
// terminal output.
func RenderEmissionLines(m *assets.Manifest) string {
	var sb strings.Builder
	for _, e := range m.Emissions {
		sb.WriteString(FormatEmissionLine(e.Name, e.Resource, EmissionStatus(m, e)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderRegistryTable renders the modules of a registry document.
func RenderRegistryTable(doc assets.RegistryDocument) string {
	t := NewTable("MODULE", "RESOURCE", "DEPENDENCIES", "AUTO")
	for _, m := range doc.Modules {
		deps := strings.Join(m.Dependencies, ", ")
		if deps == "" {
			deps = "-"
		}
		auto := ""
		if m.Auto {
			auto = "yes"
		}
		t.Row(m.Name, m.Resource, deps, auto)
	}
	if doc.Legacy != nil {
		t.Row(doc.Legacy.Name, doc.Legacy.Resource, "-", StatusLegacy)
	}
	return t.String()
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return encoder.Close()
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
