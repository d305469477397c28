package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	oerrors "github.com/eventblocks/cli/internal/errors"
)

//go:embed schema/registry.cue
var registrySchema []byte

// RegistryDocument is the on-disk registry format.
type RegistryDocument struct {
	Modules  []Module            `yaml:"modules" json:"modules"`
	Legacy   *Module             `yaml:"legacy,omitempty" json:"legacy,omitempty"`
	Layouts  map[string]string   `yaml:"layouts,omitempty" json:"layouts,omitempty"`
	Contexts map[string][]string `yaml:"contexts,omitempty" json:"contexts,omitempty"`
}

// Document returns the registry in its file format. Parsing the encoded
// document yields an equivalent registry.
func (r *Registry) Document() RegistryDocument {
	legacy := r.Legacy()
	doc := RegistryDocument{
		Modules: r.AllModules(),
		Legacy:  &legacy,
	}
	if len(r.layouts) > 0 {
		doc.Layouts = make(map[string]string, len(r.layouts))
		for k, v := range r.layouts {
			doc.Layouts[k] = v
		}
	}
	if len(r.contexts) > 0 {
		doc.Contexts = r.Contexts()
	}
	return doc
}

// LoadRegistryFile reads, schema-checks and validates a YAML registry file.
func LoadRegistryFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("registry file does not exist", path,
				"Pass an existing file with --registry, or unset it to use the built-in catalog")
		}
		return nil, fmt.Errorf("reading registry file %s: %w", path, err)
	}

	reg, err := ParseRegistry(data)
	if err != nil {
		var detail *oerrors.DetailError
		if errors.As(err, &detail) {
			detail.Location = path
			return nil, detail
		}
		var regErr *RegistryError
		if errors.As(err, &regErr) {
			return nil, &oerrors.DetailError{
				Type:     "validation failed",
				Message:  fmt.Sprintf("registry has %d problem(s)", len(regErr.Problems)),
				Location: path,
				Details:  regErr.Problems,
				Hint:     "Run `evb modules vet` after fixing to re-check",
				Cause:    err,
			}
		}
		return nil, &oerrors.DetailError{
			Type:     "validation failed",
			Message:  err.Error(),
			Location: path,
			Cause:    err,
		}
	}
	return reg, nil
}

// ParseRegistry builds a registry from YAML registry data. The data is
// checked against the embedded CUE schema before it is decoded.
func ParseRegistry(data []byte) (*Registry, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("registry is not valid YAML: %v", err), "", "", "")
	}
	if len(raw) == 0 {
		return nil, oerrors.NewValidationError("registry is empty", "", "modules",
			"Declare at least one module under \"modules\"")
	}
	if err := checkRegistrySchema(raw); err != nil {
		return nil, err
	}

	var f RegistryDocument
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("decoding registry: %v", err), "", "", "")
	}

	opts := []RegistryOption{
		WithLayouts(f.Layouts),
		WithContexts(f.Contexts),
	}
	if f.Legacy != nil {
		opts = append(opts, WithLegacy(*f.Legacy))
	}
	return NewRegistry(f.Modules, opts...)
}

func checkRegistrySchema(raw map[string]any) error {
	cueCtx := cuecontext.New()

	schema := cueCtx.CompileBytes(registrySchema, cue.Filename("registry.cue"))
	if schema.Err() != nil {
		return fmt.Errorf("compiling registry schema: %w", schema.Err())
	}
	def := schema.LookupPath(cue.ParsePath("#Registry"))

	val := cueCtx.Encode(raw)
	if val.Err() != nil {
		return oerrors.NewValidationError(
			fmt.Sprintf("encoding registry: %v", val.Err()), "", "", "")
	}

	if err := def.Unify(val).Validate(cue.Concrete(true)); err != nil {
		return &oerrors.DetailError{
			Type:    "validation failed",
			Message: strings.TrimSpace(cueerrors.Details(err, nil)),
			Hint:    "See `evb modules list -o yaml` for a valid registry layout",
			Cause:   oerrors.ErrValidation,
		}
	}
	return nil
}
