package assets

import (
	"fmt"
	"sort"
	"strings"

	oerrors "github.com/eventblocks/cli/internal/errors"
)

// DefaultLayoutTheme is the layout used when the active theme has none.
const DefaultLayoutTheme = "default"

// Module is a named stylesheet with declared dependencies.
type Module struct {
	Name         string   `yaml:"name" json:"name"`
	Resource     string   `yaml:"resource" json:"resource"`
	Dependencies []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	Auto         bool     `yaml:"auto,omitempty" json:"auto,omitempty"`
}

// Registry is the immutable module catalog shared by every render.
//
// A Registry can only be obtained through NewRegistry, so every dependency
// it holds resolves and the dependency graph is acyclic.
type Registry struct {
	modules  []Module
	index    map[string]int
	legacy   Module
	layouts  map[string]string
	contexts map[string][]string
}

// RegistryOption customizes a registry under construction.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	legacy   Module
	layouts  map[string]string
	contexts map[string][]string
}

// WithLegacy sets the monolithic bundle used by legacy fallback.
func WithLegacy(m Module) RegistryOption {
	return func(o *registryOptions) { o.legacy = m }
}

// WithLayouts sets the theme → stylesheet table used by the Layout phase.
func WithLayouts(layouts map[string]string) RegistryOption {
	return func(o *registryOptions) { o.layouts = layouts }
}

// WithContexts sets the page context → modules table used by the detector.
// Keys have the form "single:event" or "archive:location".
func WithContexts(contexts map[string][]string) RegistryOption {
	return func(o *registryOptions) { o.contexts = contexts }
}

// DefaultLegacyModule is the legacy bundle used when none is configured.
func DefaultLegacyModule() Module {
	return Module{Name: "legacy", Resource: "css/events-manager.min.css"}
}

// NewRegistry validates modules and returns an immutable registry.
// Validation rejects empty or duplicate names, empty resources, unknown
// dependency references, dependency cycles and context entries naming
// unknown modules. All problems are reported together in a *RegistryError.
func NewRegistry(modules []Module, opts ...RegistryOption) (*Registry, error) {
	o := registryOptions{legacy: DefaultLegacyModule()}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{
		modules:  make([]Module, 0, len(modules)),
		index:    make(map[string]int, len(modules)),
		legacy:   o.legacy,
		layouts:  make(map[string]string, len(o.layouts)),
		contexts: make(map[string][]string, len(o.contexts)),
	}

	var problems []string
	for i, m := range modules {
		name := strings.TrimSpace(m.Name)
		switch {
		case name == "":
			problems = append(problems, fmt.Sprintf("modules[%d]: name is empty", i))
			continue
		case strings.TrimSpace(m.Resource) == "":
			problems = append(problems, fmt.Sprintf("module %q: resource is empty", name))
		}
		if _, dup := r.index[name]; dup {
			problems = append(problems, fmt.Sprintf("module %q: declared more than once", name))
			continue
		}
		deps := make([]string, len(m.Dependencies))
		copy(deps, m.Dependencies)
		r.index[name] = len(r.modules)
		r.modules = append(r.modules, Module{
			Name:         name,
			Resource:     m.Resource,
			Dependencies: deps,
			Auto:         m.Auto,
		})
	}

	for _, m := range r.modules {
		for _, dep := range m.Dependencies {
			if _, ok := r.index[dep]; !ok {
				problems = append(problems, fmt.Sprintf("module %q: depends on unknown module %q", m.Name, dep))
			}
		}
	}
	if cycle := r.findCycle(); cycle != nil {
		problems = append(problems, "dependency cycle: "+strings.Join(cycle, " -> "))
	}

	switch {
	case strings.TrimSpace(r.legacy.Name) == "":
		problems = append(problems, "legacy bundle: name is empty")
	case strings.TrimSpace(r.legacy.Resource) == "":
		problems = append(problems, fmt.Sprintf("legacy bundle %q: resource is empty", r.legacy.Name))
	}
	if _, clash := r.index[r.legacy.Name]; clash {
		problems = append(problems, fmt.Sprintf("legacy bundle %q: name collides with a module", r.legacy.Name))
	}

	for theme, resource := range o.layouts {
		if strings.TrimSpace(resource) == "" {
			problems = append(problems, fmt.Sprintf("layout %q: resource is empty", theme))
			continue
		}
		r.layouts[theme] = resource
	}

	for key, names := range o.contexts {
		if _, err := ParsePageContextKey(key); err != nil {
			problems = append(problems, fmt.Sprintf("context %q: %v", key, err))
			continue
		}
		for _, name := range names {
			if _, ok := r.index[name]; !ok {
				problems = append(problems, fmt.Sprintf("context %q: unknown module %q", key, name))
			}
		}
		r.contexts[key] = append([]string(nil), names...)
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, &RegistryError{Problems: problems}
	}
	return r, nil
}

// findCycle runs a three-colour depth-first search in declaration order and
// returns the first cycle found as a closed path, or nil.
func (r *Registry) findCycle() []string {
	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int, len(r.modules))
	var stack []string

	var visit func(name string) []string
	visit = func(name string) []string {
		idx, ok := r.index[name]
		if !ok {
			return nil
		}
		switch color[name] {
		case black:
			return nil
		case grey:
			for i, n := range stack {
				if n == name {
					return append(append([]string(nil), stack[i:]...), name)
				}
			}
			return []string{name, name}
		}
		color[name] = grey
		stack = append(stack, name)
		for _, dep := range r.modules[idx].Dependencies {
			if cycle := visit(dep); cycle != nil {
				return cycle
			}
		}
		stack = stack[:len(stack)-1]
		color[name] = black
		return nil
	}

	for _, m := range r.modules {
		if cycle := visit(m.Name); cycle != nil {
			return cycle
		}
	}
	return nil
}

// AllModules returns the catalog in declaration order.
func (r *Registry) AllModules() []Module {
	out := make([]Module, len(r.modules))
	for i, m := range r.modules {
		out[i] = m.clone()
	}
	return out
}

// AutoModules returns the always-on modules in declaration order.
func (r *Registry) AutoModules() []Module {
	var out []Module
	for _, m := range r.modules {
		if m.Auto {
			out = append(out, m.clone())
		}
	}
	return out
}

// Names returns every module name in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.modules))
	for i, m := range r.modules {
		out[i] = m.Name
	}
	return out
}

// Module looks up a module by name.
func (r *Registry) Module(name string) (Module, bool) {
	idx, ok := r.index[name]
	if !ok {
		return Module{}, false
	}
	return r.modules[idx].clone(), true
}

// dependencies returns the declared dependencies without copying.
func (r *Registry) dependencies(name string) ([]string, string, bool) {
	if r == nil {
		return nil, "", false
	}
	idx, ok := r.index[name]
	if !ok {
		return nil, "", false
	}
	m := &r.modules[idx]
	return m.Dependencies, m.Resource, true
}

// Legacy returns the monolithic legacy bundle.
func (r *Registry) Legacy() Module {
	return r.legacy.clone()
}

// Layout returns the layout stylesheet for theme, falling back to the
// default theme's layout. The returned name identifies which theme matched.
func (r *Registry) Layout(theme string) (name, resource string, ok bool) {
	if res, found := r.layouts[theme]; found {
		return theme, res, true
	}
	if res, found := r.layouts[DefaultLayoutTheme]; found {
		return DefaultLayoutTheme, res, true
	}
	return "", "", false
}

// Themes returns the themes that have a layout, sorted.
func (r *Registry) Themes() []string {
	out := make([]string, 0, len(r.layouts))
	for theme := range r.layouts {
		out = append(out, theme)
	}
	sort.Strings(out)
	return out
}

// Contexts returns a copy of the page context table.
func (r *Registry) Contexts() map[string][]string {
	out := make(map[string][]string, len(r.contexts))
	for k, v := range r.contexts {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Closure returns name and its transitive dependencies in load order.
// Unknown names are skipped.
func (r *Registry) Closure(names ...string) []string {
	seen := newOrderedSet()
	var visit func(string)
	visit = func(name string) {
		if seen.has(name) {
			return
		}
		deps, _, ok := r.dependencies(name)
		if !ok {
			return
		}
		for _, dep := range deps {
			visit(dep)
		}
		seen.add(name)
	}
	for _, name := range names {
		visit(name)
	}
	return seen.list()
}

func (m Module) clone() Module {
	if m.Dependencies != nil {
		m.Dependencies = append([]string(nil), m.Dependencies...)
	}
	return m
}

// RegistryError reports every problem found while validating a registry.
type RegistryError struct {
	Problems []string
}

// Error implements the error interface.
func (e *RegistryError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid asset registry: " + e.Problems[0]
	}
	var sb strings.Builder
	sb.WriteString("invalid asset registry:")
	for _, p := range e.Problems {
		sb.WriteString("\n  - ")
		sb.WriteString(p)
	}
	return sb.String()
}

// Unwrap marks registry errors as validation failures.
func (e *RegistryError) Unwrap() error {
	return oerrors.ErrValidation
}
