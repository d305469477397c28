package assets

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// PageInfo is what the page and theme collaborators know about a render
// before it starts.
type PageInfo struct {
	Context PageContext
	Theme   string
	// Legacy forces legacy fallback for this render.
	Legacy bool
}

// Emission is one stylesheet handed to the page renderer.
type Emission struct {
	Name     string `yaml:"name" json:"name"`
	Resource string `yaml:"resource" json:"resource"`
	Phase    Phase  `yaml:"phase" json:"phase"`
	// Late is set for modules requested after the Queued phase.
	Late bool `yaml:"late,omitempty" json:"late,omitempty"`
	// Layout is set for the theme stylesheet emitted by the Layout phase.
	Layout bool `yaml:"layout,omitempty" json:"layout,omitempty"`
}

// RenderContext is the state of one page render. It is not safe for
// concurrent use; a render is sequential. Create one per render through
// Scheduler.Begin and drop it when the page is done. A zero RenderContext
// has no registry: requests are queued but nothing ever loads.
type RenderContext struct {
	id       string
	registry *Registry
	page     PageInfo
	logger   *log.Logger

	phase           Phase
	legacy          bool
	legacyRequested bool
	queuedDone      bool

	queue     orderedSet
	loaded    orderedSet
	visiting  map[string]bool
	emissions []Emission
}

func newRenderContext(reg *Registry, page PageInfo, logger *log.Logger) *RenderContext {
	id := uuid.NewString()
	return &RenderContext{
		id:       id,
		registry: reg,
		page:     page,
		logger:   logger.With("render", id[:8], "page", page.Context.Key()),
		phase:    PhaseInit,
		queue:    newOrderedSet(),
		loaded:   newOrderedSet(),
		visiting: make(map[string]bool),
	}
}

func (rc *RenderContext) log() *log.Logger {
	if rc.logger == nil {
		return log.Default()
	}
	return rc.logger
}

// ID returns the unique render identifier.
func (rc *RenderContext) ID() string { return rc.id }

// Page returns the page info the render was started with.
func (rc *RenderContext) Page() PageInfo { return rc.page }

// Phase returns the last phase that ran.
func (rc *RenderContext) Phase() Phase { return rc.phase }

// Enqueue requests modules for this page. Already loaded and already queued
// names are skipped. After the Queued phase has run, modules are loaded
// immediately. Unknown names are accepted and skipped silently when loaded.
// Enqueue does nothing under legacy fallback.
func (rc *RenderContext) Enqueue(names ...string) {
	if rc.legacyActive() {
		return
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || rc.loaded.has(name) {
			continue
		}
		if rc.queuedDone {
			rc.log().Debug("late request, loading now", "module", name, "phase", rc.phase)
			rc.load(name)
			continue
		}
		if rc.queue.add(name) {
			rc.log().Debug("module queued", "module", name)
		}
	}
}

// IsLoaded reports whether name has been emitted in this render.
func (rc *RenderContext) IsLoaded(name string) bool {
	return rc.loaded.has(name)
}

// LoadedModules returns the emitted module names in emission order. Under
// legacy fallback this is only the legacy bundle. Layout stylesheets are not
// modules and are not included; see Emissions.
func (rc *RenderContext) LoadedModules() []string {
	return rc.loaded.list()
}

// Queued returns the pending requests in request order.
func (rc *RenderContext) Queued() []string {
	return rc.queue.list()
}

// Emissions returns every stylesheet emitted so far, in order.
func (rc *RenderContext) Emissions() []Emission {
	out := make([]Emission, len(rc.emissions))
	copy(out, rc.emissions)
	return out
}

// UseLegacy forces legacy fallback for this render. The switch is read once
// by the Register phase, so calls after that are ignored.
func (rc *RenderContext) UseLegacy() {
	if rc.phase >= PhaseRegister {
		rc.log().Debug("legacy switch ignored after register phase", "phase", rc.phase)
		return
	}
	rc.legacyRequested = true
}

// IsEnabled reports whether selective loading is active for this render.
func (rc *RenderContext) IsEnabled() bool {
	return !rc.legacyActive()
}

func (rc *RenderContext) legacyActive() bool {
	if rc.phase >= PhaseRegister {
		return rc.legacy
	}
	return rc.legacyRequested || rc.page.Legacy
}

// Manifest snapshots the render for the page renderer.
func (rc *RenderContext) Manifest() *Manifest {
	return &Manifest{
		RenderID:  rc.id,
		Page:      rc.page.Context.Key(),
		Theme:     rc.page.Theme,
		Legacy:    rc.legacy,
		Phase:     rc.phase,
		Modules:   rc.LoadedModules(),
		Emissions: rc.Emissions(),
	}
}

// Manifest is the ordered, deduplicated stylesheet list of one render.
type Manifest struct {
	RenderID  string     `yaml:"renderID" json:"renderID"`
	Page      string     `yaml:"page" json:"page"`
	Theme     string     `yaml:"theme,omitempty" json:"theme,omitempty"`
	Legacy    bool       `yaml:"legacy" json:"legacy"`
	Phase     Phase      `yaml:"phase" json:"phase"`
	Modules   []string   `yaml:"modules" json:"modules"`
	Emissions []Emission `yaml:"emissions" json:"emissions"`
}

// Resources returns the resource locators in emission order.
func (m *Manifest) Resources() []string {
	out := make([]string, len(m.Emissions))
	for i, e := range m.Emissions {
		out[i] = e.Resource
	}
	return out
}
