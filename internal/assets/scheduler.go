package assets

import (
	"context"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/eventblocks/cli/internal/assets"

// Block is a content block rendered into the page. Blocks request the
// modules they need through the render context.
type Block interface {
	Name() string
	Render(rc *RenderContext)
}

// Scheduler runs the render phases in order against a shared registry.
// A Scheduler holds no per-render state and is safe for concurrent use.
type Scheduler struct {
	registry *Registry
	detector *Detector
	tracer   trace.Tracer
	logger   *log.Logger
}

// SchedulerOption customizes a Scheduler.
type SchedulerOption func(*Scheduler)

// WithDetector replaces the detector built from the registry context table.
func WithDetector(d *Detector) SchedulerOption {
	return func(s *Scheduler) { s.detector = d }
}

// WithTracer sets the tracer used for phase spans.
func WithTracer(t trace.Tracer) SchedulerOption {
	return func(s *Scheduler) { s.tracer = t }
}

// WithLogger sets the base logger; each render derives a child from it.
func WithLogger(l *log.Logger) SchedulerOption {
	return func(s *Scheduler) { s.logger = l }
}

// NewScheduler returns a scheduler for reg.
func NewScheduler(reg *Registry, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{registry: reg}
	for _, opt := range opts {
		opt(s)
	}
	if s.detector == nil {
		s.detector = NewDetector(reg.Contexts())
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Registry returns the shared registry.
func (s *Scheduler) Registry() *Registry { return s.registry }

// Begin starts a render: it runs the Register phase, lets the detector
// enqueue modules for the page context, then runs the Base phase.
// Use setup to act on the fresh context before Register, e.g. UseLegacy.
func (s *Scheduler) Begin(ctx context.Context, page PageInfo, setup ...func(*RenderContext)) *RenderContext {
	rc := newRenderContext(s.registry, page, s.logger)
	for _, fn := range setup {
		fn(rc)
	}

	s.runPhase(ctx, rc, PhaseRegister, func() int {
		rc.legacy = rc.page.Legacy || rc.legacyRequested
		if rc.legacy {
			rc.queue.clear()
			rc.log().Info("legacy fallback active", "bundle", s.registry.legacy.Name)
		}
		return 0
	})

	if !rc.legacy {
		s.detector.Detect(rc, page.Context)
	}

	s.runPhase(ctx, rc, PhaseBase, func() int {
		if rc.legacy {
			rc.emit(Emission{Name: s.registry.legacy.Name, Resource: s.registry.legacy.Resource})
			return 1
		}
		n := 0
		for _, m := range s.registry.modules {
			if m.Auto && !rc.loaded.has(m.Name) {
				before := rc.loaded.len()
				rc.load(m.Name)
				n += rc.loaded.len() - before
			}
		}
		return n
	})
	return rc
}

// Flush runs the Queued phase. Requests made after Flush load immediately.
func (s *Scheduler) Flush(ctx context.Context, rc *RenderContext) {
	s.runPhase(ctx, rc, PhaseQueued, func() int {
		defer func() { rc.queuedDone = true }()
		if rc.legacy {
			rc.queue.clear()
			return 0
		}
		return rc.flush()
	})
}

// Finish runs the Layout phase and marks the render done, running Flush
// first if the Queued phase has not run yet. It returns the manifest as it
// stands; late requests made afterwards still load and show up in a later
// call to RenderContext.Manifest.
func (s *Scheduler) Finish(ctx context.Context, rc *RenderContext) *Manifest {
	if rc.phase == PhaseBase {
		s.Flush(ctx, rc)
	}
	s.runPhase(ctx, rc, PhaseLayout, func() int {
		if rc.legacy {
			return 0
		}
		theme, resource, ok := s.registry.Layout(rc.page.Theme)
		if !ok {
			rc.log().Debug("no layout for theme", "theme", rc.page.Theme)
			return 0
		}
		rc.emit(Emission{Name: "layout/" + theme, Resource: resource, Layout: true})
		return 1
	})
	if rc.phase == PhaseLayout {
		rc.phase = PhaseDone
	}
	return rc.Manifest()
}

// Render runs a whole page render. blocks render between the Base and
// Queued phases; late blocks render in the page body after the Layout phase,
// so their modules load on request.
func (s *Scheduler) Render(ctx context.Context, page PageInfo, blocks, late []Block) *Manifest {
	rc := s.Begin(ctx, page)
	s.renderBlocks(rc, blocks)
	s.Flush(ctx, rc)
	s.Finish(ctx, rc)
	s.renderBlocks(rc, late)

	m := rc.Manifest()
	rc.log().Debug("render complete",
		"modules", len(m.Modules),
		"stylesheets", len(m.Emissions),
		"legacy", m.Legacy,
	)
	return m
}

func (s *Scheduler) renderBlocks(rc *RenderContext, blocks []Block) {
	for _, b := range blocks {
		if b == nil {
			continue
		}
		rc.log().Debug("rendering block", "block", b.Name(), "phase", rc.phase)
		b.Render(rc)
	}
}

// runPhase advances rc to phase and runs fn inside a span. Phases only move
// forward one step at a time; an out-of-order call is logged and ignored.
func (s *Scheduler) runPhase(ctx context.Context, rc *RenderContext, phase Phase, fn func() int) {
	if rc.phase != phase-1 {
		rc.log().Warn("phase out of order, skipped", "phase", phase, "current", rc.phase)
		return
	}
	_, span := s.tracer.Start(ctx, "assets."+phase.String(),
		trace.WithAttributes(
			attribute.String("render.id", rc.id),
			attribute.String("render.page", rc.page.Context.Key()),
		),
	)
	defer span.End()

	rc.phase = phase
	emitted := fn()
	span.SetAttributes(
		attribute.Int("assets.emitted", emitted),
		attribute.Bool("assets.legacy", rc.legacy),
	)
}
