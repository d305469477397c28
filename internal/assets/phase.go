// Package assets implements selective stylesheet loading for page renders.
//
// A Registry is the static catalog of modules, built and validated once at
// startup. Each page render gets its own RenderContext, created by a
// Scheduler and threaded through the context detector, every content block
// and the scheduler phases:
//
//	Init → Register → Base → Queued → Layout → Done
//
// Content blocks call RenderContext.Enqueue. Requests made before the Queued
// phase are flushed together; requests made afterwards are loaded on the
// spot. Every module is emitted at most once, after its dependencies.
package assets

import "fmt"

// Phase is a fixed point in the page render lifecycle.
type Phase int

const (
	// PhaseInit is the state of a freshly created render context.
	PhaseInit Phase = iota
	// PhaseRegister materializes the registry and evaluates the legacy switch.
	PhaseRegister
	// PhaseBase emits every auto module, or the legacy bundle.
	PhaseBase
	// PhaseQueued flushes the request queue.
	PhaseQueued
	// PhaseLayout emits the theme layout stylesheet.
	PhaseLayout
	// PhaseDone marks a finished render. Late requests still load.
	PhaseDone
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseRegister:
		return "register"
	case PhaseBase:
		return "base"
	case PhaseQueued:
		return "queued"
	case PhaseLayout:
		return "layout"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name so manifests stay readable.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name written by MarshalText.
func (p *Phase) UnmarshalText(text []byte) error {
	phase, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = phase
	return nil
}

// ParsePhase returns the phase with the given name.
func ParsePhase(name string) (Phase, error) {
	for ph := PhaseInit; ph <= PhaseDone; ph++ {
		if ph.String() == name {
			return ph, nil
		}
	}
	return PhaseInit, fmt.Errorf("unknown phase %q", name)
}
