package assets

// load emits name after all of its dependencies, each exactly once.
// Dependencies are visited in declared order, so the loaded set is a
// topological order of the requested closure.
func (rc *RenderContext) load(name string) {
	if rc.loaded.has(name) {
		return
	}
	deps, resource, ok := rc.registry.dependencies(name)
	if !ok {
		rc.log().Debug("skipping unknown module", "module", name)
		return
	}
	// Registries are validated acyclic; this only stops runaway recursion.
	if rc.visiting[name] {
		rc.log().Warn("dependency cycle, module skipped", "module", name)
		return
	}
	if rc.visiting == nil {
		rc.visiting = make(map[string]bool)
	}
	rc.visiting[name] = true
	for _, dep := range deps {
		rc.load(dep)
	}
	delete(rc.visiting, name)

	rc.emit(Emission{Name: name, Resource: resource})
}

func (rc *RenderContext) emit(e Emission) {
	e.Phase = rc.phase
	e.Late = rc.queuedDone && !e.Layout
	if !e.Layout {
		rc.loaded.add(e.Name)
	}
	rc.emissions = append(rc.emissions, e)
	rc.log().Debug("stylesheet emitted", "module", e.Name, "resource", e.Resource, "phase", e.Phase)
}

// flush loads every queued request in request order and empties the queue.
func (rc *RenderContext) flush() int {
	before := rc.loaded.len()
	for _, name := range rc.queue.list() {
		rc.load(name)
	}
	rc.queue.clear()
	return rc.loaded.len() - before
}
