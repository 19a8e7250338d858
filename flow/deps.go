package flow

// TransitiveDependencies returns the names of every step reachable by
// following dependency declarations from the named step, directly or
// indirectly, deduplicated.
//
// Traversal order is breadth-first: the step's direct dependencies in their
// declared order, then their dependencies level by level. The order matters
// because fallback selection during Go always picks the first incomplete
// entry in this sequence, so a step's own prerequisites win ties against
// prerequisites inherited through them.
//
// Dependency functions are re-evaluated during the walk, so the result
// reflects current external state. Cyclic declarations are tolerated: a
// visited set keyed by name makes the walk terminate, and the cycle is not
// reported.
//
// Returns *UnknownStepError if the walk reaches a name with no declared
// step, including the requested name itself.
func (e *Engine) TransitiveDependencies(name string) ([]string, error) {
	step, ok := e.lookup(name)
	if !ok {
		return nil, &UnknownStepError{Name: name}
	}

	deps, err := e.transitiveDependencies(step)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(deps))
	for i, dep := range deps {
		names[i] = dep.Name()
	}
	return names, nil
}

// transitiveDependencies performs the breadth-first walk for a resolved
// target, returning distinct Step objects in fallback-priority order.
//
// The target itself is seeded into the visited set so that a cycle leading
// back to it does not list the target as its own dependency.
func (e *Engine) transitiveDependencies(target *Step) ([]*Step, error) {
	var ordered []*Step
	visited := map[string]bool{target.Name(): true}
	queue := append([]string(nil), target.Dependencies()...)

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if visited[name] {
			continue
		}
		visited[name] = true

		step, ok := e.lookup(name)
		if !ok {
			return nil, &UnknownStepError{Name: name}
		}

		ordered = append(ordered, step)
		queue = append(queue, step.Dependencies()...)
	}

	return ordered, nil
}

// firstIncomplete scans an ordered dependency sequence for the first entry
// whose completion predicate is false. Predicates are evaluated fresh on
// every scan. Returns nil when every dependency is satisfied.
func firstIncomplete(deps []*Step) *Step {
	for _, dep := range deps {
		if !dep.Completed() {
			return dep
		}
	}
	return nil
}
