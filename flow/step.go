package flow

// Hook is a side-effecting callback invoked when the engine enters or
// leaves a step. The owning Engine is passed as the sole argument so the
// hook can inspect PreviousStep/CurrentStep/NextStep or call Go reentrantly
// (for example, to auto-skip a step that is already completed).
//
// Hooks run synchronously on the caller's stack. They are expected to run
// to completion; a panic propagates unmodified to whichever call triggered
// the hook.
type Hook func(e *Engine)

// Declaration describes one named step in a flow.
//
// Every field except Name is optional. Absent optional fields degrade to
// permissive defaults:
//   - No dependencies: the step can be entered at any time.
//   - No CompletedIf: the step is always considered completed.
//   - No OnEnter/OnLeave: no-op.
//
// Dependencies can be declared statically (Dependencies) or computed fresh
// on every query (DependenciesFunc), which enables dependencies conditioned
// on external state. When both are set, the function form wins.
//
// Example:
//
//	decls := []flow.Declaration{
//	    {Name: "account"},
//	    {
//	        Name:         "profile",
//	        Dependencies: []string{"account"},
//	        CompletedIf:  func() bool { return profileSaved },
//	        OnEnter:      func(e *flow.Engine) { showProfileForm() },
//	        OnLeave:      func(e *flow.Engine) { hideProfileForm() },
//	    },
//	}
type Declaration struct {
	// Name uniquely identifies the step within its flow.
	Name string

	// Dependencies lists the names of steps that must be completed before
	// this step may be entered, in priority order.
	Dependencies []string

	// DependenciesFunc computes the dependency list on every query.
	// Takes precedence over Dependencies when non-nil. It must be a pure
	// function of external state only; results are never cached.
	DependenciesFunc func() []string

	// CompletedIf reports whether this step is currently completed.
	// Evaluated on demand and never cached, so it may close over mutable
	// external state. Nil means always completed.
	CompletedIf func() bool

	// OnEnter runs immediately after the engine makes this step current.
	OnEnter Hook

	// OnLeave runs immediately before the engine moves off this step.
	OnLeave Hook
}

// Step is the engine's immutable wrapper around a Declaration.
//
// It exposes uniform accessors regardless of whether a field was declared
// statically or as a computation. Steps are owned exclusively by the Engine
// constructed with them and have no independent lifecycle.
type Step struct {
	decl Declaration
}

// newStep wraps a declaration. Declarations are copied by value, so later
// mutation of the caller's slice cannot affect the engine.
func newStep(decl Declaration) *Step {
	return &Step{decl: decl}
}

// Name returns the step's unique identifier.
func (s *Step) Name() string {
	return s.decl.Name
}

// Dependencies returns the names of the steps this step requires, in
// priority order. The function form is re-evaluated on every call so the
// result always reflects current external state. Returns nil when the step
// has no dependencies.
func (s *Step) Dependencies() []string {
	if s.decl.DependenciesFunc != nil {
		return s.decl.DependenciesFunc()
	}
	return s.decl.Dependencies
}

// Completed evaluates the step's completion predicate against current
// external state. The result is never cached. A step with no predicate is
// always completed.
func (s *Step) Completed() bool {
	if s.decl.CompletedIf == nil {
		return true
	}
	return s.decl.CompletedIf()
}

// enter invokes the step's enter hook, if any.
func (s *Step) enter(e *Engine) {
	if s.decl.OnEnter != nil {
		s.decl.OnEnter(e)
	}
}

// leave invokes the step's leave hook, if any.
func (s *Step) leave(e *Engine) {
	if s.decl.OnLeave != nil {
		s.decl.OnLeave(e)
	}
}
