// Package flow provides the core step-navigation engine for FlowStep-Go.
package flow

// UnknownStepError reports a transition request (direct, or reached through
// dependency fallback) that named a step not present in the declared set.
//
// This indicates a configuration error in the declarations, not a runtime
// condition to recover from, so it is fatal to the call that triggered it.
// Match with errors.As:
//
//	var unknown *flow.UnknownStepError
//	if errors.As(err, &unknown) {
//	    log.Fatalf("flow references undeclared step %q", unknown.Name)
//	}
type UnknownStepError struct {
	// Name is the step name that could not be resolved.
	Name string
}

// Error implements the error interface.
func (e *UnknownStepError) Error() string {
	return "unknown step: " + e.Name
}

// DuplicateStepError reports two declarations sharing one name.
//
// Duplicate names would make step lookup ambiguous, so New rejects them at
// construction time instead of silently resolving to the first match.
type DuplicateStepError struct {
	// Name is the step name declared more than once.
	Name string
}

// Error implements the error interface.
func (e *DuplicateStepError) Error() string {
	return "duplicate step: " + e.Name
}
