package emit

// Event represents an observability event emitted during flow navigation.
//
// Events provide detailed insight into engine behavior:
//   - Transition start/end
//   - Leave and enter hook invocations
//   - Fallback redirections to unmet dependencies
//   - Aborted transitions
//
// Events are emitted to an Emitter which can:
//   - Log to stdout/stderr
//   - Send to OpenTelemetry
//   - Append to a transition journal
//   - Trigger alerts
type Event struct {
	// FlowID identifies the engine that emitted this event.
	FlowID string

	// Seq is the engine's monotonic request counter (1-indexed). Every
	// resolution pass gets its own number, so fallback hops and reentrant
	// transitions triggered from hooks are distinguishable.
	Seq int

	// Step is the step name this event concerns. For fallback events this
	// is the step the engine resolved to, not the one requested.
	Step string

	// From is the current step at the time the event fired ("" = none).
	From string

	// To is the transition target ("" for events with no target).
	To string

	// Msg is a short machine-readable event name:
	// "transition_start", "leave", "enter", "transition_end",
	// "fallback", "aborted".
	Msg string

	// Meta contains additional structured data specific to this event.
	// Common keys:
	//   - "requested": originally requested target of a fallback
	//   - "incomplete": the unmet dependency that caused a fallback/abort
	//   - "skip_leave", "skip_enter": hook suppression flags in effect
	Meta map[string]interface{}
}
