package emit

// NullEmitter implements Emitter by discarding all events.
//
// This is a no-op emitter for environments where event output is not
// desired. It implements the Emitter interface but does nothing with
// emitted events.
//
// Use cases:
//   - Disabling event emission without changing engine wiring
//   - Tests that need an emitter but never inspect events
//
// Example usage:
//
//	engine, err := flow.New(decls, flow.WithEmitter(emit.NewNullEmitter()))
type NullEmitter struct{}

// NewNullEmitter creates a new NullEmitter.
//
// Returns a NullEmitter that discards all events without any processing.
// It has zero overhead.
func NewNullEmitter() *NullEmitter {
	return &NullEmitter{}
}

// Emit discards the event without any processing.
func (n *NullEmitter) Emit(event Event) {
	// No-op: discard the event
}
