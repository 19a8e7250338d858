package emit

// Emitter receives and processes observability events from flow navigation.
//
// Emitters enable pluggable observability backends:
//   - Logging: stdout, files, syslog
//   - Distributed tracing: OpenTelemetry, Jaeger, Zipkin
//   - Persistence: transition journals (see the journal package)
//   - In-memory capture: testing and debugging
//
// Implementations should be:
//   - Non-blocking: transitions are synchronous, so a slow emitter stalls
//     the caller directly
//   - Resilient: handle backend failures gracefully (don't fail the flow)
//
// Common patterns:
//   - Buffering: collect events and flush in batches
//   - Filtering: only emit events matching criteria (e.g., fallbacks only)
//   - Multi-emit: fan out to multiple backends
type Emitter interface {
	// Emit sends an observability event to the configured backend.
	//
	// Emit should not panic. Errors should be handled internally; the
	// engine has no channel for reporting emitter failures.
	Emit(event Event)
}
