package flow

import "github.com/dshills/flowstep-go/flow/emit"

// Option is a functional option for configuring an Engine at construction.
//
// Example:
//
//	engine, err := flow.New(decls,
//	    flow.WithFlowID("signup"),
//	    flow.WithEmitter(emit.NewLogEmitter(os.Stdout, false)),
//	    flow.WithMetrics(metrics),
//	)
type Option func(*Engine)

// WithFlowID sets the identifier stamped on every emitted event and metric
// label for this engine. Defaults to "flow". Useful when one process hosts
// several flows and observability output must be attributable.
func WithFlowID(id string) Option {
	return func(e *Engine) {
		e.flowID = id
	}
}

// WithEmitter sets the observability event receiver for this engine.
//
// The engine emits an event for every transition phase (start, leave,
// enter, end) plus fallback and abort outcomes. A nil emitter (the default)
// disables emission entirely.
func WithEmitter(em emit.Emitter) Option {
	return func(e *Engine) {
		e.emitter = em
	}
}

// WithMetrics sets the Prometheus metrics collector for this engine.
// Nil metrics (the default) disable collection.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// GoOption is a functional option for a single Go call. Options apply to
// that call only and are propagated unchanged through fallback recursion.
type GoOption func(*goConfig)

// goConfig collects per-transition options before the transition runs.
type goConfig struct {
	skipLeave  bool
	skipEnter  bool
	noFallback bool
}

// SkipLeave suppresses the outgoing step's leave hook for this transition.
func SkipLeave() GoOption {
	return func(cfg *goConfig) {
		cfg.skipLeave = true
	}
}

// SkipEnter suppresses the target step's enter hook for this transition.
func SkipEnter() GoOption {
	return func(cfg *goConfig) {
		cfg.skipEnter = true
	}
}

// WithoutFallback disables redirection to an incomplete dependency.
//
// By default, when the requested step has an unmet dependency the engine
// falls back to that dependency instead of failing outright. With this
// option set, the same situation aborts the transition: no hooks fire and
// the engine remains exactly where it was.
func WithoutFallback() GoOption {
	return func(cfg *goConfig) {
		cfg.noFallback = true
	}
}
