package flow

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides Prometheus-compatible metrics collection for flow
// navigation monitoring in production environments.
//
// Metrics exposed (all namespaced with "flowstep_"):
//
// 1. transitions_total (counter): Completed transitions per step.
// Labels: flow_id, step.
// Use: Track how often each step is entered; spot flows stuck on a step.
//
// 2. fallbacks_total (counter): Transitions redirected to an unmet
// dependency instead of the requested target.
// Labels: flow_id, requested, resolved.
// Use: Identify steps whose prerequisites are chronically incomplete.
//
// 3. aborts_total (counter): Transitions aborted because fallback was
// disabled and a dependency was unmet.
// Labels: flow_id, step.
//
// 4. hook_duration_seconds (histogram): Enter/leave hook execution time.
// Labels: flow_id, step, hook ("enter" or "leave").
// Use: Hooks run synchronously on the caller's stack; slow hooks stall
// every transition.
//
// Usage:
//
//	registry := prometheus.NewRegistry()
//	metrics := flow.NewMetrics(registry)
//
//	engine, err := flow.New(decls, flow.WithMetrics(metrics))
//
//	// Expose via HTTP for Prometheus scraping:
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
//
// All record methods are nil-safe: a nil *Metrics disables collection.
type Metrics struct {
	transitions  *prometheus.CounterVec
	fallbacks    *prometheus.CounterVec
	aborts       *prometheus.CounterVec
	hookDuration *prometheus.HistogramVec
}

// NewMetrics creates a Metrics collector registered on the given registry.
//
// Pass prometheus.DefaultRegisterer to use the process-global registry, or
// a dedicated prometheus.NewRegistry() to keep flow metrics isolated
// (recommended for tests).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flowstep",
			Name:      "transitions_total",
			Help:      "Total completed step transitions.",
		}, []string{"flow_id", "step"}),

		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flowstep",
			Name:      "fallbacks_total",
			Help:      "Transitions redirected to an incomplete dependency.",
		}, []string{"flow_id", "requested", "resolved"}),

		aborts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flowstep",
			Name:      "aborts_total",
			Help:      "Transitions aborted on an unmet dependency with fallback disabled.",
		}, []string{"flow_id", "step"}),

		hookDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flowstep",
			Name:      "hook_duration_seconds",
			Help:      "Enter/leave hook execution time in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"flow_id", "step", "hook"}),
	}
}

// recordTransition increments the transition counter for a completed
// transition into step.
func (m *Metrics) recordTransition(flowID, step string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(flowID, step).Inc()
}

// recordFallback increments the fallback counter for a redirected request.
func (m *Metrics) recordFallback(flowID, requested, resolved string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(flowID, requested, resolved).Inc()
}

// recordAbort increments the abort counter for a suppressed fallback.
func (m *Metrics) recordAbort(flowID, step string) {
	if m == nil {
		return
	}
	m.aborts.WithLabelValues(flowID, step).Inc()
}

// observeHook records the duration of one enter/leave hook invocation.
func (m *Metrics) observeHook(flowID, step, hook string, d time.Duration) {
	if m == nil {
		return
	}
	m.hookDuration.WithLabelValues(flowID, step, hook).Observe(d.Seconds())
}
