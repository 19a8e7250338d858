package flow

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestMetrics verifies Prometheus counters track navigation outcomes.
func TestMetrics(t *testing.T) {
	t.Run("transitions and fallbacks counted", func(t *testing.T) {
		registry := prometheus.NewRegistry()
		metrics := NewMetrics(registry)

		engine, err := New([]Declaration{
			{Name: "a", CompletedIf: func() bool { return false }},
			{Name: "b", Dependencies: []string{"a"}},
		}, WithFlowID("m"), WithMetrics(metrics))
		if err != nil {
			t.Fatal(err)
		}

		if err := engine.Go("b"); err != nil {
			t.Fatal(err)
		}

		if got := testutil.ToFloat64(metrics.transitions.WithLabelValues("m", "a")); got != 1 {
			t.Errorf("expected 1 transition into a, got %v", got)
		}
		if got := testutil.ToFloat64(metrics.fallbacks.WithLabelValues("m", "b", "a")); got != 1 {
			t.Errorf("expected 1 fallback b->a, got %v", got)
		}
	})

	t.Run("aborts counted", func(t *testing.T) {
		registry := prometheus.NewRegistry()
		metrics := NewMetrics(registry)

		engine, err := New([]Declaration{
			{Name: "a", CompletedIf: func() bool { return false }},
			{Name: "b", Dependencies: []string{"a"}},
		}, WithFlowID("m"), WithMetrics(metrics))
		if err != nil {
			t.Fatal(err)
		}

		if err := engine.Go("b", WithoutFallback()); err != nil {
			t.Fatal(err)
		}

		if got := testutil.ToFloat64(metrics.aborts.WithLabelValues("m", "b")); got != 1 {
			t.Errorf("expected 1 abort, got %v", got)
		}
		if got := testutil.ToFloat64(metrics.transitions.WithLabelValues("m", "b")); got != 0 {
			t.Errorf("expected no transitions, got %v", got)
		}
	})

	t.Run("nil metrics disable collection", func(t *testing.T) {
		engine, err := New([]Declaration{{Name: "a"}})
		if err != nil {
			t.Fatal(err)
		}

		// Must not panic without a collector wired in.
		if err := engine.Go("a"); err != nil {
			t.Fatal(err)
		}
	})
}
