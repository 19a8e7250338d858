package journal

import (
	"context"
	"testing"

	"github.com/dshills/flowstep-go/flow"
)

// TestNewEmitter verifies the emitter adapter feeds engine events into a
// journal.
func TestNewEmitter(t *testing.T) {
	j := NewMemJournal()

	engine, err := flow.New([]flow.Declaration{
		{Name: "a", CompletedIf: func() bool { return false }},
		{Name: "b", Dependencies: []string{"a"}},
	}, flow.WithFlowID("wired"), flow.WithEmitter(NewEmitter(j)))
	if err != nil {
		t.Fatal(err)
	}

	if err := engine.Go("b"); err != nil {
		t.Fatal(err)
	}

	recs, err := j.Tail(context.Background(), "wired", 0)
	if err != nil {
		t.Fatalf("Tail failed: %v", err)
	}

	// Go("b") falls back to "a": fallback + start/enter/end.
	var msgs []string
	for i := len(recs) - 1; i >= 0; i-- {
		msgs = append(msgs, recs[i].Msg)
	}

	want := []string{"fallback", "transition_start", "enter", "transition_end"}
	if len(msgs) != len(want) {
		t.Fatalf("expected %d records, got %d: %v", len(want), len(msgs), msgs)
	}
	for i := range want {
		if msgs[i] != want[i] {
			t.Errorf("record %d: expected %q, got %q", i, want[i], msgs[i])
		}
	}

	for _, rec := range recs {
		if rec.At.IsZero() {
			t.Error("record missing append timestamp")
		}
	}
}
