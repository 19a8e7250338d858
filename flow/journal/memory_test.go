package journal

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testRecord(flowID string, seq int, step, msg string) Record {
	return Record{
		FlowID: flowID,
		Seq:    seq,
		Step:   step,
		To:     step,
		Msg:    msg,
		At:     time.Now().UTC(),
	}
}

// TestMemJournal_AppendTail verifies append order and newest-first tail.
func TestMemJournal_AppendTail(t *testing.T) {
	ctx := context.Background()
	j := NewMemJournal()
	defer func() { _ = j.Close() }()

	for i := 1; i <= 3; i++ {
		if err := j.Append(ctx, testRecord("f", i, "a", "enter")); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		recs, err := j.Tail(ctx, "f", 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(recs) != 3 {
			t.Fatalf("expected 3 records, got %d", len(recs))
		}
		if recs[0].Seq != 3 || recs[2].Seq != 1 {
			t.Errorf("expected newest first, got seqs %d,%d,%d", recs[0].Seq, recs[1].Seq, recs[2].Seq)
		}
	})

	t.Run("limit", func(t *testing.T) {
		recs, err := j.Tail(ctx, "f", 2)
		if err != nil {
			t.Fatal(err)
		}
		if len(recs) != 2 {
			t.Fatalf("expected 2 records, got %d", len(recs))
		}
		if recs[0].Seq != 3 {
			t.Errorf("expected newest record first, got seq %d", recs[0].Seq)
		}
	})

	t.Run("unknown flow", func(t *testing.T) {
		_, err := j.Tail(ctx, "absent", 0)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

// TestMemJournal_FlowIsolation verifies records are keyed by flow ID.
func TestMemJournal_FlowIsolation(t *testing.T) {
	ctx := context.Background()
	j := NewMemJournal()

	_ = j.Append(ctx, testRecord("one", 1, "a", "enter"))
	_ = j.Append(ctx, testRecord("two", 1, "x", "enter"))

	recs, err := j.Tail(ctx, "one", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Step != "a" {
		t.Errorf("unexpected records for flow one: %v", recs)
	}
}
