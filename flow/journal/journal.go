// Package journal provides append-only persistence for flow transition
// events.
//
// Journals live entirely outside the engine core: the engine's only
// persistence-adjacent surface is the emit.Emitter boundary, and a journal
// is wired in through the NewEmitter adapter. The engine itself never
// stores history beyond its previous/current/next slots.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/dshills/flowstep-go/flow/emit"
)

// ErrNotFound is returned when a requested flow ID has no journal records.
var ErrNotFound = errors.New("not found")

// Record is one journaled navigation event.
type Record struct {
	// FlowID identifies the engine that produced the event.
	FlowID string

	// Seq is the engine's request counter at the time of the event.
	Seq int

	// Step is the step name the event concerns.
	Step string

	// From and To are the transition endpoints ("" = none).
	From string
	To   string

	// Msg is the event name ("enter", "fallback", ...).
	Msg string

	// At is the append timestamp.
	At time.Time
}

// Journal is an append-only sink for navigation records.
//
// Implementations can use:
//   - In-memory storage (testing, see memory.go)
//   - SQLite (local single-file persistence, see sqlite.go)
//   - MySQL/MariaDB (shared production persistence, see mysql.go)
type Journal interface {
	// Append persists one record. Records for one flow ID are expected to
	// arrive in Seq order, but Append does not enforce it.
	Append(ctx context.Context, rec Record) error

	// Tail retrieves the most recent records for a flow ID, newest first,
	// at most limit entries (limit <= 0 means no limit).
	//
	// Returns ErrNotFound if the flow ID has no records.
	Tail(ctx context.Context, flowID string, limit int) ([]Record, error)

	// Close releases the journal's resources. Calling Close multiple
	// times is safe.
	Close() error
}

// NewEmitter adapts a Journal into an emit.Emitter so it can be wired into
// an engine with flow.WithEmitter.
//
// Append errors are dropped: emitters must not fail the flow, and the
// engine has no channel for reporting them. Applications that need delivery
// guarantees should wrap the Journal themselves.
//
// Example:
//
//	j, err := journal.NewSQLiteJournal("./flow.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer j.Close()
//
//	engine, err := flow.New(decls, flow.WithEmitter(journal.NewEmitter(j)))
func NewEmitter(j Journal) emit.Emitter {
	return &journalEmitter{journal: j}
}

type journalEmitter struct {
	journal Journal
}

// Emit appends the event as a Record, stamping the append time.
func (je *journalEmitter) Emit(event emit.Event) {
	_ = je.journal.Append(context.Background(), Record{
		FlowID: event.FlowID,
		Seq:    event.Seq,
		Step:   event.Step,
		From:   event.From,
		To:     event.To,
		Msg:    event.Msg,
		At:     time.Now().UTC(),
	})
}
