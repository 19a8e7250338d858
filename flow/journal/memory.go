package journal

import (
	"context"
	"sync"
)

// MemJournal is an in-memory implementation of Journal.
//
// It stores records in memory using a map keyed by flow ID.
// Designed for:
//   - Testing and development
//   - Short-lived flows where persistence isn't required
//
// MemJournal is thread-safe.
//
// Limitations:
//   - Data is lost when the process terminates
//   - Memory usage grows with navigation history
//
// For persistence, use SQLiteJournal or MySQLJournal.
type MemJournal struct {
	mu      sync.RWMutex
	records map[string][]Record // flowID -> records in append order
}

// NewMemJournal creates a new in-memory journal.
//
// Example:
//
//	j := journal.NewMemJournal()
//	engine, _ := flow.New(decls, flow.WithEmitter(journal.NewEmitter(j)))
func NewMemJournal() *MemJournal {
	return &MemJournal{
		records: make(map[string][]Record),
	}
}

// Append stores a record in append order. Thread-safe.
func (m *MemJournal) Append(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[rec.FlowID] = append(m.records[rec.FlowID], rec)
	return nil
}

// Tail returns the most recent records for a flow ID, newest first.
//
// Returns ErrNotFound if the flow ID has no records.
func (m *MemJournal) Tail(_ context.Context, flowID string, limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := m.records[flowID]
	if len(recs) == 0 {
		return nil, ErrNotFound
	}

	n := len(recs)
	if limit > 0 && limit < n {
		n = limit
	}

	// Copy newest-first to prevent external modification
	result := make([]Record, n)
	for i := 0; i < n; i++ {
		result[i] = recs[len(recs)-1-i]
	}
	return result, nil
}

// Close is a no-op for the in-memory journal.
func (m *MemJournal) Close() error {
	return nil
}
