package emit

import "sync"

// BufferedEmitter implements Emitter by storing events in memory.
//
// This emitter captures all events and provides query capabilities for
// navigation history analysis. Events are organized by flow ID for
// efficient retrieval and filtering.
//
// Features:
//   - Thread-safe concurrent access
//   - Query by flow ID with optional filtering
//   - Filter by step, message, sequence range
//   - Clear events by flow ID or all events
//
// Use cases:
//   - Development and debugging
//   - Testing and validation
//   - Post-run analysis of fallback behavior
//
// Warning: this emitter stores all events in memory. For long-lived flows
// with high event volume, prefer a persistent backend (see the journal
// package) or clear the buffer periodically.
//
// Example usage:
//
//	emitter := emit.NewBufferedEmitter()
//	engine, _ := flow.New(decls, flow.WithEmitter(emitter))
//
//	_ = engine.Go("confirm")
//
//	history := emitter.History("flow")
//	fallbacks := emitter.HistoryWithFilter("flow", emit.HistoryFilter{Msg: "fallback"})
type BufferedEmitter struct {
	mu     sync.RWMutex
	events map[string][]Event // flowID -> events
}

// HistoryFilter specifies criteria for filtering navigation history.
//
// All filter fields are optional. When multiple fields are set, they are
// combined with AND logic (all conditions must match).
//
// Fields:
//   - Step: filter by step name
//   - Msg: filter by message type (e.g., "enter", "fallback")
//   - MinSeq: filter events with seq >= MinSeq (nil = no lower bound)
//   - MaxSeq: filter events with seq <= MaxSeq (nil = no upper bound)
type HistoryFilter struct {
	Step   string // Filter by step name (empty = no filter)
	Msg    string // Filter by message (empty = no filter)
	MinSeq *int   // Minimum sequence number (nil = no filter)
	MaxSeq *int   // Maximum sequence number (nil = no filter)
}

// NewBufferedEmitter creates a new BufferedEmitter.
//
// Returns a BufferedEmitter that stores all events in memory and provides
// query capabilities. Safe for concurrent use.
func NewBufferedEmitter() *BufferedEmitter {
	return &BufferedEmitter{
		events: make(map[string][]Event),
	}
}

// Emit stores an event in the buffer.
//
// Events are organized by flow ID for efficient retrieval. This method is
// thread-safe.
func (b *BufferedEmitter) Emit(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events[event.FlowID] = append(b.events[event.FlowID], event)
}

// History retrieves all events for a specific flow ID.
//
// Returns events in the order they were emitted. Returns an empty slice
// if no events exist for the given flow ID.
//
// This method is thread-safe and returns a copy of the events to prevent
// concurrent modification issues.
func (b *BufferedEmitter) History(flowID string) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	events := b.events[flowID]
	if events == nil {
		return []Event{} // Return empty slice instead of nil
	}

	// Return a copy to prevent external modification
	result := make([]Event, len(events))
	copy(result, events)
	return result
}

// HistoryWithFilter retrieves filtered events for a specific flow ID.
//
// Applies the provided filter criteria to select matching events. All
// filter conditions must match for an event to be included (AND logic).
//
// Returns events in the order they were emitted. Returns an empty slice if
// no events match the filter.
//
// Example:
//
//	// Every time the engine redirected away from "confirm"
//	fallbacks := emitter.HistoryWithFilter("signup", emit.HistoryFilter{
//	    Msg: "fallback",
//	})
func (b *BufferedEmitter) HistoryWithFilter(flowID string, filter HistoryFilter) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	events := b.events[flowID]
	if events == nil {
		return []Event{}
	}

	// If filter is empty, return all events
	if filter.Step == "" && filter.Msg == "" && filter.MinSeq == nil && filter.MaxSeq == nil {
		result := make([]Event, len(events))
		copy(result, events)
		return result
	}

	var result []Event
	for _, event := range events {
		if !b.matchesFilter(event, filter) {
			continue
		}
		result = append(result, event)
	}

	if result == nil {
		return []Event{} // Return empty slice instead of nil
	}
	return result
}

// matchesFilter checks if an event matches the filter criteria.
func (b *BufferedEmitter) matchesFilter(event Event, filter HistoryFilter) bool {
	if filter.Step != "" && event.Step != filter.Step {
		return false
	}
	if filter.Msg != "" && event.Msg != filter.Msg {
		return false
	}
	if filter.MinSeq != nil && event.Seq < *filter.MinSeq {
		return false
	}
	if filter.MaxSeq != nil && event.Seq > *filter.MaxSeq {
		return false
	}
	return true
}

// Clear removes all buffered events for a specific flow ID.
func (b *BufferedEmitter) Clear(flowID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.events, flowID)
}

// ClearAll removes all buffered events for every flow ID.
func (b *BufferedEmitter) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = make(map[string][]Event)
}
