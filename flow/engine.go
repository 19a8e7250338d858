package flow

import (
	"time"

	"github.com/dshills/flowstep-go/flow/emit"
)

// Engine is the live position in a flow of named steps.
//
// The Engine is the core runtime that:
//   - Owns the ordered, fixed set of Steps established at construction
//   - Tracks previous/current/next step identity
//   - Resolves transition requests against the dependency graph and the
//     completion state observed at the moment of the request
//   - Falls back to the nearest unmet dependency when the requested step
//     is not yet reachable
//   - Invokes leave/enter hooks synchronously around the state change
//   - Emits observability events and records metrics
//
// The engine is strictly single-threaded and synchronous: there is no
// scheduler, no suspension point, and no locking. The only concurrency-like
// behavior is controlled reentrancy — a hook may call Go again before the
// triggering call has returned, producing nested call stacks on one
// goroutine. The Engine is not safe for concurrent use from multiple
// goroutines.
//
// Example:
//
//	engine, err := flow.New([]flow.Declaration{
//	    {Name: "account", CompletedIf: func() bool { return accountCreated }},
//	    {Name: "profile", Dependencies: []string{"account"}},
//	    {Name: "confirm", Dependencies: []string{"profile"}},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Lands on "account" while accountCreated is false.
//	if err := engine.Go("confirm"); err != nil {
//	    log.Fatal(err)
//	}
type Engine struct {
	// flowID identifies this engine in events and metric labels.
	flowID string

	// steps holds every Step in declaration order.
	steps []*Step

	// index maps step names to Steps for O(1) lookup.
	index map[string]*Step

	// previous, current, next are step names; "" means none.
	// next is transient: it is non-empty only while a leave hook runs,
	// so the hook can observe where the engine is headed.
	previous string
	current  string
	next     string

	// seq counts transition requests processed by this engine.
	seq int

	// emitter receives observability events; nil disables emission.
	emitter emit.Emitter

	// metrics records Prometheus metrics; nil disables collection.
	metrics *Metrics
}

// New creates an Engine from an ordered sequence of step declarations.
//
// Each declaration is wrapped in a Step and stored in declaration order.
// Duplicate step names are rejected with *DuplicateStepError.
//
// Referential integrity is NOT validated here: a dependency naming an
// undeclared step only fails — with *UnknownStepError — if a transition
// actually reaches it. This allows declarations whose dynamic dependency
// functions mention steps conditionally.
//
// Before the first successful Go call, CurrentStep is "" and Completed
// reports true.
func New(decls []Declaration, opts ...Option) (*Engine, error) {
	e := &Engine{
		flowID: "flow",
		steps:  make([]*Step, 0, len(decls)),
		index:  make(map[string]*Step, len(decls)),
	}

	for _, decl := range decls {
		if _, exists := e.index[decl.Name]; exists {
			return nil, &DuplicateStepError{Name: decl.Name}
		}
		step := newStep(decl)
		e.steps = append(e.steps, step)
		e.index[decl.Name] = step
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// FlowID returns the identifier stamped on this engine's events and
// metric labels.
func (e *Engine) FlowID() string {
	return e.flowID
}

// Steps returns the declared step names in declaration order.
func (e *Engine) Steps() []string {
	names := make([]string, len(e.steps))
	for i, step := range e.steps {
		names[i] = step.Name()
	}
	return names
}

// Step returns the Step declared under name, or false if none exists.
func (e *Engine) Step(name string) (*Step, bool) {
	return e.lookup(name)
}

// PreviousStep returns the name of the step the engine most recently left,
// or "" if there is none.
func (e *Engine) PreviousStep() string {
	return e.previous
}

// CurrentStep returns the name of the current step, or "" before the first
// successful transition.
func (e *Engine) CurrentStep() string {
	return e.current
}

// NextStep returns the name of the step the engine is transitioning to.
// It is non-empty only during the synchronous execution of a leave hook;
// at every other time it returns "".
func (e *Engine) NextStep() string {
	return e.next
}

// Completed reports whether the engine's position is completed: true when
// there is no current step, or when the current step's completion predicate
// evaluates true. Derived on every call, never stored.
func (e *Engine) Completed() bool {
	if e.current == "" {
		return true
	}
	return e.index[e.current].Completed()
}

// Go requests a transition to the named step.
//
// The request is resolved against the dependency graph and completion state
// at the moment of the call:
//
//   - If target is already the current step, the call is a complete no-op:
//     no hooks fire, no fields change, no events are emitted.
//   - Otherwise the target's transitive dependency set is computed (see
//     TransitiveDependencies for the traversal order) and scanned for the
//     first incomplete entry.
//   - If one is found, the engine falls back: it re-runs the request with
//     that dependency as the target, carrying the same options. This may
//     cascade several levels. With WithoutFallback set, the transition is
//     instead aborted with no state change and no hooks fired, and Go
//     returns nil — the engine remains exactly where it was.
//   - Once dependencies are satisfied, the transition executes: NextStep is
//     set to the target, the current step's leave hook fires (unless
//     SkipLeave, or there is no current step), previous/current are
//     updated and NextStep cleared, then the target's enter hook fires
//     (unless SkipEnter).
//
// Hooks may call Go reentrantly; the reentrant call runs the full algorithm
// before this call's stack unwinds. A reentrant call from an enter hook
// moves the engine onward and the outer call leaves that state untouched.
// A reentrant call from a leave hook runs to completion too, but the outer
// transition then finishes its own assignments, so the outer target wins.
//
// Returns *UnknownStepError if target — or any dependency reached while
// resolving it — names no declared step. No other failure exists; hooks and
// predicates are assumed not to fail, and a panic in one propagates
// unmodified.
func (e *Engine) Go(target string, opts ...GoOption) error {
	var cfg goConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return e.transition(target, cfg)
}

// transition runs one resolution pass. Fallback re-enters here with the
// unmet dependency as the target and the same options.
func (e *Engine) transition(target string, cfg goConfig) error {
	// Redundant self-transitions would re-run side effects.
	if target == e.current {
		return nil
	}

	step, ok := e.lookup(target)
	if !ok {
		return &UnknownStepError{Name: target}
	}

	deps, err := e.transitiveDependencies(step)
	if err != nil {
		return err
	}

	e.seq++
	seq := e.seq

	if incomplete := firstIncomplete(deps); incomplete != nil {
		if cfg.noFallback {
			e.metrics.recordAbort(e.flowID, target)
			e.emit(emit.Event{
				FlowID: e.flowID,
				Seq:    seq,
				Step:   target,
				From:   e.current,
				To:     target,
				Msg:    "aborted",
				Meta:   map[string]interface{}{"incomplete": incomplete.Name()},
			})
			return nil
		}

		e.metrics.recordFallback(e.flowID, target, incomplete.Name())
		e.emit(emit.Event{
			FlowID: e.flowID,
			Seq:    seq,
			Step:   incomplete.Name(),
			From:   e.current,
			To:     incomplete.Name(),
			Msg:    "fallback",
			Meta:   map[string]interface{}{"requested": target},
		})
		return e.transition(incomplete.Name(), cfg)
	}

	e.execute(step, cfg, seq)
	return nil
}

// execute performs the transition protocol for a target whose dependencies
// are satisfied: next is set before the leave hook so the hook can observe
// where the engine is headed, and cleared before the enter hook.
func (e *Engine) execute(target *Step, cfg goConfig, seq int) {
	from := e.current

	e.emit(emit.Event{
		FlowID: e.flowID,
		Seq:    seq,
		Step:   target.Name(),
		From:   from,
		To:     target.Name(),
		Msg:    "transition_start",
		Meta: map[string]interface{}{
			"skip_leave": cfg.skipLeave,
			"skip_enter": cfg.skipEnter,
		},
	})

	e.next = target.Name()

	if from != "" && !cfg.skipLeave {
		leaving := e.index[from]
		start := time.Now()
		leaving.leave(e)
		e.metrics.observeHook(e.flowID, from, "leave", time.Since(start))
		e.emit(emit.Event{
			FlowID: e.flowID,
			Seq:    seq,
			Step:   from,
			From:   from,
			To:     target.Name(),
			Msg:    "leave",
		})
	}

	e.previous = from
	e.current = target.Name()
	e.next = ""

	if !cfg.skipEnter {
		start := time.Now()
		target.enter(e)
		e.metrics.observeHook(e.flowID, target.Name(), "enter", time.Since(start))
		e.emit(emit.Event{
			FlowID: e.flowID,
			Seq:    seq,
			Step:   target.Name(),
			From:   from,
			To:     target.Name(),
			Msg:    "enter",
		})
	}

	e.metrics.recordTransition(e.flowID, target.Name())
	e.emit(emit.Event{
		FlowID: e.flowID,
		Seq:    seq,
		Step:   target.Name(),
		From:   from,
		To:     target.Name(),
		Msg:    "transition_end",
	})
}

// lookup resolves a step name against the declared set.
func (e *Engine) lookup(name string) (*Step, bool) {
	step, ok := e.index[name]
	return step, ok
}

// emit sends an event if an emitter is configured.
func (e *Engine) emit(event emit.Event) {
	if e.emitter != nil {
		e.emitter.Emit(event)
	}
}
