package flowfile

import (
	"fmt"
	"sync"

	"github.com/dshills/flowstep-go/flow"
)

// Registry maps names used in flow files to Go implementations.
//
// Predicates are nullary boolean functions bound to completed_if keys;
// hooks are flow.Hook functions bound to on_enter/on_leave keys.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	predicates map[string]func() bool
	hooks      map[string]flow.Hook
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		predicates: make(map[string]func() bool),
		hooks:      make(map[string]flow.Hook),
	}
}

// RegisterPredicate binds a completion predicate to a name.
// Re-registering a name replaces the previous binding.
func (r *Registry) RegisterPredicate(name string, pred func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.predicates[name] = pred
}

// RegisterHook binds a hook to a name.
// Re-registering a name replaces the previous binding.
func (r *Registry) RegisterHook(name string, hook flow.Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[name] = hook
}

// Predicate returns the predicate registered under name.
func (r *Registry) Predicate(name string) (func() bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pred, exists := r.predicates[name]
	if !exists {
		return nil, fmt.Errorf("unknown predicate: %s", name)
	}
	return pred, nil
}

// Hook returns the hook registered under name.
func (r *Registry) Hook(name string) (flow.Hook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hook, exists := r.hooks[name]
	if !exists {
		return nil, fmt.Errorf("unknown hook: %s", name)
	}
	return hook, nil
}

// Predicates returns all registered predicate names.
func (r *Registry) Predicates() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.predicates))
	for name := range r.predicates {
		names = append(names, name)
	}
	return names
}

// Hooks returns all registered hook names.
func (r *Registry) Hooks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.hooks))
	for name := range r.hooks {
		names = append(names, name)
	}
	return names
}
