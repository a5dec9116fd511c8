package reader

import (
	"sync"

	"github.com/erraggy/oasmodels/model"
)

// Registry holds, per model id, the type context that produced it. It lives
// for one whole read pass so the name finalizer can consult it.
//
// Writes happen only while collecting and merging; finalization only reads.
type Registry struct {
	mu       sync.RWMutex
	contexts map[string]*model.TypeContext
	order    []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{contexts: make(map[string]*model.TypeContext)}
}

// Register records tc under id unless id is already registered, and returns
// the context now registered for id. Ids are derived from context identity,
// so the first registration wins.
func (r *Registry) Register(id string, tc *model.TypeContext) *model.TypeContext {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.contexts[id]; ok {
		return existing
	}
	r.contexts[id] = tc
	r.order = append(r.order, id)
	return tc
}

// Get returns the context registered for id.
func (r *Registry) Get(id string) (*model.TypeContext, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tc, ok := r.contexts[id]
	return tc, ok
}

// Resolve returns the representative context for id, following any alias
// chain recorded during merging.
func (r *Registry) Resolve(id string) (*model.TypeContext, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tc, ok := r.contexts[id]
	if !ok {
		return nil, false
	}
	return tc.Representative(), true
}

// Alias records that the model registered under loserID duplicates the one
// under winnerID. It reports false when either id is unknown.
func (r *Registry) Alias(loserID, winnerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	loser, ok := r.contexts[loserID]
	if !ok {
		return false
	}
	winner, ok := r.contexts[winnerID]
	if !ok {
		return false
	}
	loser.AssumeEqualTo(winner)
	return true
}

// Equivalent reports whether both ids are registered and already share a
// representative context.
func (r *Registry) Equivalent(a, b string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ca, ok := r.contexts[a]
	if !ok {
		return false
	}
	cb, ok := r.contexts[b]
	if !ok {
		return false
	}
	return ca.Representative() == cb.Representative()
}

// Len returns the number of registered ids.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contexts)
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}
