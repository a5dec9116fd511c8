package reader

import (
	"sync"

	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/modelerrors"
)

// Index is the global set of canonical models accepted so far, bucketed by
// type signature. Candidates within a bucket keep acceptance order, so the
// first structurally equal candidate always wins a match.
type Index struct {
	mu      sync.Mutex
	buckets map[string][]*model.Model
	ids     map[string]*model.Model
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{
		buckets: make(map[string][]*model.Model),
		ids:     make(map[string]*model.Model),
	}
}

// IndexFrom rebuilds an index from previously accepted groups.
func IndexFrom(groups []*GroupModels) (*Index, error) {
	idx := NewIndex()
	for _, g := range groups {
		for _, m := range g.Models {
			if err := idx.Add(m); err != nil {
				return nil, err
			}
		}
	}
	return idx, nil
}

// Match returns the first canonical model with m's type signature that eq
// considers equal to m.
func (idx *Index) Match(m *model.Model, eq model.EqualFunc) (*model.Model, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, candidate := range idx.buckets[m.Type.Signature()] {
		if eq(candidate, m) {
			return candidate, true
		}
	}
	return nil, false
}

// Add records m as canonical. Two distinct canonical models may never share
// an id; adding the same model again is a no-op.
func (idx *Index) Add(m *model.Model) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if existing, ok := idx.ids[m.ID]; ok {
		if existing == m {
			return nil
		}
		return &modelerrors.DuplicateIDError{
			ID:       m.ID,
			Existing: existing.Type.Signature(),
			Incoming: m.Type.Signature(),
		}
	}
	sig := m.Type.Signature()
	idx.buckets[sig] = append(idx.buckets[sig], m)
	idx.ids[m.ID] = m
	return nil
}

// Candidates returns the canonical models for type t in acceptance order.
func (idx *Index) Candidates(t model.ResolvedType) []*model.Model {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	bucket := idx.buckets[t.Signature()]
	result := make([]*model.Model, len(bucket))
	copy(result, bucket)
	return result
}

// Len returns the number of canonical models.
func (idx *Index) Len() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return len(idx.ids)
}

// Has reports whether a canonical model with the given id exists.
func (idx *Index) Has(id string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	_, ok := idx.ids[id]
	return ok
}
