package reader

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasmodels/internal/maputil"
	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/modelerrors"
)

// Branch is the set of models discovered from one root context: the primary
// model plus all of its transitive dependencies. It is keyed by model id and
// remembers insertion order.
type Branch struct {
	// Root is the context the branch was collected from.
	Root *model.TypeContext
	// Primary is the model of the root type, nil when the source had none.
	Primary *model.Model
	// Warnings holds non-fatal events recorded while collecting.
	Warnings Warnings

	models map[string]*model.Model
	order  []string
}

// NewBranch returns an empty branch for root.
func NewBranch(root *model.TypeContext) *Branch {
	return &Branch{
		Root:   root,
		models: make(map[string]*model.Model),
	}
}

// Add inserts m. Adding the same model twice is a no-op; adding a different
// model under an id already in the branch is an error.
func (b *Branch) Add(m *model.Model) error {
	if m == nil {
		return nil
	}
	if m.ID == "" {
		return &modelerrors.ConsistencyError{
			Group:   b.groupName(),
			Message: fmt.Sprintf("model for %s has no id", m.Type),
		}
	}
	if existing, ok := b.models[m.ID]; ok {
		if existing == m {
			return nil
		}
		return &modelerrors.DuplicateIDError{
			ID:       m.ID,
			Group:    b.groupName(),
			Existing: existing.Type.Signature(),
			Incoming: m.Type.Signature(),
		}
	}
	b.models[m.ID] = m
	b.order = append(b.order, m.ID)
	return nil
}

// Get returns the model with the given id.
func (b *Branch) Get(id string) (*model.Model, bool) {
	m, ok := b.models[id]
	return m, ok
}

// Len returns the number of models still in the branch.
func (b *Branch) Len() int {
	return len(b.models)
}

// IDs returns the ids in insertion order.
func (b *Branch) IDs() []string {
	ids := make([]string, len(b.order))
	copy(ids, b.order)
	return ids
}

// Models returns the models in insertion order.
func (b *Branch) Models() []*model.Model {
	result := make([]*model.Model, 0, len(b.order))
	for _, id := range b.order {
		result = append(result, b.models[id])
	}
	return result
}

// Ready returns the models, in insertion order, whose references point at no
// other model still in the branch. Back references are not considered. The
// branch is not modified, so every model is judged against the same snapshot.
func (b *Branch) Ready() []*model.Model {
	var ready []*model.Model
	for _, id := range b.order {
		m := b.models[id]
		blocked := false
		for _, ref := range m.DependencyIDs() {
			if _, inBranch := b.models[ref]; inBranch {
				blocked = true
				break
			}
		}
		if !blocked {
			ready = append(ready, m)
		}
	}
	return ready
}

// Remove deletes the given ids from the branch.
func (b *Branch) Remove(ids ...string) {
	if len(ids) == 0 {
		return
	}
	for _, id := range ids {
		delete(b.models, id)
	}
	b.order = slices.DeleteFunc(b.order, func(id string) bool {
		_, ok := b.models[id]
		return !ok
	})
}

// Retarget rewrites every reference to from held by models in the branch
// so it points at to with display name name. It returns the number of
// rewritten references.
func (b *Branch) Retarget(from, to, name string) int {
	n := 0
	for _, id := range b.order {
		n += b.models[id].Retarget(from, to, name)
	}
	return n
}

func (b *Branch) groupName() string {
	if b.Root == nil {
		return ""
	}
	return b.Root.Group.Name
}

func (b *Branch) operationID() string {
	if b.Root == nil || b.Root.Operation == nil {
		return ""
	}
	return b.Root.Operation.ID
}

// Collector gathers the branch of a root context from a ModelSource and
// registers a context for every model it discovers.
type Collector struct {
	Source   ModelSource
	Registry *Registry
	Logger   Logger
}

// Collect builds the branch for root. Every ignorable type is marked seen
// and ignored on root before the source is consulted, so the source never
// expands it.
func (c *Collector) Collect(root *model.TypeContext, ignorable []model.ResolvedType) (*Branch, error) {
	log := c.logger()
	for _, t := range ignorable {
		root.Ignore(t)
	}

	b := NewBranch(root)
	primary, err := c.Source.ModelFor(root)
	if err != nil {
		return nil, &modelerrors.SourceError{Collaborator: "model source", Type: root.Type.Signature(), Cause: err}
	}
	if primary != nil {
		log.Debug("generated primary model", "id", primary.ID, "type", primary.Type.Signature())
		b.Primary = primary
		if err := b.Add(primary); err != nil {
			return nil, err
		}
	} else {
		log.Debug("no primary model", "type", root.Type.Signature())
		b.Warnings = append(b.Warnings, NewMissingPrimaryModelWarning(b.groupName(), b.operationID(), root.Type.Signature()))
	}

	deps, err := c.Source.Dependencies(root)
	if err != nil {
		return nil, &modelerrors.SourceError{Collaborator: "model source", Type: root.Type.Signature(), Cause: err}
	}
	for _, id := range maputil.SortedKeys(deps) {
		m := deps[id]
		if m == nil {
			continue
		}
		if m.ID != id {
			return nil, &modelerrors.ConsistencyError{
				Group:   b.groupName(),
				ModelID: m.ID,
				Message: fmt.Sprintf("dependency keyed %s carries id %s", id, m.ID),
			}
		}
		if err := b.Add(m); err != nil {
			return nil, err
		}
	}

	for _, m := range b.Models() {
		if m == b.Primary {
			c.Registry.Register(m.ID, root)
			continue
		}
		c.Registry.Register(m.ID, model.FromParent(root, m.Type))
	}
	log.Debug("collected branch", "type", root.Type.Signature(), "models", b.Len())
	return b, nil
}

func (c *Collector) logger() Logger {
	if c.Logger == nil {
		return NopLogger{}
	}
	return c.Logger
}
