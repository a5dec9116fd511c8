package reader

import (
	"fmt"

	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/modelerrors"
	"github.com/erraggy/oasmodels/typename"
)

// MergeResult reports the outcome of merging one branch.
type MergeResult struct {
	// Accepted lists the models that became canonical, in acceptance order.
	Accepted []*model.Model
	// Deduplicated maps each dropped model id to the canonical id it was
	// folded into.
	Deduplicated map[string]string
	// Warnings holds a WarnModelDeduplicated entry per dropped model.
	Warnings Warnings
	// Passes is the number of peel passes needed to empty the branch.
	Passes int
}

// Merger folds branches into a shared canonical index.
//
// A branch is peeled leaves first: every pass takes the models that no
// longer reference anything still in the branch. Each such model either
// matches an existing canonical model and is dropped, with every reference
// to it rewritten to the canonical id, or becomes canonical itself. Because
// dependencies are settled before their dependents, a dependent whose
// references were rewritten can in turn match a canonical model of its own.
// Back references do not hold a model in the branch; they are rewritten like
// any other reference once their target is settled.
type Merger struct {
	Index    *Index
	Registry *Registry
	Equal    model.EqualFunc
	Namer    typename.Namer
	Logger   Logger
}

// Merge empties b into the index. It fails with a CycleError when the
// remaining models reference each other so that no pass can make progress.
func (mg *Merger) Merge(b *Branch) (*MergeResult, error) {
	log := mg.Logger
	if log == nil {
		log = NopLogger{}
	}
	eq := mg.Equal
	if eq == nil {
		eq = model.Equal
	}

	result := &MergeResult{Deduplicated: make(map[string]string)}
	limit := b.Len()
	for b.Len() > 0 {
		ready := b.Ready()
		if len(ready) == 0 || result.Passes >= limit {
			return nil, &modelerrors.CycleError{
				Group:     b.groupName(),
				Operation: b.operationID(),
				IDs:       b.IDs(),
				Passes:    result.Passes,
			}
		}
		result.Passes++

		for _, m := range ready {
			b.Remove(m.ID)
			winner, found := mg.Index.Match(m, eq)
			if !found {
				if err := mg.Index.Add(m); err != nil {
					return nil, fmt.Errorf("reader: accepting %s: %w", m.Type.Signature(), err)
				}
				result.Accepted = append(result.Accepted, m)
				log.Debug("accepted canonical model", "id", m.ID, "type", m.Type.Signature())
				continue
			}

			name := mg.displayName(winner)
			b.Retarget(m.ID, winner.ID, name)
			// Models accepted earlier in this branch can still hold back
			// references to m.
			for _, accepted := range result.Accepted {
				accepted.Retarget(m.ID, winner.ID, name)
			}
			if winner.ID == m.ID {
				continue
			}
			if mg.Registry != nil {
				// Rediscovered in a later branch; already folded.
				if mg.Registry.Equivalent(m.ID, winner.ID) {
					continue
				}
				if !mg.Registry.Alias(m.ID, winner.ID) {
					return nil, &modelerrors.ConsistencyError{
						Group:   b.groupName(),
						ModelID: m.ID,
						RefID:   winner.ID,
						Message: "deduplicated model has no registered type context",
					}
				}
			}
			result.Deduplicated[m.ID] = winner.ID
			result.Warnings = append(result.Warnings, NewModelDeduplicatedWarning(
				b.groupName(), b.operationID(), m.ID, winner.ID, m.Type.Signature()))
			log.Debug("deduplicated model", "id", m.ID, "canonical", winner.ID, "type", m.Type.Signature())
		}
	}
	return result, nil
}

// displayName is the name references to m carry until names are finalized.
func (mg *Merger) displayName(m *model.Model) string {
	if mg.Namer != nil && mg.Registry != nil {
		if rep, ok := mg.Registry.Resolve(m.ID); ok {
			if name := mg.Namer.TypeName(rep); name != "" {
				return name
			}
		}
	}
	if m.Name != "" {
		return m.Name
	}
	return m.Type.Name
}
