package source

import (
	"github.com/erraggy/oasmodels/model"
)

// Provider yields the root type contexts of an operation: one for its
// response type and one per body parameter. Primitive roots are skipped
// since they never produce models.
type Provider struct {
	source *Source
}

// NewProvider returns a Provider. When src is non-nil, root types are
// canonicalized through it.
func NewProvider(src *Source) *Provider {
	return &Provider{source: src}
}

// ModelContexts implements reader.ContextProvider.
func (p *Provider) ModelContexts(op *model.Operation) ([]*model.TypeContext, error) {
	var roots []*model.TypeContext
	if op.ReturnType != nil && !op.ReturnType.IsZero() {
		if t := p.canonical(*op.ReturnType); !IsPrimitive(t) {
			roots = append(roots, model.NewRootContext(t, op, true))
		}
	}
	for _, param := range op.Parameters {
		if !param.IsBody() || param.Type.IsZero() {
			continue
		}
		if t := p.canonical(param.Type); !IsPrimitive(t) {
			roots = append(roots, model.NewRootContext(t, op, false))
		}
	}
	return roots, nil
}

func (p *Provider) canonical(t model.ResolvedType) model.ResolvedType {
	if p.source == nil {
		return t
	}
	return p.source.Canonical(t)
}
