package reader

import (
	"errors"

	"github.com/erraggy/oasmodels/model"
)

// fakeProp declares one property of a fake type. A typ naming another fake
// declaration becomes a model reference.
type fakeProp struct {
	name string
	typ  string
	list bool
}

// fakeSource is a minimal ModelSource over named declarations. Every call
// builds fresh models, as a real source would for separate scans.
type fakeSource struct {
	decls map[string][]fakeProp
	err   error
}

func newFakeSource(decls map[string][]fakeProp) *fakeSource {
	return &fakeSource{decls: decls}
}

func (s *fakeSource) isModel(t model.ResolvedType) bool {
	_, ok := s.decls[t.Name]
	return ok
}

func (s *fakeSource) build(tc *model.TypeContext) *model.Model {
	if !s.isModel(tc.Type) || tc.IsIgnored(tc.Type) {
		return nil
	}
	m := &model.Model{
		ID:            tc.ID(),
		Type:          tc.Type,
		QualifiedType: tc.Type.QualifiedName(),
		Name:          tc.Type.Name,
	}
	for _, p := range s.decls[tc.Type.Name] {
		t := model.NewType(p.typ)
		var ref *model.Ref
		if s.isModel(t) && !tc.IsIgnored(t) {
			ref = model.ModelRef(tc.Child(t).ID(), p.typ)
		} else {
			ref = model.PlainRef(p.typ)
		}
		if p.list {
			ref = model.ContainerRef(model.ContainerList, ref)
		}
		m.AddProperty(&model.Property{Name: p.name, Ref: ref})
	}
	return m
}

func (s *fakeSource) ModelFor(tc *model.TypeContext) (*model.Model, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.build(tc), nil
}

func (s *fakeSource) Dependencies(tc *model.TypeContext) (map[string]*model.Model, error) {
	if s.err != nil {
		return nil, s.err
	}
	deps := make(map[string]*model.Model)
	tc.Seen(tc.Type)
	var visit func(cur *model.TypeContext)
	visit = func(cur *model.TypeContext) {
		for _, p := range s.decls[cur.Type.Name] {
			t := model.NewType(p.typ)
			if !s.isModel(t) || tc.HasSeen(t) {
				continue
			}
			tc.Seen(t)
			child := cur.Child(t)
			m := s.build(child)
			deps[m.ID] = m
			visit(child)
		}
	}
	visit(tc)
	return deps, nil
}

// fakeProvider yields the return type context and one context per body
// parameter.
type fakeProvider struct {
	err error
}

func (p fakeProvider) ModelContexts(op *model.Operation) ([]*model.TypeContext, error) {
	if p.err != nil {
		return nil, p.err
	}
	var roots []*model.TypeContext
	if op.ReturnType != nil {
		roots = append(roots, model.NewRootContext(*op.ReturnType, op, true))
	}
	for _, param := range op.Parameters {
		if param.IsBody() {
			roots = append(roots, model.NewRootContext(param.Type, op, false))
		}
	}
	return roots, nil
}

var errBoom = errors.New("boom")

func returning(id, group, typ string) *model.Operation {
	t := model.NewType(typ)
	return &model.Operation{
		ID:         id,
		Group:      model.ResourceGroup{Name: group},
		ReturnType: &t,
	}
}

// orderDecls is the Order/Item/Receipt catalog used across tests.
func orderDecls() map[string][]fakeProp {
	return map[string][]fakeProp{
		"Order": {
			{name: "id", typ: "int"},
			{name: "items", typ: "Item", list: true},
		},
		"Item": {
			{name: "sku", typ: "string"},
		},
		"Receipt": {
			{name: "order", typ: "Order"},
		},
	}
}

func modelNames(models []*model.Model) []string {
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.Name
	}
	return names
}
