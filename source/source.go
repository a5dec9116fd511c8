package source

import (
	"strings"

	"github.com/erraggy/oasmodels/model"
)

// Source builds models from a Catalog. It is deterministic: the same
// context always yields an equal model, with fresh reference cells on every
// call.
type Source struct {
	catalog *Catalog
}

// New returns a Source over catalog.
func New(catalog *Catalog) *Source {
	if catalog == nil {
		catalog = NewCatalog()
	}
	return &Source{catalog: catalog}
}

// Catalog returns the underlying catalog.
func (s *Source) Catalog() *Catalog {
	return s.catalog
}

// Canonical qualifies every declared type in t with its declaring package,
// so that "Item" and "com.acme.Item" denote the same type.
func (s *Source) Canonical(t model.ResolvedType) model.ResolvedType {
	return s.canonical(t, "")
}

func (s *Source) canonical(t model.ResolvedType, pkg string) model.ResolvedType {
	var args []model.ResolvedType
	if t.IsGeneric() {
		args = make([]model.ResolvedType, len(t.Args))
		for i, arg := range t.Args {
			args[i] = s.canonical(arg, pkg)
		}
	}
	if containerKind(t) != "" || IsPrimitive(t) {
		return model.ResolvedType{Package: t.Package, Name: t.Name, Args: args}
	}
	if t.Package == "" && pkg != "" {
		if cd, ok := s.catalog.decls[pkg+"."+t.Name]; ok {
			return model.ResolvedType{Package: cd.Package, Name: cd.Name, Args: args}
		}
	}
	if cd, ok := s.catalog.lookup(t); ok {
		return model.ResolvedType{Package: cd.Package, Name: cd.Name, Args: args}
	}
	return model.ResolvedType{Package: t.Package, Name: t.Name, Args: args}
}

// isModelType reports whether t produces a model in tc's scan.
func (s *Source) isModelType(tc *model.TypeContext, t model.ResolvedType) bool {
	if containerKind(t) != "" || IsPrimitive(t) || tc.IsIgnored(t) {
		return false
	}
	_, ok := s.catalog.lookup(t)
	return ok
}

// ModelFor returns the model of tc's type, or nil for containers,
// primitives, ignored and undeclared types.
func (s *Source) ModelFor(tc *model.TypeContext) (*model.Model, error) {
	if !s.isModelType(tc, tc.Type) {
		return nil, nil
	}
	return s.build(tc), nil
}

// Dependencies returns every model reachable from tc's type through
// properties, subtypes and container items. Each type reached is marked
// seen on tc's scan, so a type is expanded at most once per root and
// ignored types are never expanded. A reference back to a type on the
// expansion path is a back reference, which keeps the branch acyclic.
func (s *Source) Dependencies(tc *model.TypeContext) (map[string]*model.Model, error) {
	deps := make(map[string]*model.Model)
	tc.Seen(tc.Type)

	var expand func(cur *model.TypeContext)
	expand = func(cur *model.TypeContext) {
		for _, t := range s.referencedTypes(cur) {
			for _, mt := range s.modelTypes(tc, t) {
				if tc.HasSeen(mt) {
					continue
				}
				tc.Seen(mt)
				child := cur.Child(mt)
				m := s.build(child)
				deps[m.ID] = m
				expand(child)
			}
		}
	}
	expand(tc)
	return deps, nil
}

// referencedTypes lists the types cur's own model points at: property and
// subtype types for a declared type, the type itself for a container.
func (s *Source) referencedTypes(cur *model.TypeContext) []model.ResolvedType {
	if containerKind(cur.Type) != "" {
		return []model.ResolvedType{cur.Type}
	}
	if !s.isModelType(cur, cur.Type) {
		return nil
	}
	cd, bindings := s.instantiate(cur.Type)
	types := make([]model.ResolvedType, 0, len(cd.properties)+len(cd.subTypes))
	for _, p := range cd.properties {
		types = append(types, s.canonical(substitute(p.typ, bindings), cd.Package))
	}
	for _, st := range cd.subTypes {
		types = append(types, s.canonical(substitute(st, bindings), cd.Package))
	}
	return types
}

// modelTypes unwraps containers and returns the model types inside t.
func (s *Source) modelTypes(tc *model.TypeContext, t model.ResolvedType) []model.ResolvedType {
	if kind := containerKind(t); kind != "" {
		return s.modelTypes(tc, containerItem(kind, t))
	}
	if !s.isModelType(tc, t) {
		return nil
	}
	return []model.ResolvedType{t}
}

func (s *Source) instantiate(t model.ResolvedType) (*compiledDecl, map[string]model.ResolvedType) {
	cd, _ := s.catalog.lookup(t)
	if len(cd.Params) == 0 {
		return cd, nil
	}
	bindings := make(map[string]model.ResolvedType, len(cd.Params))
	for i, param := range cd.Params {
		if i < len(t.Args) {
			bindings[param] = t.Args[i]
		}
	}
	return cd, bindings
}

func (s *Source) build(tc *model.TypeContext) *model.Model {
	cd, bindings := s.instantiate(tc.Type)
	m := &model.Model{
		ID:            tc.ID(),
		Type:          tc.Type,
		QualifiedType: tc.Type.Signature(),
		Name:          DisplayName(tc.Type),
		Description:   cd.Description,
		Discriminator: cd.Discriminator,
		Example:       cd.Example,
	}
	if !cd.base.IsZero() {
		m.BaseModel = DisplayName(s.canonical(substitute(cd.base, bindings), cd.Package))
	}
	for _, p := range cd.properties {
		t := s.canonical(substitute(p.typ, bindings), cd.Package)
		m.AddProperty(&model.Property{
			Name:        p.decl.Name,
			Ref:         s.refFor(tc, t),
			Description: p.decl.Description,
			Required:    p.decl.Required,
			Example:     p.decl.Example,
		})
	}
	for _, st := range cd.subTypes {
		m.SubTypes = append(m.SubTypes, s.refFor(tc, s.canonical(substitute(st, bindings), cd.Package)))
	}
	return m
}

func (s *Source) refFor(tc *model.TypeContext, t model.ResolvedType) *model.Ref {
	if kind := containerKind(t); kind != "" {
		return model.ContainerRef(kind, s.refFor(tc, containerItem(kind, t)))
	}
	if s.isModelType(tc, t) {
		id := tc.Child(t).ID()
		if onPath(tc, t) {
			return model.BackRef(id, DisplayName(t))
		}
		return model.ModelRef(id, DisplayName(t))
	}
	return model.PlainRef(DisplayName(t))
}

// onPath reports whether t was expanded by one of tc's ancestors. Expansion
// is depth first, so every cycle in a branch passes through such an edge.
func onPath(tc *model.TypeContext, t model.ResolvedType) bool {
	sig := t.Signature()
	for p := tc.Parent(); p != nil; p = p.Parent() {
		if p.Type.Signature() == sig {
			return true
		}
	}
	return false
}

func containerItem(kind string, t model.ResolvedType) model.ResolvedType {
	if kind == model.ContainerMap {
		return t.Args[len(t.Args)-1]
	}
	return t.Args[0]
}

// DisplayName renders t with simple names and guillemets, e.g. "Page«Item»".
func DisplayName(t model.ResolvedType) string {
	if !t.IsGeneric() {
		return t.Name
	}
	var b strings.Builder
	b.WriteString(t.Name)
	b.WriteString("«")
	for i, arg := range t.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(DisplayName(arg))
	}
	b.WriteString("»")
	return b.String()
}
