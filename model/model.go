package model

// Property is a named member of a Model.
type Property struct {
	// Name is the property name as documented.
	Name string
	// Ref points at the property's type. It may be rewritten in place.
	Ref *Ref
	// Description is free-form documentation.
	Description string
	// Required marks the property as mandatory.
	Required bool
	// Example is an optional example value.
	Example any
	// Position is the declaration order within the owning model.
	Position int
}

// Model is a documented data-type description.
type Model struct {
	// ID identifies the model. It is unique within a branch until merged,
	// and unique across all canonical models afterwards.
	ID string
	// Type is the underlying resolved type used for structural matching.
	Type ResolvedType
	// QualifiedType is the fully qualified type name.
	QualifiedType string
	// Name is the display name; it is finalized after all merges.
	Name string
	// Description is free-form documentation.
	Description string
	// BaseModel is the display name of the parent model, if any.
	BaseModel string
	// Discriminator is the property that selects a subtype, if any.
	Discriminator string
	// SubTypes references the known subtypes.
	SubTypes []*Ref
	// Example is an optional example value.
	Example any

	properties []*Property
	byName     map[string]int
}

// AddProperty appends p, or replaces an existing property with the same name
// while keeping its original position.
func (m *Model) AddProperty(p *Property) {
	if m.byName == nil {
		m.byName = make(map[string]int)
	}
	if idx, ok := m.byName[p.Name]; ok {
		p.Position = idx
		m.properties[idx] = p
		return
	}
	p.Position = len(m.properties)
	m.byName[p.Name] = p.Position
	m.properties = append(m.properties, p)
}

// Properties returns the properties in insertion order.
// The returned slice must not be modified.
func (m *Model) Properties() []*Property {
	return m.properties
}

// Property returns the property with the given name.
func (m *Model) Property(name string) (*Property, bool) {
	idx, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return m.properties[idx], true
}

// PropertyNames returns property names in insertion order.
func (m *Model) PropertyNames() []string {
	names := make([]string, len(m.properties))
	for i, p := range m.properties {
		names[i] = p.Name
	}
	return names
}

// Refs returns every reference cell held by m: property refs followed by
// subtype refs.
func (m *Model) Refs() []*Ref {
	refs := make([]*Ref, 0, len(m.properties)+len(m.SubTypes))
	for _, p := range m.properties {
		if p.Ref != nil {
			refs = append(refs, p.Ref)
		}
	}
	for _, r := range m.SubTypes {
		if r != nil {
			refs = append(refs, r)
		}
	}
	return refs
}

// ReferencedIDs returns the distinct model ids m refers to, in first-seen
// order, excluding m's own id.
func (m *Model) ReferencedIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range m.Refs() {
		for _, id := range r.ModelIDs() {
			if id == m.ID || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// DependencyIDs is ReferencedIDs without back references: the models that
// must be settled before m.
func (m *Model) DependencyIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range m.Refs() {
		for _, id := range r.ForwardIDs() {
			if id == m.ID || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// References reports whether any ref in m points at id.
func (m *Model) References(id string) bool {
	for _, r := range m.Refs() {
		if r.References(id) {
			return true
		}
	}
	return false
}

// Retarget rewrites every ref in m from one model id to another and
// returns the number of ref cells changed.
func (m *Model) Retarget(from, to, name string) int {
	n := 0
	for _, r := range m.Refs() {
		if r.Retarget(from, to, name) {
			n++
		}
	}
	return n
}
