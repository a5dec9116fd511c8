package model

import "strings"

// Container kinds for collection references.
const (
	ContainerList = "List"
	ContainerSet  = "Set"
	ContainerMap  = "Map"
)

// Ref is a mutable reference cell from a property to either a plain type
// (primitive or undocumented), a collection of some item type, or another
// Model by id. A model reference is weak: it points at a model, it never owns
// it.
//
// Properties hold Refs by pointer; rewriting a Ref during merge or
// finalization is visible to every holder.
type Ref struct {
	// Type is the display name of the referenced type.
	Type string
	// ModelID is the id of the referenced model, empty for plain types
	// and containers.
	ModelID string
	// Container is ContainerList, ContainerSet or ContainerMap for collection
	// references, empty otherwise.
	Container string
	// Item is the element (or map value) reference of a container.
	Item *Ref
	// Back marks a model reference that closes a cycle: it points at a model
	// on the path that reached the holder. Back references do not order
	// merging and compare by display name.
	Back bool
}

// PlainRef returns a reference to a primitive or undocumented type.
func PlainRef(typeName string) *Ref {
	return &Ref{Type: typeName}
}

// ModelRef returns a reference to the model with the given id.
func ModelRef(id, name string) *Ref {
	return &Ref{Type: name, ModelID: id}
}

// BackRef returns a back reference to the model with the given id.
func BackRef(id, name string) *Ref {
	return &Ref{Type: name, ModelID: id, Back: true}
}

// ContainerRef returns a collection reference of the given kind.
func ContainerRef(container string, item *Ref) *Ref {
	return &Ref{Type: container, Container: container, Item: item}
}

// IsModel reports whether r points at a model.
func (r *Ref) IsModel() bool {
	return r != nil && r.ModelID != ""
}

// IsContainer reports whether r is a collection reference.
func (r *Ref) IsContainer() bool {
	return r != nil && r.Container != ""
}

// Walk calls fn for r and every nested item reference, outermost first.
func (r *Ref) Walk(fn func(*Ref)) {
	for cur := r; cur != nil; cur = cur.Item {
		fn(cur)
	}
}

// ModelIDs returns the ids of all models r refers to, directly or through
// container items.
func (r *Ref) ModelIDs() []string {
	var ids []string
	r.Walk(func(ref *Ref) {
		if ref.ModelID != "" {
			ids = append(ids, ref.ModelID)
		}
	})
	return ids
}

// References reports whether r refers to the model id, directly or through
// container items.
func (r *Ref) References(id string) bool {
	found := false
	r.Walk(func(ref *Ref) {
		if ref.ModelID == id {
			found = true
		}
	})
	return found
}

// Retarget rewrites every model reference to from so that it points at to
// with display name name. It reports whether anything changed. A back
// reference keeps its display name until names are finalized.
func (r *Ref) Retarget(from, to, name string) bool {
	changed := false
	r.Walk(func(ref *Ref) {
		if ref.ModelID == from {
			ref.ModelID = to
			if !ref.Back {
				ref.Type = name
			}
			changed = true
		}
	})
	return changed
}

// ForwardIDs is ModelIDs without back references.
func (r *Ref) ForwardIDs() []string {
	var ids []string
	r.Walk(func(ref *Ref) {
		if ref.ModelID != "" && !ref.Back {
			ids = append(ids, ref.ModelID)
		}
	})
	return ids
}

// String renders r as a display type, e.g. "List«Item»" or "Map«string,Item»".
func (r *Ref) String() string {
	if r == nil {
		return ""
	}
	if !r.IsContainer() {
		return r.Type
	}
	var b strings.Builder
	b.WriteString(r.Container)
	b.WriteString("«")
	if r.Container == ContainerMap {
		b.WriteString("string,")
	}
	b.WriteString(r.Item.String())
	b.WriteString("»")
	return b.String()
}

// Clone returns a deep copy of r.
func (r *Ref) Clone() *Ref {
	if r == nil {
		return nil
	}
	c := *r
	c.Item = r.Item.Clone()
	return &c
}
