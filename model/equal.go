package model

// EqualFunc decides whether two independently built models describe the same
// canonical type. Implementations must be an equivalence relation.
type EqualFunc func(a, b *Model) bool

// Equal is the default structural equivalence. Two models are equal when
// their resolved types match and they have the same property names with
// recursively equal references. Model references compare by target id, which
// is exact once dependencies have been merged first; a self-reference on both
// sides compares equal. Back references compare by display name.
func Equal(a, b *Model) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if !a.Type.Equal(b.Type) {
		return false
	}
	if len(a.properties) != len(b.properties) {
		return false
	}
	for _, pa := range a.properties {
		pb, ok := b.Property(pa.Name)
		if !ok {
			return false
		}
		if pa.Required != pb.Required {
			return false
		}
		if !refsEqual(pa.Ref, pb.Ref, a.ID, b.ID) {
			return false
		}
	}
	return true
}

func refsEqual(ra, rb *Ref, selfA, selfB string) bool {
	if ra == nil || rb == nil {
		return ra == rb
	}
	if ra.Container != rb.Container {
		return false
	}
	if ra.IsContainer() {
		return refsEqual(ra.Item, rb.Item, selfA, selfB)
	}
	if ra.Back || rb.Back {
		return ra.Back == rb.Back && ra.Type == rb.Type
	}
	if ra.ModelID != "" || rb.ModelID != "" {
		if ra.ModelID == selfA && rb.ModelID == selfB {
			return true
		}
		return ra.ModelID == rb.ModelID
	}
	return ra.Type == rb.Type
}
