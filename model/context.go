package model

import (
	"maps"
	"slices"
	"strconv"

	"github.com/erraggy/oasmodels/internal/fingerprint"
)

// seenSet is shared by a root context and every context derived from it.
type seenSet struct {
	types   map[string]bool
	ignored map[string]bool
}

func newSeenSet() *seenSet {
	return &seenSet{
		types:   make(map[string]bool),
		ignored: make(map[string]bool),
	}
}

// TypeContext pairs a resolved type with the scanning state that discovered
// it. Contexts derived with Child or FromParent share their root's seen set.
type TypeContext struct {
	// Type is the resolved type this context describes.
	Type ResolvedType
	// Operation is the operation whose scan discovered the type (may be nil).
	Operation *Operation
	// Group is the resource group of the discovering operation.
	Group ResourceGroup
	// ReturnType is true when the type was reached from a response type.
	ReturnType bool

	parent *TypeContext
	seen   *seenSet
	alias  *TypeContext
}

// NewRootContext returns a context for a type reached directly from an
// operation's request or response.
func NewRootContext(t ResolvedType, op *Operation, returnType bool) *TypeContext {
	tc := &TypeContext{
		Type:       t,
		Operation:  op,
		ReturnType: returnType,
		seen:       newSeenSet(),
	}
	if op != nil {
		tc.Group = op.Group
	}
	return tc
}

// FromParent derives a context for t that shares parent's scanning state.
func FromParent(parent *TypeContext, t ResolvedType) *TypeContext {
	return &TypeContext{
		Type:       t,
		Operation:  parent.Operation,
		Group:      parent.Group,
		ReturnType: parent.ReturnType,
		parent:     parent,
		seen:       parent.seen,
	}
}

// Child is shorthand for FromParent(tc, t).
func (tc *TypeContext) Child(t ResolvedType) *TypeContext {
	return FromParent(tc, t)
}

// Parent returns the context tc was derived from, nil for a root.
func (tc *TypeContext) Parent() *TypeContext {
	return tc.parent
}

// Root returns the root context of tc's derivation chain.
func (tc *TypeContext) Root() *TypeContext {
	cur := tc
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// ID returns the model id for this context. It depends on the group, the
// return-type flag, the type signature and the ignored types of the scan,
// so the same type reached the same way within a group always yields the
// same id, while a scan that ignores different types gets its own.
func (tc *TypeContext) ID() string {
	return idFor(tc.Group, tc.ReturnType, tc.Type, slices.Sorted(maps.Keys(tc.seen.ignored)))
}

// IDFor computes the model id of a type within a group for a scan that
// ignores the given types.
func IDFor(group ResourceGroup, returnType bool, t ResolvedType, ignored ...ResolvedType) string {
	sigs := make([]string, 0, len(ignored))
	for _, it := range ignored {
		sigs = append(sigs, it.Signature())
	}
	slices.Sort(sigs)
	return idFor(group, returnType, t, slices.Compact(sigs))
}

func idFor(group ResourceGroup, returnType bool, t ResolvedType, ignored []string) string {
	parts := append([]string{group.Name, strconv.FormatBool(returnType), t.Signature()}, ignored...)
	return fingerprint.String(parts...)
}

// Seen marks t as seen so it is not expanded again.
func (tc *TypeContext) Seen(t ResolvedType) {
	tc.seen.types[t.Signature()] = true
}

// HasSeen reports whether t was marked seen in this context's scan.
func (tc *TypeContext) HasSeen(t ResolvedType) bool {
	return tc.seen.types[t.Signature()]
}

// Ignore marks t as seen and as ignorable: it is referenced by name only and
// never documented as a model.
func (tc *TypeContext) Ignore(t ResolvedType) {
	sig := t.Signature()
	tc.seen.types[sig] = true
	tc.seen.ignored[sig] = true
}

// IsIgnored reports whether t was marked ignorable.
func (tc *TypeContext) IsIgnored(t ResolvedType) bool {
	return tc.seen.ignored[t.Signature()]
}

// AssumeEqualTo records that tc's model duplicates other's model. After the
// call both contexts share the same representative.
func (tc *TypeContext) AssumeEqualTo(other *TypeContext) {
	if other == nil {
		return
	}
	from := tc.Representative()
	to := other.Representative()
	if from == to {
		return
	}
	from.alias = to
}

// Representative follows the alias chain and returns its last context.
// It does not modify the chain, so concurrent readers are safe once merging
// has finished.
func (tc *TypeContext) Representative() *TypeContext {
	cur := tc
	for cur.alias != nil {
		cur = cur.alias
	}
	return cur
}

// IsAliased reports whether tc was merged into another context.
func (tc *TypeContext) IsAliased() bool {
	return tc.alias != nil
}
