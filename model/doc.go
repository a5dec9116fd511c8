// Package model defines the documented data-type descriptions ("models") that
// are discovered per API operation, the mutable references between them, and
// the type contexts that record how each model was discovered.
//
// # Models and references
//
// A [Model] describes one resolved type. Its properties hold [Ref] cells by
// pointer so that a reference can be retargeted in place after the model has
// been built:
//
//	ref := &model.Ref{Type: "Item", ModelID: itemID}
//	order.AddProperty(&model.Property{Name: "item", Ref: ref})
//	ref.Retarget(itemID, canonicalID, "Item")
//
// # Type contexts
//
// A [TypeContext] pairs a [ResolvedType] with the scanning state needed to
// build, deduplicate and name its model: the discovering operation and group,
// the set of types already seen (to stop recursive expansion), and an alias
// link recorded when its model turned out to duplicate another context's model.
// Aliases form a union-find forest; [TypeContext.Representative] returns the
// root.
//
// # Equivalence
//
// [Equal] is the default structural equivalence: two models are equal when
// their resolved types match and their property sets are recursively equal.
// Ids, names, descriptions and examples do not take part.
package model
