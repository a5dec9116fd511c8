// Package reader collects, deduplicates and names the data models discovered
// while scanning API operations.
//
// # Overview
//
// Operations are scanned per resource group. For every root type context of
// an operation (its response type and its body parameters), a [ModelSource]
// produces a branch: the root's model plus every model it transitively
// references. Each branch is merged into one [Index] shared by the whole
// read, so a model structurally equal to one already accepted, in this group
// or any earlier one, is dropped and every reference to it is rewritten to
// the canonical model. Once every branch is merged, display names are
// finalized so that all references to a model agree with its name.
//
// # Usage
//
//	r, err := reader.New(src, provider,
//		reader.WithNamer(typename.New(typename.Config{Generic: typename.GenericNamingOf})),
//		reader.WithLogger(reader.NewSlogAdapter(slog.Default())),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := r.Read(ctx, scan)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, g := range result.Groups {
//		fmt.Printf("%s: %d models\n", g.Group.Name, len(g.Models))
//	}
//
// # Options
//
// [New] takes functional options over [DefaultConfig]:
//
//   - [WithNamer] sets the type name resolver (default typename.Default()).
//   - [WithEquivalence] replaces the structural equivalence (default model.Equal).
//   - [WithConflictTemplate] sets the text/template used to rename clashing names.
//   - [WithParallelNaming] applies final names per group concurrently.
//   - [WithIgnorableTypes] marks types that are referenced by name but never expanded.
//   - [WithLogger] routes progress logging, for example through [NewSlogAdapter].
//   - [WithConfig] replaces the whole configuration at once.
//
// # Merging
//
// A branch is merged leaves first. Each pass takes the models that reference
// nothing still in the branch; those either match a canonical model and are
// dropped, or become canonical. Back references (model.Ref.Back) close
// cycles and are not waited on. A branch whose remaining models only
// reference each other through forward references cannot make progress and
// fails with a [modelerrors.CycleError].
//
// # Naming
//
// Names are computed per representative context: a deduplicated model's
// context is aliased to the canonical one, so both resolve to one name. When
// two unrelated canonical models claim the same name, the later one is
// renamed with the conflict template and a [WarnNameDisambiguated] warning is
// recorded.
package reader
