// Package oasmodels folds the data models discovered per API operation into
// one canonical model per distinct underlying type, across the whole API
// surface.
//
// # Overview
//
// An API is scanned operation by operation, grouped into resource groups.
// Every operation contributes the models reachable from its response type and
// its body parameters. The same type is usually reached from many operations,
// in many groups, so the raw model sets overlap heavily. oasmodels merges
// them: a model structurally equal to one already accepted is dropped, every
// reference to it is rewritten to the canonical model, and every canonical
// model gets a final display name that all references agree on.
//
// The library is split into these packages:
//
//   - model: models, properties, references, resolved types and type contexts
//   - reader: the merge engine, context registry, name finalizer and read loop
//   - source: a declarative model source backed by a YAML manifest or Go packages
//   - typename: display names for resolved types, with generic naming strategies
//   - modelerrors: structured errors usable with errors.Is and errors.As
//
// # Quick Start
//
// Read the models of a manifest:
//
//	manifest, err := source.LoadManifest("api.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	catalog, err := manifest.Catalog()
//	if err != nil {
//		log.Fatal(err)
//	}
//	src := source.New(catalog)
//	scan, err := manifest.Scan(src)
//	if err != nil {
//		log.Fatal(err)
//	}
//	r, err := reader.New(src, source.NewProvider(src),
//		reader.WithNamer(typename.New(typename.Config{Generic: typename.GenericNamingOf})),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := r.Read(context.Background(), scan)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for group, models := range result.ByGroup() {
//		fmt.Printf("%s: %d models\n", group, len(models))
//	}
//
// Any type that implements [reader.ModelSource] and [reader.ContextProvider]
// can replace the source package, and any [typename.Namer] can replace the
// default naming.
//
// # Error Handling
//
// Invariant violations abort a read with a typed error: a
// [modelerrors.CycleError] when a branch cannot be merged leaves first, a
// [modelerrors.DuplicateIDError] when two different models claim one id, and a
// [modelerrors.ConsistencyError] when a reference would dangle. Failures of a
// model source or context provider are wrapped in [modelerrors.SourceError].
// An operation whose root type yields no model is not an error; it is recorded
// as a warning on the result.
//
// # Command-Line Interface
//
// The oasmodels command reads a manifest and prints its canonical models:
//
//	oasmodels read api.yaml
//	oasmodels read --format json -o models.json api.yaml
//	oasmodels mcp
//
// The mcp command serves the read_models and find_model tools over the Model
// Context Protocol.
package oasmodels
