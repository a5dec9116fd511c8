// Package modelerrors provides structured error types for oasmodels.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), so callers can tell an internal consistency violation apart
// from a failing collaborator or a bad configuration.
//
// # Error Categories
//
//   - ConsistencyError: a finalized reference points at a model that does not
//     exist or has no recorded type context
//   - CycleError: a branch could not be peeled because its forward intra-branch
//     references form a cycle
//   - DuplicateIDError: two different models were produced under the same id
//   - SourceError: a Model Source or context provider returned an error
//   - ConfigError: invalid configuration or input options
//   - ParseError: a manifest or type expression could not be parsed
//
// Consistency, cycle and duplicate-id errors violate the reader's invariants;
// the read pass is aborted rather than producing a partially correct result.
//
// # Usage with errors.As
//
//	result, err := r.Read(ctx, scan)
//	if err != nil {
//	    var cycleErr *modelerrors.CycleError
//	    if errors.As(err, &cycleErr) {
//	        fmt.Println("stuck models:", cycleErr.IDs)
//	    }
//	}
package modelerrors
