// Package naming provides shared case conversion utilities for oasmodels packages.
//
// The typename package uses these helpers to apply casing strategies to model
// names and exposes them as template functions for name conflict templates.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
