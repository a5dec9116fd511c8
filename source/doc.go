// Package source provides the default model source and context provider for
// the reader.
//
// Types are declared in a [Catalog], either directly, through a YAML
// [Manifest], or by loading Go packages with [LoadGoPackages]. Property types
// are type expressions parsed by [ParseTypeExpr]:
//
//	Order                  a declared type
//	shop.Order             a declared type in package shop
//	List<Item>, Item[]     a list of Item
//	Set<Item>              a set of Item
//	Map<string,Item>       a map with Item values
//	Page<Item>             an instance of the generic declaration Page<T>
//
// A [Source] turns a type context into a model. Generic declarations are
// instantiated by substituting their parameters, primitives and ignored
// types become plain references, and every other declared type becomes a
// model reference whose id is derived from the referencing context.
package source
