// Package filter narrows collections of NDB records with a compact predicate
// syntax.
//
// A Spec is built from two parallel comma-separated lists, the value types
// (paths) and the values:
//
//	spec, err := filter.Parse("type,status", "postgres_database,!READY")
//	matched, err := filter.Apply(records, spec)
//
// Each value selects an operator by its prefix:
//
//	!x      not equal
//	>=x     greater or equal
//	<=x     less or equal
//	>x      greater
//	<x      less
//	*x*     case-insensitive substring
//	x       equal
//
// Comparisons are numeric when both sides parse as numbers and lexical
// otherwise. A path is either a top-level key ("status") or a key into an
// array of objects ("databases.status"), which matches when at least one
// element matches. "databases.length" or "databases." compares the number of
// elements, as does a bare path that resolves to an array.
//
// All predicates must hold for a record to be kept.
//
// A record without the field never matches, except for the not-equal operator:
// "status=!READY" keeps records that have no status at all.
package filter
