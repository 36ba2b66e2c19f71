// Package registry holds the two bounded tables the dispatch engine filters
// against: the ordered subscriber table and the module threshold table.
//
// Neither table synchronizes itself; the engine serializes access under its
// dispatch lock. Both tables are fixed capacity: registration failures are
// explicit result values, never silent growth.
package registry
