// Package phasegraph provides a canonical, cycle-tolerant topological sort
// over user-declared "runs before" edges between identified nodes.
//
// The sort is deterministic: given the same set of node identities and edges,
// it produces the same output order regardless of the order nodes were
// presented in, breaking ties with a caller-supplied comparator. Cycles never
// fail the sort — strongly connected nodes are grouped into a contiguous
// block, sorted internally by the comparator, and a warning is logged.
package phasegraph
