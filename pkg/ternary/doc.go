// Package ternary provides the small value types the event dispatch
// framework's tests and TriStateFactory lean on: a three-valued logical type
// and a left/right disjoint union. Neither is part of the dispatch engine
// itself — they exist only because scenario-style tests need a concrete
// tri-state type to exercise short-circuit semantics against.
package ternary
