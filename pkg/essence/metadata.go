// Package essence implements the core of a constraint-modelling rewriting
// engine: a generic tree-traversal kernel, a typed expression AST with a
// domain algebra, a symbol table, a priority-ordered rule registry, a naive
// fixed-point rewriter, a variable representation layer, and a comprehension
// expander. Parsers, solver adaptors, and CLI/config front ends are external
// collaborators and are only specified here by the interfaces they consume.
package essence

import "sync/atomic"

var metadataCounter uint64

// Metadata is attached to every Expression node. It carries a process-wide
// unique identity (used to detect aliasing between shared subtrees) and a
// "clean" bit the rewriter uses to skip subtrees it already knows admit no
// rule, without having to re-walk them on every fixed-point iteration.
type Metadata struct {
	id    uint64
	clean bool
}

// NewMetadata returns fresh, dirty metadata with a new identity.
func NewMetadata() Metadata {
	return Metadata{id: atomic.AddUint64(&metadataCounter, 1)}
}

// ID returns this metadata's unique identity.
func (m Metadata) ID() uint64 { return m.id }

// Clean reports whether the rewriter has already determined that no rule
// applies anywhere under the node this metadata belongs to.
func (m Metadata) Clean() bool { return m.clean }

// MarkClean returns a copy of m with the clean bit set.
func (m Metadata) MarkClean() Metadata {
	m.clean = true
	return m
}

// MarkDirty returns a copy of m with the clean bit cleared and a fresh
// identity, as used whenever a node's children change shape.
func (m Metadata) MarkDirty() Metadata {
	return NewMetadata()
}
