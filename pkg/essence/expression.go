package essence

// Expression is the core AST node type (spec.md §3): every constraint,
// term, and sub-term in a model is an Expression. Expression embeds
// Uniplate so the generic traversal kernel in uniplate.go applies uniformly
// to every variant, and DeepCloner so Expression values can live inside a
// Moo[Expression] with correct clone-on-write semantics.
//
// Variant structs live in the expr_*.go files, grouped by concern
// (arithmetic, logic, collections, comprehensions, and the flat
// low-tier forms solver adaptors consume). Each variant additionally
// implements Meta (to carry its rewriter Metadata) and Stringer.
type Expression interface {
	Uniplate
	DeepCloner[Expression]

	// Meta returns the node's rewriter bookkeeping metadata.
	Meta() Metadata
	// WithMeta returns a copy of the node with its metadata replaced.
	WithMeta(Metadata) Expression

	// Equal reports structural equality with other, ignoring Metadata.
	// Each variant compares its own fields and then delegates to its
	// children's own Equal, so the comparison composes bottom-up exactly
	// like Children/Rebuild do.
	Equal(other Expression) bool

	String() string
}

// ExpressionsEqual reports whether two expression trees are structurally
// equal, ignoring Metadata (two freshly-built but equal trees must compare
// equal for Transform's fixed-point check to terminate).
func ExpressionsEqual(a, b Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// equalChildren is a helper every variant's Equal method uses to compare its
// children pairwise after confirming its own fields match.
func equalChildren(a, b Expression) bool {
	ca, cb := a.Children(), b.Children()
	if len(ca) != len(cb) {
		return false
	}
	for i := range ca {
		if !ExpressionsEqual(ca[i], cb[i]) {
			return false
		}
	}
	return true
}
