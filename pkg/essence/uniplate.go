package essence

// This file implements the "Uniplate" traversal kernel described in
// spec.md §4.1: a generic bottom-up/top-down tree-traversal abstraction over
// the recursive Expression sum type.
//
// Rust's conjure-oxide generates its Uniplate implementations with a derive
// macro (see original_source/crates/uniplate_derive and design note §9,
// which explicitly prefers generated per-type implementations over a hand
// written visitor). Go has no macros, so the per-variant Children/Rebuild
// pairs are hand-written beside each type in expr_*.go; scripts/gen_uniplate
// generates only the variant-name lookups in zz_uniplate.go from them. This
// file holds the hand-written, type-independent machinery built on top of
// those per-variant methods — the equivalent of uniplate's lib.rs, which is hand-written
// even in the Rust original.

// Uniplate is implemented by every Expression variant. Children returns the
// node's immediate same-type sub-expressions in traversal order; Rebuild
// reconstructs a node of the same variant from an equal-length, equally
// ordered replacement list.
//
// Contract: Rebuild(Children(e)) must be structurally equal to e, and
// Rebuild(cs) for any other slice of the same length must produce a
// well-formed node of e's variant with those sub-positions substituted.
type Uniplate interface {
	Children() []Expression
	Rebuild(children []Expression) Expression
}

// Universe returns e and all of its descendants, in preorder (document)
// order: e itself, then each child's Universe in turn.
func Universe(e Expression) []Expression {
	out := make([]Expression, 0, 8)
	var walk func(Expression)
	walk = func(x Expression) {
		out = append(out, x)
		for _, c := range x.Children() {
			walk(c)
		}
	}
	walk(e)
	return out
}

// Holes returns, for each immediate child of e, the child itself and a
// function that rebuilds e with just that child replaced.
func Holes(e Expression) []struct {
	Child Expression
	Fill  func(Expression) Expression
} {
	children := e.Children()
	out := make([]struct {
		Child Expression
		Fill  func(Expression) Expression
	}, len(children))
	for i := range children {
		i := i
		out[i].Child = children[i]
		out[i].Fill = func(replacement Expression) Expression {
			cs := make([]Expression, len(children))
			copy(cs, children)
			cs[i] = replacement
			return e.Rebuild(cs)
		}
	}
	return out
}

// Contexts returns, for every position in Universe(e) (preorder, including
// e itself), the sub-expression found there and a function that rebuilds the
// whole of e with just that position replaced. This is the primitive the
// naive rewriter (§4.3) uses to apply a rule at an arbitrary tree position
// without manually threading a zipper through the whole traversal.
func Contexts(e Expression) []struct {
	Expr Expression
	Fill func(Expression) Expression
} {
	var out []struct {
		Expr Expression
		Fill func(Expression) Expression
	}

	var walk func(Expression, func(Expression) Expression)
	walk = func(x Expression, setSelf func(Expression) Expression) {
		out = append(out, struct {
			Expr Expression
			Fill func(Expression) Expression
		}{Expr: x, Fill: setSelf})

		children := x.Children()
		for i := range children {
			i := i
			childSetSelf := func(replacement Expression) Expression {
				cs := make([]Expression, len(children))
				copy(cs, children)
				cs[i] = replacement
				return setSelf(x.Rebuild(cs))
			}
			walk(children[i], childSetSelf)
		}
	}
	walk(e, func(replacement Expression) Expression { return replacement })
	return out
}

// Rewrite performs a single bottom-up pass, calling f on every node from the
// leaves up to the root and substituting its result. Unlike Transform, it
// does not retry after a successful rewrite.
func Rewrite(e Expression, f func(Expression) Expression) Expression {
	children := e.Children()
	newChildren := make([]Expression, len(children))
	for i, c := range children {
		newChildren[i] = Rewrite(c, f)
	}
	return f(e.Rebuild(newChildren))
}

// Transform repeatedly applies f bottom-up until a full pass makes no
// further change anywhere in the tree — i.e. f(x) == x at every position.
// This realises spec.md invariant 2 ("Transform fixed-point").
func Transform(e Expression, f func(Expression) Expression) Expression {
	for {
		next := Rewrite(e, f)
		if ExpressionsEqual(next, e) {
			return next
		}
		e = next
	}
}

// Cata folds an Expression bottom-up into a value of type A: f receives the
// node and the already-folded results of its children, in order.
func Cata[A any](e Expression, f func(Expression, []A) A) A {
	children := e.Children()
	results := make([]A, len(children))
	for i, c := range children {
		results[i] = Cata(c, f)
	}
	return f(e, results)
}

// Tree is the generic target-occurrence shape returned by a biplate walk:
// either no occurrences of U in T (Zero), T is itself (transmutably) a U
// (One), or T contains a sequence of maximal outermost U occurrences
// (Many). This mirrors conjure-oxide's uniplate::Tree<U>.
type Tree[U any] struct {
	kind     treeKind
	one      U
	children []Tree[U]
}

type treeKind int

const (
	treeZero treeKind = iota
	treeOne
	treeMany
)

// TreeZero constructs an empty Tree.
func TreeZero[U any]() Tree[U] { return Tree[U]{kind: treeZero} }

// TreeOne constructs a Tree containing exactly one occurrence.
func TreeOne[U any](u U) Tree[U] { return Tree[U]{kind: treeOne, one: u} }

// TreeMany constructs a Tree over a sequence of child trees.
func TreeMany[U any](children []Tree[U]) Tree[U] {
	return Tree[U]{kind: treeMany, children: children}
}

// Flatten returns every U value captured by the Tree, in document order.
func (t Tree[U]) Flatten() []U {
	switch t.kind {
	case treeZero:
		return nil
	case treeOne:
		return []U{t.one}
	default:
		var out []U
		for _, c := range t.children {
			out = append(out, c.Flatten()...)
		}
		return out
	}
}

// Rebuild reconstructs a Tree of the same shape as t from a flat
// replacement slice, consuming exactly len(t.Flatten()) values.
func (t Tree[U]) Rebuild(values []U) (Tree[U], []U) {
	switch t.kind {
	case treeZero:
		return t, values
	case treeOne:
		return TreeOne(values[0]), values[1:]
	default:
		newChildren := make([]Tree[U], len(t.children))
		rest := values
		for i, c := range t.children {
			var built Tree[U]
			built, rest = c.Rebuild(rest)
			newChildren[i] = built
		}
		return TreeMany(newChildren), rest
	}
}
