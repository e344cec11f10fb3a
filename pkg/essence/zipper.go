package essence

// Zipper is a cursor into an Expression tree supporting O(1) navigation to
// a parent or child (there is no direct sibling move) and O(1) in-place replacement at the cursor,
// the advanced traversal structure spec.md §4.1 calls out as a faster
// alternative to re-walking Contexts(root) from scratch after every rule
// application. The naive rewriter (rewriter.go) does not use it — it is
// provided for a future rewriter variant, and exercised directly by its own
// tests here.
type Zipper struct {
	focus   Expression
	crumbs  []crumb
}

// crumb records the sibling context needed to climb back out of one
// Down/Into step: the parent node, and the already-visited left siblings
// plus not-yet-visited right siblings of the child we moved into.
type crumb struct {
	parent Expression
	index  int
	others []Expression
}

// NewZipper constructs a Zipper focused on root.
func NewZipper(root Expression) *Zipper {
	return &Zipper{focus: root}
}

// Focus returns the expression currently under the cursor.
func (z *Zipper) Focus() Expression { return z.focus }

// Replace substitutes the focused expression in place, without moving the
// cursor.
func (z *Zipper) Replace(e Expression) { z.focus = e }

// DownTo moves the cursor to the i'th child of the current focus. It
// returns false (leaving the cursor unmoved) if the focus has no such
// child.
func (z *Zipper) DownTo(i int) bool {
	children := z.focus.Children()
	if i < 0 || i >= len(children) {
		return false
	}
	z.crumbs = append(z.crumbs, crumb{parent: z.focus, index: i, others: children})
	z.focus = children[i]
	return true
}

// Up moves the cursor back to the parent of the current focus, rebuilding
// the parent with any in-place edits made to this child. It returns false
// (leaving the cursor unmoved) if already at the root.
func (z *Zipper) Up() bool {
	n := len(z.crumbs)
	if n == 0 {
		return false
	}
	c := z.crumbs[n-1]
	z.crumbs = z.crumbs[:n-1]

	newChildren := make([]Expression, len(c.others))
	copy(newChildren, c.others)
	newChildren[c.index] = z.focus

	z.focus = c.parent.Rebuild(newChildren)
	return true
}

// Top climbs back to the root, applying every pending Replace along the
// way, and returns the fully rebuilt tree.
func (z *Zipper) Top() Expression {
	for z.Up() {
	}
	return z.focus
}

// Depth reports how many Down steps separate the cursor from the root.
func (z *Zipper) Depth() int { return len(z.crumbs) }
