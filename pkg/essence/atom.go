package essence

// AtomKind discriminates the two cases of spec.md §3's
// "Atom = Literal | Reference(DeclarationPtr)".
type AtomKind int

const (
	AtomLiteral AtomKind = iota
	AtomReference
)

// Atom is the leaf payload of an expression tree: either a fully-evaluated
// Literal, or a Reference naming the Declaration it reads.
type Atom struct {
	Kind AtomKind

	Lit Literal
	Ref *Declaration
}

// AtomLit constructs a literal-valued atom.
func AtomLit(l Literal) Atom { return Atom{Kind: AtomLiteral, Lit: l} }

// AtomRef constructs an atom referencing a declaration.
func AtomRef(d *Declaration) Atom { return Atom{Kind: AtomReference, Ref: d} }

// IsLiteral reports whether a is a literal atom.
func (a Atom) IsLiteral() bool { return a.Kind == AtomLiteral }

// Equal reports whether two atoms denote the same value or the same
// declaration identity.
func (a Atom) Equal(other Atom) bool {
	if a.Kind != other.Kind {
		return false
	}
	if a.Kind == AtomLiteral {
		return a.Lit.Equal(other.Lit)
	}
	return a.Ref == other.Ref || (a.Ref != nil && other.Ref != nil && a.Ref.Name.Equal(other.Ref.Name))
}

// String renders a for diagnostics.
func (a Atom) String() string {
	if a.Kind == AtomLiteral {
		return a.Lit.String()
	}
	if a.Ref == nil {
		return "<nil-ref>"
	}
	return a.Ref.Name.String()
}

// CloneValue returns a structurally independent copy of a. Reference atoms
// keep pointing at the same Declaration: declarations live in the owning
// SymbolTable and are not duplicated by expression cloning.
func (a Atom) CloneValue() Atom {
	if a.Kind == AtomLiteral {
		return AtomLit(a.Lit.CloneValue())
	}
	return a
}
