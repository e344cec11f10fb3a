package essence

func init() {
	RegisterRepresentation(matrixToAtomRepr{})
}

// matrixToAtomRepr decomposes a finite-domain Matrix declaration into one
// scalar declaration per index-tuple, named by a RepresentedName suffix
// carrying that index tuple as literals. This directly follows
// original_source/crates/conjure-cp-rules/src/representation/matrix_to_atom.rs:
// the Rust original also targets Matrix domains, builds one declaration per
// flattened index, and reassembles a MatrixLiteral from the per-cell
// solution values in value_up.
type matrixToAtomRepr struct{}

func (matrixToAtomRepr) Name() string { return "matrix_to_atom" }

func (matrixToAtomRepr) Applies(decl *Declaration) bool {
	dom, ok := decl.DomainOf()
	return ok && dom.Kind == DomainMatrix && dom.Element.Kind != DomainMatrix
}

func (matrixToAtomRepr) DeclarationDown(decl *Declaration, symbols *SymbolTable) []*Declaration {
	dom, _ := decl.DomainOf()
	indexValues := make([][]Literal, len(dom.IndexDomains))
	for i, idx := range dom.IndexDomains {
		vs, ok := idx.Values()
		if !ok {
			return nil
		}
		indexValues[i] = vs
	}
	indices := EnumerateIndices(indexValues)

	out := make([]*Declaration, 0, len(indices))
	for _, idx := range indices {
		name := RepresentedName(decl.Name, "matrix_to_atom", idx)
		constituent := NewDeclaration(DeclDecisionVariable, name)
		constituent.Domain = *dom.Element
		symbols.Insert(constituent)
		out = append(out, constituent)
	}
	return out
}

func (matrixToAtomRepr) ExpressionDown(ref Expression, decl *Declaration, symbols *SymbolTable) (Expression, bool) {
	idx, ok := ref.(*Index)
	if !ok {
		return nil, false
	}
	subjectAtom, ok := idx.Subject.(*AtomExpr)
	if !ok || subjectAtom.Atom.Kind != AtomReference || subjectAtom.Atom.Ref != decl {
		return nil, false
	}
	idxAtom, ok := idx.Idx.(*AtomExpr)
	if !ok || !idxAtom.Atom.IsLiteral() {
		return nil, false
	}
	name := RepresentedName(decl.Name, "matrix_to_atom", []Literal{idxAtom.Atom.Lit})
	constituent, ok := symbols.Lookup(name)
	if !ok {
		return nil, false
	}
	return NewAtomExpr(AtomRef(constituent)), true
}

func (matrixToAtomRepr) ValueUp(parts map[string]Literal, decl *Declaration) (Literal, bool) {
	dom, ok := decl.DomainOf()
	if !ok {
		return Literal{}, false
	}
	indexValues := make([][]Literal, len(dom.IndexDomains))
	for i, idx := range dom.IndexDomains {
		vs, ok := idx.Values()
		if !ok {
			return Literal{}, false
		}
		indexValues[i] = vs
	}
	indices := EnumerateIndices(indexValues)
	cells := make([]Literal, 0, len(indices))
	for _, idx := range indices {
		name := RepresentedName(decl.Name, "matrix_to_atom", idx)
		v, ok := parts[name.String()]
		if !ok {
			return Literal{}, false
		}
		cells = append(cells, v)
	}
	return MatrixLiteral(cells, dom.IndexDomains), true
}

// ValueDown splits a matrix literal into one entry per flattened index,
// the inverse of ValueUp.
func (matrixToAtomRepr) ValueDown(lit Literal, decl *Declaration) (map[string]Literal, bool) {
	if lit.Kind != LiteralMatrix {
		return nil, false
	}
	dom, ok := decl.DomainOf()
	if !ok {
		return nil, false
	}
	indexValues := make([][]Literal, len(dom.IndexDomains))
	for i, idx := range dom.IndexDomains {
		vs, ok := idx.Values()
		if !ok {
			return nil, false
		}
		indexValues[i] = vs
	}
	indices := EnumerateIndices(indexValues)
	if len(indices) != len(lit.Matrix) {
		return nil, false
	}
	out := make(map[string]Literal, len(indices))
	for i, idx := range indices {
		name := RepresentedName(decl.Name, "matrix_to_atom", idx)
		out[name.String()] = lit.Matrix[i]
	}
	return out, true
}

// Names returns one constituent Name per flattened index tuple, in the
// same row-major order DeclarationDown materialises them.
func (matrixToAtomRepr) Names(decl *Declaration) []Name {
	dom, ok := decl.DomainOf()
	if !ok {
		return nil
	}
	indexValues := make([][]Literal, len(dom.IndexDomains))
	for i, idx := range dom.IndexDomains {
		vs, ok := idx.Values()
		if !ok {
			return nil
		}
		indexValues[i] = vs
	}
	indices := EnumerateIndices(indexValues)
	out := make([]Name, len(indices))
	for i, idx := range indices {
		out[i] = RepresentedName(decl.Name, "matrix_to_atom", idx)
	}
	return out
}

// String satisfies fmt.Stringer for diagnostics, matching how
// matrix_to_atom.rs implements Display for its Representation.
func (matrixToAtomRepr) String() string { return "Representation(matrix_to_atom)" }
