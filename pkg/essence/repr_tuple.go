package essence

func init() {
	RegisterRepresentation(tupleRepr{})
}

// tupleRepr decomposes a fixed-arity Tuple declaration into one constituent
// declaration per element position, mirroring matrixToAtomRepr but keyed by
// a single integer position rather than a full index tuple.
type tupleRepr struct{}

func (tupleRepr) Name() string { return "tuple" }

func (tupleRepr) Applies(decl *Declaration) bool {
	dom, ok := decl.DomainOf()
	return ok && dom.Kind == DomainTuple
}

func (tupleRepr) DeclarationDown(decl *Declaration, symbols *SymbolTable) []*Declaration {
	dom, _ := decl.DomainOf()
	out := make([]*Declaration, len(dom.TupleElems))
	for i, elemDom := range dom.TupleElems {
		name := RepresentedName(decl.Name, "tuple", []Literal{IntLiteral(i)})
		constituent := NewDeclaration(DeclDecisionVariable, name)
		constituent.Domain = elemDom
		symbols.Insert(constituent)
		out[i] = constituent
	}
	return out
}

func (tupleRepr) ExpressionDown(ref Expression, decl *Declaration, symbols *SymbolTable) (Expression, bool) {
	idx, ok := ref.(*Index)
	if !ok {
		return nil, false
	}
	subjectAtom, ok := idx.Subject.(*AtomExpr)
	if !ok || subjectAtom.Atom.Kind != AtomReference || subjectAtom.Atom.Ref != decl {
		return nil, false
	}
	idxAtom, ok := idx.Idx.(*AtomExpr)
	if !ok || !idxAtom.Atom.IsLiteral() || idxAtom.Atom.Lit.Kind != LiteralInt {
		return nil, false
	}
	name := RepresentedName(decl.Name, "tuple", []Literal{idxAtom.Atom.Lit})
	constituent, ok := symbols.Lookup(name)
	if !ok {
		return nil, false
	}
	return NewAtomExpr(AtomRef(constituent)), true
}

func (tupleRepr) ValueUp(parts map[string]Literal, decl *Declaration) (Literal, bool) {
	dom, ok := decl.DomainOf()
	if !ok {
		return Literal{}, false
	}
	elems := make([]Literal, len(dom.TupleElems))
	for i := range dom.TupleElems {
		name := RepresentedName(decl.Name, "tuple", []Literal{IntLiteral(i)})
		v, ok := parts[name.String()]
		if !ok {
			return Literal{}, false
		}
		elems[i] = v
	}
	return TupleLiteral(elems), true
}

// ValueDown splits a tuple literal into one entry per element position,
// the inverse of ValueUp.
func (tupleRepr) ValueDown(lit Literal, decl *Declaration) (map[string]Literal, bool) {
	if lit.Kind != LiteralTuple {
		return nil, false
	}
	dom, ok := decl.DomainOf()
	if !ok || len(lit.Tuple) != len(dom.TupleElems) {
		return nil, false
	}
	out := make(map[string]Literal, len(lit.Tuple))
	for i, v := range lit.Tuple {
		name := RepresentedName(decl.Name, "tuple", []Literal{IntLiteral(i)})
		out[name.String()] = v
	}
	return out, true
}

// Names returns one constituent Name per element position.
func (tupleRepr) Names(decl *Declaration) []Name {
	dom, ok := decl.DomainOf()
	if !ok {
		return nil
	}
	out := make([]Name, len(dom.TupleElems))
	for i := range dom.TupleElems {
		out[i] = RepresentedName(decl.Name, "tuple", []Literal{IntLiteral(i)})
	}
	return out
}
