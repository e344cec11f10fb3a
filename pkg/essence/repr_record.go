package essence

func init() {
	RegisterRepresentation(recordToAtomRepr{})
}

// recordToAtomRepr decomposes a Record declaration into one constituent
// declaration per field, keyed positionally by field index (the same
// suffix shape tupleRepr uses for tuple elements) rather than by field
// name: Literal has no string kind to carry a field name as a
// RepresentedName suffix, so field order — fixed by RecordEntries — is
// the round-trippable identity instead.
type recordToAtomRepr struct{}

func (recordToAtomRepr) Name() string { return "record_to_atom" }

func (recordToAtomRepr) Applies(decl *Declaration) bool {
	dom, ok := decl.DomainOf()
	return ok && dom.Kind == DomainRecord
}

func (recordToAtomRepr) DeclarationDown(decl *Declaration, symbols *SymbolTable) []*Declaration {
	dom, _ := decl.DomainOf()
	out := make([]*Declaration, len(dom.RecordEntries))
	for i, entry := range dom.RecordEntries {
		name := RepresentedName(decl.Name, "record_to_atom", []Literal{IntLiteral(i)})
		constituent := NewDeclaration(DeclDecisionVariable, name)
		constituent.Domain = entry.Domain
		symbols.Insert(constituent)
		out[i] = constituent
	}
	return out
}

// ExpressionDown declines: this tree has no dedicated field-access
// expression node (RecordLit only constructs record values, it does not
// project a field back out of a reference), so there is nothing for a
// generic reference rewrite to target yet. A later rule introducing field
// projection would extend this the same way lowerIndexRule targets Index.
func (recordToAtomRepr) ExpressionDown(ref Expression, decl *Declaration, symbols *SymbolTable) (Expression, bool) {
	return nil, false
}

func (recordToAtomRepr) ValueUp(parts map[string]Literal, decl *Declaration) (Literal, bool) {
	dom, ok := decl.DomainOf()
	if !ok {
		return Literal{}, false
	}
	entries := make([]RecordLitEntry, len(dom.RecordEntries))
	for i, entry := range dom.RecordEntries {
		name := RepresentedName(decl.Name, "record_to_atom", []Literal{IntLiteral(i)})
		v, ok := parts[name.String()]
		if !ok {
			return Literal{}, false
		}
		entries[i] = RecordLitEntry{Name: entry.Name, Value: v}
	}
	return RecordLiteral(entries), true
}

func (recordToAtomRepr) ValueDown(lit Literal, decl *Declaration) (map[string]Literal, bool) {
	if lit.Kind != LiteralRecordLit {
		return nil, false
	}
	dom, ok := decl.DomainOf()
	if !ok || len(lit.Record) != len(dom.RecordEntries) {
		return nil, false
	}
	out := make(map[string]Literal, len(lit.Record))
	for i, entry := range lit.Record {
		name := RepresentedName(decl.Name, "record_to_atom", []Literal{IntLiteral(i)})
		out[name.String()] = entry.Value
	}
	return out, true
}

func (recordToAtomRepr) Names(decl *Declaration) []Name {
	dom, ok := decl.DomainOf()
	if !ok {
		return nil
	}
	out := make([]Name, len(dom.RecordEntries))
	for i := range dom.RecordEntries {
		out[i] = RepresentedName(decl.Name, "record_to_atom", []Literal{IntLiteral(i)})
	}
	return out
}
