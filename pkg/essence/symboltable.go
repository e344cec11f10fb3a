package essence

import "fmt"

// SymbolTable maps Names to Declarations within one SubModel's scope. It
// preserves insertion order (so codegen and trace output stay stable
// across runs), supports lexical nesting via Parent, and hands out gensym
// ids for compiler-generated names.
type SymbolTable struct {
	parent *SymbolTable

	order []Name
	decls map[string]*Declaration

	gensym uint32

	// representations maps a declaration's Name to the chosen
	// Representation strategy name for it, once representation selection
	// (§4.5) has run. Absence means "not yet represented" or "does not
	// need representation" (e.g. already an atomic int).
	representations map[string]string
}

// NewSymbolTable constructs an empty, root-scoped symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		decls:           make(map[string]*Declaration),
		representations: make(map[string]string),
	}
}

// Child constructs a new symbol table nested inside st, used for the local
// scope of a comprehension body or a quantified expression.
func (st *SymbolTable) Child() *SymbolTable {
	child := NewSymbolTable()
	child.parent = st
	return child
}

// Insert adds decl under its own Name, shadowing (within this scope only)
// any declaration of the same name in an enclosing scope.
func (st *SymbolTable) Insert(decl *Declaration) {
	key := decl.Name.String()
	if _, exists := st.decls[key]; !exists {
		st.order = append(st.order, decl.Name)
	}
	st.decls[key] = decl
}

// Lookup resolves name to its Declaration, searching this scope and then
// each enclosing scope in turn.
func (st *SymbolTable) Lookup(name Name) (*Declaration, bool) {
	key := name.String()
	for s := st; s != nil; s = s.parent {
		if d, ok := s.decls[key]; ok {
			return d, true
		}
	}
	return nil, false
}

// InOrder returns every declaration directly owned by this scope (not its
// ancestors), in insertion order.
func (st *SymbolTable) InOrder() []*Declaration {
	out := make([]*Declaration, 0, len(st.order))
	for _, n := range st.order {
		out = append(out, st.decls[n.String()])
	}
	return out
}

// Gensym returns a fresh MachineName unique within the whole table chain:
// the counter lives on the root so nested scopes never collide.
func (st *SymbolTable) Gensym() Name {
	root := st
	for root.parent != nil {
		root = root.parent
	}
	root.gensym++
	return MachineName(root.gensym)
}

// SetRepresentation records which representation strategy was chosen for
// name, after §4.5's representation selection has decomposed its
// declaration into lower-level constituents.
func (st *SymbolTable) SetRepresentation(name Name, repr string) {
	st.representations[name.String()] = repr
}

// Representation returns the representation strategy chosen for name, if
// any, searching enclosing scopes like Lookup does.
func (st *SymbolTable) Representation(name Name) (string, bool) {
	key := name.String()
	for s := st; s != nil; s = s.parent {
		if r, ok := s.representations[key]; ok {
			return r, true
		}
	}
	return "", false
}

// Clone returns a deep copy of st and every ancestor scope, so that cloning
// a SubModel never lets a mutation to the clone's symbol table leak back
// into the original (the SymbolTable-level analogue of Moo's
// clone-on-write contract).
func (st *SymbolTable) Clone() *SymbolTable {
	if st == nil {
		return nil
	}
	cp := &SymbolTable{
		parent:          st.parent.Clone(),
		order:           append([]Name{}, st.order...),
		decls:           make(map[string]*Declaration, len(st.decls)),
		gensym:          st.gensym,
		representations: make(map[string]string, len(st.representations)),
	}
	for k, d := range st.decls {
		clonedDecl := *d
		cp.decls[k] = &clonedDecl
	}
	for k, v := range st.representations {
		cp.representations[k] = v
	}
	return cp
}

// String renders a short diagnostic summary of the table's own-scope
// declarations.
func (st *SymbolTable) String() string {
	return fmt.Sprintf("SymbolTable(%d names)", len(st.order))
}
