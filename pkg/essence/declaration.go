package essence

import "sync/atomic"

var declarationCounter uint32

// nextDeclarationID hands out process-wide unique machine ids, mirroring the
// AtomicU32 counter backing Declaration ids in
// original_source/crates/conjure_core/src/ast/declaration.go.
func nextDeclarationID() uint32 {
	return atomic.AddUint32(&declarationCounter, 1)
}

// DeclarationKind discriminates the roles a name can be bound to in a
// SymbolTable (spec.md §3).
type DeclarationKind int

const (
	// DeclDecisionVariable is a variable the solver searches over.
	DeclDecisionVariable DeclarationKind = iota
	// DeclValueLetting binds a name to a constant expression.
	DeclValueLetting
	// DeclDomainLetting binds a name to a domain.
	DeclDomainLetting
	// DeclGiven is a parameter supplied externally to the model.
	DeclGiven
	// DeclQuantified is a variable bound by a comprehension generator.
	DeclQuantified
	// DeclRecordField names one field of an enclosing record domain.
	DeclRecordField
	// DeclFind is the legacy "find" binding of a decision variable
	// (kept distinct from DeclDecisionVariable because some rule families
	// key specifically off the keyword used in the source model).
	DeclFind
)

// Declaration binds a Name to a role and, where applicable, a Domain or
// value expression. Declarations are owned by exactly one SymbolTable and
// referenced elsewhere via *Declaration pointers (spec.md §3's
// DeclarationPtr) rather than copied.
type Declaration struct {
	id   uint32
	Kind DeclarationKind
	Name Name

	// DeclDecisionVariable, DeclGiven, DeclQuantified, DeclFind
	Domain Domain

	// DeclValueLetting
	Value Expression

	// DeclDomainLetting
	LetDomain Domain

	// DeclRecordField
	FieldIndex int
}

// NewDeclaration constructs a declaration with a fresh machine id.
func NewDeclaration(kind DeclarationKind, name Name) *Declaration {
	return &Declaration{id: nextDeclarationID(), Kind: kind, Name: name}
}

// ID returns d's process-wide unique identity, stable across clones of the
// expression tree that reference it (since declarations are referenced by
// pointer, never by value).
func (d *Declaration) ID() uint32 { return d.id }

// DomainOf returns the domain governing d's possible values, if any.
func (d *Declaration) DomainOf() (Domain, bool) {
	switch d.Kind {
	case DeclDecisionVariable, DeclGiven, DeclQuantified, DeclFind:
		return d.Domain, true
	case DeclDomainLetting:
		return d.LetDomain, true
	default:
		return Domain{}, false
	}
}
