package essence

// SubModel is one scope of constraints plus the symbol table that governs
// it (spec.md §3); the top-level model's root is the only SubModel a Model
// holds. Constraints is
// kept in a Moo so that a rule which clones a SubModel before modifying
// one of its constraints does not pay to deep-copy every other constraint
// in the list.
type SubModel struct {
	Symbols     *SymbolTable
	Constraints Moo[ConstraintList]
}

// NewSubModel constructs an empty SubModel nested in parent's symbol table
// scope (parent may be nil for the top-level model).
func NewSubModel(parent *SymbolTable) *SubModel {
	var syms *SymbolTable
	if parent == nil {
		syms = NewSymbolTable()
	} else {
		syms = parent.Child()
	}
	return &SubModel{
		Symbols:     syms,
		Constraints: NewMoo(ConstraintList{}),
	}
}

// AddConstraint appends expr to the constraint list, cloning it first only
// if it is currently shared with another SubModel.
func (sm *SubModel) AddConstraint(expr Expression) {
	cl := MakeMut(&sm.Constraints)
	cl.Exprs = append(cl.Exprs, expr)
}

// ConstraintList wraps the slice of top-level constraint expressions owned
// by a SubModel. It exists as a named type (rather than a bare
// []Expression) purely so it can implement DeepCloner and live inside a
// Moo.
type ConstraintList struct {
	Exprs []Expression
}

// CloneValue returns a deep copy of the constraint list.
func (cl ConstraintList) CloneValue() ConstraintList {
	out := make([]Expression, len(cl.Exprs))
	for i, e := range cl.Exprs {
		out[i] = e.CloneValue()
	}
	return ConstraintList{Exprs: out}
}

// Model is the top-level compilation unit: one root SubModel plus the
// bookkeeping the rewriter and CLI need across the whole run (spec.md §2,
// §6). Dominance/objective direction is tracked on Model rather than as an
// Expression, since it is metadata about the model, not part of its
// constraint tree.
type Model struct {
	Root *SubModel

	// ObjectiveKind is "" (satisfaction problem), "minimising", or
	// "maximising".
	ObjectiveKind string
	Objective     Expression
}

// NewModel constructs an empty satisfaction-problem model.
func NewModel() *Model {
	return &Model{Root: NewSubModel(nil)}
}

// Constraints returns the top-level constraint expressions of the model's
// root scope.
func (m *Model) Constraints() []Expression {
	return m.Root.Constraints.Get().Exprs
}

// SubModels returns every sub-model the naive rewriter must visit, outermost
// first (spec.md §4.3's "for each sub-model s in the model (outermost
// first)"). This codebase keeps comprehension and quantifier bodies inline
// as Expression children rather than as nested SubModel values, so the only
// SubModel that exists today is the root; SubModels still returns a slice
// (rather than just m.Root) so the rewriter's sub-model loop is written
// generically against a future nested-SubModel tree rather than hard-coding
// "there is exactly one."
func (m *Model) SubModels() []*SubModel {
	return []*SubModel{m.Root}
}
