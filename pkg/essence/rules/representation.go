package rules

import "github.com/gitrdm/essencelogic/pkg/essence"

func init() {
	essence.RegisterRuleSet(&essence.RuleSet{
		Name:         "representation",
		Priority:     300,
		Rules:        []*essence.Rule{selectRepresentationRule, lowerIndexRule},
		Dependencies: []string{"base"},
	}, "minion", "sat")
}

// selectRepresentationRule finds the first registered Representation that
// applies to a referenced declaration's domain and materialises its
// constituent declarations into the symbol table, recording the choice so
// later rules (lowerIndexRule, and each strategy's own ExpressionDown
// calls) know which Representation governs this name. It fires at most
// once per declaration: Applies is re-checked every pass, but
// SetRepresentation's presence short-circuits it. A constituent
// declaration produced here is an ordinary declaration to later passes:
// once referenced, it is represented in turn if a strategy applies to it
// (for example, the Int cells of a matrix get sat_order).
var selectRepresentationRule = &essence.Rule{
	Name:     "select_representation",
	Priority: 500,
	Apply: func(expr essence.Expression, symbols *essence.SymbolTable) (essence.Reduction, error) {
		atom, ok := expr.(*essence.AtomExpr)
		if !ok || atom.Atom.Kind != essence.AtomReference {
			return essence.NotApplicable("select_representation")
		}
		decl := atom.Atom.Ref
		if _, already := symbols.Representation(decl.Name); already {
			return essence.NotApplicable("select_representation")
		}
		strategy, ok := essence.GlobalRepresentations().SelectFor(decl)
		if !ok {
			return essence.NotApplicable("select_representation")
		}
		constituents := strategy.DeclarationDown(decl, symbols)
		symbols.SetRepresentation(decl.Name, strategy.Name())
		return essence.Reduction{
			NewExpression: expr,
			NewSymbols:    constituents,
		}, nil
	},
}

// lowerIndexRule rewrites a reference into a represented declaration
// through its strategy's ExpressionDown, once selectRepresentationRule has
// run for it.
var lowerIndexRule = &essence.Rule{
	Name:     "lower_index",
	Priority: 400,
	Apply: func(expr essence.Expression, symbols *essence.SymbolTable) (essence.Reduction, error) {
		idx, ok := expr.(*essence.Index)
		if !ok {
			return essence.NotApplicable("lower_index")
		}
		atom, ok := idx.Subject.(*essence.AtomExpr)
		if !ok || atom.Atom.Kind != essence.AtomReference {
			return essence.NotApplicable("lower_index")
		}
		decl := atom.Atom.Ref
		reprName, ok := symbols.Representation(decl.Name)
		if !ok {
			return essence.NotApplicable("lower_index")
		}
		strategy, ok := essence.GlobalRepresentations().SelectFor(decl)
		if !ok || strategy.Name() != reprName {
			return essence.NotApplicable("lower_index")
		}
		lowered, ok := strategy.ExpressionDown(expr, decl, symbols)
		if !ok {
			return essence.NotApplicable("lower_index")
		}
		return essence.ReductionOf(lowered), nil
	},
}
