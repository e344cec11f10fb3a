package rules

import "github.com/gitrdm/essencelogic/pkg/essence"

func init() {
	essence.RegisterRuleSet(&essence.RuleSet{
		Name:         "sat_encoding",
		Priority:     300,
		Rules:        []*essence.Rule{compareToCnfRule},
		Dependencies: []string{"representation"},
	}, "sat")
}

// compareToCnfRule rewrites an Lt comparison between two references whose
// declarations both carry the "sat_order" representation into the boolean
// disjunction satOrderLt builds directly from their order-encoding
// constituents, the sat-family counterpart to flatten.go's Minion-facing
// rules.
var compareToCnfRule = &essence.Rule{
	Name:     "compare_to_cnf",
	Priority: 50,
	Apply: func(expr essence.Expression, symbols *essence.SymbolTable) (essence.Reduction, error) {
		cmp, ok := expr.(*essence.Compare)
		if !ok || cmp.Op != essence.OpLt {
			return essence.NotApplicable("compare_to_cnf")
		}
		left, lok := asReference(cmp.Left)
		right, rok := asReference(cmp.Right)
		if !lok || !rok {
			return essence.NotApplicable("compare_to_cnf")
		}
		if _, ok := symbols.Representation(left.Name); !ok {
			return essence.NotApplicable("compare_to_cnf")
		}
		if _, ok := symbols.Representation(right.Name); !ok {
			return essence.NotApplicable("compare_to_cnf")
		}
		lowered, ok := essence.SatOrderLt(left, right, symbols)
		if !ok {
			return essence.NotApplicable("compare_to_cnf")
		}
		return essence.ReductionOf(lowered), nil
	},
}

func asReference(expr essence.Expression) (*essence.Declaration, bool) {
	atom, ok := expr.(*essence.AtomExpr)
	if !ok || atom.Atom.Kind != essence.AtomReference {
		return nil, false
	}
	return atom.Atom.Ref, true
}
