package rules

import "github.com/gitrdm/essencelogic/pkg/essence"

func init() {
	essence.RegisterRuleSet(&essence.RuleSet{
		Name:         "sat_direct_encoding",
		Priority:     300,
		Rules:        []*essence.Rule{satDirectExactlyOneRule, satDirectEqToCnfRule},
		Dependencies: []string{"representation"},
	}, "sat")
}

// satDirectExactlyOneRule emits the "exactly one indicator bit is set"
// constraint for every sat_direct_int-represented declaration, once
// selectRepresentationRule has materialised its constituents. It fires at
// most once per declaration: SatDirectExactlyOne reports false once its own
// one-shot marker is set.
var satDirectExactlyOneRule = &essence.Rule{
	Name:     "sat_direct_exactly_one",
	Priority: 60,
	Apply: func(expr essence.Expression, symbols *essence.SymbolTable) (essence.Reduction, error) {
		decl, ok := asReference(expr)
		if !ok {
			return essence.NotApplicable("sat_direct_exactly_one")
		}
		if repr, ok := symbols.Representation(decl.Name); !ok || repr != "sat_direct_int" {
			return essence.NotApplicable("sat_direct_exactly_one")
		}
		constraint, ok := essence.SatDirectExactlyOne(decl, symbols)
		if !ok {
			return essence.NotApplicable("sat_direct_exactly_one")
		}
		return essence.Reduction{
			NewExpression: expr,
			NewTop:        []essence.Expression{constraint},
		}, nil
	},
}

// satDirectEqToCnfRule rewrites an Eq comparison between two references
// whose declarations both carry the "sat_direct_int" representation into
// the bit-for-bit CNF equivalence SatDirectEq builds, the direct-encoding
// counterpart to sat_order.go's compareToCnfRule.
var satDirectEqToCnfRule = &essence.Rule{
	Name:     "sat_direct_eq_to_cnf",
	Priority: 50,
	Apply: func(expr essence.Expression, symbols *essence.SymbolTable) (essence.Reduction, error) {
		cmp, ok := expr.(*essence.Compare)
		if !ok || cmp.Op != essence.OpEq {
			return essence.NotApplicable("sat_direct_eq_to_cnf")
		}
		left, lok := asReference(cmp.Left)
		right, rok := asReference(cmp.Right)
		if !lok || !rok {
			return essence.NotApplicable("sat_direct_eq_to_cnf")
		}
		if repr, ok := symbols.Representation(left.Name); !ok || repr != "sat_direct_int" {
			return essence.NotApplicable("sat_direct_eq_to_cnf")
		}
		if repr, ok := symbols.Representation(right.Name); !ok || repr != "sat_direct_int" {
			return essence.NotApplicable("sat_direct_eq_to_cnf")
		}
		lowered, ok := essence.SatDirectEq(left, right, symbols)
		if !ok {
			return essence.NotApplicable("sat_direct_eq_to_cnf")
		}
		return essence.ReductionOf(lowered), nil
	},
}
