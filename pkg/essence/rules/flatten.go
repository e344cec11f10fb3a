package rules

import "github.com/gitrdm/essencelogic/pkg/essence"

func init() {
	essence.RegisterRuleSet(&essence.RuleSet{
		Name:         "flatten",
		Priority:     50,
		Rules:        []*essence.Rule{flattenLeqRule, flattenGeqRule},
		Dependencies: []string{"bubble"},
	}, "minion")
}

// flattenLeqRule and flattenGeqRule lower a Compare(Leq/Geq) whose left
// side is a Sum into the low-tier FlatLinear shape Minion's adaptor
// consumes directly (spec.md §4.4's "key rule families" table names this
// transition explicitly: high/intermediate tier arithmetic comparisons
// flatten into FlatSumLeq/FlatSumGeq once no further algebraic
// simplification applies above them).
var flattenLeqRule = &essence.Rule{
	Name:     "flatten_leq",
	Priority: 10,
	Apply: func(expr essence.Expression, symbols *essence.SymbolTable) (essence.Reduction, error) {
		return flattenCompare(expr, essence.OpLeq, essence.OpFlatSumLeq, "flatten_leq")
	},
}

var flattenGeqRule = &essence.Rule{
	Name:     "flatten_geq",
	Priority: 10,
	Apply: func(expr essence.Expression, symbols *essence.SymbolTable) (essence.Reduction, error) {
		return flattenCompare(expr, essence.OpGeq, essence.OpFlatSumGeq, "flatten_geq")
	},
}

func flattenCompare(expr essence.Expression, want essence.CompareOp, op essence.FlatLinearOp, ruleName string) (essence.Reduction, error) {
	cmp, ok := expr.(*essence.Compare)
	if !ok || cmp.Op != want {
		return essence.NotApplicable(ruleName)
	}
	sum, ok := cmp.Left.(*essence.NaryArith)
	if !ok || sum.Op != essence.OpSum {
		return essence.NotApplicable(ruleName)
	}
	return essence.ReductionOf(essence.NewFlatLinear(op, sum.Args, cmp.Right)), nil
}
