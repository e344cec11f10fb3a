package rules

import "github.com/gitrdm/essencelogic/pkg/essence"

func init() {
	essence.RegisterRuleSet(&essence.RuleSet{
		Name:         "minion_arith",
		Priority:     40,
		Rules:        []*essence.Rule{safeDivToMinionRule},
		Dependencies: []string{"bubble"},
	}, "minion")
}

// safeDivToMinionRule lowers an equality against a SafeDiv into Minion's
// native ternary div_undefzero constraint once lift_bubble has already
// hoisted the division's nonzero-divisor guard out as its own top-level
// constraint (bubble.go's liftBubbleRule). This is the Minion-family
// counterpart to flatten.go's Leq/Geq lowering: scenario S1 requires the
// final constraint set to name MinionDivEqUndefZero directly rather than
// leave a SafeDiv for a generic solver to interpret.
var safeDivToMinionRule = &essence.Rule{
	Name:     "safe_div_to_minion",
	Priority: 10,
	Apply: func(expr essence.Expression, symbols *essence.SymbolTable) (essence.Reduction, error) {
		cmp, ok := expr.(*essence.Compare)
		if !ok || cmp.Op != essence.OpEq {
			return essence.NotApplicable("safe_div_to_minion")
		}
		if div, ok := cmp.Left.(*essence.SafeArith); ok && div.Op == essence.OpSafeDiv {
			return essence.ReductionOf(essence.NewMinionDivEqUndefZero(div.Left, div.Right, cmp.Right)), nil
		}
		if div, ok := cmp.Right.(*essence.SafeArith); ok && div.Op == essence.OpSafeDiv {
			return essence.ReductionOf(essence.NewMinionDivEqUndefZero(div.Left, div.Right, cmp.Left)), nil
		}
		return essence.NotApplicable("safe_div_to_minion")
	},
}
