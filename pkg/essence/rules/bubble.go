package rules

import "github.com/gitrdm/essencelogic/pkg/essence"

func init() {
	essence.RegisterRuleSet(&essence.RuleSet{
		Name:         "bubble",
		Priority:     200,
		Rules:        []*essence.Rule{introduceBubbleRule, liftBubbleRule},
		Dependencies: []string{"base"},
	}, "minion", "sat")
}

// introduceBubbleRule replaces a partial operator (UnsafeDiv/UnsafeMod/
// UnsafePow) with a Bubble around its Safe counterpart, attaching the
// guard condition under which it is defined; the Bubble holds no Unsafe
// operator, so the rule does not fire on it again. Grounded on
// original_source/crates/conjure-cp-rules/src/bubble.rs's own
// introduction rule: division/modulo require a nonzero divisor, and
// exponentiation requires a nonnegative exponent (to stay within integer
// arithmetic).
var introduceBubbleRule = &essence.Rule{
	Name:     "introduce_bubble",
	Priority: 8000,
	Apply: func(expr essence.Expression, symbols *essence.SymbolTable) (essence.Reduction, error) {
		e, ok := expr.(*essence.BinaryArith)
		if !ok {
			return essence.NotApplicable("introduce_bubble")
		}
		var guard essence.Expression
		switch e.Op {
		case essence.OpUnsafeDiv, essence.OpUnsafeMod:
			guard = essence.NewCompare(essence.OpNeq, e.Right, essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(0))))
		case essence.OpUnsafePow:
			guard = essence.NewCompare(essence.OpGeq, e.Right, essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(0))))
		default:
			return essence.NotApplicable("introduce_bubble")
		}
		return essence.ReductionOf(essence.NewBubble(toSafe(expr), guard)), nil
	},
}

// liftBubbleRule grounds bubble.rs's lifting step: once a Bubble sits
// directly under a top-level constraint position (i.e. this rule fires at
// low enough priority that everything deeper has already stabilised), its
// Guard is hoisted out as a brand new top-level constraint and the Bubble
// itself collapses to its Value, with the partial operator translated to
// its Safe counterpart since the guard is now enforced separately.
var liftBubbleRule = &essence.Rule{
	Name:     "lift_bubble",
	Priority: 100,
	Apply: func(expr essence.Expression, symbols *essence.SymbolTable) (essence.Reduction, error) {
		e, ok := expr.(*essence.Bubble)
		if !ok {
			return essence.NotApplicable("lift_bubble")
		}
		value := toSafe(e.Value)
		return essence.Reduction{
			NewExpression: value,
			NewTop:        []essence.Expression{e.Guard},
		}, nil
	},
}

// toSafe translates a partial operator into its Safe form now that its
// guard is enforced elsewhere; any other expression passes through
// unchanged, since a Bubble's Value need not always be the partial
// operator directly (it may already have been partly rewritten).
func toSafe(expr essence.Expression) essence.Expression {
	e, ok := expr.(*essence.BinaryArith)
	if !ok {
		return expr
	}
	switch e.Op {
	case essence.OpUnsafeDiv:
		return essence.NewSafeArith(essence.OpSafeDiv, e.Left, e.Right)
	case essence.OpUnsafeMod:
		return essence.NewSafeArith(essence.OpSafeMod, e.Left, e.Right)
	case essence.OpUnsafePow:
		return essence.NewSafeArith(essence.OpSafePow, e.Left, e.Right)
	default:
		return expr
	}
}
