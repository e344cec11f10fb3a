package rules

import (
	"testing"

	"github.com/gitrdm/essencelogic/pkg/essence"
)

func TestRemoveEmptyExpressionRule(t *testing.T) {
	symbols := essence.NewSymbolTable()

	tests := []struct {
		name string
		expr essence.Expression
		want essence.Expression
	}{
		{"empty sum", essence.NewNaryArith(essence.OpSum, nil), essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(0)))},
		{"empty product", essence.NewNaryArith(essence.OpProduct, nil), essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(1)))},
		{"empty and", essence.NewNaryLogic(essence.OpAnd, nil), essence.NewAtomExpr(essence.AtomLit(essence.BoolLiteral(true)))},
		{"empty or", essence.NewNaryLogic(essence.OpOr, nil), essence.NewAtomExpr(essence.AtomLit(essence.BoolLiteral(false)))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reduction, err := removeEmptyExpressionRule.Apply(tc.expr, symbols)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !essence.ExpressionsEqual(reduction.NewExpression, tc.want) {
				t.Errorf("expected %s, got %s", tc.want.String(), reduction.NewExpression.String())
			}
		})
	}
}

func TestRemoveEmptyExpressionRuleNotApplicableToNonEmpty(t *testing.T) {
	symbols := essence.NewSymbolTable()
	expr := essence.NewNaryArith(essence.OpSum, []essence.Expression{essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(1)))})
	_, err := removeEmptyExpressionRule.Apply(expr, symbols)
	if !essence.ErrRuleNotApplicable.Is(err) {
		t.Fatalf("expected ErrRuleNotApplicable, got %v", err)
	}
}

func TestMinToVarIntroducesAuxiliaryWithBounds(t *testing.T) {
	symbols := essence.NewSymbolTable()
	args := []essence.Expression{
		essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(1))),
		essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(2))),
	}
	expr := essence.NewNaryArith(essence.OpMin, args)

	reduction, err := minToVarRule.Apply(expr, symbols)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reduction.NewSymbols) != 1 {
		t.Fatalf("expected exactly one new auxiliary declaration, got %d", len(reduction.NewSymbols))
	}
	if len(reduction.NewTop) != len(args)+1 {
		t.Fatalf("expected one bound constraint per min argument plus a witness disjunction, got %d", len(reduction.NewTop))
	}
	for _, bound := range reduction.NewTop[:len(args)] {
		cmp, ok := bound.(*essence.Compare)
		if !ok || cmp.Op != essence.OpLeq {
			t.Errorf("expected every min bound to be a Leq comparison, got %T (%v)", bound, bound)
		}
	}
	witness, ok := reduction.NewTop[len(args)].(*essence.NaryLogic)
	if !ok || witness.Op != essence.OpOr || len(witness.Args) != len(args) {
		t.Fatalf("expected a trailing Or witness with one equality per argument, got %T (%v)", reduction.NewTop[len(args)], reduction.NewTop[len(args)])
	}
}

func TestMaxToVarUsesGeqBounds(t *testing.T) {
	symbols := essence.NewSymbolTable()
	args := []essence.Expression{essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(1)))}
	expr := essence.NewNaryArith(essence.OpMax, args)

	reduction, err := maxToVarRule.Apply(expr, symbols)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmp, ok := reduction.NewTop[0].(*essence.Compare)
	if !ok || cmp.Op != essence.OpGeq {
		t.Fatalf("expected a Geq bound for max_to_var, got %T", reduction.NewTop[0])
	}
}

func TestMinToVarNotApplicableToEmptyArgs(t *testing.T) {
	symbols := essence.NewSymbolTable()
	_, err := minToVarRule.Apply(essence.NewNaryArith(essence.OpMin, nil), symbols)
	if !essence.ErrRuleNotApplicable.Is(err) {
		t.Fatalf("expected ErrRuleNotApplicable for an empty Min, got %v", err)
	}
}
