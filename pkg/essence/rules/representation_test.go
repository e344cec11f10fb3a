package rules

import (
	"testing"

	"github.com/gitrdm/essencelogic/pkg/essence"
)

func TestSelectRepresentationRuleMaterialisesConstituentsOnce(t *testing.T) {
	symbols := essence.NewSymbolTable()
	decl := essence.NewDeclaration(essence.DeclDecisionVariable, essence.UserName("t"))
	decl.Domain = essence.Tuple(essence.Bool(), essence.Bool())
	symbols.Insert(decl)
	ref := essence.NewAtomExpr(essence.AtomRef(decl))

	reduction, err := selectRepresentationRule.Apply(ref, symbols)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reduction.NewSymbols) != 2 {
		t.Fatalf("expected 2 constituent declarations for a 2-tuple, got %d", len(reduction.NewSymbols))
	}
	repr, ok := symbols.Representation(decl.Name)
	if !ok || repr != "tuple" {
		t.Fatalf("expected the tuple representation to be recorded, got %q, %v", repr, ok)
	}

	// Applying it again must decline: the choice is already recorded.
	_, err = selectRepresentationRule.Apply(ref, symbols)
	if !essence.ErrRuleNotApplicable.Is(err) {
		t.Fatalf("expected a second application to be not-applicable, got %v", err)
	}
}

func TestSelectRepresentationRuleNotApplicableWhenNoStrategyMatches(t *testing.T) {
	symbols := essence.NewSymbolTable()
	decl := essence.NewDeclaration(essence.DeclDecisionVariable, essence.UserName("b"))
	decl.Domain = essence.Bool()
	symbols.Insert(decl)
	ref := essence.NewAtomExpr(essence.AtomRef(decl))

	_, err := selectRepresentationRule.Apply(ref, symbols)
	if !essence.ErrRuleNotApplicable.Is(err) {
		t.Fatalf("expected ErrRuleNotApplicable for a plain bool domain, got %v", err)
	}
}

func TestLowerIndexRuleRewritesOnceRepresented(t *testing.T) {
	symbols := essence.NewSymbolTable()
	decl := essence.NewDeclaration(essence.DeclDecisionVariable, essence.UserName("m"))
	decl.Domain = essence.Matrix(essence.Bool(), essence.Int(essence.SingleRange(1)))
	symbols.Insert(decl)
	ref := essence.NewAtomExpr(essence.AtomRef(decl))

	if _, err := selectRepresentationRule.Apply(ref, symbols); err != nil {
		t.Fatalf("unexpected error selecting representation: %v", err)
	}

	idxExpr := essence.NewIndex(ref, essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(1))))
	reduction, err := lowerIndexRule.Apply(idxExpr, symbols)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	atom, ok := reduction.NewExpression.(*essence.AtomExpr)
	if !ok || atom.Atom.Kind != essence.AtomReference {
		t.Fatalf("expected a reference to the flattened constituent, got %T", reduction.NewExpression)
	}
}

func TestLowerIndexRuleNotApplicableBeforeRepresentationSelected(t *testing.T) {
	symbols := essence.NewSymbolTable()
	decl := essence.NewDeclaration(essence.DeclDecisionVariable, essence.UserName("m"))
	decl.Domain = essence.Matrix(essence.Bool(), essence.Int(essence.SingleRange(1)))
	symbols.Insert(decl)
	ref := essence.NewAtomExpr(essence.AtomRef(decl))
	idxExpr := essence.NewIndex(ref, essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(1))))

	_, err := lowerIndexRule.Apply(idxExpr, symbols)
	if !essence.ErrRuleNotApplicable.Is(err) {
		t.Fatalf("expected ErrRuleNotApplicable before select_representation has run, got %v", err)
	}
}
