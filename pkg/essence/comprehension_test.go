package essence

import "testing"

func genOverDomain(name string, d Domain) Generator {
	decl := NewDeclaration(DeclQuantified, UserName(name))
	decl.Domain = d
	return Generator{Decl: decl, Dom: &d}
}

func refTo(g Generator) Expression { return NewAtomExpr(AtomRef(g.Decl)) }

func TestChooseExpansionStrategyPicksNativeForDomainGenerators(t *testing.T) {
	g := genOverDomain("x", Int(BoundedRange(1, 3)))
	c := NewComprehension(refTo(g), []Generator{g}, nil)
	if got := ChooseExpansionStrategy(c); got != ExpandNative {
		t.Errorf("expected ExpandNative, got %v", got)
	}
}

func TestChooseExpansionStrategyPicksSolverForExpressionGenerators(t *testing.T) {
	decl := NewDeclaration(DeclQuantified, UserName("x"))
	g := Generator{Decl: decl, Over: NewAtomExpr(AtomRef(NewDeclaration(DeclDecisionVariable, UserName("s"))))}
	c := NewComprehension(NewAtomExpr(AtomRef(decl)), []Generator{g}, nil)
	if got := ChooseExpansionStrategy(c); got != ExpandViaSolver {
		t.Errorf("expected ExpandViaSolver, got %v", got)
	}
}

func TestExpandComprehensionNativeMatrixLit(t *testing.T) {
	symbols := NewSymbolTable()
	g := genOverDomain("x", Int(BoundedRange(1, 3)))
	c := NewComprehension(refTo(g), []Generator{g}, nil)

	out, err := ExpandComprehension(c, symbols, false, OpAnd, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := out.(*MatrixLit)
	if !ok {
		t.Fatalf("expected *MatrixLit, got %T", out)
	}
	if len(m.Args) != 3 {
		t.Fatalf("expected 3 instances (1,2,3), got %d", len(m.Args))
	}
	for i, want := range []int{1, 2, 3} {
		if !ExpressionsEqual(m.Args[i], intAtom(want)) {
			t.Errorf("position %d: expected %d, got %s", i, want, m.Args[i].String())
		}
	}
}

func TestExpandComprehensionAppliesGuards(t *testing.T) {
	symbols := NewSymbolTable()
	g := genOverDomain("x", Int(BoundedRange(1, 5)))
	guard := NewCompare(OpGeq, refTo(g), intAtom(3))
	c := NewComprehension(refTo(g), []Generator{g}, []Expression{guard})

	out, err := ExpandComprehension(c, symbols, false, OpAnd, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := out.(*MatrixLit)
	if len(m.Args) != 3 {
		t.Fatalf("expected values 3,4,5 to survive the guard, got %d instances", len(m.Args))
	}
}

func TestExpandComprehensionAsBoolProducesNaryLogic(t *testing.T) {
	symbols := NewSymbolTable()
	g := genOverDomain("x", Int(BoundedRange(1, 2)))
	c := NewComprehension(NewCompare(OpGeq, refTo(g), intAtom(0)), []Generator{g}, nil)

	out, err := ExpandComprehension(c, symbols, true, OpAnd, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logic, ok := out.(*NaryLogic)
	if !ok || logic.Op != OpAnd {
		t.Fatalf("expected an And of two instances, got %T", out)
	}
	if len(logic.Args) != 2 {
		t.Errorf("expected 2 instances, got %d", len(logic.Args))
	}
}

func TestExpandComprehensionMultipleGeneratorsCartesianProduct(t *testing.T) {
	symbols := NewSymbolTable()
	gx := genOverDomain("x", Int(BoundedRange(1, 2)))
	gy := genOverDomain("y", Int(BoundedRange(1, 2)))
	body := NewCompare(OpEq, refTo(gx), refTo(gy))
	c := NewComprehension(body, []Generator{gx, gy}, nil)

	out, err := ExpandComprehension(c, symbols, false, OpAnd, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := out.(*MatrixLit)
	if len(m.Args) != 4 {
		t.Fatalf("expected 2*2=4 instances, got %d", len(m.Args))
	}
}

// TestEvaluateGuardsParallelMatchesSequentialOrder confirms the parallel
// fan-out path (triggered once candidates cross
// nativeExpansionParallelThreshold) produces results in the same order as
// the sequential path, regardless of which worker finishes first.
func TestEvaluateGuardsParallelMatchesSequentialOrder(t *testing.T) {
	symbols := NewSymbolTable()
	g := genOverDomain("x", Int(BoundedRange(1, 300)))
	guard := NewCompare(OpLt, refTo(g), intAtom(150))
	c := NewComprehension(refTo(g), []Generator{g}, []Expression{guard})

	vs, _ := g.Dom.Values()
	candidates := make([]BindingValues, len(vs))
	for i, v := range vs {
		candidates[i] = BindingValues{v}
	}
	if len(candidates) < nativeExpansionParallelThreshold {
		t.Fatalf("expected candidate count to cross the parallel threshold, got %d", len(candidates))
	}

	parallelResult := evaluateGuards(c, candidates, symbols)

	sequential := make([]bool, len(candidates))
	for i, candidate := range candidates {
		sequential[i] = guardsHold(c, candidate, symbols)
	}

	if len(parallelResult) != len(sequential) {
		t.Fatalf("length mismatch: %d vs %d", len(parallelResult), len(sequential))
	}
	for i := range sequential {
		if parallelResult[i] != sequential[i] {
			t.Errorf("position %d: expected %v, got %v", i, sequential[i], parallelResult[i])
		}
	}
}

func TestFoldConstantComparisons(t *testing.T) {
	symbols := NewSymbolTable()
	expr := NewCompare(OpLt, intAtom(2), intAtom(3))
	lit, ok := foldConstant(expr, symbols)
	if !ok || lit.Kind != LiteralBool || !lit.Bool {
		t.Fatalf("expected 2<3 to fold to true, got %v, %v", lit, ok)
	}
}

func TestFoldConstantNaryLogic(t *testing.T) {
	symbols := NewSymbolTable()
	and := NewNaryLogic(OpAnd, []Expression{
		NewCompare(OpEq, intAtom(1), intAtom(1)),
		NewCompare(OpEq, intAtom(1), intAtom(2)),
	})
	lit, ok := foldConstant(and, symbols)
	if !ok || lit.Bool {
		t.Fatalf("expected And(true,false) to fold to false, got %v, %v", lit, ok)
	}
}

func TestFoldConstantRejectsNonConstant(t *testing.T) {
	symbols := NewSymbolTable()
	decl := NewDeclaration(DeclDecisionVariable, UserName("x"))
	_, ok := foldConstant(NewAtomExpr(AtomRef(decl)), symbols)
	if ok {
		t.Error("expected a decision-variable reference to not constant-fold")
	}
}
