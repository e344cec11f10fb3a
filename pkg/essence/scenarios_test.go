package essence_test

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/gitrdm/essencelogic/pkg/essence"
	_ "github.com/gitrdm/essencelogic/pkg/essence/rules"
)

// scenarios_test.go exercises the naive rewriter end to end against the six
// concrete scenarios spec.md §8 names (S1-S6), each built directly against
// the real, registered rule sets in pkg/essence/rules rather than a
// hand-rolled test-only rule, so a break anywhere in the rewriter/rule/
// representation stack shows up here.

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func resolveRuleSets(t *testing.T, names ...string) []*essence.RuleSet {
	t.Helper()
	sets, err := essence.GlobalRegistry().ResolveRuleSets(names)
	if err != nil {
		t.Fatalf("resolving rule sets %v: %v", names, err)
	}
	return sets
}

// S1 (division with side condition): `find a,b: int(-5..5), c: int(-5..5);
// such that a / b = c`. After rewriting with solver=minion, the constraint
// set must contain MinionDivEqUndefZero(a, b, c) and b != 0 as separate
// top-level constraints; no UnsafeDiv or Bubble remains.
func TestScenarioS1DivisionWithSideCondition(t *testing.T) {
	model := essence.NewModel()
	a := essence.NewDeclaration(essence.DeclDecisionVariable, essence.UserName("a"))
	a.Domain = essence.Int(essence.BoundedRange(-5, 5))
	b := essence.NewDeclaration(essence.DeclDecisionVariable, essence.UserName("b"))
	b.Domain = essence.Int(essence.BoundedRange(-5, 5))
	c := essence.NewDeclaration(essence.DeclDecisionVariable, essence.UserName("c"))
	c.Domain = essence.Int(essence.BoundedRange(-5, 5))
	model.Root.Symbols.Insert(a)
	model.Root.Symbols.Insert(b)
	model.Root.Symbols.Insert(c)

	aRef := essence.NewAtomExpr(essence.AtomRef(a))
	bRef := essence.NewAtomExpr(essence.AtomRef(b))
	cRef := essence.NewAtomExpr(essence.AtomRef(c))
	model.Root.AddConstraint(essence.NewCompare(essence.OpEq, essence.NewBinaryArith(essence.OpUnsafeDiv, aRef, bRef), cRef))

	out, _, err := essence.RewriteNaive(model, essence.RewriterOptions{
		RuleSets: resolveRuleSets(t, "base", "bubble", "minion_arith"),
		Log:      quietLog(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	constraints := out.Constraints()
	if len(constraints) != 2 {
		t.Fatalf("expected 2 top-level constraints (div + side condition), got %d: %v", len(constraints), constraints)
	}

	var sawDiv, sawNeqZero bool
	for _, c := range constraints {
		switch e := c.(type) {
		case *essence.MinionDivEqUndefZero:
			sawDiv = true
		case *essence.Compare:
			if e.Op == essence.OpNeq {
				sawNeqZero = true
			}
		}
	}
	if !sawDiv {
		t.Errorf("expected a MinionDivEqUndefZero constraint, got %v", constraints)
	}
	if !sawNeqZero {
		t.Errorf("expected a b != 0 side condition, got %v", constraints)
	}

	for _, node := range essence.Universe(essence.NewNaryLogic(essence.OpAnd, constraints)) {
		if _, ok := node.(*essence.BinaryArith); ok {
			t.Errorf("expected no UnsafeDiv to remain, found %s", node.String())
		}
		if _, ok := node.(*essence.Bubble); ok {
			t.Errorf("expected no Bubble to remain, found %s", node.String())
		}
	}
}

// S2 (matrix representation): `find m: matrix indexed by [int(1..2)] of
// int(0..3); such that m[1] + m[2] = 3`. After representation selection and
// rewriting, the symbol table contains declarations m#matrix_to_atom_1 and
// m#matrix_to_atom_2, each with domain int(0..3); the constraint is
// m#matrix_to_atom_1 + m#matrix_to_atom_2 = 3.
func TestScenarioS2MatrixRepresentation(t *testing.T) {
	model := essence.NewModel()
	m := essence.NewDeclaration(essence.DeclDecisionVariable, essence.UserName("m"))
	m.Domain = essence.Matrix(essence.Int(essence.BoundedRange(0, 3)), essence.Int(essence.BoundedRange(1, 2)))
	model.Root.Symbols.Insert(m)

	mRef := essence.NewAtomExpr(essence.AtomRef(m))
	idx1 := essence.NewIndex(mRef, essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(1))))
	idx2 := essence.NewIndex(mRef, essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(2))))
	model.Root.AddConstraint(essence.NewCompare(essence.OpEq,
		essence.NewNaryArith(essence.OpSum, []essence.Expression{idx1, idx2}),
		essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(3)))))

	out, _, err := essence.RewriteNaive(model, essence.RewriterOptions{
		RuleSets: resolveRuleSets(t, "representation"),
		Log:      quietLog(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name1 := essence.RepresentedName(m.Name, "matrix_to_atom", []essence.Literal{essence.IntLiteral(1)})
	name2 := essence.RepresentedName(m.Name, "matrix_to_atom", []essence.Literal{essence.IntLiteral(2)})
	if name1.String() != "m#matrix_to_atom_1" || name2.String() != "m#matrix_to_atom_2" {
		t.Fatalf("unexpected constituent name format: %s, %s", name1.String(), name2.String())
	}

	decl1, ok := out.Root.Symbols.Lookup(name1)
	if !ok {
		t.Fatalf("expected %s to be declared", name1.String())
	}
	decl2, ok := out.Root.Symbols.Lookup(name2)
	if !ok {
		t.Fatalf("expected %s to be declared", name2.String())
	}
	wantDomain := essence.Int(essence.BoundedRange(0, 3)).String()
	if decl1.Domain.String() != wantDomain || decl2.Domain.String() != wantDomain {
		t.Errorf("expected both constituents to carry domain int(0..3), got %s and %s", decl1.Domain.String(), decl2.Domain.String())
	}

	want := essence.NewCompare(essence.OpEq,
		essence.NewNaryArith(essence.OpSum, []essence.Expression{
			essence.NewAtomExpr(essence.AtomRef(decl1)),
			essence.NewAtomExpr(essence.AtomRef(decl2)),
		}),
		essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(3))))
	if len(out.Constraints()) != 1 || !essence.ExpressionsEqual(out.Constraints()[0], want) {
		t.Errorf("expected %s, got %v", want.String(), out.Constraints())
	}
}

// S3 (sum of constants): input expression sum([1,2,3, x]) where x is a
// decision variable. Rewriter yields sum([x, 6]) (constant folded; the
// sum's constant canonically trails its non-literal arguments) and no
// further rule applies.
func TestScenarioS3SumOfConstants(t *testing.T) {
	model := essence.NewModel()
	x := essence.NewDeclaration(essence.DeclDecisionVariable, essence.UserName("x"))
	x.Domain = essence.Int(essence.BoundedRange(0, 10))
	model.Root.Symbols.Insert(x)
	xRef := essence.NewAtomExpr(essence.AtomRef(x))

	model.Root.AddConstraint(essence.NewNaryArith(essence.OpSum, []essence.Expression{
		essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(1))),
		essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(2))),
		essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(3))),
		xRef,
	}))

	out, stats, err := essence.RewriteNaive(model, essence.RewriterOptions{
		RuleSets: resolveRuleSets(t, "base"),
		Log:      quietLog(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := essence.NewNaryArith(essence.OpSum, []essence.Expression{
		xRef,
		essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(6))),
	})
	if len(out.Constraints()) != 1 || !essence.ExpressionsEqual(out.Constraints()[0], want) {
		t.Fatalf("expected %s, got %v", want.String(), out.Constraints())
	}

	// A second pass must find nothing left to do.
	_, stats2, err := essence.RewriteNaive(out, essence.RewriterOptions{
		RuleSets: resolveRuleSets(t, "base"),
		Log:      quietLog(),
	})
	if err != nil {
		t.Fatalf("unexpected error on idempotence check: %v", err)
	}
	if stats2.RulesApplied != 0 {
		t.Errorf("expected the canonical sum to admit no further rule, got %d applications (first pass: %d)", stats2.RulesApplied, stats.RulesApplied)
	}
}

// S4 (min lifting): `find x,y,z: int(0..10); such that min([x,y]) = z`.
// Introduces one aux v (with min_to_var's placeholder domain, not one
// narrowed to int(0..10) from x and y), top-level constraints
// v <= x, v <= y, or(v = x, v = y), and the original equality becomes
// v = z.
func TestScenarioS4MinLifting(t *testing.T) {
	model := essence.NewModel()
	x := essence.NewDeclaration(essence.DeclDecisionVariable, essence.UserName("x"))
	x.Domain = essence.Int(essence.BoundedRange(0, 10))
	y := essence.NewDeclaration(essence.DeclDecisionVariable, essence.UserName("y"))
	y.Domain = essence.Int(essence.BoundedRange(0, 10))
	z := essence.NewDeclaration(essence.DeclDecisionVariable, essence.UserName("z"))
	z.Domain = essence.Int(essence.BoundedRange(0, 10))
	model.Root.Symbols.Insert(x)
	model.Root.Symbols.Insert(y)
	model.Root.Symbols.Insert(z)

	xRef := essence.NewAtomExpr(essence.AtomRef(x))
	yRef := essence.NewAtomExpr(essence.AtomRef(y))
	zRef := essence.NewAtomExpr(essence.AtomRef(z))
	model.Root.AddConstraint(essence.NewCompare(essence.OpEq,
		essence.NewNaryArith(essence.OpMin, []essence.Expression{xRef, yRef}), zRef))

	out, _, err := essence.RewriteNaive(model, essence.RewriterOptions{
		RuleSets: resolveRuleSets(t, "base"),
		Log:      quietLog(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	constraints := out.Constraints()
	if len(constraints) != 4 {
		t.Fatalf("expected v<=x, v<=y, or(v=x,v=y) and v=z (4 constraints), got %d: %v", len(constraints), constraints)
	}

	var leqCount int
	var sawWitness, sawFinalEq bool
	for _, c := range constraints {
		switch e := c.(type) {
		case *essence.Compare:
			if e.Op == essence.OpLeq {
				leqCount++
			}
			if e.Op == essence.OpEq {
				if r, ok := e.Right.(*essence.AtomExpr); ok && r.Atom.Kind == essence.AtomReference && r.Atom.Ref == z {
					sawFinalEq = true
				}
			}
		case *essence.NaryLogic:
			if e.Op == essence.OpOr && len(e.Args) == 2 {
				sawWitness = true
			}
		}
	}
	if leqCount != 2 {
		t.Errorf("expected 2 Leq bounds, got %d", leqCount)
	}
	if !sawWitness {
		t.Errorf("expected an or(v=x,v=y) witness constraint, got %v", constraints)
	}
	if !sawFinalEq {
		t.Errorf("expected the original equality to become v = z, got %v", constraints)
	}
}

// S5 (comprehension native vs via-solver): and([x[i] <= 5 | i: int(1..3)])
// with x a length-3 matrix produces, in both strategies, the conjunction
// and([x[1] <= 5, x[2] <= 5, x[3] <= 5]).
func TestScenarioS5ComprehensionNativeVsViaSolver(t *testing.T) {
	x := essence.NewDeclaration(essence.DeclDecisionVariable, essence.UserName("x"))
	x.Domain = essence.Matrix(essence.Int(essence.BoundedRange(0, 10)), essence.Int(essence.BoundedRange(1, 3)))
	xRef := essence.NewAtomExpr(essence.AtomRef(x))

	iDom := essence.Int(essence.BoundedRange(1, 3))
	iDecl := essence.NewDeclaration(essence.DeclQuantified, essence.UserName("i"))
	iDecl.Domain = iDom
	iRef := essence.NewAtomExpr(essence.AtomRef(iDecl))

	body := essence.NewCompare(essence.OpLeq, essence.NewIndex(xRef, iRef), essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(5))))

	want := essence.NewNaryLogic(essence.OpAnd, []essence.Expression{
		essence.NewCompare(essence.OpLeq, essence.NewIndex(xRef, essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(1)))), essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(5)))),
		essence.NewCompare(essence.OpLeq, essence.NewIndex(xRef, essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(2)))), essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(5)))),
		essence.NewCompare(essence.OpLeq, essence.NewIndex(xRef, essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(3)))), essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(5)))),
	})

	t.Run("native, end to end through the rewriter", func(t *testing.T) {
		native := essence.NewComprehension(body, []essence.Generator{{Decl: iDecl, Dom: &iDom}}, nil)
		model := essence.NewModel()
		model.Root.Symbols.Insert(x)
		model.Root.AddConstraint(essence.NewNaryLogic(essence.OpAnd, []essence.Expression{native}))

		out, _, err := essence.RewriteNaive(model, essence.RewriterOptions{
			RuleSets: resolveRuleSets(t, "comprehension_expansion"),
			Log:      quietLog(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Constraints()) != 1 || !essence.ExpressionsEqual(out.Constraints()[0], want) {
			t.Fatalf("expected %s, got %v", want.String(), out.Constraints())
		}
	})

	t.Run("via solver, same result", func(t *testing.T) {
		forced := essence.NewComprehension(body, []essence.Generator{{
			Decl: iDecl,
			Dom:  &iDom,
			Over: essence.NewAtomExpr(essence.AtomLit(essence.BoolLiteral(true))), // forces ChooseExpansionStrategy off the native path
		}}, nil)
		solve := func(gens []essence.Generator, guards []essence.Expression) ([]essence.BindingValues, error) {
			vs, _ := iDom.Values()
			out := make([]essence.BindingValues, len(vs))
			for i, v := range vs {
				out[i] = essence.BindingValues{v}
			}
			return out, nil
		}
		got, err := essence.ExpandComprehension(forced, essence.NewSymbolTable(), true, essence.OpAnd, solve)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !essence.ExpressionsEqual(got, want) {
			t.Errorf("expected via-solver expansion to match native expansion %s, got %s", want.String(), got.String())
		}
	})
}

// S6 (SAT direct-int equality): with sat_direct_int encoding and domain
// int(1..3), equality x = y after rewriting is and_i(x_i <-> y_i)
// expressed in CNF via Tseytin clauses.
func TestScenarioS6SatDirectIntEquality(t *testing.T) {
	essence.SetIntEncoding("sat_direct_int")
	defer essence.SetIntEncoding("sat_order")

	model := essence.NewModel()
	x := essence.NewDeclaration(essence.DeclDecisionVariable, essence.UserName("x"))
	x.Domain = essence.Int(essence.BoundedRange(1, 3))
	y := essence.NewDeclaration(essence.DeclDecisionVariable, essence.UserName("y"))
	y.Domain = essence.Int(essence.BoundedRange(1, 3))
	model.Root.Symbols.Insert(x)
	model.Root.Symbols.Insert(y)
	model.Root.AddConstraint(essence.NewCompare(essence.OpEq, essence.NewAtomExpr(essence.AtomRef(x)), essence.NewAtomExpr(essence.AtomRef(y))))

	out, _, err := essence.RewriteNaive(model, essence.RewriterOptions{
		RuleSets: resolveRuleSets(t, "representation", "sat_direct_encoding"),
		Log:      quietLog(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	constraints := out.Constraints()
	if len(constraints) != 3 {
		t.Fatalf("expected the CNF equality plus an exactly-one constraint per variable (3 total), got %d: %v", len(constraints), constraints)
	}

	eq, ok := constraints[0].(*essence.NaryLogic)
	if !ok || eq.Op != essence.OpAnd || len(eq.Args) != 3 {
		t.Fatalf("expected a 3-clause And (one per domain value) as the lowered equality, got %T", constraints[0])
	}
	for _, clause := range eq.Args {
		or, ok := clause.(*essence.NaryLogic)
		if !ok || or.Op != essence.OpOr || len(or.Args) != 2 {
			t.Errorf("expected each bit's equivalence to be an Or of two And branches, got %T", clause)
			continue
		}
		for _, branch := range or.Args {
			and, ok := branch.(*essence.NaryLogic)
			if !ok || and.Op != essence.OpAnd || len(and.Args) != 2 {
				t.Errorf("expected each branch to be a 2-way And, got %T", branch)
			}
		}
	}

	for _, c := range constraints[1:] {
		exactlyOne, ok := c.(*essence.NaryLogic)
		if !ok || exactlyOne.Op != essence.OpAnd {
			t.Errorf("expected an exactly-one constraint (Or plus pairwise nots), got %T", c)
		}
	}
}
