package essence

import "testing"

func intAtom(n int) Expression { return NewAtomExpr(AtomLit(IntLiteral(n))) }

func TestUniverseVisitsEveryNodePreorder(t *testing.T) {
	tree := NewNaryArith(OpSum, []Expression{
		intAtom(1),
		NewUnaryArith(OpNeg, intAtom(2)),
	})

	u := Universe(tree)
	if len(u) != 4 {
		t.Fatalf("expected 4 nodes (root, leaf, unary+its leaf), got %d", len(u))
	}
	if _, ok := u[0].(*NaryArith); !ok {
		t.Errorf("expected root first in preorder, got %T", u[0])
	}
}

func TestContextsFillRebuildsWholeTree(t *testing.T) {
	tree := NewNaryArith(OpSum, []Expression{intAtom(1), intAtom(2)})
	positions := Contexts(tree)

	if len(positions) != 3 {
		t.Fatalf("expected 3 positions (root + 2 leaves), got %d", len(positions))
	}

	// Replace the second leaf (index 2) with a fresh literal and confirm the
	// whole tree is rebuilt with only that position changed.
	replaced := positions[2].Fill(intAtom(99))
	sum, ok := replaced.(*NaryArith)
	if !ok {
		t.Fatalf("expected *NaryArith after Fill, got %T", replaced)
	}
	if !ExpressionsEqual(sum.Args[0], intAtom(1)) {
		t.Errorf("expected first arg untouched")
	}
	if !ExpressionsEqual(sum.Args[1], intAtom(99)) {
		t.Errorf("expected second arg replaced with 99")
	}
}

func TestTransformReachesFixedPoint(t *testing.T) {
	// Sum() with zero args repeatedly simplifies to 0 via a hand-rolled
	// rewrite rule, exercising the same fixed-point contract RewriteNaive
	// relies on from Transform.
	tree := NewNaryArith(OpSum, []Expression{
		NewNaryArith(OpSum, nil),
		intAtom(5),
	})

	simplifyEmptySum := func(e Expression) Expression {
		if s, ok := e.(*NaryArith); ok && s.Op == OpSum && len(s.Args) == 0 {
			return intAtom(0)
		}
		return e
	}

	out := Transform(tree, simplifyEmptySum)
	sum, ok := out.(*NaryArith)
	if !ok {
		t.Fatalf("expected *NaryArith, got %T", out)
	}
	if !ExpressionsEqual(sum.Args[0], intAtom(0)) {
		t.Errorf("expected empty inner sum rewritten to 0, got %s", sum.Args[0].String())
	}
}

func TestCataCountsNodes(t *testing.T) {
	tree := NewNaryArith(OpSum, []Expression{intAtom(1), intAtom(2), intAtom(3)})
	count := Cata(tree, func(_ Expression, children []int) int {
		total := 1
		for _, c := range children {
			total += c
		}
		return total
	})
	if count != 4 {
		t.Errorf("expected 4 nodes total, got %d", count)
	}
}

func TestTreeFlattenAndRebuildRoundTrip(t *testing.T) {
	tree := TreeMany([]Tree[int]{
		TreeOne(1),
		TreeZero[int](),
		TreeMany([]Tree[int]{TreeOne(2), TreeOne(3)}),
	})

	flat := tree.Flatten()
	if len(flat) != 3 || flat[0] != 1 || flat[1] != 2 || flat[2] != 3 {
		t.Fatalf("unexpected flatten result: %v", flat)
	}

	rebuilt, rest := tree.Rebuild([]int{10, 20, 30})
	if len(rest) != 0 {
		t.Errorf("expected no leftover values, got %d", len(rest))
	}
	if got := rebuilt.Flatten(); got[0] != 10 || got[1] != 20 || got[2] != 30 {
		t.Errorf("unexpected rebuilt flatten: %v", got)
	}
}
