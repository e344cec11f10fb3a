package essence

import "testing"

func TestZipperDownToAndUpRebuildsParent(t *testing.T) {
	tree := NewNaryArith(OpSum, []Expression{intAtom(1), intAtom(2)})
	z := NewZipper(tree)

	if !z.DownTo(1) {
		t.Fatal("expected DownTo(1) to succeed")
	}
	if !ExpressionsEqual(z.Focus(), intAtom(2)) {
		t.Fatalf("expected focus on the second arg, got %s", z.Focus().String())
	}

	z.Replace(intAtom(99))
	if !z.Up() {
		t.Fatal("expected Up to succeed")
	}

	rebuilt, ok := z.Focus().(*NaryArith)
	if !ok {
		t.Fatalf("expected *NaryArith after Up, got %T", z.Focus())
	}
	if !ExpressionsEqual(rebuilt.Args[0], intAtom(1)) {
		t.Error("expected the first arg to be untouched")
	}
	if !ExpressionsEqual(rebuilt.Args[1], intAtom(99)) {
		t.Error("expected the second arg to reflect the replacement")
	}
}

func TestZipperDownToOutOfRangeFails(t *testing.T) {
	tree := NewNaryArith(OpSum, []Expression{intAtom(1)})
	z := NewZipper(tree)
	if z.DownTo(5) {
		t.Error("expected DownTo with an out-of-range index to fail")
	}
	if z.Depth() != 0 {
		t.Error("expected depth to stay 0 after a failed DownTo")
	}
}

func TestZipperUpAtRootFails(t *testing.T) {
	z := NewZipper(intAtom(1))
	if z.Up() {
		t.Error("expected Up at the root to fail")
	}
}

func TestZipperTopClimbsAllTheWayAfterNestedEdit(t *testing.T) {
	tree := NewNot(NewNaryArith(OpSum, []Expression{intAtom(1), intAtom(2)}))
	z := NewZipper(tree)

	z.DownTo(0) // into the Sum
	z.DownTo(1) // into the second summand
	z.Replace(intAtom(42))

	top := z.Top()
	want := NewNot(NewNaryArith(OpSum, []Expression{intAtom(1), intAtom(42)}))
	if !ExpressionsEqual(top, want) {
		t.Errorf("expected %s, got %s", want.String(), top.String())
	}
	if z.Depth() != 0 {
		t.Errorf("expected depth 0 at the root, got %d", z.Depth())
	}
}
