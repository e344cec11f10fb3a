package essence

import (
	"fmt"
	"strings"
)

// ArithNaryOp discriminates the n-ary arithmetic variants of spec.md §3's
// high-tier Expression: Sum, Product, Min, Max.
type ArithNaryOp int

const (
	OpSum ArithNaryOp = iota
	OpProduct
	OpMin
	OpMax
)

func (op ArithNaryOp) String() string {
	switch op {
	case OpSum:
		return "Sum"
	case OpProduct:
		return "Product"
	case OpMin:
		return "Min"
	default:
		return "Max"
	}
}

// NaryArith is a variadic arithmetic expression (Sum, Product, Min, Max).
type NaryArith struct {
	meta Metadata
	Op   ArithNaryOp
	Args []Expression
}

// NewNaryArith constructs an n-ary arithmetic node with fresh metadata.
func NewNaryArith(op ArithNaryOp, args []Expression) *NaryArith {
	return &NaryArith{meta: NewMetadata(), Op: op, Args: args}
}

func (e *NaryArith) Meta() Metadata { return e.meta }
func (e *NaryArith) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *NaryArith) Children() []Expression { return e.Args }
func (e *NaryArith) Rebuild(children []Expression) Expression {
	return &NaryArith{meta: e.meta.MarkDirty(), Op: e.Op, Args: children}
}
func (e *NaryArith) CloneValue() Expression {
	args := make([]Expression, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.CloneValue()
	}
	return &NaryArith{meta: e.meta, Op: e.Op, Args: args}
}
func (e *NaryArith) Equal(other Expression) bool {
	o, ok := other.(*NaryArith)
	if !ok || o.Op != e.Op {
		return false
	}
	return equalChildren(e, o)
}
func (e *NaryArith) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Op, strings.Join(parts, ","))
}

// ArithUnaryOp discriminates Abs and Neg.
type ArithUnaryOp int

const (
	OpAbs ArithUnaryOp = iota
	OpNeg
)

func (op ArithUnaryOp) String() string {
	if op == OpAbs {
		return "Abs"
	}
	return "Neg"
}

// UnaryArith is a unary arithmetic expression (Abs, Neg).
type UnaryArith struct {
	meta Metadata
	Op   ArithUnaryOp
	Arg  Expression
}

// NewUnaryArith constructs a unary arithmetic node with fresh metadata.
func NewUnaryArith(op ArithUnaryOp, arg Expression) *UnaryArith {
	return &UnaryArith{meta: NewMetadata(), Op: op, Arg: arg}
}

func (e *UnaryArith) Meta() Metadata { return e.meta }
func (e *UnaryArith) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *UnaryArith) Children() []Expression { return []Expression{e.Arg} }
func (e *UnaryArith) Rebuild(children []Expression) Expression {
	return &UnaryArith{meta: e.meta.MarkDirty(), Op: e.Op, Arg: children[0]}
}
func (e *UnaryArith) CloneValue() Expression {
	return &UnaryArith{meta: e.meta, Op: e.Op, Arg: e.Arg.CloneValue()}
}
func (e *UnaryArith) Equal(other Expression) bool {
	o, ok := other.(*UnaryArith)
	if !ok || o.Op != e.Op {
		return false
	}
	return equalChildren(e, o)
}
func (e *UnaryArith) String() string {
	return fmt.Sprintf("%s(%s)", e.Op, e.Arg.String())
}

// ArithBinaryOp discriminates the partial (possibly-undefined) binary
// arithmetic operators: UnsafeDiv, UnsafeMod, UnsafePow. "Unsafe" names
// follow spec.md's own vocabulary: evaluating them at a point where they
// are mathematically undefined (e.g. division by zero) is a modelling
// error the rewriter must guard with Bubble, not a runtime panic.
type ArithBinaryOp int

const (
	OpUnsafeDiv ArithBinaryOp = iota
	OpUnsafeMod
	OpUnsafePow
)

func (op ArithBinaryOp) String() string {
	switch op {
	case OpUnsafeDiv:
		return "UnsafeDiv"
	case OpUnsafeMod:
		return "UnsafeMod"
	default:
		return "UnsafePow"
	}
}

// BinaryArith is a partial binary arithmetic expression.
type BinaryArith struct {
	meta        Metadata
	Op          ArithBinaryOp
	Left, Right Expression
}

// NewBinaryArith constructs a binary arithmetic node with fresh metadata.
func NewBinaryArith(op ArithBinaryOp, left, right Expression) *BinaryArith {
	return &BinaryArith{meta: NewMetadata(), Op: op, Left: left, Right: right}
}

func (e *BinaryArith) Meta() Metadata { return e.meta }
func (e *BinaryArith) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *BinaryArith) Children() []Expression { return []Expression{e.Left, e.Right} }
func (e *BinaryArith) Rebuild(children []Expression) Expression {
	return &BinaryArith{meta: e.meta.MarkDirty(), Op: e.Op, Left: children[0], Right: children[1]}
}
func (e *BinaryArith) CloneValue() Expression {
	return &BinaryArith{meta: e.meta, Op: e.Op, Left: e.Left.CloneValue(), Right: e.Right.CloneValue()}
}
func (e *BinaryArith) Equal(other Expression) bool {
	o, ok := other.(*BinaryArith)
	if !ok || o.Op != e.Op {
		return false
	}
	return equalChildren(e, o)
}
func (e *BinaryArith) String() string {
	return fmt.Sprintf("%s(%s,%s)", e.Op, e.Left.String(), e.Right.String())
}

// AtomExpr lifts a leaf Atom (a Literal or a Reference) into an Expression.
type AtomExpr struct {
	meta Metadata
	Atom Atom
}

// NewAtomExpr constructs a leaf expression wrapping a.
func NewAtomExpr(a Atom) *AtomExpr { return &AtomExpr{meta: NewMetadata(), Atom: a} }

func (e *AtomExpr) Meta() Metadata { return e.meta }
func (e *AtomExpr) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *AtomExpr) Children() []Expression { return nil }
func (e *AtomExpr) Rebuild(children []Expression) Expression {
	return &AtomExpr{meta: e.meta, Atom: e.Atom}
}
func (e *AtomExpr) CloneValue() Expression {
	return &AtomExpr{meta: e.meta, Atom: e.Atom.CloneValue()}
}
func (e *AtomExpr) Equal(other Expression) bool {
	o, ok := other.(*AtomExpr)
	return ok && e.Atom.Equal(o.Atom)
}
func (e *AtomExpr) String() string { return e.Atom.String() }
