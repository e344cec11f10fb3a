package essence

import (
	"fmt"
	"strings"
)

// LogicNaryOp discriminates And and Or.
type LogicNaryOp int

const (
	OpAnd LogicNaryOp = iota
	OpOr
)

func (op LogicNaryOp) String() string {
	if op == OpAnd {
		return "And"
	}
	return "Or"
}

// NaryLogic is a variadic boolean connective (And, Or).
type NaryLogic struct {
	meta Metadata
	Op   LogicNaryOp
	Args []Expression
}

// NewNaryLogic constructs an n-ary logic node with fresh metadata.
func NewNaryLogic(op LogicNaryOp, args []Expression) *NaryLogic {
	return &NaryLogic{meta: NewMetadata(), Op: op, Args: args}
}

func (e *NaryLogic) Meta() Metadata { return e.meta }
func (e *NaryLogic) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *NaryLogic) Children() []Expression { return e.Args }
func (e *NaryLogic) Rebuild(children []Expression) Expression {
	return &NaryLogic{meta: e.meta.MarkDirty(), Op: e.Op, Args: children}
}
func (e *NaryLogic) CloneValue() Expression {
	args := make([]Expression, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.CloneValue()
	}
	return &NaryLogic{meta: e.meta, Op: e.Op, Args: args}
}
func (e *NaryLogic) Equal(other Expression) bool {
	o, ok := other.(*NaryLogic)
	if !ok || o.Op != e.Op {
		return false
	}
	return equalChildren(e, o)
}
func (e *NaryLogic) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Op, strings.Join(parts, ","))
}

// Not is boolean negation.
type Not struct {
	meta Metadata
	Arg  Expression
}

// NewNot constructs a Not node with fresh metadata.
func NewNot(arg Expression) *Not { return &Not{meta: NewMetadata(), Arg: arg} }

func (e *Not) Meta() Metadata { return e.meta }
func (e *Not) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *Not) Children() []Expression { return []Expression{e.Arg} }
func (e *Not) Rebuild(children []Expression) Expression {
	return &Not{meta: e.meta.MarkDirty(), Arg: children[0]}
}
func (e *Not) CloneValue() Expression { return &Not{meta: e.meta, Arg: e.Arg.CloneValue()} }
func (e *Not) Equal(other Expression) bool {
	o, ok := other.(*Not)
	return ok && equalChildren(e, o)
}
func (e *Not) String() string { return fmt.Sprintf("Not(%s)", e.Arg.String()) }

// CompareOp discriminates Imply plus the six relational comparisons.
type CompareOp int

const (
	OpImply CompareOp = iota
	OpEq
	OpNeq
	OpLt
	OpLeq
	OpGt
	OpGeq
)

func (op CompareOp) String() string {
	switch op {
	case OpImply:
		return "Imply"
	case OpEq:
		return "Eq"
	case OpNeq:
		return "Neq"
	case OpLt:
		return "Lt"
	case OpLeq:
		return "Leq"
	case OpGt:
		return "Gt"
	default:
		return "Geq"
	}
}

// Compare is a binary relational or implication expression.
type Compare struct {
	meta        Metadata
	Op          CompareOp
	Left, Right Expression
}

// NewCompare constructs a Compare node with fresh metadata.
func NewCompare(op CompareOp, left, right Expression) *Compare {
	return &Compare{meta: NewMetadata(), Op: op, Left: left, Right: right}
}

func (e *Compare) Meta() Metadata { return e.meta }
func (e *Compare) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *Compare) Children() []Expression { return []Expression{e.Left, e.Right} }
func (e *Compare) Rebuild(children []Expression) Expression {
	return &Compare{meta: e.meta.MarkDirty(), Op: e.Op, Left: children[0], Right: children[1]}
}
func (e *Compare) CloneValue() Expression {
	return &Compare{meta: e.meta, Op: e.Op, Left: e.Left.CloneValue(), Right: e.Right.CloneValue()}
}
func (e *Compare) Equal(other Expression) bool {
	o, ok := other.(*Compare)
	if !ok || o.Op != e.Op {
		return false
	}
	return equalChildren(e, o)
}
func (e *Compare) String() string {
	return fmt.Sprintf("%s(%s,%s)", e.Op, e.Left.String(), e.Right.String())
}
