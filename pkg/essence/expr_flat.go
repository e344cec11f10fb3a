package essence

import (
	"fmt"
	"strings"
)

// SafeOp discriminates the intermediate-tier "safe" arithmetic operators:
// once the bubble rule family (rules/bubble.go) has lifted an operator's
// undefinedness guard into an enclosing conjunction, the operator itself is
// rewritten from its Unsafe form into the corresponding Safe form, which
// solver backends may assume is always defined at evaluation time.
type SafeOp int

const (
	OpSafeDiv SafeOp = iota
	OpSafeMod
	OpSafePow
)

func (op SafeOp) String() string {
	switch op {
	case OpSafeDiv:
		return "SafeDiv"
	case OpSafeMod:
		return "SafeMod"
	default:
		return "SafePow"
	}
}

// SafeArith is a binary arithmetic expression already known to be defined
// at every point it is evaluated.
type SafeArith struct {
	meta        Metadata
	Op          SafeOp
	Left, Right Expression
}

func NewSafeArith(op SafeOp, left, right Expression) *SafeArith {
	return &SafeArith{meta: NewMetadata(), Op: op, Left: left, Right: right}
}

func (e *SafeArith) Meta() Metadata { return e.meta }
func (e *SafeArith) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *SafeArith) Children() []Expression { return []Expression{e.Left, e.Right} }
func (e *SafeArith) Rebuild(children []Expression) Expression {
	return &SafeArith{meta: e.meta.MarkDirty(), Op: e.Op, Left: children[0], Right: children[1]}
}
func (e *SafeArith) CloneValue() Expression {
	return &SafeArith{meta: e.meta, Op: e.Op, Left: e.Left.CloneValue(), Right: e.Right.CloneValue()}
}
func (e *SafeArith) Equal(other Expression) bool {
	o, ok := other.(*SafeArith)
	if !ok || o.Op != e.Op {
		return false
	}
	return equalChildren(e, o)
}
func (e *SafeArith) String() string {
	return fmt.Sprintf("%s(%s,%s)", e.Op, e.Left.String(), e.Right.String())
}

// SafeIndex is an Index already known to be in-bounds.
type SafeIndex struct {
	meta            Metadata
	Subject, Idx    Expression
}

func NewSafeIndex(subject, idx Expression) *SafeIndex {
	return &SafeIndex{meta: NewMetadata(), Subject: subject, Idx: idx}
}

func (e *SafeIndex) Meta() Metadata { return e.meta }
func (e *SafeIndex) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *SafeIndex) Children() []Expression { return []Expression{e.Subject, e.Idx} }
func (e *SafeIndex) Rebuild(children []Expression) Expression {
	return &SafeIndex{meta: e.meta.MarkDirty(), Subject: children[0], Idx: children[1]}
}
func (e *SafeIndex) CloneValue() Expression {
	return &SafeIndex{meta: e.meta, Subject: e.Subject.CloneValue(), Idx: e.Idx.CloneValue()}
}
func (e *SafeIndex) Equal(other Expression) bool {
	o, ok := other.(*SafeIndex)
	return ok && equalChildren(e, o)
}
func (e *SafeIndex) String() string {
	return fmt.Sprintf("safeIndex(%s,%s)", e.Subject.String(), e.Idx.String())
}

// SafeSlice is a Slice already known to be in-bounds.
type SafeSlice struct {
	meta           Metadata
	Subject        Expression
	Lo, Hi         Expression
}

func NewSafeSlice(subject, lo, hi Expression) *SafeSlice {
	return &SafeSlice{meta: NewMetadata(), Subject: subject, Lo: lo, Hi: hi}
}

func (e *SafeSlice) Meta() Metadata { return e.meta }
func (e *SafeSlice) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *SafeSlice) Children() []Expression { return []Expression{e.Subject, e.Lo, e.Hi} }
func (e *SafeSlice) Rebuild(children []Expression) Expression {
	return &SafeSlice{meta: e.meta.MarkDirty(), Subject: children[0], Lo: children[1], Hi: children[2]}
}
func (e *SafeSlice) CloneValue() Expression {
	return &SafeSlice{meta: e.meta, Subject: e.Subject.CloneValue(), Lo: e.Lo.CloneValue(), Hi: e.Hi.CloneValue()}
}
func (e *SafeSlice) Equal(other Expression) bool {
	o, ok := other.(*SafeSlice)
	return ok && equalChildren(e, o)
}
func (e *SafeSlice) String() string {
	return fmt.Sprintf("safeSlice(%s,%s,%s)", e.Subject.String(), e.Lo.String(), e.Hi.String())
}

// AuxDeclaration names Value with a fresh auxiliary Decl and stands in for
// it at this tree position, the common-subexpression-elimination idiom the
// representation layer and comprehension expander both use to avoid
// duplicating work across multiple references to the same sub-expression.
type AuxDeclaration struct {
	meta  Metadata
	Decl  *Declaration
	Value Expression
}

func NewAuxDeclaration(decl *Declaration, value Expression) *AuxDeclaration {
	return &AuxDeclaration{meta: NewMetadata(), Decl: decl, Value: value}
}

func (e *AuxDeclaration) Meta() Metadata { return e.meta }
func (e *AuxDeclaration) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *AuxDeclaration) Children() []Expression { return []Expression{e.Value} }
func (e *AuxDeclaration) Rebuild(children []Expression) Expression {
	return &AuxDeclaration{meta: e.meta.MarkDirty(), Decl: e.Decl, Value: children[0]}
}
func (e *AuxDeclaration) CloneValue() Expression {
	return &AuxDeclaration{meta: e.meta, Decl: e.Decl, Value: e.Value.CloneValue()}
}
func (e *AuxDeclaration) Equal(other Expression) bool {
	o, ok := other.(*AuxDeclaration)
	return ok && e.Decl == o.Decl && equalChildren(e, o)
}
func (e *AuxDeclaration) String() string {
	return fmt.Sprintf("%s =aux= %s", e.Decl.Name.String(), e.Value.String())
}

// FlatLinearOp discriminates the two directions a flattened linear
// inequality can face.
type FlatLinearOp int

const (
	OpFlatSumGeq FlatLinearOp = iota
	OpFlatSumLeq
)

func (op FlatLinearOp) String() string {
	if op == OpFlatSumGeq {
		return "FlatSumGeq"
	}
	return "FlatSumLeq"
}

// FlatLinear is a flattened (solver-ready) linear sum compared against a
// right-hand side, the low-tier shape constraint solvers like Minion
// consume directly.
type FlatLinear struct {
	meta  Metadata
	Op    FlatLinearOp
	Terms []Expression
	RHS   Expression
}

func NewFlatLinear(op FlatLinearOp, terms []Expression, rhs Expression) *FlatLinear {
	return &FlatLinear{meta: NewMetadata(), Op: op, Terms: terms, RHS: rhs}
}

func (e *FlatLinear) Meta() Metadata { return e.meta }
func (e *FlatLinear) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *FlatLinear) Children() []Expression { return append(append([]Expression{}, e.Terms...), e.RHS) }
func (e *FlatLinear) Rebuild(children []Expression) Expression {
	n := len(children) - 1
	return &FlatLinear{meta: e.meta.MarkDirty(), Op: e.Op, Terms: children[:n], RHS: children[n]}
}
func (e *FlatLinear) CloneValue() Expression {
	terms := make([]Expression, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = t.CloneValue()
	}
	return &FlatLinear{meta: e.meta, Op: e.Op, Terms: terms, RHS: e.RHS.CloneValue()}
}
func (e *FlatLinear) Equal(other Expression) bool {
	o, ok := other.(*FlatLinear)
	if !ok || o.Op != e.Op {
		return false
	}
	return equalChildren(e, o)
}
func (e *FlatLinear) String() string {
	parts := make([]string, len(e.Terms))
	for i, t := range e.Terms {
		parts[i] = t.String()
	}
	cmp := ">="
	if e.Op == OpFlatSumLeq {
		cmp = "<="
	}
	return fmt.Sprintf("sum(%s) %s %s", strings.Join(parts, ","), cmp, e.RHS.String())
}

// FlatWeightedLinear is a flattened weighted linear sum compared against a
// right-hand side: sum(Weights[i] * Vars[i]) <= RHS.
type FlatWeightedLinear struct {
	meta    Metadata
	Weights []int
	Vars    []Expression
	RHS     Expression
}

func NewFlatWeightedLinear(weights []int, vars []Expression, rhs Expression) *FlatWeightedLinear {
	return &FlatWeightedLinear{meta: NewMetadata(), Weights: weights, Vars: vars, RHS: rhs}
}

func (e *FlatWeightedLinear) Meta() Metadata { return e.meta }
func (e *FlatWeightedLinear) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *FlatWeightedLinear) Children() []Expression {
	return append(append([]Expression{}, e.Vars...), e.RHS)
}
func (e *FlatWeightedLinear) Rebuild(children []Expression) Expression {
	n := len(children) - 1
	return &FlatWeightedLinear{meta: e.meta.MarkDirty(), Weights: e.Weights, Vars: children[:n], RHS: children[n]}
}
func (e *FlatWeightedLinear) CloneValue() Expression {
	vars := make([]Expression, len(e.Vars))
	for i, v := range e.Vars {
		vars[i] = v.CloneValue()
	}
	weights := make([]int, len(e.Weights))
	copy(weights, e.Weights)
	return &FlatWeightedLinear{meta: e.meta, Weights: weights, Vars: vars, RHS: e.RHS.CloneValue()}
}
func (e *FlatWeightedLinear) Equal(other Expression) bool {
	o, ok := other.(*FlatWeightedLinear)
	if !ok || len(e.Weights) != len(o.Weights) {
		return false
	}
	for i := range e.Weights {
		if e.Weights[i] != o.Weights[i] {
			return false
		}
	}
	return equalChildren(e, o)
}
func (e *FlatWeightedLinear) String() string {
	parts := make([]string, len(e.Vars))
	for i, v := range e.Vars {
		parts[i] = fmt.Sprintf("%d*%s", e.Weights[i], v.String())
	}
	return fmt.Sprintf("sum(%s) <= %s", strings.Join(parts, ","), e.RHS.String())
}

// FlatIneq is Minion's native `ineq(x, y, k)` shape: x <= y + k.
type FlatIneq struct {
	meta        Metadata
	Left, Right Expression
	Const       int
}

func NewFlatIneq(left, right Expression, k int) *FlatIneq {
	return &FlatIneq{meta: NewMetadata(), Left: left, Right: right, Const: k}
}

func (e *FlatIneq) Meta() Metadata { return e.meta }
func (e *FlatIneq) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *FlatIneq) Children() []Expression { return []Expression{e.Left, e.Right} }
func (e *FlatIneq) Rebuild(children []Expression) Expression {
	return &FlatIneq{meta: e.meta.MarkDirty(), Left: children[0], Right: children[1], Const: e.Const}
}
func (e *FlatIneq) CloneValue() Expression {
	return &FlatIneq{meta: e.meta, Left: e.Left.CloneValue(), Right: e.Right.CloneValue(), Const: e.Const}
}
func (e *FlatIneq) Equal(other Expression) bool {
	o, ok := other.(*FlatIneq)
	if !ok || o.Const != e.Const {
		return false
	}
	return equalChildren(e, o)
}
func (e *FlatIneq) String() string {
	return fmt.Sprintf("ineq(%s,%s,%d)", e.Left.String(), e.Right.String(), e.Const)
}

// MinionReify reifies Constraint into the boolean-valued ReifVar.
type MinionReify struct {
	meta                 Metadata
	Constraint, ReifVar   Expression
}

func NewMinionReify(constraint, reifVar Expression) *MinionReify {
	return &MinionReify{meta: NewMetadata(), Constraint: constraint, ReifVar: reifVar}
}

func (e *MinionReify) Meta() Metadata { return e.meta }
func (e *MinionReify) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *MinionReify) Children() []Expression { return []Expression{e.Constraint, e.ReifVar} }
func (e *MinionReify) Rebuild(children []Expression) Expression {
	return &MinionReify{meta: e.meta.MarkDirty(), Constraint: children[0], ReifVar: children[1]}
}
func (e *MinionReify) CloneValue() Expression {
	return &MinionReify{meta: e.meta, Constraint: e.Constraint.CloneValue(), ReifVar: e.ReifVar.CloneValue()}
}
func (e *MinionReify) Equal(other Expression) bool {
	o, ok := other.(*MinionReify)
	return ok && equalChildren(e, o)
}
func (e *MinionReify) String() string {
	return fmt.Sprintf("reify(%s,%s)", e.Constraint.String(), e.ReifVar.String())
}

// MinionDivEqUndefZero is Minion's native `div_undefzero(a, b, c)`:
// c = a / b, with c = 0 when b = 0 rather than the constraint being
// infeasible, matching Minion's own division-by-zero convention.
type MinionDivEqUndefZero struct {
	meta                       Metadata
	Dividend, Divisor, Result  Expression
}

func NewMinionDivEqUndefZero(dividend, divisor, result Expression) *MinionDivEqUndefZero {
	return &MinionDivEqUndefZero{meta: NewMetadata(), Dividend: dividend, Divisor: divisor, Result: result}
}

func (e *MinionDivEqUndefZero) Meta() Metadata { return e.meta }
func (e *MinionDivEqUndefZero) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *MinionDivEqUndefZero) Children() []Expression {
	return []Expression{e.Dividend, e.Divisor, e.Result}
}
func (e *MinionDivEqUndefZero) Rebuild(children []Expression) Expression {
	return &MinionDivEqUndefZero{meta: e.meta.MarkDirty(), Dividend: children[0], Divisor: children[1], Result: children[2]}
}
func (e *MinionDivEqUndefZero) CloneValue() Expression {
	return &MinionDivEqUndefZero{
		meta:     e.meta,
		Dividend: e.Dividend.CloneValue(),
		Divisor:  e.Divisor.CloneValue(),
		Result:   e.Result.CloneValue(),
	}
}
func (e *MinionDivEqUndefZero) Equal(other Expression) bool {
	o, ok := other.(*MinionDivEqUndefZero)
	return ok && equalChildren(e, o)
}
func (e *MinionDivEqUndefZero) String() string {
	return fmt.Sprintf("div_undefzero(%s,%s,%s)", e.Dividend.String(), e.Divisor.String(), e.Result.String())
}

// SATInt wraps a decision variable encoded directly as a block of SAT
// order-encoding literals (the sat_order representation, §4.5 /
// SPEC_FULL.md §9).
type SATInt struct {
	meta Metadata
	Var  Expression
}

func NewSATInt(v Expression) *SATInt { return &SATInt{meta: NewMetadata(), Var: v} }

func (e *SATInt) Meta() Metadata { return e.meta }
func (e *SATInt) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *SATInt) Children() []Expression { return []Expression{e.Var} }
func (e *SATInt) Rebuild(children []Expression) Expression {
	return &SATInt{meta: e.meta.MarkDirty(), Var: children[0]}
}
func (e *SATInt) CloneValue() Expression { return &SATInt{meta: e.meta, Var: e.Var.CloneValue()} }
func (e *SATInt) Equal(other Expression) bool {
	o, ok := other.(*SATInt)
	return ok && equalChildren(e, o)
}
func (e *SATInt) String() string { return fmt.Sprintf("satInt(%s)", e.Var.String()) }

// SATLiteral is one literal of a CnfClause: a reference to a boolean SAT
// variable, optionally negated.
type SATLiteral struct {
	VarID   uint32
	Negated bool
}

func (l SATLiteral) String() string {
	if l.Negated {
		return fmt.Sprintf("-%d", l.VarID)
	}
	return fmt.Sprintf("%d", l.VarID)
}

// CnfClause is a disjunction of SAT literals, the final low-tier form a
// SAT-backed solver adaptor consumes. It carries no Expression children:
// by the time a constraint has been flattened this far, every operand is
// already a raw SAT variable id, not an AST node.
type CnfClause struct {
	meta     Metadata
	Literals []SATLiteral
}

func NewCnfClause(lits []SATLiteral) *CnfClause { return &CnfClause{meta: NewMetadata(), Literals: lits} }

func (e *CnfClause) Meta() Metadata { return e.meta }
func (e *CnfClause) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *CnfClause) Children() []Expression { return nil }
func (e *CnfClause) Rebuild(children []Expression) Expression {
	return &CnfClause{meta: e.meta, Literals: e.Literals}
}
func (e *CnfClause) CloneValue() Expression {
	lits := make([]SATLiteral, len(e.Literals))
	copy(lits, e.Literals)
	return &CnfClause{meta: e.meta, Literals: lits}
}
func (e *CnfClause) Equal(other Expression) bool {
	o, ok := other.(*CnfClause)
	if !ok || len(e.Literals) != len(o.Literals) {
		return false
	}
	for i := range e.Literals {
		if e.Literals[i] != o.Literals[i] {
			return false
		}
	}
	return true
}
func (e *CnfClause) String() string {
	parts := make([]string, len(e.Literals))
	for i, l := range e.Literals {
		parts[i] = l.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " | "))
}
