package essence

import (
	"fmt"
	"strings"
)

// SetLit is a set-valued expression built from (not necessarily constant)
// element expressions.
type SetLit struct {
	meta Metadata
	Args []Expression
}

func NewSetLit(args []Expression) *SetLit { return &SetLit{meta: NewMetadata(), Args: args} }

func (e *SetLit) Meta() Metadata { return e.meta }
func (e *SetLit) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *SetLit) Children() []Expression { return e.Args }
func (e *SetLit) Rebuild(children []Expression) Expression {
	return &SetLit{meta: e.meta.MarkDirty(), Args: children}
}
func (e *SetLit) CloneValue() Expression {
	args := make([]Expression, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.CloneValue()
	}
	return &SetLit{meta: e.meta, Args: args}
}
func (e *SetLit) Equal(other Expression) bool {
	o, ok := other.(*SetLit)
	return ok && equalChildren(e, o)
}
func (e *SetLit) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ","))
}

// MatrixLit is a matrix-valued expression over an explicit index domain.
type MatrixLit struct {
	meta        Metadata
	IndexDomain Domain
	Args        []Expression
}

func NewMatrixLit(indexDomain Domain, args []Expression) *MatrixLit {
	return &MatrixLit{meta: NewMetadata(), IndexDomain: indexDomain, Args: args}
}

func (e *MatrixLit) Meta() Metadata { return e.meta }
func (e *MatrixLit) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *MatrixLit) Children() []Expression { return e.Args }
func (e *MatrixLit) Rebuild(children []Expression) Expression {
	return &MatrixLit{meta: e.meta.MarkDirty(), IndexDomain: e.IndexDomain, Args: children}
}
func (e *MatrixLit) CloneValue() Expression {
	args := make([]Expression, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.CloneValue()
	}
	return &MatrixLit{meta: e.meta, IndexDomain: e.IndexDomain, Args: args}
}
func (e *MatrixLit) Equal(other Expression) bool {
	o, ok := other.(*MatrixLit)
	return ok && equalChildren(e, o)
}
func (e *MatrixLit) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ","))
}

// TupleLit is a tuple-valued expression.
type TupleLit struct {
	meta Metadata
	Args []Expression
}

func NewTupleLit(args []Expression) *TupleLit { return &TupleLit{meta: NewMetadata(), Args: args} }

func (e *TupleLit) Meta() Metadata { return e.meta }
func (e *TupleLit) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *TupleLit) Children() []Expression { return e.Args }
func (e *TupleLit) Rebuild(children []Expression) Expression {
	return &TupleLit{meta: e.meta.MarkDirty(), Args: children}
}
func (e *TupleLit) CloneValue() Expression {
	args := make([]Expression, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.CloneValue()
	}
	return &TupleLit{meta: e.meta, Args: args}
}
func (e *TupleLit) Equal(other Expression) bool {
	o, ok := other.(*TupleLit)
	return ok && equalChildren(e, o)
}
func (e *TupleLit) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ","))
}

// RecordLit is a record-valued expression, preserving field name order.
type RecordLit struct {
	meta   Metadata
	Names  []string
	Args   []Expression
}

func NewRecordLit(names []string, args []Expression) *RecordLit {
	return &RecordLit{meta: NewMetadata(), Names: names, Args: args}
}

func (e *RecordLit) Meta() Metadata { return e.meta }
func (e *RecordLit) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *RecordLit) Children() []Expression { return e.Args }
func (e *RecordLit) Rebuild(children []Expression) Expression {
	return &RecordLit{meta: e.meta.MarkDirty(), Names: e.Names, Args: children}
}
func (e *RecordLit) CloneValue() Expression {
	args := make([]Expression, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.CloneValue()
	}
	names := make([]string, len(e.Names))
	copy(names, e.Names)
	return &RecordLit{meta: e.meta, Names: names, Args: args}
}
func (e *RecordLit) Equal(other Expression) bool {
	o, ok := other.(*RecordLit)
	if !ok || len(e.Names) != len(o.Names) {
		return false
	}
	for i := range e.Names {
		if e.Names[i] != o.Names[i] {
			return false
		}
	}
	return equalChildren(e, o)
}
func (e *RecordLit) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = fmt.Sprintf("%s: %s", e.Names[i], a.String())
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ","))
}

// Index projects one element out of a matrix, tuple, or record by a single
// index expression.
type Index struct {
	meta            Metadata
	Subject, Idx    Expression
}

func NewIndex(subject, idx Expression) *Index {
	return &Index{meta: NewMetadata(), Subject: subject, Idx: idx}
}

func (e *Index) Meta() Metadata { return e.meta }
func (e *Index) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *Index) Children() []Expression { return []Expression{e.Subject, e.Idx} }
func (e *Index) Rebuild(children []Expression) Expression {
	return &Index{meta: e.meta.MarkDirty(), Subject: children[0], Idx: children[1]}
}
func (e *Index) CloneValue() Expression {
	return &Index{meta: e.meta, Subject: e.Subject.CloneValue(), Idx: e.Idx.CloneValue()}
}
func (e *Index) Equal(other Expression) bool {
	o, ok := other.(*Index)
	return ok && equalChildren(e, o)
}
func (e *Index) String() string { return fmt.Sprintf("%s[%s]", e.Subject.String(), e.Idx.String()) }

// Slice projects a contiguous sub-matrix, with nil bounds meaning "open on
// this side".
type Slice struct {
	meta           Metadata
	Subject        Expression
	Lo, Hi         Expression
}

func NewSlice(subject, lo, hi Expression) *Slice {
	return &Slice{meta: NewMetadata(), Subject: subject, Lo: lo, Hi: hi}
}

func (e *Slice) Meta() Metadata { return e.meta }
func (e *Slice) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *Slice) Children() []Expression {
	out := []Expression{e.Subject}
	if e.Lo != nil {
		out = append(out, e.Lo)
	}
	if e.Hi != nil {
		out = append(out, e.Hi)
	}
	return out
}
func (e *Slice) Rebuild(children []Expression) Expression {
	out := &Slice{meta: e.meta.MarkDirty(), Subject: children[0]}
	rest := children[1:]
	if e.Lo != nil {
		out.Lo, rest = rest[0], rest[1:]
	}
	if e.Hi != nil {
		out.Hi = rest[0]
	}
	return out
}
func (e *Slice) CloneValue() Expression {
	cp := &Slice{meta: e.meta, Subject: e.Subject.CloneValue()}
	if e.Lo != nil {
		cp.Lo = e.Lo.CloneValue()
	}
	if e.Hi != nil {
		cp.Hi = e.Hi.CloneValue()
	}
	return cp
}
func (e *Slice) Equal(other Expression) bool {
	o, ok := other.(*Slice)
	if !ok || (e.Lo == nil) != (o.Lo == nil) || (e.Hi == nil) != (o.Hi == nil) {
		return false
	}
	return equalChildren(e, o)
}
func (e *Slice) String() string {
	lo, hi := "", ""
	if e.Lo != nil {
		lo = e.Lo.String()
	}
	if e.Hi != nil {
		hi = e.Hi.String()
	}
	return fmt.Sprintf("%s[%s..%s]", e.Subject.String(), lo, hi)
}

// Bubble wraps an expression whose value is undefined unless a guard
// condition holds, e.g. `x / y` bubbled with `y != 0` (spec.md §4.4/§4.5).
// It is removed by the bubble rule family, which lifts the guard into an
// enclosing conjunction (see rules/bubble.go).
type Bubble struct {
	meta           Metadata
	Value, Guard   Expression
}

func NewBubble(value, guard Expression) *Bubble {
	return &Bubble{meta: NewMetadata(), Value: value, Guard: guard}
}

func (e *Bubble) Meta() Metadata { return e.meta }
func (e *Bubble) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}
func (e *Bubble) Children() []Expression { return []Expression{e.Value, e.Guard} }
func (e *Bubble) Rebuild(children []Expression) Expression {
	return &Bubble{meta: e.meta.MarkDirty(), Value: children[0], Guard: children[1]}
}
func (e *Bubble) CloneValue() Expression {
	return &Bubble{meta: e.meta, Value: e.Value.CloneValue(), Guard: e.Guard.CloneValue()}
}
func (e *Bubble) Equal(other Expression) bool {
	o, ok := other.(*Bubble)
	return ok && equalChildren(e, o)
}
func (e *Bubble) String() string {
	return fmt.Sprintf("Bubble(%s @ %s)", e.Value.String(), e.Guard.String())
}
