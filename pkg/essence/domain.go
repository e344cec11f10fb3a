package essence

import (
	"fmt"
	"strings"
)

// RangeKind discriminates the five shapes an integer range can take.
// spec.md §3 / SPEC_FULL.md §3 keep UnboundedL/UnboundedR as first-class,
// not an ad hoc special case: Values() below returns ok=false uniformly for
// any domain containing one, rather than panicking deep in solver code.
type RangeKind int

const (
	RangeSingle RangeKind = iota
	RangeBounded
	RangeUnboundedL // int(..h)
	RangeUnboundedR // int(l..)
	RangeUnbounded  // int (both sides open)
)

// Range is one contiguous (or singleton, or half/fully open) piece of an
// IntDomain.
type Range struct {
	Kind RangeKind
	Lo   int
	Hi   int
}

// SingleRange constructs a one-value range.
func SingleRange(n int) Range { return Range{Kind: RangeSingle, Lo: n, Hi: n} }

// BoundedRange constructs a closed [lo, hi] range.
func BoundedRange(lo, hi int) Range { return Range{Kind: RangeBounded, Lo: lo, Hi: hi} }

// Contains reports whether v falls within r.
func (r Range) Contains(v int) bool {
	switch r.Kind {
	case RangeSingle:
		return v == r.Lo
	case RangeBounded:
		return v >= r.Lo && v <= r.Hi
	case RangeUnboundedL:
		return v <= r.Hi
	case RangeUnboundedR:
		return v >= r.Lo
	default:
		return true
	}
}

// IsFinite reports whether r denotes a finite set of values.
func (r Range) IsFinite() bool {
	return r.Kind == RangeSingle || r.Kind == RangeBounded
}

// Values enumerates r's values in ascending order. ok is false if r is not
// finite.
func (r Range) Values() (vs []int, ok bool) {
	switch r.Kind {
	case RangeSingle:
		return []int{r.Lo}, true
	case RangeBounded:
		out := make([]int, 0, r.Hi-r.Lo+1)
		for v := r.Lo; v <= r.Hi; v++ {
			out = append(out, v)
		}
		return out, true
	default:
		return nil, false
	}
}

func (r Range) String() string {
	switch r.Kind {
	case RangeSingle:
		return fmt.Sprintf("%d", r.Lo)
	case RangeBounded:
		return fmt.Sprintf("%d..%d", r.Lo, r.Hi)
	case RangeUnboundedL:
		return fmt.Sprintf("..%d", r.Hi)
	case RangeUnboundedR:
		return fmt.Sprintf("%d..", r.Lo)
	default:
		return ".."
	}
}

// DomainKind discriminates the domain-algebra cases of spec.md §3.
type DomainKind int

const (
	DomainBool DomainKind = iota
	DomainInt
	DomainSet
	DomainMatrix
	DomainTuple
	DomainRecord
	DomainReference
)

// SetAttrKind constrains the cardinality of a set domain.
type SetAttrKind int

const (
	SetAttrNone SetAttrKind = iota
	SetAttrSize
	SetAttrMinSize
	SetAttrMaxSize
	SetAttrMinMaxSize
)

// SetAttr carries the (optional) cardinality bound of a Set domain.
type SetAttr struct {
	Kind SetAttrKind
	Lo   int
	Hi   int
}

// RecordEntry names one field of a Record domain.
type RecordEntry struct {
	Name   string
	Domain Domain
}

// Domain describes the value space of a declaration or expression
// (spec.md §3). It is an immutable value type; operations return new
// Domains rather than mutating in place.
type Domain struct {
	Kind DomainKind

	// DomainInt
	Ranges []Range

	// DomainSet
	SetAttribute SetAttr
	Element      *Domain

	// DomainMatrix
	IndexDomains []Domain

	// DomainTuple
	TupleElems []Domain

	// DomainRecord
	RecordEntries []RecordEntry

	// DomainReference
	RefName string
}

// Bool is the boolean domain {false, true}.
func Bool() Domain { return Domain{Kind: DomainBool} }

// Int constructs an integer domain from a set of ranges.
func Int(ranges ...Range) Domain { return Domain{Kind: DomainInt, Ranges: ranges} }

// Set constructs a set domain with the given cardinality attribute and
// element domain.
func Set(attr SetAttr, elem Domain) Domain {
	return Domain{Kind: DomainSet, SetAttribute: attr, Element: &elem}
}

// Matrix constructs an n-dimensional matrix domain.
func Matrix(elem Domain, indices ...Domain) Domain {
	return Domain{Kind: DomainMatrix, Element: &elem, IndexDomains: indices}
}

// Tuple constructs a fixed-arity tuple domain.
func Tuple(elems ...Domain) Domain { return Domain{Kind: DomainTuple, TupleElems: elems} }

// Record constructs a record domain from named entries.
func Record(entries ...RecordEntry) Domain {
	return Domain{Kind: DomainRecord, RecordEntries: entries}
}

// DomainRef constructs an unresolved reference to a domain letting.
func DomainRef(name string) Domain { return Domain{Kind: DomainReference, RefName: name} }

// IsFinite reports whether the domain denotes a finite set of values.
func (d Domain) IsFinite() bool {
	switch d.Kind {
	case DomainBool:
		return true
	case DomainInt:
		for _, r := range d.Ranges {
			if !r.IsFinite() {
				return false
			}
		}
		return true
	case DomainSet:
		return d.SetAttribute.Kind != SetAttrNone && d.Element.IsFinite()
	case DomainMatrix:
		if !d.Element.IsFinite() {
			return false
		}
		for _, idx := range d.IndexDomains {
			if !idx.IsFinite() {
				return false
			}
		}
		return true
	case DomainTuple:
		for _, e := range d.TupleElems {
			if !e.IsFinite() {
				return false
			}
		}
		return true
	case DomainRecord:
		for _, e := range d.RecordEntries {
			if !e.Domain.IsFinite() {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Contains reports whether lit is a member of d.
func (d Domain) Contains(lit Literal) bool {
	switch d.Kind {
	case DomainBool:
		return lit.Kind == LiteralBool
	case DomainInt:
		if lit.Kind != LiteralInt {
			return false
		}
		for _, r := range d.Ranges {
			if r.Contains(lit.Int) {
				return true
			}
		}
		return false
	default:
		// Set/Matrix/Tuple/Record containment is checked structurally by
		// the representation layer, which already knows the concrete
		// shape it is decomposing; the generic domain algebra only needs
		// to answer membership for the scalar domains rule application
		// reasons about directly.
		return true
	}
}

// Length returns the number of values in d, if finite.
func (d Domain) Length() (int, bool) {
	vs, ok := d.Values()
	if !ok {
		return 0, false
	}
	return len(vs), true
}

// Values enumerates every literal in d, in a canonical order, provided d is
// finite and bounded. Matrix/Tuple/Record domains enumerate their Cartesian
// product, row-major — this is exactly the order comprehension expansion's
// native strategy (spec.md §4.6) needs.
func (d Domain) Values() ([]Literal, bool) {
	switch d.Kind {
	case DomainBool:
		return []Literal{BoolLiteral(false), BoolLiteral(true)}, true
	case DomainInt:
		var out []int
		for _, r := range d.Ranges {
			vs, ok := r.Values()
			if !ok {
				return nil, false
			}
			out = append(out, vs...)
		}
		lits := make([]Literal, len(out))
		for i, v := range out {
			lits[i] = IntLiteral(v)
		}
		return lits, true
	case DomainTuple:
		return cartesianTuple(d.TupleElems)
	case DomainMatrix:
		return cartesianMatrix(*d.Element, d.IndexDomains)
	case DomainRecord:
		fields := make([]Domain, len(d.RecordEntries))
		for i, e := range d.RecordEntries {
			fields[i] = e.Domain
		}
		tuples, ok := cartesianTuple(fields)
		out := make([]Literal, len(tuples))
		for i, t := range tuples {
			out[i] = RecordLiteral(make([]RecordLitEntry, len(t.Tuple)))
			for j, v := range t.Tuple {
				out[i].Record[j] = RecordLitEntry{Name: d.RecordEntries[j].Name, Value: v}
			}
		}
		return out, ok
	default:
		return nil, false
	}
}

func cartesianTuple(elems []Domain) ([]Literal, bool) {
	if len(elems) == 0 {
		return []Literal{TupleLiteral(nil)}, true
	}
	heads, ok := elems[0].Values()
	if !ok {
		return nil, false
	}
	tails, ok := cartesianTuple(elems[1:])
	if !ok {
		return nil, false
	}
	var out []Literal
	for _, h := range heads {
		for _, t := range tails {
			rest := append([]Literal{h}, t.Tuple...)
			out = append(out, TupleLiteral(rest))
		}
	}
	return out, true
}

func cartesianMatrix(elem Domain, indexDomains []Domain) ([]Literal, bool) {
	indexValues := make([][]Literal, len(indexDomains))
	for i, idx := range indexDomains {
		vs, ok := idx.Values()
		if !ok {
			return nil, false
		}
		indexValues[i] = vs
	}
	indices := EnumerateIndices(indexValues)
	elemValues, ok := elem.Values()
	if !ok {
		return nil, false
	}
	// The matrix's own possible *values* are every assignment of elemValues
	// to each index position — used by domain_of / value enumeration of a
	// whole abstract-domain decision variable.
	n := len(indices)
	if n == 0 {
		return []Literal{MatrixLiteral(nil, indexDomains)}, true
	}
	results := [][]Literal{{}}
	for i := 0; i < n; i++ {
		var next [][]Literal
		for _, partial := range results {
			for _, v := range elemValues {
				cell := append(append([]Literal{}, partial...), v)
				next = append(next, cell)
			}
		}
		results = next
	}
	out := make([]Literal, len(results))
	for i, cells := range results {
		out[i] = MatrixLiteral(cells, indexDomains)
	}
	return out, true
}

// EnumerateIndices returns the Cartesian product of a matrix's index-domain
// value lists, row-major, as the sequence of index tuples
// matrix_to_atom needs one constituent variable per.
func EnumerateIndices(indexValues [][]Literal) [][]Literal {
	if len(indexValues) == 0 {
		return [][]Literal{{}}
	}
	rest := EnumerateIndices(indexValues[1:])
	var out [][]Literal
	for _, v := range indexValues[0] {
		for _, r := range rest {
			out = append(out, append([]Literal{v}, r...))
		}
	}
	return out
}

// ApplyInt computes the unoptimised domain resulting from applying a binary
// i32-style operation pointwise across self and other's finite values,
// dropping any pair for which op returns ok=false. This mirrors
// Domain::apply_i32 in original_source/crates/conjure_core/src/ast/domains.rs,
// used by constant folding and by Min/Max's domain inference.
func (d Domain) ApplyInt(other Domain, op func(a, b int) (int, bool)) (Domain, bool) {
	as, aok := d.Values()
	bs, bok := other.Values()
	if !aok || !bok {
		return Domain{}, false
	}
	var ranges []Range
	for _, a := range as {
		if a.Kind != LiteralInt {
			return Domain{}, false
		}
		for _, b := range bs {
			if b.Kind != LiteralInt {
				return Domain{}, false
			}
			if v, ok := op(a.Int, b.Int); ok {
				ranges = append(ranges, SingleRange(v))
			}
		}
	}
	return Int(ranges...), true
}

// String renders d for diagnostics.
func (d Domain) String() string {
	switch d.Kind {
	case DomainBool:
		return "bool"
	case DomainInt:
		if len(d.Ranges) == 0 {
			return "int"
		}
		parts := make([]string, len(d.Ranges))
		for i, r := range d.Ranges {
			parts[i] = r.String()
		}
		return fmt.Sprintf("int(%s)", strings.Join(parts, ","))
	case DomainSet:
		return fmt.Sprintf("set of (%s)", d.Element.String())
	case DomainMatrix:
		parts := make([]string, len(d.IndexDomains))
		for i, idx := range d.IndexDomains {
			parts[i] = idx.String()
		}
		return fmt.Sprintf("matrix indexed by [%s] of %s", strings.Join(parts, ","), d.Element.String())
	case DomainTuple:
		parts := make([]string, len(d.TupleElems))
		for i, e := range d.TupleElems {
			parts[i] = e.String()
		}
		return fmt.Sprintf("tuple (%s)", strings.Join(parts, ","))
	case DomainRecord:
		parts := make([]string, len(d.RecordEntries))
		for i, e := range d.RecordEntries {
			parts[i] = fmt.Sprintf("%s: %s", e.Name, e.Domain.String())
		}
		return fmt.Sprintf("record {%s}", strings.Join(parts, ","))
	default:
		return d.RefName
	}
}
