package essence

import (
	"fmt"
	"strings"
)

// Generator is one `name <- domain` or `name <- expr` binding inside a
// comprehension (spec.md §4.6). Exactly one of Dom/Over is populated:
// a generator with Dom set enumerates a Domain directly, a generator
// with Over set enumerates the runtime value of a collection
// expression (itself possibly a decision variable, forcing the
// via-solver expansion strategy).
type Generator struct {
	Decl *Declaration
	Dom  *Domain
	Over Expression
}

// IsOverExpression reports whether this generator iterates a (possibly
// non-constant) expression rather than a literal Domain.
func (g Generator) IsOverExpression() bool { return g.Over != nil }

// Comprehension builds a matrix (or, when ExpandComprehension is called
// with asBool set, folds into a
// single boolean via an implicit And/Or) by iterating its Generators,
// filtering by Guards, and evaluating Body once per surviving binding.
// Expansion strategy (native enumeration vs. via-solver /
// via-solver-ac) is chosen by comprehension.go at rewrite time, not
// encoded in this node.
type Comprehension struct {
	meta       Metadata
	Body       Expression
	Generators []Generator
	Guards     []Expression
}

// NewComprehension constructs a comprehension node with fresh metadata.
func NewComprehension(body Expression, generators []Generator, guards []Expression) *Comprehension {
	return &Comprehension{meta: NewMetadata(), Body: body, Generators: generators, Guards: guards}
}

func (e *Comprehension) Meta() Metadata { return e.meta }
func (e *Comprehension) WithMeta(m Metadata) Expression {
	cp := *e
	cp.meta = m
	return &cp
}

// Children returns Body, followed by each expression-valued generator's
// Over expression, followed by the Guards, in that fixed order — Rebuild
// must consume children in the same order.
func (e *Comprehension) Children() []Expression {
	out := []Expression{e.Body}
	for _, g := range e.Generators {
		if g.Over != nil {
			out = append(out, g.Over)
		}
	}
	out = append(out, e.Guards...)
	return out
}

func (e *Comprehension) Rebuild(children []Expression) Expression {
	body, rest := children[0], children[1:]
	newGens := make([]Generator, len(e.Generators))
	for i, g := range e.Generators {
		newGens[i] = g
		if g.Over != nil {
			newGens[i].Over, rest = rest[0], rest[1:]
		}
	}
	newGuards := make([]Expression, len(e.Guards))
	copy(newGuards, rest)
	return &Comprehension{meta: e.meta.MarkDirty(), Body: body, Generators: newGens, Guards: newGuards}
}

func (e *Comprehension) CloneValue() Expression {
	newGens := make([]Generator, len(e.Generators))
	for i, g := range e.Generators {
		newGens[i] = g
		if g.Over != nil {
			newGens[i].Over = g.Over.CloneValue()
		}
		if g.Dom != nil {
			d := *g.Dom
			newGens[i].Dom = &d
		}
	}
	newGuards := make([]Expression, len(e.Guards))
	for i, g := range e.Guards {
		newGuards[i] = g.CloneValue()
	}
	return &Comprehension{meta: e.meta, Body: e.Body.CloneValue(), Generators: newGens, Guards: newGuards}
}

func (e *Comprehension) Equal(other Expression) bool {
	o, ok := other.(*Comprehension)
	if !ok || len(e.Generators) != len(o.Generators) || len(e.Guards) != len(o.Guards) {
		return false
	}
	for i := range e.Generators {
		a, b := e.Generators[i], o.Generators[i]
		if !a.Decl.Name.Equal(b.Decl.Name) || a.IsOverExpression() != b.IsOverExpression() {
			return false
		}
	}
	return equalChildren(e, o)
}

func (e *Comprehension) String() string {
	gens := make([]string, len(e.Generators))
	for i, g := range e.Generators {
		if g.Over != nil {
			gens[i] = fmt.Sprintf("%s <- %s", g.Decl.Name.String(), g.Over.String())
		} else {
			gens[i] = fmt.Sprintf("%s : %s", g.Decl.Name.String(), g.Dom.String())
		}
	}
	guards := make([]string, len(e.Guards))
	for i, g := range e.Guards {
		guards[i] = g.String()
	}
	clauses := append(gens, guards...)
	return fmt.Sprintf("[%s | %s]", e.Body.String(), strings.Join(clauses, ","))
}
