package essence

import (
	"context"
	"sync"

	"github.com/gitrdm/essencelogic/internal/parallel"
)

// nativeExpansionParallelThreshold is the candidate-binding count above
// which expandNativeBindings fans guard evaluation out across a worker
// pool rather than checking each candidate inline. Below it the pool's
// goroutine overhead would dominate the guard checks themselves.
const nativeExpansionParallelThreshold = 256

// ExpansionStrategy discriminates the three comprehension expansion modes
// of spec.md §4.6.
type ExpansionStrategy int

const (
	// ExpandNative enumerates every generator's Domain directly in Go,
	// since the domain is already fully known at rewrite time.
	ExpandNative ExpansionStrategy = iota
	// ExpandViaSolver hands enumeration of an expression-valued generator
	// (one whose Over is not yet a constant) to the solver backend: the
	// solver finds each satisfying binding in turn.
	ExpandViaSolver
	// ExpandViaSolverAC is chosen instead of ExpandViaSolver when an
	// expression-valued generator comes with more than two guards. It is
	// dispatched exactly like ExpandViaSolver: no propagation hints are
	// sent to the solver and no identity values are pruned.
	ExpandViaSolverAC
)

// ChooseExpansionStrategy decides how to expand c, following
// original_source/crates/conjure-cp-rules/src/comprehensions/expansion's
// split between expand_simple.rs (native) and expand_via_solver.rs
// (solver-driven): native enumeration is only valid when every generator's
// Domain is already a finite literal domain; as soon as one generator
// ranges over a non-constant expression, some form of solver-driven
// enumeration is required.
func ChooseExpansionStrategy(c *Comprehension) ExpansionStrategy {
	for _, g := range c.Generators {
		if g.IsOverExpression() {
			if len(c.Guards) > 2 {
				return ExpandViaSolverAC
			}
			return ExpandViaSolver
		}
	}
	return ExpandNative
}

// BindingValues is a list of the discrete, literal values bound to each
// generator declaration for a single expansion instance, in generator
// order.
type BindingValues []Literal

// ExpandComprehension fully expands c into a single expression: a matrix
// literal of one evaluated Body copy per surviving binding, or (when
// asBool is true, i.e. c appears directly under an And/Or) the implicit
// conjunction/disjunction of those copies. Native and solver-driven
// expansion are unified around expandCommon (SPEC_FULL.md §9's
// resolution of the two Rust expanders' duplicated binding/substitution
// logic into one shared helper): only how candidate bindings are produced
// differs between strategies, not how a binding turns into a Body copy.
func ExpandComprehension(c *Comprehension, symbols *SymbolTable, asBool bool, op LogicNaryOp, solve func(gen []Generator, guards []Expression) ([]BindingValues, error)) (Expression, error) {
	strategy := ChooseExpansionStrategy(c)

	var bindings []BindingValues
	var err error
	switch strategy {
	case ExpandNative:
		bindings, err = expandNativeBindings(c, symbols)
	default:
		bindings, err = solve(c.Generators, c.Guards)
	}
	if err != nil {
		return nil, err
	}
	return expandCommon(c, bindings, symbols, asBool, op), nil
}

// expandNativeBindings enumerates the full Cartesian product of each
// generator's Domain, then filters by Guards, purely in Go — the native
// strategy.
func expandNativeBindings(c *Comprehension, symbols *SymbolTable) ([]BindingValues, error) {
	perGenerator := make([][]Literal, len(c.Generators))
	for i, g := range c.Generators {
		vs, ok := g.Dom.Values()
		if !ok {
			return nil, ErrInvalidModel.New("comprehension generator domain is not finite")
		}
		perGenerator[i] = vs
	}

	var candidates []BindingValues
	var recur func(i int, current BindingValues)
	recur = func(i int, current BindingValues) {
		if i == len(perGenerator) {
			cp := make(BindingValues, len(current))
			copy(cp, current)
			candidates = append(candidates, cp)
			return
		}
		for _, v := range perGenerator[i] {
			recur(i+1, append(current, v))
		}
	}
	recur(0, nil)

	survives := evaluateGuards(c, candidates, symbols)

	out := make([]BindingValues, 0, len(candidates))
	for i, candidate := range candidates {
		if survives[i] {
			out = append(out, candidate)
		}
	}
	return out, nil
}

// evaluateGuards checks guardsHold for every candidate binding, in
// parallel once the candidate count crosses nativeExpansionParallelThreshold.
// Results land in a slice indexed the same as candidates, so expansion
// order stays deterministic regardless of which worker finishes first.
func evaluateGuards(c *Comprehension, candidates []BindingValues, symbols *SymbolTable) []bool {
	survives := make([]bool, len(candidates))
	if len(candidates) < nativeExpansionParallelThreshold {
		for i, candidate := range candidates {
			survives[i] = guardsHold(c, candidate, symbols)
		}
		return survives
	}

	pool := parallel.NewWorkerPool(0)
	defer pool.Shutdown()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i, candidate := range candidates {
		i, candidate := i, candidate
		wg.Add(1)
		_ = pool.Submit(ctx, func() {
			defer wg.Done()
			survives[i] = guardsHold(c, candidate, symbols)
		})
	}
	wg.Wait()
	return survives
}

// guardsHold binds each generator declaration to its value in current
// within a scratch child scope, then checks every guard constant-folds to
// true. A guard that does not fold to a literal boolean is treated
// conservatively as failing, since native expansion only applies when the
// whole comprehension is statically enumerable.
func guardsHold(c *Comprehension, current BindingValues, symbols *SymbolTable) bool {
	scratch := symbols.Child()
	for i, g := range c.Generators {
		d := *g.Decl
		d.Kind = DeclValueLetting
		d.Value = NewAtomExpr(AtomLit(current[i]))
		scratch.Insert(&d)
	}
	for _, guard := range c.Guards {
		lit, ok := foldConstant(guard, scratch)
		if !ok || lit.Kind != LiteralBool || !lit.Bool {
			return false
		}
	}
	return true
}

// expandCommon turns a list of surviving bindings into the comprehension's
// final value: one Body copy per binding, each with its generator
// declarations substituted for their bound literal, folded into a
// MatrixLit or (when asBool) an explicit And/Or of the instances.
func expandCommon(c *Comprehension, bindings []BindingValues, symbols *SymbolTable, asBool bool, op LogicNaryOp) Expression {
	instances := make([]Expression, len(bindings))
	for i, binding := range bindings {
		instances[i] = substituteGenerators(c.Body, c.Generators, binding)
	}
	if asBool {
		return NewNaryLogic(op, instances)
	}
	return NewMatrixLit(Int(BoundedRange(1, len(instances))), instances)
}

// substituteGenerators returns a copy of body with every reference to one
// of generators' declarations replaced by its bound literal from binding.
func substituteGenerators(body Expression, generators []Generator, binding BindingValues) Expression {
	return Transform(body, func(e Expression) Expression {
		atom, ok := e.(*AtomExpr)
		if !ok || atom.Atom.Kind != AtomReference {
			return e
		}
		for i, g := range generators {
			if g.Decl != nil && atom.Atom.Ref == g.Decl {
				return NewAtomExpr(AtomLit(binding[i]))
			}
		}
		return e
	})
}

// foldConstant evaluates expr to a Literal if it is already a closed
// constant expression (every leaf is a literal atom or a ValueLetting
// resolvable through symbols), and reports ok=false otherwise. This is a
// small, deliberately conservative constant folder: it only needs to
// decide guard truth for comprehension expansion, not implement the full
// rewriter's arithmetic rule set.
func foldConstant(expr Expression, symbols *SymbolTable) (Literal, bool) {
	switch e := expr.(type) {
	case *AtomExpr:
		if e.Atom.Kind == AtomLiteral {
			return e.Atom.Lit, true
		}
		decl := e.Atom.Ref
		if decl.Kind != DeclValueLetting && symbols != nil {
			if bound, ok := symbols.Lookup(decl.Name); ok {
				decl = bound
			}
		}
		if decl.Kind == DeclValueLetting && decl.Value != nil {
			return foldConstant(decl.Value, symbols)
		}
		return Literal{}, false
	case *Compare:
		l, lok := foldConstant(e.Left, symbols)
		r, rok := foldConstant(e.Right, symbols)
		if !lok || !rok || l.Kind != LiteralInt || r.Kind != LiteralInt {
			return Literal{}, false
		}
		switch e.Op {
		case OpEq:
			return BoolLiteral(l.Int == r.Int), true
		case OpNeq:
			return BoolLiteral(l.Int != r.Int), true
		case OpLt:
			return BoolLiteral(l.Int < r.Int), true
		case OpLeq:
			return BoolLiteral(l.Int <= r.Int), true
		case OpGt:
			return BoolLiteral(l.Int > r.Int), true
		case OpGeq:
			return BoolLiteral(l.Int >= r.Int), true
		}
		return Literal{}, false
	case *NaryLogic:
		results := make([]bool, len(e.Args))
		for i, a := range e.Args {
			lit, ok := foldConstant(a, symbols)
			if !ok || lit.Kind != LiteralBool {
				return Literal{}, false
			}
			results[i] = lit.Bool
		}
		if e.Op == OpAnd {
			for _, r := range results {
				if !r {
					return BoolLiteral(false), true
				}
			}
			return BoolLiteral(true), true
		}
		for _, r := range results {
			if r {
				return BoolLiteral(true), true
			}
		}
		return BoolLiteral(false), true
	default:
		return Literal{}, false
	}
}
