package rules

import (
	"context"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/gitrdm/essencelogic/pkg/essence"
	"github.com/gitrdm/essencelogic/pkg/essence/solverclient"
)

func init() {
	essence.RegisterRuleSet(&essence.RuleSet{
		Name:         "comprehension_expansion",
		Priority:     250,
		Rules:        []*essence.Rule{expandComprehensionRule},
		Dependencies: []string{"base"},
	}, "minion", "sat")
}

// activeSolver is the SolverClient expandComprehensionRule dispatches
// via-solver expansion through (spec.md §4.6's ExpandViaSolver/
// ExpandViaSolverAC strategies). It defaults to an in-memory FakeSolver so
// a comprehension over a non-constant generator can still be expanded
// without a live solver process; SetSolverClient lets the CLI or a test
// swap in a real gRPC-backed adaptor.
var activeSolver solverclient.SolverClient = &solverclient.FakeSolver{MaxSolutions: 4096}

// SetSolverClient overrides the SolverClient expandComprehensionRule
// dispatches via-solver comprehension expansion through.
func SetSolverClient(c solverclient.SolverClient) { activeSolver = c }

// expandComprehensionRule rewrites a Comprehension (bare, or wrapped in the
// single-argument And/Or a quantifier leaves behind) into its fully
// expanded form via essence.ExpandComprehension, dispatching any
// non-native binding enumeration through activeSolver.
var expandComprehensionRule = &essence.Rule{
	Name:     "expand_comprehension",
	Priority: 250,
	Apply: func(expr essence.Expression, symbols *essence.SymbolTable) (essence.Reduction, error) {
		c, asBool, op, ok := matchComprehension(expr)
		if !ok {
			return essence.NotApplicable("expand_comprehension")
		}
		expanded, err := essence.ExpandComprehension(c, symbols, asBool, op, solveViaSolver)
		if err != nil {
			return essence.Reduction{}, err
		}
		return essence.ReductionOf(expanded), nil
	},
}

// matchComprehension recognises a bare Comprehension node, or one wrapped
// in a single-argument NaryLogic(And)/NaryLogic(Or) — the shape a
// comprehension takes once it is the sole argument of a quantifier
// (spec.md §4.6: a comprehension "appears directly under an And/Or").
// asBool and op report which of the two shapes matched.
func matchComprehension(expr essence.Expression) (*essence.Comprehension, bool, essence.LogicNaryOp, bool) {
	if c, ok := expr.(*essence.Comprehension); ok {
		return c, false, 0, true
	}
	nary, ok := expr.(*essence.NaryLogic)
	if !ok || len(nary.Args) != 1 {
		return nil, false, 0, false
	}
	c, ok := nary.Args[0].(*essence.Comprehension)
	if !ok {
		return nil, false, 0, false
	}
	return c, true, nary.Op, true
}

// solveViaSolver is the essence.ExpandComprehension "solve" callback: it
// translates generators and guards into the {"variables", "constraints"}
// wire shape solverclient.FakeSolver/GRPCSolverClient both read, dispatches
// through activeSolver, and decodes each returned Solution back into a
// BindingValues ordered by gen.
func solveViaSolver(gen []essence.Generator, guards []essence.Expression) ([]essence.BindingValues, error) {
	wireModel, names, err := buildSolverRequest(gen, guards)
	if err != nil {
		return nil, err
	}
	solutions, err := activeSolver.Solve(context.Background(), wireModel)
	if err != nil {
		return nil, fmt.Errorf("rules: via-solver comprehension expansion: %w", err)
	}
	out := make([]essence.BindingValues, 0, len(solutions))
	for _, sol := range solutions {
		binding := make(essence.BindingValues, len(gen))
		inDomain := true
		for i, name := range names {
			raw, ok := sol[name]
			if !ok {
				return nil, fmt.Errorf("rules: solver solution missing variable %q", name)
			}
			n, ok := raw.(float64)
			if !ok {
				return nil, fmt.Errorf("rules: solver solution for %q is not numeric", name)
			}
			binding[i] = essence.IntLiteral(int(n))
			if !gen[i].Dom.Contains(binding[i]) {
				inDomain = false
			}
		}
		if inDomain {
			out = append(out, binding)
		}
	}
	return out, nil
}

// buildSolverRequest encodes gen's domains as "variables" ([lo,hi] bounds,
// since every wire-level domain here is a contiguous integer range; a
// generator whose Domain has gaps is over-approximated to its full
// bounding range, and solveViaSolver drops solutions outside it) and
// guards recognised as a simple binary Compare between two generator
// references as "constraints", matching decodeVariables/decodeConstraints
// in solverclient/fake.go. It returns the generator declarations' wire
// names in generator order, so solveViaSolver can read solutions back out
// in the right order.
func buildSolverRequest(gen []essence.Generator, guards []essence.Expression) (*structpb.Struct, []string, error) {
	names := make([]string, len(gen))
	variables := make(map[string]interface{}, len(gen))
	for i, g := range gen {
		name := g.Decl.Name.String()
		names[i] = name
		vs, ok := g.Dom.Values()
		if !ok || len(vs) == 0 {
			return nil, nil, fmt.Errorf("rules: via-solver comprehension generator %q has no finite domain", name)
		}
		lo, hi := vs[0].Int, vs[0].Int
		for _, v := range vs[1:] {
			if v.Int < lo {
				lo = v.Int
			}
			if v.Int > hi {
				hi = v.Int
			}
		}
		variables[name] = []interface{}{float64(lo), float64(hi)}
	}

	var constraints []interface{}
	for _, guard := range guards {
		c, ok := encodeGuard(guard)
		if !ok {
			return nil, nil, fmt.Errorf("rules: via-solver comprehension guard %q is not a supported comparison", guard.String())
		}
		constraints = append(constraints, c)
	}

	wireModel, err := structpb.NewStruct(map[string]interface{}{
		"variables":   variables,
		"constraints": constraints,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("rules: encoding via-solver comprehension request: %w", err)
	}
	return wireModel, names, nil
}

// encodeGuard recognises a Compare between two bare references as a
// {"op","args"} constraint descriptor; any richer guard shape (arithmetic,
// nested logic) is not supported by this wire translation, and
// buildSolverRequest reports it as an error.
func encodeGuard(guard essence.Expression) (map[string]interface{}, bool) {
	cmp, ok := guard.(*essence.Compare)
	if !ok {
		return nil, false
	}
	op, ok := compareOpName(cmp.Op)
	if !ok {
		return nil, false
	}
	left, lok := referenceName(cmp.Left)
	right, rok := referenceName(cmp.Right)
	if !lok || !rok {
		return nil, false
	}
	return map[string]interface{}{
		"op":   op,
		"args": []interface{}{left, right},
	}, true
}

func referenceName(expr essence.Expression) (string, bool) {
	atom, ok := expr.(*essence.AtomExpr)
	if !ok || atom.Atom.Kind != essence.AtomReference {
		return "", false
	}
	return atom.Atom.Ref.Name.String(), true
}

func compareOpName(op essence.CompareOp) (string, bool) {
	switch op {
	case essence.OpEq:
		return "eq", true
	case essence.OpNeq:
		return "neq", true
	case essence.OpLt:
		return "lt", true
	case essence.OpLeq:
		return "leq", true
	case essence.OpGt:
		return "gt", true
	case essence.OpGeq:
		return "geq", true
	default:
		return "", false
	}
}
