package solverclient

import (
	"context"
	"fmt"
	"sort"

	"google.golang.org/protobuf/types/known/structpb"
)

// FakeSolver is an in-memory finite-domain backtracking solver used in
// place of a real Minion/SAT backend for tests and local experimentation.
// It reads the same wire shape GRPCSolverClient would send to a real
// adaptor — a "variables" map of name -> [lo, hi] and a "constraints" list
// of {op, args, rhs} descriptors — and searches by chronological
// backtracking, checking after each assignment every constraint whose
// variables are all assigned (no domain pruning), the same labeling strategy the teacher's pkg/minikanren finite-domain solver
// uses, generalised here from logic variables to named integer domains.
type FakeSolver struct {
	// MaxSolutions caps how many solutions Solve collects before
	// returning; zero means "first solution only".
	MaxSolutions int
}

type fakeVar struct {
	name   string
	lo, hi int
}

type fakeConstraint struct {
	op   string
	args []string
	rhs  int
}

// Solve implements SolverClient by decoding model's "variables" and
// "constraints" fields and running backtracking search.
func (f *FakeSolver) Solve(ctx context.Context, model *structpb.Struct) ([]Solution, error) {
	vars, err := decodeVariables(model)
	if err != nil {
		return nil, err
	}
	constraints, err := decodeConstraints(model)
	if err != nil {
		return nil, err
	}

	limit := f.MaxSolutions
	if limit <= 0 {
		limit = 1
	}

	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)

	domains := make(map[string][]int, len(vars))
	for _, n := range names {
		v := vars[n]
		vals := make([]int, 0, v.hi-v.lo+1)
		for x := v.lo; x <= v.hi; x++ {
			vals = append(vals, x)
		}
		domains[n] = vals
	}

	var solutions []Solution
	assignment := make(map[string]int, len(names))

	var search func(i int) bool
	search = func(i int) bool {
		select {
		case <-ctx.Done():
			return true // stop searching, but not an error: ctx cancellation just truncates results
		default:
		}
		if i == len(names) {
			sol := make(Solution, len(assignment))
			for k, v := range assignment {
				sol[k] = float64(v)
			}
			solutions = append(solutions, sol)
			return len(solutions) >= limit
		}
		name := names[i]
		for _, val := range domains[name] {
			assignment[name] = val
			if satisfiesSoFar(constraints, assignment, names[:i+1]) {
				if search(i + 1) {
					return true
				}
			}
		}
		delete(assignment, name)
		return false
	}
	search(0)

	return solutions, nil
}

// satisfiesSoFar checks every constraint whose variables are all among
// assigned against the current partial assignment: a constraint
// mentioning a not-yet-assigned variable is skipped rather than treated
// as violated, and no unassigned variable's domain is pruned.
func satisfiesSoFar(constraints []fakeConstraint, assignment map[string]int, assigned []string) bool {
	assignedSet := make(map[string]bool, len(assigned))
	for _, n := range assigned {
		assignedSet[n] = true
	}
	for _, c := range constraints {
		ready := true
		for _, a := range c.args {
			if !assignedSet[a] {
				ready = false
				break
			}
		}
		if !ready {
			continue
		}
		if !evalConstraint(c, assignment) {
			return false
		}
	}
	return true
}

func evalConstraint(c fakeConstraint, assignment map[string]int) bool {
	switch c.op {
	case "eq", "neq", "lt", "leq", "gt", "geq":
		a, b := assignment[c.args[0]], assignment[c.args[1]]
		switch c.op {
		case "eq":
			return a == b
		case "neq":
			return a != b
		case "lt":
			return a < b
		case "leq":
			return a <= b
		case "gt":
			return a > b
		default:
			return a >= b
		}
	case "sum_leq", "sum_geq":
		total := 0
		for _, a := range c.args {
			total += assignment[a]
		}
		if c.op == "sum_leq" {
			return total <= c.rhs
		}
		return total >= c.rhs
	case "all_different":
		seen := make(map[int]bool, len(c.args))
		for _, a := range c.args {
			v := assignment[a]
			if seen[v] {
				return false
			}
			seen[v] = true
		}
		return true
	default:
		return true
	}
}

func decodeVariables(model *structpb.Struct) (map[string]fakeVar, error) {
	field, ok := model.Fields["variables"]
	if !ok {
		return nil, fmt.Errorf("solverclient: model missing \"variables\"")
	}
	s := field.GetStructValue()
	if s == nil {
		return nil, fmt.Errorf("solverclient: \"variables\" is not a struct")
	}
	out := make(map[string]fakeVar, len(s.Fields))
	for name, v := range s.Fields {
		bounds := v.GetListValue()
		if bounds == nil || len(bounds.Values) != 2 {
			return nil, fmt.Errorf("solverclient: variable %q must be a [lo, hi] pair", name)
		}
		out[name] = fakeVar{
			name: name,
			lo:   int(bounds.Values[0].GetNumberValue()),
			hi:   int(bounds.Values[1].GetNumberValue()),
		}
	}
	return out, nil
}

func decodeConstraints(model *structpb.Struct) ([]fakeConstraint, error) {
	field, ok := model.Fields["constraints"]
	if !ok {
		return nil, nil
	}
	list := field.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("solverclient: \"constraints\" is not a list")
	}
	out := make([]fakeConstraint, 0, len(list.Values))
	for _, v := range list.Values {
		s := v.GetStructValue()
		if s == nil {
			continue
		}
		op := s.Fields["op"].GetStringValue()
		var args []string
		if argsList := s.Fields["args"].GetListValue(); argsList != nil {
			for _, a := range argsList.Values {
				args = append(args, a.GetStringValue())
			}
		}
		rhs := int(s.Fields["rhs"].GetNumberValue())
		out = append(out, fakeConstraint{op: op, args: args, rhs: rhs})
	}
	return out, nil
}
