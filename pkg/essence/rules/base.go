// Package rules registers the decentralized rule families consumed by the
// naive rewriter (essence.RewriteNaive): each file's init() builds its
// Rules and RuleSets and calls essence.RegisterRuleSet, the same way the teacher's rule packages build a
// *HybridRegistry from a constructor rather than relying on global
// side-effecting state spread across files. Importing this package for its
// side effects (import _ "…/rules") is what populates
// essence.GlobalRegistry().
package rules

import "github.com/gitrdm/essencelogic/pkg/essence"

func init() {
	essence.RegisterRuleSet(&essence.RuleSet{
		Name:     "base",
		Priority: 100,
		Rules: []*essence.Rule{
			removeEmptyExpressionRule,
			minToVarRule,
			maxToVarRule,
			foldSumConstantsRule,
		},
	}, "minion", "sat")
}

// removeEmptyExpressionRule grounds
// original_source/crates/conjure_core/src/rules/base.rs's
// remove_empty_expression: a Sum/Product/And/Or/Min/Max over zero
// arguments rewrites to its identity element (0, 1, true, false — Min/Max
// have no identity and are left for the symbol table's domain bookkeeping
// to catch as a modelling error instead).
var removeEmptyExpressionRule = &essence.Rule{
	Name:     "remove_empty_expression",
	Priority: 9000,
	Apply: func(expr essence.Expression, symbols *essence.SymbolTable) (essence.Reduction, error) {
		switch e := expr.(type) {
		case *essence.NaryArith:
			if len(e.Args) != 0 {
				break
			}
			switch e.Op {
			case essence.OpSum:
				return essence.ReductionOf(essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(0)))), nil
			case essence.OpProduct:
				return essence.ReductionOf(essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(1)))), nil
			}
		case *essence.NaryLogic:
			if len(e.Args) != 0 {
				break
			}
			switch e.Op {
			case essence.OpAnd:
				return essence.ReductionOf(essence.NewAtomExpr(essence.AtomLit(essence.BoolLiteral(true)))), nil
			case essence.OpOr:
				return essence.ReductionOf(essence.NewAtomExpr(essence.AtomLit(essence.BoolLiteral(false)))), nil
			}
		}
		return essence.NotApplicable("remove_empty_expression")
	},
}

// minToVarRule grounds base.rs's min_to_var: Min(xs) over a non-empty
// argument list is replaced by a fresh auxiliary variable m (whose domain
// is the fixed minInt..maxInt range, not one derived from xs) plus the flattened constraints `m <= x_i` for
// every i, together with an explicit witness `or(m = x_1, ..., m = x_n)`
// asserting m actually equals one of the arguments rather than merely
// bounding it from one side (spec.md §8 scenario 4: "introduces one aux v
// ..., top-level constraints v <= x, v <= y, or(v = x, v = y)").
var minToVarRule = &essence.Rule{
	Name:     "min_to_var",
	Priority: 4000,
	Apply:    func(expr essence.Expression, symbols *essence.SymbolTable) (essence.Reduction, error) {
		return minMaxToVar(expr, symbols, essence.OpMin, "min_to_var")
	},
}

// maxToVarRule is min_to_var's Max counterpart.
var maxToVarRule = &essence.Rule{
	Name:     "max_to_var",
	Priority: 4000,
	Apply: func(expr essence.Expression, symbols *essence.SymbolTable) (essence.Reduction, error) {
		return minMaxToVar(expr, symbols, essence.OpMax, "max_to_var")
	},
}

func minMaxToVar(expr essence.Expression, symbols *essence.SymbolTable, op essence.ArithNaryOp, ruleName string) (essence.Reduction, error) {
	e, ok := expr.(*essence.NaryArith)
	if !ok || e.Op != op || len(e.Args) == 0 {
		return essence.NotApplicable(ruleName)
	}

	name := symbols.Gensym()
	decl := essence.NewDeclaration(essence.DeclDecisionVariable, name)
	decl.Domain = essence.Int(essence.BoundedRange(minInt, maxInt))

	var bounds []essence.Expression
	cmp := essence.OpLeq
	if op == essence.OpMax {
		cmp = essence.OpGeq
	}
	ref := essence.NewAtomExpr(essence.AtomRef(decl))
	witnesses := make([]essence.Expression, len(e.Args))
	for i, arg := range e.Args {
		bounds = append(bounds, essence.NewCompare(cmp, ref, arg))
		witnesses[i] = essence.NewCompare(essence.OpEq, ref, arg)
	}
	bounds = append(bounds, essence.NewNaryLogic(essence.OpOr, witnesses))

	return essence.Reduction{
		NewExpression: ref,
		NewTop:        bounds,
		NewSymbols:    []*essence.Declaration{decl},
	}, nil
}

// foldSumConstantsRule folds every integer-literal argument of a Sum into
// one trailing constant, leaving the non-literal arguments in their
// original relative order ahead of it (spec.md §8 scenario 3: `sum([1, 2,
// 3, x])` rewrites to `sum([x, 6])` — the constant goes at the back for
// Sum, the mirror image of how a Product's constant conventionally sorts
// to the front). It declines once already in that canonical shape — at
// most one trailing literal, everything else non-literal — so it cannot
// loop forever re-folding its own output.
var foldSumConstantsRule = &essence.Rule{
	Name:     "fold_sum_constants",
	Priority: 3000,
	Apply: func(expr essence.Expression, symbols *essence.SymbolTable) (essence.Reduction, error) {
		e, ok := expr.(*essence.NaryArith)
		if !ok || e.Op != essence.OpSum {
			return essence.NotApplicable("fold_sum_constants")
		}

		var nonLiterals []essence.Expression
		total := 0
		literalCount := 0
		for _, arg := range e.Args {
			atom, ok := arg.(*essence.AtomExpr)
			if ok && atom.Atom.IsLiteral() && atom.Atom.Lit.Kind == essence.LiteralInt {
				total += atom.Atom.Lit.Int
				literalCount++
				continue
			}
			nonLiterals = append(nonLiterals, arg)
		}

		alreadyCanonical := literalCount == 0 ||
			(literalCount == 1 && len(e.Args) > 0 && isIntLiteralAtom(e.Args[len(e.Args)-1]))
		if alreadyCanonical {
			return essence.NotApplicable("fold_sum_constants")
		}

		newArgs := append(nonLiterals, essence.NewAtomExpr(essence.AtomLit(essence.IntLiteral(total))))
		return essence.ReductionOf(essence.NewNaryArith(essence.OpSum, newArgs)), nil
	},
}

func isIntLiteralAtom(expr essence.Expression) bool {
	atom, ok := expr.(*essence.AtomExpr)
	return ok && atom.Atom.IsLiteral() && atom.Atom.Lit.Kind == essence.LiteralInt
}

// minInt/maxInt bound the auxiliary variable's placeholder domain. Nothing
// narrows it from its arguments' own domains.
const (
	minInt = -1 << 30
	maxInt = 1 << 30
)
