package essence

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RewriterOptions configures one rewrite run (spec.md §4.3, §6 Configuration).
type RewriterOptions struct {
	// RuleSets is resolved (via Registry.ResolveRuleSets) before the run
	// starts; the caller passes the already-resolved list so a single
	// Registry lookup is shared across repeated runs in a test.
	RuleSets []*RuleSet

	// CheckAmbiguousRules enables the "multiple equally applicable rules"
	// detector (invariant 9), which calls every rule of a priority group at
	// each position instead of stopping at the first match. It is off by
	// default because it is only a debugging aid — production runs
	// already make the priority+name tie-break choice deterministic.
	CheckAmbiguousRules bool

	// ExitAfterUnrolling is the debug flag spec.md §4.3/§6 describes:
	// once an iteration leaves the whole model free of Comprehension
	// nodes, stop deterministically on the next quiescent check rather
	// than continuing to iterate rule sets that have nothing left to do
	// with comprehensions (spec.md §6: "causes deterministic early exit
	// after the first iteration that leaves the AST free of
	// comprehensions").
	ExitAfterUnrolling bool

	Log *logrus.Logger
}

// RewriteStats accumulates counters over one rewrite run for the stats
// package to render (spec.md §6).
type RewriteStats struct {
	Iterations     int
	RulesApplied   int
	RuleApplyCount map[string]int
}

func newRewriteStats() *RewriteStats {
	return &RewriteStats{RuleApplyCount: make(map[string]int)}
}

// RewriteNaive repeatedly scans model's constraints top-down, applying the
// single highest-priority matching rule at the first (preorder) position it
// matches, until no rule in the resolved rule sets applies anywhere. This
// directly follows
// original_source/crates/conjure-cp-core/src/rule_engine/rewrite_naive.rs's
// rewrite_naive / try_rewrite_model: naive because it re-scans the whole
// tree from the root after every single rule application rather than
// tracking dirty subtrees — correct and simple, traded off against the
// O(iterations * tree size) cost spec.md's Non-goals accept for this first
// rewriter variant (the Zipper-based cursor in zipper.go is the faster
// alternative hinted at there).
func RewriteNaive(model *Model, opts RewriterOptions) (*Model, *RewriteStats, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	runID := uuid.New().String()
	groups := GetRulesGrouped(opts.RuleSets)
	stats := newRewriteStats()

	for {
		changed := false
		for _, sm := range model.SubModels() {
			applied, err := tryRewriteSubModel(sm, groups, opts.CheckAmbiguousRules, log, runID, stats)
			if err != nil {
				return model, stats, err
			}
			if applied {
				changed = true
				break
			}
		}
		if !changed {
			return model, stats, nil
		}
		stats.Iterations++
		if opts.ExitAfterUnrolling && !modelHasComprehensions(model) {
			return model, stats, nil
		}
	}
}

// modelHasComprehensions reports whether any Comprehension node remains
// anywhere in the model: every sub-model's constraint tree, plus every
// value-letting body in its local symbol table. ExitAfterUnrolling's early
// exit is gated on this across the whole model, not just the sub-model most
// recently rewritten.
func modelHasComprehensions(model *Model) bool {
	for _, sm := range model.SubModels() {
		for _, e := range sm.Constraints.Get().Exprs {
			if universeHasComprehension(e) {
				return true
			}
		}
		for _, decl := range sm.Symbols.InOrder() {
			if decl.Kind == DeclValueLetting && decl.Value != nil && universeHasComprehension(decl.Value) {
				return true
			}
		}
	}
	return false
}

func universeHasComprehension(e Expression) bool {
	for _, node := range Universe(e) {
		if _, ok := node.(*Comprehension); ok {
			return true
		}
	}
	return false
}

// rewriteTarget is one rewritable body within a sub-model: either a
// top-level constraint (identified by its index) or a value-letting
// declaration's bound expression. tryRewriteSubModel walks biplate
// contexts over both, per spec.md §4.3's "both the constraint tree AND the
// value-letting bodies in the local symbol table."
type rewriteTarget struct {
	constraintIndex int // -1 for a value-letting target
	decl            *Declaration
	expr            Expression
}

// tryRewriteSubModel performs one pass over sm: it walks every constraint's
// and every value-letting body's Contexts in preorder, and for the first
// position where some rule in the highest-priority group matches, applies
// that rule and returns immediately (applied=true) so the caller can
// re-scan from scratch — the same control flow as try_rewrite in the Rust
// original.
func tryRewriteSubModel(sm *SubModel, groups [][]RuleData, checkAmbiguous bool, log *logrus.Logger, runID string, stats *RewriteStats) (bool, error) {
	constraints := sm.Constraints.Get().Exprs

	var targets []rewriteTarget
	for i, c := range constraints {
		targets = append(targets, rewriteTarget{constraintIndex: i, expr: c})
	}
	for _, decl := range sm.Symbols.InOrder() {
		if decl.Kind == DeclValueLetting && decl.Value != nil {
			targets = append(targets, rewriteTarget{constraintIndex: -1, decl: decl, expr: decl.Value})
		}
	}

	for _, group := range groups {
		for _, target := range targets {
			positions := Contexts(target.expr)
			for _, pos := range positions {
				matches, err := matchingRules(group, pos.Expr, sm.Symbols, checkAmbiguous)
				if err != nil {
					return false, err
				}
				if len(matches) == 0 {
					continue
				}
				if checkAmbiguous && len(matches) > 1 {
					return false, assertNoMultipleEquallyApplicableRules(matches, pos.Expr)
				}
				rd, reduction := matches[0].RuleData, matches[0].Reduction

				rebuilt := pos.Fill(reduction.NewExpression)
				if target.constraintIndex >= 0 {
					newConstraints := make([]Expression, len(constraints))
					copy(newConstraints, constraints)
					newConstraints[target.constraintIndex] = rebuilt
					newConstraints = append(newConstraints, reduction.NewTop...)

					cl := MakeMut(&sm.Constraints)
					cl.Exprs = newConstraints
				} else {
					target.decl.Value = rebuilt
					if len(reduction.NewTop) > 0 {
						cl := MakeMut(&sm.Constraints)
						cl.Exprs = append(append([]Expression{}, cl.Exprs...), reduction.NewTop...)
					}
				}
				for _, sym := range reduction.NewSymbols {
					sm.Symbols.Insert(sym)
				}

				stats.RulesApplied++
				stats.RuleApplyCount[rd.Rule.Name]++
				log.WithFields(logrus.Fields{
					"run_id":      runID,
					"rule":        rd.Rule.Name,
					"rule_set":    rd.RuleSet,
					"priority":    rd.priorityOf(),
					"expr_before": pos.Expr.String(),
					"expr_after":  reduction.NewExpression.String(),
				}).Debug("applied rule")

				return true, nil
			}
		}
	}
	return false, nil
}

// ruleMatch pairs a matching RuleData with the Reduction its single Apply
// call already produced, so the rewriter never calls a rule's Apply more
// than once per position — rules like select_representation mutate the
// SymbolTable as part of matching, so a discard-and-recall pattern would
// double those side effects.
type ruleMatch struct {
	RuleData
	Reduction Reduction
}

// matchingRules calls each rule in group at expr in priority+name order,
// stopping at the first success unless checkAmbiguous requests the full
// match set (needed only for the debug ambiguity diagnostic).
func matchingRules(group []RuleData, expr Expression, symbols *SymbolTable, checkAmbiguous bool) ([]ruleMatch, error) {
	var out []ruleMatch
	for _, rd := range group {
		reduction, err := rd.Rule.Apply(expr, symbols)
		if err == nil {
			out = append(out, ruleMatch{RuleData: rd, Reduction: reduction})
			if !checkAmbiguous {
				return out, nil
			}
			continue
		}
		if ErrRuleNotApplicable.Is(err) {
			continue
		}
		return nil, err
	}
	return out, nil
}

// assertNoMultipleEquallyApplicableRules builds the diagnostic error for
// the debug ambiguity check (invariant 9).
func assertNoMultipleEquallyApplicableRules(matches []ruleMatch, expr Expression) error {
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Rule.Name
	}
	priority := matches[0].priorityOf()
	return ErrAmbiguousRuleApplication.New(priority, expr.String(), joinNames(names))
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
