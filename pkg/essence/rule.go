package essence

// Reduction is what a successful Rule.Apply returns: the replacement for
// the matched expression, any brand new top-level constraints the rule
// needs to add elsewhere in the model (e.g. a bubble's lifted guard), and
// any new symbols those constraints reference (spec.md §4.3/§4.4).
type Reduction struct {
	NewExpression Expression
	NewTop        []Expression
	NewSymbols    []*Declaration
}

// ReductionOf wraps a plain replacement expression with no side effects,
// the common case for purely local rewrites.
func ReductionOf(expr Expression) Reduction {
	return Reduction{NewExpression: expr}
}

// Rule is one named, priority-ordered rewrite rule. Apply is called with
// the candidate expression and the symbol table in scope at that position;
// it returns ErrRuleNotApplicable (via errors.Is) when the rule's pattern
// does not match, rather than treating "does not apply here" as an error
// condition callers must otherwise special-case.
//
// Rust's conjure-oxide registers rules at link time with
// linkme::distributed_slice (see
// original_source/crates/conjure-cp-core/src/rule_engine/mod.rs); Go has no
// link-time registration, so each rule package instead builds its Rule
// values and calls RegisterRuleSet from an init() function (see rules/base.go),
// mirroring how the teacher's hybrid_registry.go builds its registry via an
// explicit constructor rather than a global side-effecting slice.
type Rule struct {
	Name     string
	Priority int
	Apply    func(expr Expression, symbols *SymbolTable) (Reduction, error)
}

// NotApplicable is the conventional not-an-error return Apply functions use
// when their pattern does not match expr.
func NotApplicable(ruleName string) (Reduction, error) {
	return Reduction{}, ErrRuleNotApplicable.New(ruleName)
}
