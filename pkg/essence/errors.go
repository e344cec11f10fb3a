package essence

import errors "gopkg.in/src-d/go-errors.v1"

// Error kinds (spec.md §7): a fixed, named vocabulary every layer of the
// toolchain raises through, rather than ad hoc fmt.Errorf strings. Each
// Kind is instantiated with New(...) at the point of failure, and callers
// that need to branch on failure category compare against these values
// with errors.Is / Kind.Is rather than string-matching a message.
var (
	// ErrRuleNotApplicable is returned by a Rule's Apply when the rule's
	// pattern does not match at the given expression — not a failure, a
	// normal "try the next rule" signal the rewriter filters on.
	ErrRuleNotApplicable = errors.NewKind("rule not applicable: %s")

	// ErrAmbiguousRuleApplication is raised when the debug "detect multiple
	// equally applicable rules" check (spec.md §4.3, invariant 9) finds
	// more than one rule at the same priority matching the same position.
	ErrAmbiguousRuleApplication = errors.NewKind("multiple rules at priority %d apply to %s: %s")

	// ErrUnknownRuleSet is returned when a configuration names a rule set
	// the registry has no entry for.
	ErrUnknownRuleSet = errors.NewKind("unknown rule set: %s")

	// ErrRepresentationFailed is returned when the representation layer
	// cannot decompose a declaration's domain with any registered
	// Representation.
	ErrRepresentationFailed = errors.NewKind("no representation applies to domain %s")

	// ErrSolverFailed wraps an error surfaced by a solver adaptor
	// (solverclient), distinguishing backend failures from modelling
	// failures in logs and exit codes.
	ErrSolverFailed = errors.NewKind("solver backend failed: %s")

	// ErrInvalidModel is raised by model-level consistency checks (e.g. an
	// Index into a domain statically known to be out of range) that are
	// not specific to any one rule.
	ErrInvalidModel = errors.NewKind("invalid model: %s")
)
