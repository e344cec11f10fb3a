package essence

import (
	"sort"

	"github.com/hashicorp/go-multierror"
)

// RuleSet groups Rules that are activated together for a particular solver
// family or modelling phase (spec.md §4.2/§4.4): "base", "bubble",
// "representation", a per-solver-family set like "minion_arith", etc.
// Dependencies names other rule sets that must also be active whenever
// this one is, mirroring
// original_source/crates/conjure-cp-core/src/rule_engine/resolve_rules.rs's
// dependency closure.
type RuleSet struct {
	Name         string
	Priority     int
	Rules        []*Rule
	Dependencies []string
}

// Registry is the decentralized rule/rule-set catalogue, built once at
// startup from every rule package's init() registrations and then treated
// as immutable for the lifetime of the process. This plays the role Rust's
// link-time distributed_slice collection plays, but as an explicit
// constructor-built object — the same shape as the teacher's
// hybrid_registry.go.
type Registry struct {
	rules        map[string]*Rule
	ruleSets     map[string]*RuleSet
	solverFamily map[string][]string
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		rules:        make(map[string]*Rule),
		ruleSets:     make(map[string]*RuleSet),
		solverFamily: make(map[string][]string),
	}
}

// globalRegistry is populated by each rules/*.go package's init() via
// RegisterRule/RegisterRuleSet, then consulted by cmd/essence's default
// wiring.
var globalRegistry = NewRegistry()

// GlobalRegistry returns the process-wide registry populated by every
// imported rules subpackage's init() functions.
func GlobalRegistry() *Registry { return globalRegistry }

// RegisterRule adds rule to the global registry, keyed by its Name. It
// panics on a duplicate name: rule registration happens only at package
// init time, so a collision is a programming error, not a runtime
// condition callers should recover from.
func RegisterRule(rule *Rule) {
	if _, exists := globalRegistry.rules[rule.Name]; exists {
		panic("essence: duplicate rule name " + rule.Name)
	}
	globalRegistry.rules[rule.Name] = rule
}

// RegisterRuleSet adds set to the global registry, keyed by its Name, and
// appends set.Name to the rule-set list of each named solver family.
func RegisterRuleSet(set *RuleSet, solverFamilies ...string) {
	if _, exists := globalRegistry.ruleSets[set.Name]; exists {
		panic("essence: duplicate rule set name " + set.Name)
	}
	globalRegistry.ruleSets[set.Name] = set
	for _, fam := range solverFamilies {
		globalRegistry.solverFamily[fam] = append(globalRegistry.solverFamily[fam], set.Name)
	}
}

// GetAllRules returns every registered rule, in no particular order.
func (r *Registry) GetAllRules() []*Rule {
	out := make([]*Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	return out
}

// GetRuleByName looks up a single rule by its registered name.
func (r *Registry) GetRuleByName(name string) (*Rule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// GetAllRuleSets returns every registered rule set, in no particular order.
func (r *Registry) GetAllRuleSets() []*RuleSet {
	out := make([]*RuleSet, 0, len(r.ruleSets))
	for _, set := range r.ruleSets {
		out = append(out, set)
	}
	return out
}

// GetRuleSetByName looks up a single rule set by its registered name.
func (r *Registry) GetRuleSetByName(name string) (*RuleSet, bool) {
	set, ok := r.ruleSets[name]
	return set, ok
}

// GetRuleSetsForSolverFamily returns the rule sets registered against the
// named solver family (e.g. "minion", "sat"), without resolving
// dependencies — callers that need the full activation closure should pass
// the result through ResolveRuleSets.
func (r *Registry) GetRuleSetsForSolverFamily(family string) []*RuleSet {
	names := r.solverFamily[family]
	out := make([]*RuleSet, 0, len(names))
	for _, n := range names {
		if set, ok := r.ruleSets[n]; ok {
			out = append(out, set)
		}
	}
	return out
}

// ResolveRuleSets computes the transitive closure of names over
// RuleSet.Dependencies, returning every named rule set plus everything it
// (recursively) depends on, each exactly once. Mirrors
// resolve_rules.rs's resolve_rule_sets.
func (r *Registry) ResolveRuleSets(names []string) ([]*RuleSet, error) {
	seen := make(map[string]bool)
	var out []*RuleSet
	var errs *multierror.Error

	var visit func(name string)
	visit = func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		set, ok := r.ruleSets[name]
		if !ok {
			errs = multierror.Append(errs, ErrUnknownRuleSet.New(name))
			return
		}
		out = append(out, set)
		for _, dep := range set.Dependencies {
			visit(dep)
		}
	}
	for _, name := range names {
		visit(name)
	}
	return out, errs.ErrorOrNil()
}

// RuleData pairs a Rule with the RuleSet it was resolved from, the unit
// GetRulesGrouped buckets by priority.
type RuleData struct {
	Rule    *Rule
	RuleSet string
}

// priorityOf returns rd's effective priority: the rule's own Priority. A
// rule whose Priority is 0 gets 0; the owning rule set's Priority is not
// consulted.
func (rd RuleData) priorityOf() int {
	if rd.Rule.Priority != 0 {
		return rd.Rule.Priority
	}
	return 0
}

// GetRules flattens ruleSets into one RuleData per (rule set, rule) pair,
// ordered by descending priority and, within a priority, ascending rule
// name — the same tie-break resolve_rules.rs's Ord impl uses so that
// rewriter output is deterministic across runs.
func GetRules(ruleSets []*RuleSet) []RuleData {
	var out []RuleData
	for _, set := range ruleSets {
		for _, rule := range set.Rules {
			out = append(out, RuleData{Rule: rule, RuleSet: set.Name})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := effectivePriority(out[i]), effectivePriority(out[j])
		if pi != pj {
			return pi > pj
		}
		return out[i].Rule.Name < out[j].Rule.Name
	})
	return out
}

func effectivePriority(rd RuleData) int {
	if rd.Rule.Priority != 0 {
		return rd.Rule.Priority
	}
	return 0
}

// GetRulesGrouped is GetRules, further partitioned into priority-ordered
// groups: each element of the result holds every RuleData sharing one
// priority value, and the groups themselves run from highest priority to
// lowest — the exact iteration order the naive rewriter's outer loop
// (spec.md §4.3) needs.
func GetRulesGrouped(ruleSets []*RuleSet) [][]RuleData {
	flat := GetRules(ruleSets)
	var groups [][]RuleData
	for i := 0; i < len(flat); {
		j := i + 1
		for j < len(flat) && effectivePriority(flat[j]) == effectivePriority(flat[i]) {
			j++
		}
		groups = append(groups, flat[i:j])
		i = j
	}
	return groups
}
