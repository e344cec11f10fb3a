package essence

// Representation decomposes a single abstract-domain declaration (a
// Matrix, Tuple, Record, or finite Int domain needing a SAT encoding) into a collection of lower-level declarations plus the
// expression rewrites needed to translate references to the original name
// into references to its constituents (spec.md §4.5). Each concrete
// strategy (repr_matrix.go, repr_tuple.go, ...) grounds one variant of
// original_source/crates/conjure-cp-rules/src/representation/*.rs.
type Representation interface {
	// Name identifies the strategy, used to build RepresentedName suffixes
	// and recorded on the SymbolTable via SetRepresentation.
	Name() string

	// Applies reports whether this strategy can decompose decl's domain.
	Applies(decl *Declaration) bool

	// DeclarationDown returns the constituent declarations decl decomposes
	// into.
	DeclarationDown(decl *Declaration, symbols *SymbolTable) []*Declaration

	// ExpressionDown rewrites a reference to decl (e.g. an Index into it)
	// into an equivalent expression over its constituents.
	ExpressionDown(ref Expression, decl *Declaration, symbols *SymbolTable) (Expression, bool)

	// ValueUp reassembles a solution value for decl from its constituents'
	// solution values, for reporting results back in the original model's
	// terms.
	ValueUp(parts map[string]Literal, decl *Declaration) (Literal, bool)

	// ValueDown splits a concrete value for decl's original domain into its
	// constituents' values, keyed by each constituent's own Name.String()
	// (the same keying ValueUp reads back), so property tests can check
	// ValueUp(ValueDown(v)) == v (spec.md §8 invariant 4) without decoding
	// through a solver round trip.
	ValueDown(lit Literal, decl *Declaration) (map[string]Literal, bool)

	// Names returns the constituent Names decl's declaration decomposes
	// into, in the same order DeclarationDown produces them.
	Names(decl *Declaration) []Name
}

// RepresentationRegistry holds every registered Representation strategy, in
// registration order — representation selection tries them in order and
// takes the first that Applies.
type RepresentationRegistry struct {
	strategies []Representation
}

var globalRepresentations = &RepresentationRegistry{}

// RegisterRepresentation adds a strategy to the global registry. Like
// RegisterRule, this is meant to be called from a repr_*.go package-level
// init().
func RegisterRepresentation(r Representation) {
	globalRepresentations.strategies = append(globalRepresentations.strategies, r)
}

// GlobalRepresentations returns the process-wide representation registry.
func GlobalRepresentations() *RepresentationRegistry { return globalRepresentations }

// SelectFor returns the first registered strategy that applies to decl, if
// any.
func (r *RepresentationRegistry) SelectFor(decl *Declaration) (Representation, bool) {
	for _, s := range r.strategies {
		if s.Applies(decl) {
			return s, true
		}
	}
	return nil, false
}

// intEncoding names which of the three SAT int representations
// (sat_order, sat_direct_int, sat_log_int) Applies when more than one of
// them could otherwise decompose the same finite Int domain. spec.md §4.5:
// "For SAT int encodings, the encoding chosen via configuration determines
// the single representation" — configuration here is this package-level
// switch rather than a field threaded through every Applies call, since
// the representation layer has no other notion of "current run config."
var intEncoding = "sat_order"

// SetIntEncoding selects which SAT int representation strategy
// (sat_order, sat_direct_int, or sat_log_int) Applies to a finite Int
// domain. The default is "sat_order". The selection does not depend on
// the solver family.
func SetIntEncoding(name string) { intEncoding = name }

// IntEncoding reports the currently selected SAT int representation name.
func IntEncoding() string { return intEncoding }
