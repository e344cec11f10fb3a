package essence

import (
	"fmt"
	"strings"
)

// NameKind discriminates the three ways a Name can be produced (spec.md §3).
type NameKind int

const (
	// NameUser is a name written by the modeller in the source spec.
	NameUser NameKind = iota
	// NameMachine is a compiler-generated name, identified by a gensym id.
	NameMachine
	// NameRepresented is generated during representation selection; it
	// remembers the source name, the representation strategy, and a
	// structured suffix so it never needs string-parsing to recover them
	// (see SPEC_FULL.md §9 — this improves on the Rust original's ad hoc
	// string-split `name_to_indices`).
	NameRepresented
)

// Name identifies a Declaration. Represented names are produced by the
// representation layer (§4.5) and carry enough structure to be inverted
// without re-parsing a string.
type Name struct {
	kind NameKind

	user    string
	machine uint32

	reprSource  *Name
	reprName    string
	reprSuffix  []Literal
}

// UserName constructs a Name written by the modeller.
func UserName(s string) Name { return Name{kind: NameUser, user: s} }

// MachineName constructs a compiler-generated name from a gensym id.
func MachineName(id uint32) Name { return Name{kind: NameMachine, machine: id} }

// RepresentedName constructs a name produced by representation selection:
// source is the original declaration's name, repr is the representation
// strategy's name (e.g. "matrix_to_atom"), and suffix identifies which
// constituent this is (e.g. the flat index tuple).
func RepresentedName(source Name, repr string, suffix []Literal) Name {
	src := source
	return Name{kind: NameRepresented, reprSource: &src, reprName: repr, reprSuffix: suffix}
}

// Kind reports which of the three Name flavours this is.
func (n Name) Kind() NameKind { return n.kind }

// IsRepresented reports whether n was produced by representation selection.
func (n Name) IsRepresented() bool { return n.kind == NameRepresented }

// Represented returns the (source, reprName, suffix) triple for a
// represented name, and false otherwise.
func (n Name) Represented() (source Name, repr string, suffix []Literal, ok bool) {
	if n.kind != NameRepresented {
		return Name{}, "", nil, false
	}
	return *n.reprSource, n.reprName, n.reprSuffix, true
}

// Equal reports whether two names denote the same declaration identity.
func (n Name) Equal(other Name) bool {
	if n.kind != other.kind {
		return false
	}
	switch n.kind {
	case NameUser:
		return n.user == other.user
	case NameMachine:
		return n.machine == other.machine
	default:
		if !n.reprSource.Equal(*other.reprSource) || n.reprName != other.reprName {
			return false
		}
		if len(n.reprSuffix) != len(other.reprSuffix) {
			return false
		}
		for i := range n.reprSuffix {
			if !n.reprSuffix[i].Equal(other.reprSuffix[i]) {
				return false
			}
		}
		return true
	}
}

// String renders a Name for diagnostics and rule traces.
func (n Name) String() string {
	switch n.kind {
	case NameUser:
		return n.user
	case NameMachine:
		return fmt.Sprintf("__%d", n.machine)
	default:
		parts := make([]string, len(n.reprSuffix))
		for i, l := range n.reprSuffix {
			parts[i] = l.String()
		}
		return fmt.Sprintf("%s#%s_%s", n.reprSource.String(), n.reprName, strings.Join(parts, "_"))
	}
}
