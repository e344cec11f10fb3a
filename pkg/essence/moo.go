package essence

// DeepCloner is implemented by every value that can live inside a Moo. For
// Expression (an interface type whose implementations are themselves heap
// values), CloneValue must produce an independent copy of the concrete value
// underneath the interface — a plain Go struct copy of an interface variable
// only copies the interface header, which is not enough to break aliasing.
type DeepCloner[T any] interface {
	CloneValue() T
}

// Moo is a clone-on-write, reference-counted pointer to an AST value,
// modelled directly on conjure-oxide's own `Moo<T>` wrapper over `Arc<T>`
// (see original_source/crates/conjure-cp-core/src/ast/moo.rs): cloning a Moo
// is cheap and shares the underlying value until a mutation is requested
// through MakeMut, at which point the value is deep-copied iff more than one
// Moo currently points to it.
//
// Unlike Go's own reference types, Moo does not promise that two pointers
// which used to alias the same value still alias it after a MakeMut call on
// either one — this mirrors the Rust original's documented contract.
type Moo[T DeepCloner[T]] struct {
	box *mooBox[T]
}

type mooBox[T DeepCloner[T]] struct {
	refs  int32
	value T
}

// NewMoo constructs a new Moo wrapping value, with a single reference.
func NewMoo[T DeepCloner[T]](value T) Moo[T] {
	return Moo[T]{box: &mooBox[T]{refs: 1, value: value}}
}

// Clone returns a new Moo pointer sharing the same underlying value as m,
// incrementing its reference count. This never copies T.
func (m Moo[T]) Clone() Moo[T] {
	if m.box != nil {
		m.box.refs++
	}
	return m
}

// Get returns a read-only view of the wrapped value.
func (m Moo[T]) Get() T {
	return m.box.value
}

// Shared reports whether more than one Moo pointer references the same box.
func (m Moo[T]) Shared() bool {
	return m.box.refs > 1
}

// MakeMut returns a pointer to a mutable copy of m's value, deep-cloning the
// value into a fresh box iff it was shared. Mutating the returned *T is only
// safe for the caller holding this particular Moo handle; other handles that
// used to alias the same box are unaffected by the mutation.
func MakeMut[T DeepCloner[T]](m *Moo[T]) *T {
	if m.box.refs > 1 {
		m.box.refs--
		newBox := &mooBox[T]{refs: 1, value: m.box.value.CloneValue()}
		m.box = newBox
	}
	return &m.box.value
}

// UnwrapOrClone consumes m, returning its value directly if m held the only
// reference, and a deep copy otherwise. This is the Moo equivalent of
// `Arc::unwrap_or_clone`.
func UnwrapOrClone[T DeepCloner[T]](m Moo[T]) T {
	if m.box.refs == 1 {
		return m.box.value
	}
	return m.box.value.CloneValue()
}
