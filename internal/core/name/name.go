// Package name implements the externally-bindable input slot used by graph
// nodes to request a runtime value: Name[T]. Identity, not the label string,
// is what makes two Names distinct — see Erased.ID.
package name

import "github.com/google/uuid"

// Erased is the label+identity view of a Name[T] with its value type erased,
// used wherever the graph machinery needs to compare or store names without
// knowing T (binding storage, the builder's declared-inputs set).
type Erased interface {
	ID() uuid.UUID
	Label() string
}

// Name is a typed, externally-bindable input slot. Two Names created with
// the same label are still distinct slots: New mints a fresh uuid.UUID per
// call, and that id — not the label — is the identity used for binding and
// lookup.
type Name[T any] struct {
	id    uuid.UUID
	label string
}

// New creates a Name[T] with a fresh identity and the given display label.
func New[T any](label string) Name[T] {
	return Name[T]{id: uuid.New(), label: label}
}

// ID returns this Name's identity.
func (n Name[T]) ID() uuid.UUID { return n.id }

// Label returns this Name's human-readable label.
func (n Name[T]) Label() string { return n.label }

func (n Name[T]) String() string { return n.label }
