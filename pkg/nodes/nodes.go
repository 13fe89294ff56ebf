// Package nodes provides small constructors for turning ordinary values and
// synchronous functions into the Node0..Node3 shapes trickle graphs call,
// the way the reference implementation's pkg/prebuilt offers ready-made
// graph pieces instead of asking every caller to hand-write adapters.
package nodes

import (
	"fmt"

	"github.com/mirrorbrook/trickle/pkg/trickle"
)

// Const returns a Node0 that always resolves immediately to v.
func Const[R any](v R) trickle.Node0[R] {
	return func() trickle.Future[R] { return trickle.Immediate(v) }
}

// Lift0 adapts a synchronous, always-succeeding function into a Node0.
func Lift0[R any](fn func() R) trickle.Node0[R] {
	return func() trickle.Future[R] { return trickle.Immediate(fn()) }
}

// Lift1 adapts a synchronous, always-succeeding function into a Node1.
func Lift1[A, R any](fn func(A) R) trickle.Node1[A, R] {
	return func(a A) trickle.Future[R] { return trickle.Immediate(fn(a)) }
}

// Lift2 adapts a synchronous, always-succeeding function into a Node2.
func Lift2[A, B, R any](fn func(A, B) R) trickle.Node2[A, B, R] {
	return func(a A, b B) trickle.Future[R] { return trickle.Immediate(fn(a, b)) }
}

// Lift3 adapts a synchronous, always-succeeding function into a Node3.
func Lift3[A, B, C, R any](fn func(A, B, C) R) trickle.Node3[A, B, C, R] {
	return func(a A, b B, c C) trickle.Future[R] { return trickle.Immediate(fn(a, b, c)) }
}

// LiftErr1 adapts a synchronous, fallible function into a Node1.
func LiftErr1[A, R any](fn func(A) (R, error)) trickle.Node1[A, R] {
	return func(a A) trickle.Future[R] {
		v, err := fn(a)
		if err != nil {
			return trickle.ImmediateFailure[R](err)
		}
		return trickle.Immediate(v)
	}
}

// Builder names a reusable sub-graph constructor, the way the reference
// implementation's prebuilt.Builder names a reusable FlowGraph constructor.
type Builder interface {
	Name() string
}

// Registry holds named, reusable node/sub-graph constructors a caller can
// look up at runtime instead of wiring every graph by hand.
type Registry struct {
	entries map[string]Builder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Builder)}
}

// Register adds or replaces a named builder.
func (r *Registry) Register(b Builder) { r.entries[b.Name()] = b }

// MustRegister panics if a builder with the same name is already registered.
func (r *Registry) MustRegister(b Builder) {
	if _, exists := r.entries[b.Name()]; exists {
		panic(fmt.Sprintf("nodes: builder already registered: %s", b.Name()))
	}
	r.entries[b.Name()] = b
}

// Get retrieves a named builder.
func (r *Registry) Get(name string) (Builder, bool) {
	b, ok := r.entries[name]
	return b, ok
}
