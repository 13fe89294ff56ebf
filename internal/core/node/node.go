// Package node defines the Node0..Node3 function shapes a caller supplies to
// the graph builder, the NodeInfo diagnostic contract the builder/traverser
// expose about them, and the arity-erased Invoker the engine actually calls
// through (the engine never inspects a node's internals — it only ever
// dispatches args []any to Invoker.Invoke).
package node

import "github.com/mirrorbrook/trickle/internal/core/future"

// Kind classifies a NodeInfo for diagnostics and visualization.
type Kind int

const (
	KindNode Kind = iota
	KindInput
	KindParameter
)

func (k Kind) String() string {
	switch k {
	case KindNode:
		return "NODE"
	case KindInput:
		return "INPUT"
	case KindParameter:
		return "PARAMETER"
	default:
		return "UNKNOWN"
	}
}

// Info is the metadata view of a declared node or binding used for
// diagnostics, error messages, and external visualization.
type Info interface {
	Name() string
	Arguments() []Info
	Predecessors() []Info
	Kind() Kind
}

// Node0..Node3 are the typed shapes a caller implements: an asynchronous
// function of arity 0..3 returning a Future of its result. Go lacks
// variadic generics, so unlike arities are distinct named types rather than
// one Node[Args...] — trickle covers the common 0..3 range the reference
// Java library itself covers in its integration tests (Func0..Func3).
type (
	Node0[R any]       func() future.Future[R]
	Node1[A, R any]    func(A) future.Future[R]
	Node2[A, B, R any] func(A, B) future.Future[R]
	Node3[A, B, C, R any] func(A, B, C) future.Future[R]
)

// Invoker is the arity-erased shape the graph engine dispatches through.
type Invoker interface {
	Arity() int
	Invoke(args []any) future.Future[any]
}

type erasedInvoker struct {
	arity  int
	invoke func(args []any) future.Future[any]
}

func (e erasedInvoker) Arity() int                              { return e.arity }
func (e erasedInvoker) Invoke(args []any) future.Future[any] { return e.invoke(args) }

// Erase0 adapts a Node0 into an arity-erased Invoker.
func Erase0[R any](n Node0[R]) Invoker {
	return erasedInvoker{arity: 0, invoke: func(args []any) future.Future[any] {
		return future.MapAny(n())
	}}
}

// Erase1 adapts a Node1 into an arity-erased Invoker.
func Erase1[A, R any](n Node1[A, R]) Invoker {
	return erasedInvoker{arity: 1, invoke: func(args []any) future.Future[any] {
		return future.MapAny(n(args[0].(A)))
	}}
}

// Erase2 adapts a Node2 into an arity-erased Invoker.
func Erase2[A, B, R any](n Node2[A, B, R]) Invoker {
	return erasedInvoker{arity: 2, invoke: func(args []any) future.Future[any] {
		return future.MapAny(n(args[0].(A), args[1].(B)))
	}}
}

// Erase3 adapts a Node3 into an arity-erased Invoker.
func Erase3[A, B, C, R any](n Node3[A, B, C, R]) Invoker {
	return erasedInvoker{arity: 3, invoke: func(args []any) future.Future[any] {
		return future.MapAny(n(args[0].(A), args[1].(B), args[2].(C)))
	}}
}
