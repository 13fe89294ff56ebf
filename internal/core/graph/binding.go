package graph

import (
	"fmt"

	"github.com/mirrorbrook/trickle/internal/core/name"
)

// BindingKind classifies an Arg's source: another declared node's output, an
// externally-bound named input, or a compile-time constant.
type BindingKind int

const (
	BindGraphRef BindingKind = iota
	BindNamedInput
	BindConstant
)

// Arg is the arity-erased description of one argument a NodeDecl asks for.
// It is exported so the traverser (a separate package) can resolve it
// without reaching into Binding's type parameter.
type Arg struct {
	kind  BindingKind
	ref   *NodeDecl   // BindGraphRef
	input name.Erased // BindNamedInput
	value any         // BindConstant
}

// Kind reports whether this argument resolves to another node's output, an
// externally-bound named input, or a baked-in constant.
func (a Arg) Kind() BindingKind { return a.kind }

// RefDecl returns the referenced declaration for a BindGraphRef argument.
func (a Arg) RefDecl() *NodeDecl { return a.ref }

// InputName returns the referenced input name for a BindNamedInput argument.
func (a Arg) InputName() name.Erased { return a.input }

// ConstValue returns the baked-in value for a BindConstant argument.
func (a Arg) ConstValue() any { return a.value }

// DisplayName returns a human-readable label for this argument, used in
// diagnostics.
func (a Arg) DisplayName() string {
	switch a.kind {
	case BindGraphRef:
		return a.ref.DisplayName()
	case BindNamedInput:
		return a.input.Label()
	default:
		return fmt.Sprintf("%v", a.value)
	}
}

// Binding is the typed argument descriptor callers pass to Call0..Call3: a
// reference to another graph's output, a named external input, or a
// constant value.
type Binding[T any] struct {
	arg Arg
}

func (b Binding[T]) erase() Arg { return b.arg }

// ArgRef binds an argument to another Graph's result. g itself satisfies Ref
// via declRef, so a sub-graph built with Build can be wired directly as an
// argument to a node in an enclosing graph.
func ArgRef[T any](g Ref) Binding[T] {
	return Binding[T]{arg: Arg{kind: BindGraphRef, ref: g.declRef()}}
}

// Input binds an argument to an externally-supplied Name[T], resolved from
// the bound-value map at run time.
func Input[T any](n name.Name[T]) Binding[T] {
	return Binding[T]{arg: Arg{kind: BindNamedInput, input: n}}
}

// Const binds an argument to a fixed value, known at build time.
func Const[T any](v T) Binding[T] {
	return Binding[T]{arg: Arg{kind: BindConstant, value: v}}
}
