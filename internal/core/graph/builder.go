package graph

import (
	"github.com/google/uuid"
	"github.com/mirrorbrook/trickle/internal/core/name"
	"github.com/mirrorbrook/trickle/internal/core/node"
)

// Ref is satisfied by anything that resolves to a declared node: a DeclN
// builder result, or a previously-Built Graph used as a sub-graph argument.
type Ref interface {
	declRef() *NodeDecl
}

// Builder accumulates node declarations and externally-bound input names
// before a terminal Build call validates and freezes them into a Graph.
type Builder struct {
	decls  []*NodeDecl
	inputs map[uuid.UUID]name.Erased
}

// NewBuilder starts an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{inputs: make(map[uuid.UUID]name.Erased)}
}

// Inputs declares external Name[T] inputs the built graph will require callers
// to Bind before Run.
func Inputs(b *Builder, names ...name.Erased) *Builder {
	for _, n := range names {
		b.inputs[n.ID()] = n
	}
	return b
}

func (b *Builder) addDecl(d *NodeDecl) *NodeDecl {
	d.id = uuid.New()
	b.decls = append(b.decls, d)
	return d
}

// Decl0 is the builder handle for a zero-argument node declaration.
type Decl0[R any] struct {
	b *Builder
	d *NodeDecl
}

func (dd Decl0[R]) declRef() *NodeDecl { return dd.d }

// After records additional happens-after predecessors that must complete
// before this node runs, independent of argument data flow.
func (dd Decl0[R]) After(preds ...Ref) Decl0[R] {
	for _, p := range preds {
		dd.d.after = append(dd.d.after, p.declRef())
	}
	return dd
}

// Fallback sets the value substituted when this node's own invocation fails.
func (dd Decl0[R]) Fallback(v R) Decl0[R] {
	dd.d.hasFallback = true
	dd.d.fallback = v
	return dd
}

// Named sets this declaration's display name, used in diagnostics and
// visualization.
func (dd Decl0[R]) Named(label string) Decl0[R] {
	dd.d.displayName = label
	return dd
}

// Build validates dd's builder and, if well-formed, returns the immutable
// Graph rooted at its single discovered sink. The terminal call of a fluent
// declaration chain.
func (dd Decl0[R]) Build() (*Graph[R], error) { return Build[R](dd.b) }

// Call0 declares a zero-argument node call within b.
func Call0[R any](b *Builder, fn node.Node0[R]) Decl0[R] {
	return Decl0[R]{b: b, d: b.addDecl(&NodeDecl{invoker: node.Erase0(fn)})}
}

// Decl1 is the builder handle for a one-argument node declaration.
type Decl1[A, R any] struct {
	b *Builder
	d *NodeDecl
}

func (dd Decl1[A, R]) declRef() *NodeDecl { return dd.d }

func (dd Decl1[A, R]) After(preds ...Ref) Decl1[A, R] {
	for _, p := range preds {
		dd.d.after = append(dd.d.after, p.declRef())
	}
	return dd
}

func (dd Decl1[A, R]) Fallback(v R) Decl1[A, R] {
	dd.d.hasFallback = true
	dd.d.fallback = v
	return dd
}

func (dd Decl1[A, R]) Named(label string) Decl1[A, R] {
	dd.d.displayName = label
	return dd
}

// Build validates dd's builder and, if well-formed, returns the immutable
// Graph rooted at its single discovered sink.
func (dd Decl1[A, R]) Build() (*Graph[R], error) { return Build[R](dd.b) }

// Call1 declares a one-argument node call within b, bound to arg.
func Call1[A, R any](b *Builder, fn node.Node1[A, R], arg Binding[A]) Decl1[A, R] {
	d := b.addDecl(&NodeDecl{invoker: node.Erase1(fn), bindings: []Arg{arg.erase()}})
	return Decl1[A, R]{b: b, d: d}
}

// Decl2 is the builder handle for a two-argument node declaration.
type Decl2[A, B, R any] struct {
	b *Builder
	d *NodeDecl
}

func (dd Decl2[A, B, R]) declRef() *NodeDecl { return dd.d }

func (dd Decl2[A, B, R]) After(preds ...Ref) Decl2[A, B, R] {
	for _, p := range preds {
		dd.d.after = append(dd.d.after, p.declRef())
	}
	return dd
}

func (dd Decl2[A, B, R]) Fallback(v R) Decl2[A, B, R] {
	dd.d.hasFallback = true
	dd.d.fallback = v
	return dd
}

func (dd Decl2[A, B, R]) Named(label string) Decl2[A, B, R] {
	dd.d.displayName = label
	return dd
}

// Build validates dd's builder and, if well-formed, returns the immutable
// Graph rooted at its single discovered sink.
func (dd Decl2[A, B, R]) Build() (*Graph[R], error) { return Build[R](dd.b) }

// Call2 declares a two-argument node call within b, bound to a and bb.
func Call2[A, B, R any](b *Builder, fn node.Node2[A, B, R], a Binding[A], bb Binding[B]) Decl2[A, B, R] {
	d := b.addDecl(&NodeDecl{invoker: node.Erase2(fn), bindings: []Arg{a.erase(), bb.erase()}})
	return Decl2[A, B, R]{b: b, d: d}
}

// Decl3 is the builder handle for a three-argument node declaration.
type Decl3[A, B, C, R any] struct {
	b *Builder
	d *NodeDecl
}

func (dd Decl3[A, B, C, R]) declRef() *NodeDecl { return dd.d }

func (dd Decl3[A, B, C, R]) After(preds ...Ref) Decl3[A, B, C, R] {
	for _, p := range preds {
		dd.d.after = append(dd.d.after, p.declRef())
	}
	return dd
}

func (dd Decl3[A, B, C, R]) Fallback(v R) Decl3[A, B, C, R] {
	dd.d.hasFallback = true
	dd.d.fallback = v
	return dd
}

func (dd Decl3[A, B, C, R]) Named(label string) Decl3[A, B, C, R] {
	dd.d.displayName = label
	return dd
}

// Build validates dd's builder and, if well-formed, returns the immutable
// Graph rooted at its single discovered sink.
func (dd Decl3[A, B, C, R]) Build() (*Graph[R], error) { return Build[R](dd.b) }

// Call3 declares a three-argument node call within b, bound to a, bb, and c.
func Call3[A, B, C, R any](b *Builder, fn node.Node3[A, B, C, R], a Binding[A], bb Binding[B], c Binding[C]) Decl3[A, B, C, R] {
	d := b.addDecl(&NodeDecl{invoker: node.Erase3(fn), bindings: []Arg{a.erase(), bb.erase(), c.erase()}})
	return Decl3[A, B, C, R]{b: b, d: d}
}
