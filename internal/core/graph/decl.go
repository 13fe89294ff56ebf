package graph

import (
	"github.com/google/uuid"
	"github.com/mirrorbrook/trickle/internal/core/node"
)

// NodeDecl is the arity-erased, fully-resolved declaration of one node call
// within a graph: its invoker, its argument bindings, any explicit
// happens-after predecessors, and an optional fallback value masking its own
// invocation failure. Its id is the singleflight key the traverser uses to
// guarantee each NodeDecl runs at most once per graph run.
type NodeDecl struct {
	id          uuid.UUID
	invoker     node.Invoker
	bindings    []Arg
	after       []*NodeDecl
	hasFallback bool
	fallback    any
	displayName string
}

// ID returns this declaration's run-scoped identity.
func (d *NodeDecl) ID() uuid.UUID { return d.id }

// Invoker returns the arity-erased function this declaration calls.
func (d *NodeDecl) Invoker() node.Invoker { return d.invoker }

// Bindings returns this declaration's argument bindings, in call order.
func (d *NodeDecl) Bindings() []Arg { return d.bindings }

// After returns the declarations that must complete before this one may run,
// independent of argument data flow.
func (d *NodeDecl) After() []*NodeDecl { return d.after }

// Fallback returns the value to substitute when this node's own invocation
// fails, and whether one was set. A fallback never masks a failure that
// originates from one of this node's arguments.
func (d *NodeDecl) Fallback() (any, bool) { return d.fallback, d.hasFallback }

// DisplayName returns the caller-assigned name, or "unnamed" if none was
// given.
func (d *NodeDecl) DisplayName() string {
	if d.displayName == "" {
		return "unnamed"
	}
	return d.displayName
}

// declRef lets a NodeDecl-backed type (DeclN, Graph) be used as a Ref
// argument to Binding constructors.
func (d *NodeDecl) declRef() *NodeDecl { return d }

// Name implements node.Info.
func (d *NodeDecl) Name() string { return d.DisplayName() }

// Kind implements node.Info.
func (d *NodeDecl) Kind() node.Kind { return node.KindNode }

// Arguments implements node.Info: the NodeInfo view of each bound argument.
func (d *NodeDecl) Arguments() []node.Info {
	args := make([]node.Info, len(d.bindings))
	for i, b := range d.bindings {
		args[i] = bindingInfo{b}
	}
	return args
}

// Predecessors implements node.Info: every graph-ref argument plus every
// explicit After() dependency.
func (d *NodeDecl) Predecessors() []node.Info {
	var preds []node.Info
	for _, b := range d.bindings {
		if b.Kind() == BindGraphRef {
			preds = append(preds, b.RefDecl())
		}
	}
	for _, a := range d.after {
		preds = append(preds, a)
	}
	return preds
}

// bindingInfo adapts an Arg to node.Info for diagnostics.
type bindingInfo struct {
	b Arg
}

func (bi bindingInfo) Name() string { return bi.b.DisplayName() }

func (bi bindingInfo) Kind() node.Kind {
	switch bi.b.Kind() {
	case BindGraphRef:
		return node.KindNode
	case BindNamedInput:
		return node.KindInput
	default:
		return node.KindParameter
	}
}

func (bi bindingInfo) Arguments() []node.Info { return nil }

func (bi bindingInfo) Predecessors() []node.Info {
	if bi.b.Kind() == BindGraphRef {
		return []node.Info{bi.b.RefDecl()}
	}
	return nil
}
