package graph

import (
	"github.com/google/uuid"
	"github.com/mirrorbrook/trickle/internal/core/name"
)

// Graph is a validated, buildable computation: a single sink NodeDecl plus
// every declaration reachable from it, and the external inputs it requires
// bound before Run. A Graph is itself a Ref, so a previously built graph can
// be wired as an argument into an enclosing one.
type Graph[R any] struct {
	sink  *NodeDecl
	decls []*NodeDecl
	bound map[uuid.UUID]any
}

func (g *Graph[R]) declRef() *NodeDecl { return g.sink }

// Sink returns the graph's single terminal declaration.
func (g *Graph[R]) Sink() *NodeDecl { return g.sink }

// Nodes returns every declaration reachable from the sink, for introspection
// and visualization.
func (g *Graph[R]) Nodes() []*NodeDecl { return g.decls }

// Bound returns the value bound to input id, if any.
func (g *Graph[R]) Bound(id uuid.UUID) (any, bool) {
	v, ok := g.bound[id]
	return v, ok
}

// BoundValues returns every value bound so far, keyed by input id, for the
// traverser to resolve named-input bindings against.
func (g *Graph[R]) BoundValues() map[uuid.UUID]any { return g.bound }

// Bind supplies the value for an externally-declared Name[T] input ahead of
// Run. g is left unchanged: Bind returns a new Graph sharing g's declarations
// and carrying g's bindings plus this one, so calls can be chained.
func Bind[R, T any](g *Graph[R], n name.Name[T], v T) *Graph[R] {
	bound := make(map[uuid.UUID]any, len(g.bound)+1)
	for id, val := range g.bound {
		bound[id] = val
	}
	bound[n.ID()] = v
	return &Graph[R]{sink: g.sink, decls: g.decls, bound: bound}
}

// Build validates b and, if the graph is well-formed, returns an immutable
// Graph rooted at the builder's single discovered sink. Validation runs in a
// fixed order: empty graph, then argument arity, then dangling named inputs,
// then single-sink uniqueness, then cycle detection — the first violation
// found is reported. Callers reach this through a DeclN's Build method
// rather than calling it directly.
func Build[R any](b *Builder) (*Graph[R], error) {
	if len(b.decls) == 0 {
		return nil, ErrEmptyGraph
	}

	if err := checkArity(b.decls); err != nil {
		return nil, err
	}
	if err := checkInputs(b.decls, b.inputs); err != nil {
		return nil, err
	}
	sinkDecl, err := checkSingleSink(b.decls)
	if err != nil {
		return nil, err
	}
	if err := checkAcyclic(b.decls); err != nil {
		return nil, err
	}

	reachable := reachableFrom(sinkDecl)
	return &Graph[R]{sink: sinkDecl, decls: reachable}, nil
}

func checkArity(decls []*NodeDecl) error {
	for _, d := range decls {
		if d.invoker.Arity() != len(d.bindings) {
			return newTrickleException(
				"Incorrect argument count: node %q declared with %d bound argument(s) but its function takes %d",
				d.DisplayName(), len(d.bindings), d.invoker.Arity())
		}
	}
	return nil
}

func checkInputs(decls []*NodeDecl, inputs map[uuid.UUID]name.Erased) error {
	for _, d := range decls {
		for _, b := range d.bindings {
			if b.Kind() != BindNamedInput {
				continue
			}
			if _, ok := inputs[b.InputName().ID()]; !ok {
				return newTrickleException(
					"node %q references input %q that was never declared on the builder",
					d.DisplayName(), b.InputName().Label())
			}
		}
	}
	return nil
}

// checkSingleSink finds the one declaration in decls that is not referenced
// as a predecessor of any other declaration — the builder's sink — and
// fails if more than one such terminal exists. Zero terminals (only
// possible in a cyclic graph) is left for checkAcyclic to report.
func checkSingleSink(decls []*NodeDecl) (*NodeDecl, error) {
	referenced := make(map[uuid.UUID]bool)
	for _, d := range decls {
		for _, b := range d.bindings {
			if b.Kind() == BindGraphRef {
				referenced[b.RefDecl().id] = true
			}
		}
		for _, a := range d.after {
			referenced[a.id] = true
		}
	}

	var terminals []*NodeDecl
	for _, d := range decls {
		if !referenced[d.id] {
			terminals = append(terminals, d)
		}
	}

	if len(terminals) > 1 {
		names := make([]string, len(terminals))
		for i, t := range terminals {
			names[i] = t.DisplayName()
		}
		return nil, newTrickleException("Multiple sinks: graph has more than one sink node: %v", names)
	}
	if len(terminals) == 0 {
		return nil, nil
	}
	return terminals[0], nil
}

type color int

const (
	white color = iota
	gray
	black
)

// checkAcyclic runs DFS with the standard white/gray/black coloring over
// every declaration's predecessor edges (graph-ref bindings and explicit
// After() edges), reporting the first cycle found as a display-name path.
func checkAcyclic(decls []*NodeDecl) error {
	colors := make(map[uuid.UUID]color, len(decls))
	var path []string
	var visit func(d *NodeDecl) error
	visit = func(d *NodeDecl) error {
		colors[d.id] = gray
		path = append(path, d.DisplayName())
		for _, p := range d.Predecessors() {
			pd, ok := p.(*NodeDecl)
			if !ok {
				continue
			}
			switch colors[pd.id] {
			case white:
				if err := visit(pd); err != nil {
					return err
				}
			case gray:
				return newTrickleException("cycle detected: %s -> %s", joinPath(path), pd.DisplayName())
			}
		}
		path = path[:len(path)-1]
		colors[d.id] = black
		return nil
	}

	for _, d := range decls {
		if colors[d.id] == white {
			if err := visit(d); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinPath(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += " -> "
		}
		out += p
	}
	return out
}

func reachableFrom(sink *NodeDecl) []*NodeDecl {
	seen := make(map[uuid.UUID]bool)
	var order []*NodeDecl
	var visit func(d *NodeDecl)
	visit = func(d *NodeDecl) {
		if seen[d.id] {
			return
		}
		seen[d.id] = true
		for _, p := range d.Predecessors() {
			if pd, ok := p.(*NodeDecl); ok {
				visit(pd)
			}
		}
		order = append(order, d)
	}
	visit(sink)
	return order
}
