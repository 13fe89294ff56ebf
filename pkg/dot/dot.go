// Package dot renders a declared graph's NodeInfo structure as Graphviz DOT,
// an external-collaborator view the core engine exposes but never depends
// on itself.
package dot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mirrorbrook/trickle/internal/core/node"
	"github.com/mirrorbrook/trickle/pkg/trickle"
)

// Write renders sink and every node reachable from it (via Predecessors) as
// a directed Graphviz graph, one edge per dependency.
func Write(sink trickle.NodeInfo) string {
	var b strings.Builder
	b.WriteString("digraph trickle {\n")
	b.WriteString("  rankdir=LR;\n")

	ids := make(map[trickle.NodeInfo]string)
	counter := 0
	nodeID := func(n trickle.NodeInfo) string {
		if id, ok := ids[n]; ok {
			return id
		}
		id := fmt.Sprintf("n%d", counter)
		counter++
		ids[n] = id

		shape := "ellipse"
		if n.Kind() == node.KindNode {
			shape = "box"
		}
		fmt.Fprintf(&b, "  %s [label=%q shape=%s];\n", id, n.Name(), shape)
		return id
	}

	var edges []string
	visited := make(map[string]bool)
	var visit func(n trickle.NodeInfo)
	visit = func(n trickle.NodeInfo) {
		id := nodeID(n)
		if visited[id] {
			return
		}
		visited[id] = true
		for _, pred := range n.Predecessors() {
			edges = append(edges, fmt.Sprintf("  %s -> %s;", nodeID(pred), id))
			visit(pred)
		}
	}
	visit(sink)

	sort.Strings(edges)
	for _, e := range edges {
		b.WriteString(e)
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}
