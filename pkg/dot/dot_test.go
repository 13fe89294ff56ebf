package dot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorbrook/trickle/pkg/dot"
	"github.com/mirrorbrook/trickle/pkg/trickle"
)

func TestWrite_RendersNodesAndEdges(t *testing.T) {
	b := trickle.NewGraph()
	left := trickle.Call0(b, trickle.Node0[int](func() trickle.Future[int] {
		return trickle.Immediate(1)
	})).Named("left")
	right := trickle.Call0(b, trickle.Node0[int](func() trickle.Future[int] {
		return trickle.Immediate(2)
	})).Named("right")
	sum := trickle.Call2(b,
		trickle.Node2[int, int, int](func(a, c int) trickle.Future[int] { return trickle.Immediate(a + c) }),
		trickle.Ref[int](left), trickle.Ref[int](right)).Named("sum")

	g, err := sum.Build()
	require.NoError(t, err)

	out := dot.Write(g.Sink())
	assert.Contains(t, out, "digraph trickle {")
	assert.Contains(t, out, `"left"`)
	assert.Contains(t, out, `"right"`)
	assert.Contains(t, out, `"sum"`)
	assert.Contains(t, out, "}\n")
}
