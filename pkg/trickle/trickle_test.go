package trickle_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorbrook/trickle/pkg/trickle"
)

// TestScenarios exercises eight of the nine concrete scenarios from the
// design's testable-properties section end to end, through the public façade
// only; the arity-mismatch scenario is covered elsewhere (see below).
func TestScenarios(t *testing.T) {
	t.Run("SingleNodeGraph", func(t *testing.T) {
		b := trickle.NewGraph()
		sink := trickle.Call0(b, trickle.Node0[string](func() trickle.Future[string] {
			return trickle.Immediate("hello world!!")
		}))

		g, err := sink.Build()
		require.NoError(t, err)

		out, err := trickle.Run(context.Background(), g, trickle.RunOptions{})
		require.NoError(t, err)
		assert.Equal(t, "hello world!!", out)
	})

	t.Run("NamedInput", func(t *testing.T) {
		theInput := trickle.NewName[string]("theInput")

		b := trickle.NewGraph()
		trickle.DeclareInputs(b, theInput)
		sink := trickle.Call1(b, trickle.Node1[string, string](func(name string) trickle.Future[string] {
			return trickle.Immediate("hello " + name + "!")
		}), trickle.Input[string](theInput))

		g, err := sink.Build()
		require.NoError(t, err)
		g = trickle.Bind(g, theInput, "petter")

		out, err := trickle.Run(context.Background(), g, trickle.RunOptions{})
		require.NoError(t, err)
		assert.Equal(t, "hello petter!", out)
	})

	t.Run("HappensAfterOrdering", func(t *testing.T) {
		var counter int64
		incr1Done := make(chan struct{})
		latch := make(chan struct{})

		b := trickle.NewGraph()
		incr1 := trickle.Call0(b, trickle.Node0[struct{}](func() trickle.Future[struct{}] {
			atomic.AddInt64(&counter, 1)
			close(incr1Done)
			return trickle.Immediate(struct{}{})
		})).Named("incr1")
		incr2 := trickle.Call0(b, trickle.Node0[struct{}](func() trickle.Future[struct{}] {
			<-latch
			atomic.AddInt64(&counter, 1)
			return trickle.Immediate(struct{}{})
		})).Named("incr2")
		result := trickle.Call0(b, trickle.Node0[int64](func() trickle.Future[int64] {
			return trickle.Immediate(atomic.LoadInt64(&counter))
		})).Named("result")
		result = result.After(incr1, incr2)

		g, err := result.Build()
		require.NoError(t, err)

		pool, err := trickle.NewPoolContext(trickle.PoolConfig{Workers: 2})
		require.NoError(t, err)

		// The sink future must stay pending while incr2 blocks on the latch,
		// even though incr1 (its independent happens-after predecessor) has
		// already observed and incremented the counter.
		sink := trickle.RunAsync[int64](g, trickle.RunOptions{ExecCtx: pool})
		<-incr1Done

		_, _, done := trickle.Peek(sink)
		assert.False(t, done, "sink future resolved before incr2's latch released")
		assert.Equal(t, int64(1), atomic.LoadInt64(&counter))

		close(latch)

		v, err := trickle.Get(context.Background(), sink)
		require.NoError(t, err)
		assert.Equal(t, int64(2), v)
	})

	t.Run("Fallback", func(t *testing.T) {
		b := trickle.NewGraph()
		sink := trickle.Call0(b, trickle.Node0[string](func() trickle.Future[string] {
			panic("synchronous failure")
		})).Fallback("fallback response")

		g, err := sink.Build()
		require.NoError(t, err)

		out, err := trickle.Run(context.Background(), g, trickle.RunOptions{})
		require.NoError(t, err)
		assert.Equal(t, "fallback response", out)
	})

	t.Run("MultipleSinks", func(t *testing.T) {
		b := trickle.NewGraph()
		first := trickle.Call0(b, trickle.Node0[string](func() trickle.Future[string] {
			return trickle.Immediate("one")
		})).Named("the first sink")
		trickle.Call0(b, trickle.Node0[string](func() trickle.Future[string] {
			return trickle.Immediate("two")
		}))

		_, err := first.Build()
		require.Error(t, err)
		var trickleErr *trickle.TrickleException
		require.ErrorAs(t, err, &trickleErr)
		assert.Contains(t, err.Error(), "Multiple sinks")
		assert.Contains(t, err.Error(), "the first sink")
		assert.Contains(t, err.Error(), "unnamed")
	})

	t.Run("Cycle", func(t *testing.T) {
		b := trickle.NewGraph()
		n1 := trickle.Call0(b, trickle.Node0[int](func() trickle.Future[int] {
			return trickle.Immediate(1)
		})).Named("n1")
		n2 := trickle.Call0(b, trickle.Node0[int](func() trickle.Future[int] {
			return trickle.Immediate(2)
		})).Named("n2")
		n1 = n1.After(n2)
		n2 = n2.After(n1)

		_, err := n1.Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cycle detected")
		msg := err.Error()
		assert.True(t,
			strings.Contains(msg, "n1 -> n2 -> n1") || strings.Contains(msg, "n2 -> n1 -> n2"),
			"expected a representative cycle path, got: %s", msg)
	})

	// Arity mismatch (Node2 declared with no .with(...)) is covered by
	// graph.TestBuild_ArityMismatch in internal/core/graph: the typed Call0..
	// Call3 builder used here always supplies exactly as many bindings as its
	// generic arity, so the mismatch this scenario targets is only reachable
	// by hand-constructing a NodeDecl, not through this public façade.

	t.Run("EmptyGraph", func(t *testing.T) {
		b := trickle.NewGraph()

		_, err := trickle.Build[int](b)
		require.Error(t, err)
		assert.ErrorIs(t, err, trickle.ErrEmptyGraph)
	})

	t.Run("CompletedCallsInError", func(t *testing.T) {
		b := trickle.NewGraph()
		a := trickle.Call0(b, trickle.Node0[int](func() trickle.Future[int] {
			return trickle.Immediate(1)
		})).Named("a")
		bNode := trickle.Call0(b, trickle.Node0[int](func() trickle.Future[int] {
			return trickle.Immediate(2)
		})).Named("b")
		boom := trickle.Call2(b,
			trickle.Node2[int, int, int](func(int, int) trickle.Future[int] {
				return trickle.ImmediateFailure[int](errors.New("deliberate"))
			}),
			trickle.Ref[int](a), trickle.Ref[int](bNode)).Named("boom")
		boom = boom.After(a, bNode)

		g, err := boom.Build()
		require.NoError(t, err)

		_, err = trickle.Run(context.Background(), g, trickle.RunOptions{})
		require.Error(t, err)

		var gee *trickle.GraphExecutionException
		require.ErrorAs(t, err, &gee)
		assert.Len(t, gee.Calls(), 2)
	})
}
