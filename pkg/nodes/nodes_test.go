package nodes_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorbrook/trickle/pkg/nodes"
	"github.com/mirrorbrook/trickle/pkg/trickle"
)

func TestConstAndLift(t *testing.T) {
	b := trickle.NewGraph()
	c := trickle.Call0(b, nodes.Const(7)).Named("c")
	doubled := trickle.Call1(b, nodes.Lift1(func(a int) int { return a * 2 }), trickle.Ref[int](c)).Named("doubled")

	g, err := doubled.Build()
	require.NoError(t, err)

	out, err := trickle.Run(context.Background(), g, trickle.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, 14, out)
}

func TestLiftErr1_PropagatesFailure(t *testing.T) {
	b := trickle.NewGraph()
	failing := trickle.Call1(b, nodes.LiftErr1(func(a int) (int, error) {
		return 0, errors.New("boom")
	}), trickle.Const(1)).Named("failing")

	g, err := failing.Build()
	require.NoError(t, err)

	_, err = trickle.Run(context.Background(), g, trickle.RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

type namedBuilder struct{ name string }

func (n namedBuilder) Name() string { return n.name }

func TestRegistry(t *testing.T) {
	r := nodes.NewRegistry()
	r.Register(namedBuilder{name: "alpha"})

	got, ok := r.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", got.Name())

	_, ok = r.Get("missing")
	assert.False(t, ok)

	assert.Panics(t, func() {
		r.MustRegister(namedBuilder{name: "alpha"})
	})
}
