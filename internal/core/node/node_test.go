package node

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorbrook/trickle/internal/core/future"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "NODE", KindNode.String())
	assert.Equal(t, "INPUT", KindInput.String())
	assert.Equal(t, "PARAMETER", KindParameter.String())
	assert.Equal(t, "UNKNOWN", Kind(99).String())
}

func TestErase0(t *testing.T) {
	inv := Erase0(Node0[int](func() future.Future[int] {
		return future.Immediate(7)
	}))
	assert.Equal(t, 0, inv.Arity())

	v, err, done := future.Peek(inv.Invoke(nil))
	require.True(t, done)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestErase1(t *testing.T) {
	inv := Erase1(Node1[int, string](func(a int) future.Future[string] {
		if a == 0 {
			return future.ImmediateFailure[string](errors.New("zero"))
		}
		return future.Immediate("ok")
	}))
	assert.Equal(t, 1, inv.Arity())

	v, err, done := future.Peek(inv.Invoke([]any{3}))
	require.True(t, done)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	_, err, done = future.Peek(inv.Invoke([]any{0}))
	require.True(t, done)
	assert.EqualError(t, err, "zero")
}

func TestErase2(t *testing.T) {
	inv := Erase2(Node2[int, int, int](func(a, b int) future.Future[int] {
		return future.Immediate(a + b)
	}))
	assert.Equal(t, 2, inv.Arity())

	v, _, _ := future.Peek(inv.Invoke([]any{2, 3}))
	assert.Equal(t, 5, v)
}

func TestErase3(t *testing.T) {
	inv := Erase3(Node3[int, int, int, int](func(a, b, c int) future.Future[int] {
		return future.Immediate(a + b + c)
	}))
	assert.Equal(t, 3, inv.Arity())

	v, _, _ := future.Peek(inv.Invoke([]any{1, 2, 3}))
	assert.Equal(t, 6, v)
}
