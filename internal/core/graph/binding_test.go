package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorbrook/trickle/internal/core/future"
	"github.com/mirrorbrook/trickle/internal/core/name"
	"github.com/mirrorbrook/trickle/internal/core/node"
)

func TestConst_DisplayName(t *testing.T) {
	b := Const(42)
	arg := b.erase()
	assert.Equal(t, BindConstant, arg.Kind())
	assert.Equal(t, 42, arg.ConstValue())
	assert.Equal(t, "42", arg.DisplayName())
}

func TestInput_DisplayName(t *testing.T) {
	n := name.New[string]("greeting")
	b := Input(n)
	arg := b.erase()
	assert.Equal(t, BindNamedInput, arg.Kind())
	assert.Equal(t, "greeting", arg.DisplayName())
	assert.Equal(t, n.ID(), arg.InputName().ID())
}

func TestArgRef_DisplayName(t *testing.T) {
	builder := NewBuilder()
	decl := Call0(builder, node.Node0[int](func() future.Future[int] {
		return future.Immediate(1)
	})).Named("source")

	b := ArgRef[int](decl)
	arg := b.erase()
	require.Equal(t, BindGraphRef, arg.Kind())
	assert.Equal(t, "source", arg.DisplayName())
	assert.Same(t, decl.declRef(), arg.RefDecl())
}
