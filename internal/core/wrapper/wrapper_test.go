package wrapper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorbrook/trickle/internal/core/future"
	"github.com/mirrorbrook/trickle/internal/core/node"
)

type fakeInfo struct {
	name string
	args []node.Info
}

func newFakeInfo(name string, args ...node.Info) *fakeInfo {
	return &fakeInfo{name: name, args: args}
}

func (f *fakeInfo) Name() string              { return f.name }
func (f *fakeInfo) Arguments() []node.Info    { return f.args }
func (f *fakeInfo) Predecessors() []node.Info { return nil }
func (f *fakeInfo) Kind() node.Kind           { return node.KindNode }

func TestWrap_MessageIncludesNameAndResolvedArgs(t *testing.T) {
	arg := newFakeInfo("x")
	failing := newFakeInfo("boom", arg)
	cause := errors.New("deliberate failure")

	rec := CallRecord{Info: failing, Args: []future.Future[any]{future.Immediate[any](5)}}
	exc := Wrap(cause, rec, nil)

	assert.Contains(t, exc.Error(), `node "boom"`)
	assert.Contains(t, exc.Error(), "x=5")
	assert.Contains(t, exc.Error(), "deliberate failure")
}

func TestWrap_MessageOmitsUnresolvedArgValue(t *testing.T) {
	arg := newFakeInfo("x")
	failing := newFakeInfo("boom", arg)
	cause := errors.New("deliberate failure")

	p := future.NewPromise[any]()
	rec := CallRecord{Info: failing, Args: []future.Future[any]{p.Future()}}
	exc := Wrap(cause, rec, nil)

	assert.Contains(t, exc.Error(), "x]")
	assert.NotContains(t, exc.Error(), "x=")
}

func TestWrap_Unwrap(t *testing.T) {
	cause := errors.New("deliberate failure")
	failing := newFakeInfo("boom")
	exc := Wrap(cause, CallRecord{Info: failing}, nil)
	assert.ErrorIs(t, exc, cause)
}

func TestWrap_CallsExcludesFailingNode(t *testing.T) {
	a := newFakeInfo("a")
	c := newFakeInfo("c")
	boom := newFakeInfo("boom", a, c)

	log := []CallRecord{
		{Info: a, Args: nil},
		{Info: c, Args: nil},
		{Info: boom, Args: []future.Future[any]{future.Immediate[any](1), future.Immediate[any](2)}},
	}

	exc := Wrap(errors.New("boom"), log[2], log)
	require.Len(t, exc.Calls(), 2)
	names := []string{exc.Calls()[0].NodeInfo.Name(), exc.Calls()[1].NodeInfo.Name()}
	assert.ElementsMatch(t, []string{"a", "c"}, names)
}

func TestWrap_CallsExcludesIncompleteCalls(t *testing.T) {
	a := newFakeInfo("a")
	pending := newFakeInfo("pending")
	boom := newFakeInfo("boom")

	p := future.NewPromise[any]()
	log := []CallRecord{
		{Info: a, Args: nil},
		{Info: pending, Args: []future.Future[any]{p.Future()}},
	}

	exc := Wrap(errors.New("boom"), CallRecord{Info: boom}, log)
	require.Len(t, exc.Calls(), 1)
	assert.Equal(t, "a", exc.Calls()[0].NodeInfo.Name())
}
