// Package trickle is the public API for building and running asynchronous
// dataflow graphs: declare nodes with Call0..Call3, wire their arguments
// with Ref/Input/Const, Build the result into a Graph, Bind any external
// inputs it declared, and run it: RunAsync returns a Future of the sink's
// value, and Run blocks until that value (or the run's error) is available.
package trickle

import (
	"context"

	"github.com/mirrorbrook/trickle/internal/core/future"
	"github.com/mirrorbrook/trickle/internal/core/graph"
	"github.com/mirrorbrook/trickle/internal/core/name"
	"github.com/mirrorbrook/trickle/internal/core/node"
	"github.com/mirrorbrook/trickle/internal/core/traverse"
	"github.com/mirrorbrook/trickle/internal/core/wrapper"
	"github.com/mirrorbrook/trickle/internal/infrastructure/metrics"
)

// Name is an externally-bindable, identity-based input slot. Two Names built
// with the same label are still distinct slots.
type Name[T any] = name.Name[T]

// NewName mints a fresh Name[T] with the given display label.
func NewName[T any](label string) Name[T] { return name.New[T](label) }

// Node0..Node3 are the function shapes a caller implements for a node of
// that many arguments.
type (
	Node0[R any]          = node.Node0[R]
	Node1[A, R any]       = node.Node1[A, R]
	Node2[A, B, R any]    = node.Node2[A, B, R]
	Node3[A, B, C, R any] = node.Node3[A, B, C, R]
)

// NodeInfo is the diagnostic/visualization view of a declared node or one of
// its bound arguments.
type NodeInfo = node.Info

// Future is a handle to an eventually-available value.
type Future[T any] = future.Future[T]

// ExecutionContext dispatches node invocations; Sync runs them inline on the
// calling goroutine, Pool runs them across a worker pool.
type ExecutionContext = future.ExecutionContext

// Binding is the typed argument descriptor passed to Call0..Call3.
type Binding[T any] = graph.Binding[T]

// Ref binds an argument to another declared node's or a built Graph's
// result. g must be a DeclN returned by Call0..Call3, or a *Graph[T] used as
// a sub-graph argument.
func Ref[T any](g graph.Ref) Binding[T] { return graph.ArgRef[T](g) }

// Input binds an argument to an externally-supplied Name[T], resolved from
// the bound-value map at run time.
func Input[T any](n Name[T]) Binding[T] { return graph.Input(n) }

// Const binds an argument to a fixed value, known at build time.
func Const[T any](v T) Binding[T] { return graph.Const(v) }

// Builder accumulates node declarations before a terminal Build call.
type Builder = graph.Builder

// NewGraph starts an empty graph builder.
func NewGraph() *Builder { return graph.NewBuilder() }

// Decl0..Decl3 are the builder handles returned by Call0..Call3, used to
// attach After/Fallback/Named and to reference the declared node as an
// argument elsewhere in the graph.
type (
	Decl0[R any]          = graph.Decl0[R]
	Decl1[A, R any]       = graph.Decl1[A, R]
	Decl2[A, B, R any]    = graph.Decl2[A, B, R]
	Decl3[A, B, C, R any] = graph.Decl3[A, B, C, R]
)

// Call0..Call3 declare a node call of that arity within b.
func Call0[R any](b *Builder, fn Node0[R]) Decl0[R] { return graph.Call0(b, fn) }
func Call1[A, R any](b *Builder, fn Node1[A, R], a Binding[A]) Decl1[A, R] {
	return graph.Call1(b, fn, a)
}
func Call2[A, B, R any](b *Builder, fn Node2[A, B, R], a Binding[A], bb Binding[B]) Decl2[A, B, R] {
	return graph.Call2(b, fn, a, bb)
}
func Call3[A, B, C, R any](b *Builder, fn Node3[A, B, C, R], a Binding[A], bb Binding[B], c Binding[C]) Decl3[A, B, C, R] {
	return graph.Call3(b, fn, a, bb, c)
}

// DeclareInputs registers external Name[T] inputs the built graph will
// require callers to Bind before Run.
func DeclareInputs(b *Builder, names ...name.Erased) *Builder {
	return graph.Inputs(b, names...)
}

// Graph is a validated, runnable computation rooted at a single sink node.
// The usual way to reach one is the DeclN.Build method returned by
// Call0..Call3, the terminal call of a fluent declaration chain. Build below
// is its builder-level counterpart, for validating b directly (e.g. an
// empty builder with no declared calls at all).
type Graph[R any] = graph.Graph[R]

// Build validates b and returns an immutable Graph rooted at its single
// discovered sink, or the first validation failure found (empty graph,
// arity mismatch, dangling input, multiple sinks, or a cycle, checked in
// that order).
func Build[R any](b *Builder) (*Graph[R], error) {
	return graph.Build[R](b)
}

// Bind supplies the value for an externally-declared Name[T] input ahead of
// Run, returning a new Graph and leaving g unchanged.
func Bind[R, T any](g *Graph[R], n Name[T], v T) *Graph[R] {
	return graph.Bind(g, n, v)
}

// RunOptions configures a single Run or RunAsync invocation.
type RunOptions struct {
	// ExecCtx dispatches node invocations. Defaults to running everything
	// inline on the calling goroutine when nil.
	ExecCtx ExecutionContext
	// NoWrap, when true, leaves a failing node invocation's error as the raw
	// cause instead of wrapping it in a GraphExecutionException carrying run
	// diagnostics. Failure wrapping is on by default, per spec: a zero-value
	// RunOptions{} wraps; set NoWrap for the test-mode variant that inspects
	// raw causes directly.
	NoWrap bool
}

// RunAsync executes g once, without blocking: every reachable node is
// invoked at most once, its arguments resolved from binding graph edges,
// named inputs, or constants, as soon as they become available. The
// returned Future resolves with the sink's value once every dependency has
// settled — callers can attach OnComplete callbacks or Peek it before then.
func RunAsync[R any](g *Graph[R], opts RunOptions) Future[R] {
	metrics.RunStarted()
	state := traverse.NewState(g.BoundValues(), opts.ExecCtx, !opts.NoWrap)
	result := traverse.Resolve(state, g.Sink())
	typed := future.Cast[R](result)
	typed.OnComplete(func(r future.Result[R]) {
		if r.Err != nil {
			metrics.RunFailed()
		} else {
			metrics.RunCompleted()
		}
	})
	return typed
}

// Run executes g and blocks until the sink's value is available or ctx is
// cancelled, as a convenience wrapper over RunAsync.
func Run[R any](ctx context.Context, g *Graph[R], opts RunOptions) (R, error) {
	return future.Get(ctx, RunAsync(g, opts))
}

// Peek returns the resolved value and error for an already-done Future[T],
// and false if it has not completed yet. It never blocks.
func Peek[T any](f Future[T]) (value T, err error, done bool) { return future.Peek(f) }

// Get blocks until f resolves or ctx is cancelled.
func Get[T any](ctx context.Context, f Future[T]) (T, error) { return future.Get(ctx, f) }

// CallInfo is the resolved snapshot of one completed node call, exposed on a
// GraphExecutionException.
type CallInfo = wrapper.CallInfo

// GraphExecutionException is returned from Run when a node invocation fails,
// unless RunOptions.NoWrap was set: it names the failing node, its
// arguments, and a snapshot of the run's other completed calls.
type GraphExecutionException = wrapper.GraphExecutionException

// TrickleException reports a structural problem found while building a
// graph: an arity mismatch, a dangling named input, more than one sink, or a
// cycle.
type TrickleException = graph.TrickleException

// ErrEmptyGraph is returned by Build when the builder has no node
// declarations at all.
var ErrEmptyGraph = graph.ErrEmptyGraph

// Immediate returns an already-successful Future[T].
func Immediate[T any](v T) Future[T] { return future.Immediate(v) }

// ImmediateFailure returns an already-failed Future[T].
func ImmediateFailure[T any](err error) Future[T] { return future.ImmediateFailure[T](err) }

// NewSyncContext returns an ExecutionContext that runs every node inline, on
// the calling goroutine.
func NewSyncContext() ExecutionContext { return future.Sync{} }

// PoolConfig tunes a pool ExecutionContext's worker count and queue depth.
type PoolConfig = future.PoolConfig

// NewPoolContext starts a work-stealing worker-pool ExecutionContext.
func NewPoolContext(cfg PoolConfig) (ExecutionContext, error) {
	return future.NewPool(cfg)
}
