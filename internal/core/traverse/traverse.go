// Package traverse drives a single Graph run: resolving each node's
// arguments, dispatching its invocation through an ExecutionContext exactly
// once regardless of how many dependents race to request it, applying
// fallback substitution, and recording a call log for diagnostics.
package traverse

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/mirrorbrook/trickle/internal/core/future"
	"github.com/mirrorbrook/trickle/internal/core/graph"
	"github.com/mirrorbrook/trickle/internal/core/wrapper"
	"github.com/mirrorbrook/trickle/internal/infrastructure/metrics"
)

// State holds everything one graph run needs: the externally
// bound input values, the ExecutionContext node invocations dispatch
// through, whether failures should be wrapped in diagnostics, and the
// memoization/call-log bookkeeping that guarantees each NodeDecl is invoked
// at most once.
type State struct {
	bound   map[uuid.UUID]any
	execCtx future.ExecutionContext
	wrap    bool

	mu    sync.Mutex
	memo  map[uuid.UUID]future.Future[any]
	calls []wrapper.CallRecord
	sf    singleflight.Group
}

// NewState creates run state over the given bound inputs.
func NewState(bound map[uuid.UUID]any, execCtx future.ExecutionContext, wrap bool) *State {
	if execCtx == nil {
		execCtx = future.Sync{}
	}
	return &State{
		bound:   bound,
		execCtx: execCtx,
		wrap:    wrap,
		memo:    make(map[uuid.UUID]future.Future[any]),
	}
}

// Calls returns the run's full call log, in the order calls were recorded. A
// call is recorded once its argument futures exist, before its After()
// predecessors are resolved, so this is not necessarily invocation order.
func (s *State) Calls() []wrapper.CallRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]wrapper.CallRecord, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *State) record(rec wrapper.CallRecord) {
	s.mu.Lock()
	s.calls = append(s.calls, rec)
	s.mu.Unlock()
}

// Resolve returns decl's result future, invoking it at most once for this
// State even if multiple concurrent callers request it before it completes.
func Resolve(s *State, decl *graph.NodeDecl) future.Future[any] {
	s.mu.Lock()
	if f, ok := s.memo[decl.ID()]; ok {
		s.mu.Unlock()
		return f
	}
	s.mu.Unlock()

	ch, _, _ := s.sf.Do(decl.ID().String(), func() (any, error) {
		s.mu.Lock()
		if f, ok := s.memo[decl.ID()]; ok {
			s.mu.Unlock()
			return f, nil
		}
		s.mu.Unlock()
		f := resolveOnce(s, decl)
		s.mu.Lock()
		s.memo[decl.ID()] = f
		s.mu.Unlock()
		return f, nil
	})
	return ch.(future.Future[any])
}

func resolveOnce(s *State, decl *graph.NodeDecl) future.Future[any] {
	argFutures := make([]future.Future[any], len(decl.Bindings()))
	for i, b := range decl.Bindings() {
		argFutures[i] = resolveBinding(s, b)
	}

	s.record(wrapper.CallRecord{Info: decl, Args: argFutures})

	waits := make([]future.Future[any], 0, len(argFutures)+len(decl.After()))
	waits = append(waits, argFutures...)
	for _, pred := range decl.After() {
		waits = append(waits, Resolve(s, pred))
	}

	// Fallback only masks this node's own invocation failure: it wraps the
	// dispatch() future inside the Then closure, never the AllOf gate above,
	// so a failure originating from one of this node's arguments still
	// propagates unmasked.
	ready := future.AllOf(waits)
	return future.Then(ready, func(struct{}) future.Future[any] {
		invocation := dispatch(s, decl, argFutures)
		if fallback, ok := decl.Fallback(); ok {
			invocation = future.Recover(invocation, func(error) future.Future[any] {
				metrics.FallbackRecovered()
				return future.Immediate[any](fallback)
			})
		}
		return invocation
	})
}

func resolveBinding(s *State, b graph.Arg) future.Future[any] {
	switch b.Kind() {
	case graph.BindGraphRef:
		return Resolve(s, b.RefDecl())
	case graph.BindNamedInput:
		id := b.InputName().ID()
		s.mu.Lock()
		v, ok := s.bound[id]
		s.mu.Unlock()
		if !ok {
			return future.ImmediateFailure[any](fmt.Errorf("trickle: no value bound for input %v", id))
		}
		return future.Immediate(v)
	default:
		return future.Immediate(b.ConstValue())
	}
}

// dispatch submits decl's invocation to the ExecutionContext and recovers a
// panicking node into a failed future. The call itself is already recorded
// in the run's log by the time dispatch runs (resolveOnce records it as soon
// as decl's argument futures exist, before gating on their resolution), so a
// failure can be diagnosed alongside calls still in flight elsewhere in the
// graph.
func dispatch(s *State, decl *graph.NodeDecl, argFutures []future.Future[any]) future.Future[any] {
	metrics.NodeInvoked()

	p := future.NewPromise[any]()
	s.execCtx.Submit(func() {
		args := make([]any, len(argFutures))
		for i, af := range argFutures {
			v, err, _ := future.Peek(af)
			if err != nil {
				p.Reject(err)
				return
			}
			args[i] = v
		}

		func() {
			defer func() {
				if r := recover(); r != nil {
					cause := fmt.Errorf("trickle: node %q panicked: %v", decl.DisplayName(), r)
					reject(s, p, decl, argFutures, cause)
				}
			}()
			decl.Invoker().Invoke(args).OnComplete(func(res future.Result[any]) {
				if res.Err != nil {
					reject(s, p, decl, argFutures, res.Err)
					return
				}
				p.Resolve(res.Value)
			})
		}()
	})
	return p.Future()
}

// reject settles p with cause, wrapping it in a GraphExecutionException
// carrying the run's diagnostics when s.wrap is set — applied identically
// whether cause came from a failed future or a recovered panic.
func reject(s *State, p *future.Promise[any], decl *graph.NodeDecl, argFutures []future.Future[any], cause error) {
	if s.wrap {
		metrics.FailureWrapped()
		p.Reject(wrapper.Wrap(cause, wrapper.CallRecord{Info: decl, Args: argFutures}, s.Calls()))
		return
	}
	p.Reject(cause)
}
