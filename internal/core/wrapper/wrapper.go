// Package wrapper builds the diagnostic exception raised when a node
// invocation fails during a graph run, mirroring the reference
// implementation's GraphExceptionWrapper: it names the failing node, its
// declared arguments, the currently-resolved values of those arguments, and
// a snapshot of every other call in the run that had already fully resolved
// its own arguments by the time of the failure.
package wrapper

import (
	"fmt"
	"strings"

	"github.com/mirrorbrook/trickle/internal/core/future"
	"github.com/mirrorbrook/trickle/internal/core/node"
)

// CallRecord is one node invocation's entry in a run's call log: its
// declared NodeInfo and the argument futures it was dispatched with. The
// futures may still be unresolved at the time the log is inspected.
type CallRecord struct {
	Info node.Info
	Args []future.Future[any]
}

// CallInfo is the resolved, string-safe snapshot of one completed call,
// exposed on GraphExecutionException.Calls().
type CallInfo struct {
	NodeInfo node.Info
	Args     []any
}

// GraphExecutionException is returned from a graph run when a node
// invocation fails (and the failure was not masked by a fallback). It wraps
// the underlying cause and carries a snapshot of the run's completed calls
// for diagnostics.
type GraphExecutionException struct {
	cause   error
	message string
	calls   []CallInfo
}

// Wrap builds a GraphExecutionException for the failing call, given the
// run's full call log. Only OTHER calls whose every argument had already
// resolved by this point are included in Calls() — the failing call itself
// is reported separately, in the message, never as one of its own completed
// predecessors.
func Wrap(cause error, failing CallRecord, log []CallRecord) *GraphExecutionException {
	var b strings.Builder
	fmt.Fprintf(&b, "error calling node %q", failing.Info.Name())

	args := failing.Info.Arguments()
	if len(args) > 0 {
		b.WriteString(" with arguments [")
		for i, a := range args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.Name())
			if v, err, done := future.Peek(failing.Args[i]); done && err == nil {
				fmt.Fprintf(&b, "=%v", v)
			}
		}
		b.WriteString("]")
	}
	fmt.Fprintf(&b, ": %v", cause)

	return &GraphExecutionException{
		cause:   cause,
		message: b.String(),
		calls:   completedCalls(log, failing.Info),
	}
}

func (e *GraphExecutionException) Error() string { return e.message }

func (e *GraphExecutionException) Unwrap() error { return e.cause }

// Calls returns every other call in the run's log whose arguments had all
// resolved by the time the triggering failure occurred.
func (e *GraphExecutionException) Calls() []CallInfo { return e.calls }

func completedCalls(log []CallRecord, failing node.Info) []CallInfo {
	var out []CallInfo
	for _, rec := range log {
		if rec.Info == failing {
			continue
		}
		values, ok := resolvedValues(rec.Args)
		if !ok {
			continue
		}
		out = append(out, CallInfo{NodeInfo: rec.Info, Args: values})
	}
	return out
}

func resolvedValues(args []future.Future[any]) ([]any, bool) {
	values := make([]any, len(args))
	for i, a := range args {
		v, err, done := future.Peek(a)
		if !done || err != nil {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}
