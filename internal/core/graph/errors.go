package graph

import (
	"errors"
	"fmt"
)

// ErrEmptyGraph is returned by Build when a GraphBuilder has no node
// declarations at all — distinct from the other validation failures below,
// mirroring the reference implementation's separate IllegalStateException
// for this case.
var ErrEmptyGraph = errors.New("trickle: Empty graph")

// TrickleException reports a structural problem with a graph found during
// Build: an arity mismatch, a dangling named input, more than one sink, or a
// cycle.
type TrickleException struct {
	msg string
}

func newTrickleException(format string, args ...any) *TrickleException {
	return &TrickleException{msg: fmt.Sprintf(format, args...)}
}

func (e *TrickleException) Error() string { return e.msg }
