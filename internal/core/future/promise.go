package future

import "sync"

// Promise is the settable side of a Future[T]: exactly one of Resolve or
// Reject may take effect; later calls are no-ops. This is the building
// block every combinator in this package (Immediate, AllOf, Then, Recover)
// is implemented on top of.
type Promise[T any] struct {
	mu      sync.Mutex
	done    bool
	result  Result[T]
	waiters []func(Result[T])
}

// NewPromise creates an unresolved Promise[T].
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{}
}

// Future returns the read side of this promise.
func (p *Promise[T]) Future() Future[T] { return (*promiseFuture[T])(p) }

// Resolve completes the promise successfully. A no-op if already completed.
func (p *Promise[T]) Resolve(v T) { p.complete(Result[T]{Value: v}) }

// Reject completes the promise with a failure. A no-op if already completed.
func (p *Promise[T]) Reject(err error) { p.complete(Result[T]{Err: err}) }

func (p *Promise[T]) complete(r Result[T]) {
	p.mu.Lock()
	if p.done {
		p.mu.Unlock()
		return
	}
	p.done = true
	p.result = r
	waiters := p.waiters
	p.waiters = nil
	p.mu.Unlock()

	for _, w := range waiters {
		w(r)
	}
}

type promiseFuture[T any] Promise[T]

func (f *promiseFuture[T]) OnComplete(cb func(Result[T])) {
	p := (*Promise[T])(f)

	p.mu.Lock()
	if p.done {
		r := p.result
		p.mu.Unlock()
		cb(r)
		return
	}
	p.waiters = append(p.waiters, cb)
	p.mu.Unlock()
}

// Immediate returns an already-successful Future[T].
func Immediate[T any](v T) Future[T] {
	p := NewPromise[T]()
	p.Resolve(v)
	return p.Future()
}

// ImmediateFailure returns an already-failed Future[T].
func ImmediateFailure[T any](err error) Future[T] {
	p := NewPromise[T]()
	p.Reject(err)
	return p.Future()
}
