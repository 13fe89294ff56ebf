package future

import (
	"context"
	"fmt"
	"sync"
)

// AllOf composes deps into a Future that succeeds once every dep has
// succeeded and fails as soon as any one of them fails — the first failure
// wins and later completions (success or failure) of the remaining deps are
// ignored. An empty dep list resolves immediately.
func AllOf(deps []Future[any]) Future[struct{}] {
	if len(deps) == 0 {
		return Immediate(struct{}{})
	}

	p := NewPromise[struct{}]()
	var mu sync.Mutex
	remaining := len(deps)

	for _, d := range deps {
		d.OnComplete(func(r Result[any]) {
			mu.Lock()
			defer mu.Unlock()
			if r.Err != nil {
				p.Reject(r.Err)
				return
			}
			remaining--
			if remaining == 0 {
				p.Resolve(struct{}{})
			}
		})
	}
	return p.Future()
}

// Then chains fn onto a successful dep, flattening the Future[R] fn returns.
// A failed dep propagates without invoking fn.
func Then[T, R any](dep Future[T], fn func(T) Future[R]) Future[R] {
	p := NewPromise[R]()
	dep.OnComplete(func(r Result[T]) {
		if r.Err != nil {
			p.Reject(r.Err)
			return
		}
		fn(r.Value).OnComplete(func(inner Result[R]) {
			if inner.Err != nil {
				p.Reject(inner.Err)
			} else {
				p.Resolve(inner.Value)
			}
		})
	})
	return p.Future()
}

// Recover substitutes the output of fn for any failure of dep, otherwise
// passes the success through unchanged.
func Recover[T any](dep Future[T], fn func(error) Future[T]) Future[T] {
	p := NewPromise[T]()
	dep.OnComplete(func(r Result[T]) {
		if r.Err == nil {
			p.Resolve(r.Value)
			return
		}
		fn(r.Err).OnComplete(func(inner Result[T]) {
			if inner.Err != nil {
				p.Reject(inner.Err)
			} else {
				p.Resolve(inner.Value)
			}
		})
	})
	return p.Future()
}

// MapAny erases a Future[T] into a Future[any].
func MapAny[T any](f Future[T]) Future[any] {
	p := NewPromise[any]()
	f.OnComplete(func(r Result[T]) {
		if r.Err != nil {
			p.Reject(r.Err)
		} else {
			p.Resolve(r.Value)
		}
	})
	return p.Future()
}

// Cast narrows a Future[any] back to a Future[R], asserting the resolved
// value's dynamic type. Used once, at the root, to hand the sink's value
// back to the caller of trickle.RunAsync with its declared type.
func Cast[R any](f Future[any]) Future[R] {
	p := NewPromise[R]()
	f.OnComplete(func(r Result[any]) {
		if r.Err != nil {
			p.Reject(r.Err)
			return
		}
		v, ok := r.Value.(R)
		if !ok {
			p.Reject(fmt.Errorf("trickle: cannot cast %T to declared type", r.Value))
			return
		}
		p.Resolve(v)
	})
	return p.Future()
}

// Get blocks until f completes or ctx is cancelled, and returns the value or
// error. This is the F<T>.get() operation from the future contract.
func Get[T any](ctx context.Context, f Future[T]) (T, error) {
	var zero T
	done := make(chan Result[T], 1)
	f.OnComplete(func(r Result[T]) { done <- r })

	select {
	case r := <-done:
		return r.Value, r.Err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
