// Package future provides the one promise abstraction the loading engine
// chains everything through: document fetches, resource loads, and the
// per-group ordering obligations. Completion is observed by channel close,
// so a continuation is just a goroutine blocked on Done().
package future

import (
	"context"
	"sync"
)

// Future is a write-once container resolved from exactly one goroutine.
// Extra Resolve/Fail calls are ignored.
type Future[T any] struct {
	done chan struct{}
	once sync.Once

	val T
	err error
}

func New[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns an already-settled future carrying v.
func Resolved[T any](v T) *Future[T] {
	f := New[T]()
	f.Resolve(v)
	return f
}

// Failed returns an already-settled future carrying err.
func Failed[T any](err error) *Future[T] {
	f := New[T]()
	f.Fail(err)
	return f
}

// Go runs fn on its own goroutine and settles the returned future with
// its outcome.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := New[T]()
	go func() {
		v, err := fn()
		if err != nil {
			f.Fail(err)
			return
		}
		f.Resolve(v)
	}()
	return f
}

func (f *Future[T]) Resolve(v T) {
	f.once.Do(func() {
		f.val = v
		close(f.done)
	})
}

func (f *Future[T]) Fail(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Done is closed once the future has settled.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Wait blocks until the future settles or ctx is cancelled.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Value reports the settled outcome. It must only be called after Done()
// is closed.
func (f *Future[T]) Value() (T, error) {
	return f.val, f.err
}

// Settled reports whether the future has already settled.
func (f *Future[T]) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// WaitAll blocks until every future in fs has settled, then returns the
// errors of those that failed. A nil slice means all succeeded.
func WaitAll[T any](ctx context.Context, fs []*Future[T]) []error {
	var errs []error
	for _, f := range fs {
		if _, err := f.Wait(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
