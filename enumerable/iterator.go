package enumerable

import (
	"context"
	"iter"
)

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Iter returns an independent Iterator over the current sequence. Unlike
// Next, each call opens a fresh pass. The caller must Close it.
func (e *Enumerable[T]) Iter() Iterator[T] {
	next, stop := iter.Pull(e.current())
	return &pullIter[T]{next: next, stop: stop}
}

// pullIter adapts an iter.Pull pair to Iterator.
type pullIter[T any] struct {
	next func() (T, bool)
	stop func()
	done bool
}

func (it *pullIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	v, ok := it.next()
	if !ok {
		it.done = true
		it.stop()
		return zero, false, nil
	}
	return v, true, nil
}

func (it *pullIter[T]) Close() error {
	it.done = true
	it.stop()
	return nil
}

// FromIterator creates a single-pass view that pulls from it with ctx.
// The iterator is closed when a pass ends. An error from it, including
// cancellation of ctx, panics with that error where the view is evaluated.
func FromIterator[T any](ctx context.Context, it Iterator[T], opts ...Option) *Enumerable[T] {
	return Of(func(yield func(T) bool) {
		defer it.Close()
		for {
			v, ok, err := it.Next(ctx)
			if err != nil {
				panic(err)
			}
			if !ok || !yield(v) {
				return
			}
		}
	}, opts...)
}
