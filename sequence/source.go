package sequence

import "iter"

// Empty returns a sequence that yields nothing.
func Empty[T any]() iter.Seq[T] {
	return func(func(T) bool) {}
}

// Values returns a restartable sequence over items.
func Values[T any](items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}
}

// Range yields count consecutive integers starting at start.
func Range(start, count int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < count; i++ {
			if !yield(start + i) {
				return
			}
		}
	}
}

// FromChan yields values received from ch until it is closed.
// The result is single-pass: values consumed by one pass are gone.
func FromChan[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range ch {
			if !yield(v) {
				return
			}
		}
	}
}
