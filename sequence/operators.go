package sequence

import "iter"

// Where keeps only values that satisfy the predicate.
func Where[T any](seq iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if pred(v) && !yield(v) {
				return
			}
		}
	}
}

// Select transforms each value using fn.
func Select[T, U any](seq iter.Seq[T], fn func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range seq {
			if !yield(fn(v)) {
				return
			}
		}
	}
}

// SelectMany transforms each value into a sequence and flattens the results
// one level, in input order then inner order.
func SelectMany[T, U any](seq iter.Seq[T], fn func(T) iter.Seq[U]) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range seq {
			for inner := range fn(v) {
				if !yield(inner) {
					return
				}
			}
		}
	}
}

// Tap calls fn as a side-effect for each value, then passes the value through unchanged.
func Tap[T any](seq iter.Seq[T], fn func(T)) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			fn(v)
			if !yield(v) {
				return
			}
		}
	}
}
