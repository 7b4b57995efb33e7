package sequence

import "iter"

// Take yields the first n values and stops pulling from seq.
// A non-positive n yields nothing.
func Take[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		taken := 0
		for v := range seq {
			if !yield(v) {
				return
			}
			taken++
			if taken >= n {
				return
			}
		}
	}
}

// Skip drops the first n values and yields the rest.
// A non-positive n skips nothing.
func Skip[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		skipped := 0
		for v := range seq {
			if skipped < n {
				skipped++
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// TakeWhile yields values until pred first returns false.
// pred is not called again after that.
func TakeWhile[T any](seq iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if !pred(v) || !yield(v) {
				return
			}
		}
	}
}

// SkipWhile drops values until pred first returns false, then yields that
// value and everything after it without calling pred again.
func SkipWhile[T any](seq iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		skipping := true
		for v := range seq {
			if skipping {
				if pred(v) {
					continue
				}
				skipping = false
			}
			if !yield(v) {
				return
			}
		}
	}
}
