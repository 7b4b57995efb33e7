package sequence

import "iter"

// First returns the first value, or false if seq is empty.
func First[T any](seq iter.Seq[T]) (T, bool) {
	for v := range seq {
		return v, true
	}
	var zero T
	return zero, false
}

// FirstWhere returns the first value that satisfies pred, or false if none does.
func FirstWhere[T any](seq iter.Seq[T], pred func(T) bool) (T, bool) {
	for v := range seq {
		if pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Last returns the last value, or false if seq is empty.
// The whole source is consumed since its end can't be reached any other way.
func Last[T any](seq iter.Seq[T]) (T, bool) {
	var last T
	found := false
	for v := range seq {
		last, found = v, true
	}
	return last, found
}

// LastWhere returns the last value that satisfies pred, or false if none does.
func LastWhere[T any](seq iter.Seq[T], pred func(T) bool) (T, bool) {
	var last T
	found := false
	for v := range seq {
		if pred(v) {
			last, found = v, true
		}
	}
	return last, found
}
