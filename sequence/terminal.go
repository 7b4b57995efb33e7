package sequence

import "iter"

// Any reports whether some value satisfies pred. Stops at the first match.
func Any[T any](seq iter.Seq[T], pred func(T) bool) bool {
	for v := range seq {
		if pred(v) {
			return true
		}
	}
	return false
}

// All reports whether every value satisfies pred. Stops at the first violation.
func All[T any](seq iter.Seq[T], pred func(T) bool) bool {
	for v := range seq {
		if !pred(v) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether seq yields nothing. At most one value is pulled,
// so it terminates on infinite sources.
func IsEmpty[T any](seq iter.Seq[T]) bool {
	for range seq {
		return false
	}
	return true
}

// ForEach calls action for every value, in order.
func ForEach[T any](seq iter.Seq[T], action func(T)) {
	for v := range seq {
		action(v)
	}
}

// ToList collects every value into a slice. The result is never nil.
func ToList[T any](seq iter.Seq[T]) []T {
	items := make([]T, 0)
	for v := range seq {
		items = append(items, v)
	}
	return items
}

// ToSet collects values into a set, collapsing duplicates.
func ToSet[T comparable](seq iter.Seq[T]) map[T]struct{} {
	set := newKeySet[T]("to_set")
	for v := range seq {
		set.add(v)
	}
	return set.keys
}
