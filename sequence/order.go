package sequence

import (
	"cmp"
	"iter"
	"slices"
)

// Sort yields values in ascending order, or descending when reverse is set.
// Values are materialized when iteration starts.
func Sort[T cmp.Ordered](seq iter.Seq[T], reverse bool) iter.Seq[T] {
	return SortFunc(seq, cmp.Compare[T], reverse)
}

// SortBy yields values ordered by key. key is called once per value.
// The sort is stable; reverse orders keys descending and keeps ties in
// input order.
func SortBy[T any, K cmp.Ordered](seq iter.Seq[T], key func(T) K, reverse bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		keyed := ToList(Select(seq, func(v T) Pair[K, T] {
			return Pair[K, T]{First: key(v), Second: v}
		}))
		slices.SortStableFunc(keyed, func(a, b Pair[K, T]) int {
			if reverse {
				return cmp.Compare(b.First, a.First)
			}
			return cmp.Compare(a.First, b.First)
		})
		for _, p := range keyed {
			if !yield(p.Second) {
				return
			}
		}
	}
}

// SortFunc yields values ordered by compare, stable.
func SortFunc[T any](seq iter.Seq[T], compare func(a, b T) int, reverse bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		items := ToList(seq)
		if reverse {
			slices.SortStableFunc(items, func(a, b T) int { return compare(b, a) })
		} else {
			slices.SortStableFunc(items, compare)
		}
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}
}

// Reverse materializes seq and yields its values last to first.
func Reverse[T any](seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		items := ToList(seq)
		for i := len(items) - 1; i >= 0; i-- {
			if !yield(items[i]) {
				return
			}
		}
	}
}
