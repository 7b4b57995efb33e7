package sequence

import "iter"

// Pair holds two values yielded side by side by Zip.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Concat yields every value of first followed by every value of second.
// Both operands are fully materialized when iteration starts.
func Concat[T any](first, second iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		items := ToList(first)
		items = append(items, ToList(second)...)
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}
}

// Intersect keeps values of first that occur anywhere in second.
// second must be finite; it is read once per pass into a membership set.
func Intersect[T comparable](first, second iter.Seq[T]) iter.Seq[T] {
	return membership(first, second, identity[T], "intersect", true)
}

// Without keeps values of first that do not occur in second.
// second must be finite; it is read once per pass into a membership set.
func Without[T comparable](first, second iter.Seq[T]) iter.Seq[T] {
	return membership(first, second, identity[T], "without", false)
}

// IntersectBy is Intersect with membership decided by key.
func IntersectBy[T any, K comparable](first, second iter.Seq[T], key func(T) K) iter.Seq[T] {
	return membership(first, second, key, "intersect", true)
}

// WithoutBy is Without with membership decided by key.
func WithoutBy[T any, K comparable](first, second iter.Seq[T], key func(T) K) iter.Seq[T] {
	return membership(first, second, key, "without", false)
}

func membership[T any, K comparable](first, second iter.Seq[T], key func(T) K, op string, keep bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		members := newKeySet[K](op)
		for v := range second {
			members.add(key(v))
		}
		for v := range first {
			if members.has(key(v)) == keep && !yield(v) {
				return
			}
		}
	}
}

func identity[T any](v T) T { return v }

// Zip pairs values of first and second by position and stops at the end of
// the shorter one.
func Zip[A, B any](first iter.Seq[A], second iter.Seq[B]) iter.Seq[Pair[A, B]] {
	return func(yield func(Pair[A, B]) bool) {
		next, stop := iter.Pull(second)
		defer stop()
		for a := range first {
			b, ok := next()
			if !ok {
				return
			}
			if !yield(Pair[A, B]{First: a, Second: b}) {
				return
			}
		}
	}
}
