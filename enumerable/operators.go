package enumerable

import (
	"cmp"
	"iter"

	"github.com/kbukum/linqkit/sequence"
)

// Pair holds two values yielded side by side by Zip.
type Pair[A, B any] = sequence.Pair[A, B]

// Where keeps values for which pred returns true.
func (e *Enumerable[T]) Where(pred func(T) bool) *Enumerable[T] {
	return e.derive(sequence.Where(e.src(), pred))
}

// Select maps each value through fn. Use the package function Select to
// change the element type.
func (e *Enumerable[T]) Select(fn func(T) T) *Enumerable[T] {
	return e.derive(sequence.Select(e.src(), fn))
}

// SelectMany maps each value to a sequence and flattens the results.
func (e *Enumerable[T]) SelectMany(fn func(T) iter.Seq[T]) *Enumerable[T] {
	return e.derive(sequence.SelectMany(e.src(), fn))
}

// Tap calls fn on each value as it passes through.
func (e *Enumerable[T]) Tap(fn func(T)) *Enumerable[T] {
	return e.derive(sequence.Tap(e.src(), fn))
}

// Distinct keeps the first occurrence of each value. Values whose dynamic
// type is not hashable panic with a TYPE_MISMATCH AppError on iteration.
func (e *Enumerable[T]) Distinct() *Enumerable[T] {
	return e.derive(sequence.DistinctBy(e.src(), box[T]))
}

// DistinctBy keeps the first value for each key.
func (e *Enumerable[T]) DistinctBy(key func(T) any) *Enumerable[T] {
	return e.derive(sequence.DistinctBy(e.src(), key))
}

// Take keeps at most n leading values.
func (e *Enumerable[T]) Take(n int) *Enumerable[T] {
	return e.derive(sequence.Take(e.src(), n))
}

// TakeWhile keeps leading values while pred holds.
func (e *Enumerable[T]) TakeWhile(pred func(T) bool) *Enumerable[T] {
	return e.derive(sequence.TakeWhile(e.src(), pred))
}

// Skip drops n leading values.
func (e *Enumerable[T]) Skip(n int) *Enumerable[T] {
	return e.derive(sequence.Skip(e.src(), n))
}

// SkipWhile drops leading values while pred holds.
func (e *Enumerable[T]) SkipWhile(pred func(T) bool) *Enumerable[T] {
	return e.derive(sequence.SkipWhile(e.src(), pred))
}

// Concat appends other. Both operands are materialized when iteration starts.
func (e *Enumerable[T]) Concat(other iter.Seq[T]) *Enumerable[T] {
	return e.derive(sequence.Concat(e.src(), other))
}

// Combine appends the values of other, read when Combine is called.
func (e *Enumerable[T]) Combine(other *Enumerable[T]) *Enumerable[T] {
	items := other.ToList()
	return e.derive(sequence.Concat(e.src(), sequence.Values(items)))
}

// Intersect keeps values that also occur in other.
func (e *Enumerable[T]) Intersect(other iter.Seq[T]) *Enumerable[T] {
	return e.derive(sequence.IntersectBy(e.src(), other, box[T]))
}

// Without keeps values that do not occur in other.
func (e *Enumerable[T]) Without(other iter.Seq[T]) *Enumerable[T] {
	return e.derive(sequence.WithoutBy(e.src(), other, box[T]))
}

// SortFunc orders values by compare, stable, descending when reverse is set.
func (e *Enumerable[T]) SortFunc(compare func(a, b T) int, reverse bool) *Enumerable[T] {
	return e.derive(sequence.SortFunc(e.src(), compare, reverse))
}

// Reverse yields values last to first.
func (e *Enumerable[T]) Reverse() *Enumerable[T] {
	return e.derive(sequence.Reverse(e.src()))
}

// Select maps each value of e through fn into a view of another type.
func Select[T, U any](e *Enumerable[T], fn func(T) U) *Enumerable[U] {
	return wrap(e, sequence.Select(e.src(), fn))
}

// SelectMany maps each value of e to a sequence and flattens the results.
func SelectMany[T, U any](e *Enumerable[T], fn func(T) iter.Seq[U]) *Enumerable[U] {
	return wrap(e, sequence.SelectMany(e.src(), fn))
}

// DistinctBy keeps the first value of e for each key.
func DistinctBy[T any, K comparable](e *Enumerable[T], key func(T) K) *Enumerable[T] {
	return e.derive(sequence.DistinctBy(e.src(), key))
}

// Sort orders an ordered view ascending, or descending when reverse is set.
func Sort[T cmp.Ordered](e *Enumerable[T], reverse bool) *Enumerable[T] {
	return e.derive(sequence.Sort(e.src(), reverse))
}

// SortBy orders e by key, evaluating key once per value.
func SortBy[T any, K cmp.Ordered](e *Enumerable[T], key func(T) K, reverse bool) *Enumerable[T] {
	return e.derive(sequence.SortBy(e.src(), key, reverse))
}

// Zip pairs values of e with values of other, stopping at the shorter.
// other is read when Zip is called.
func Zip[T, U any](e *Enumerable[T], other *Enumerable[U]) *Enumerable[Pair[T, U]] {
	items := other.ToList()
	return wrap(e, sequence.Zip(e.src(), sequence.Values(items)))
}

func box[T any](v T) any { return v }
