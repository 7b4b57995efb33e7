package enumerable

import (
	"github.com/kbukum/linqkit/errors"
	"github.com/kbukum/linqkit/sequence"
)

// Aggregate folds the values with fn, seeded with the first value.
// An empty view yields an EMPTY_SEQUENCE error.
func (e *Enumerable[T]) Aggregate(fn func(T, T) T) (T, error) {
	e.observe("aggregate")
	v, err := sequence.Aggregate(e.current(), fn)
	if appErr, ok := errors.AsAppError(err); ok {
		e.fail("aggregate", appErr)
	}
	return v, err
}

// AggregateWithSeed folds the values with fn starting from seed.
func (e *Enumerable[T]) AggregateWithSeed(fn func(T, T) T, seed T) T {
	e.observe("aggregate_with_seed")
	return sequence.AggregateWithSeed(e.current(), fn, seed)
}

// AggregateWithSeed folds e into an accumulator of another type.
func AggregateWithSeed[T, A any](e *Enumerable[T], fn func(A, T) A, seed A) A {
	e.observe("aggregate_with_seed")
	return sequence.AggregateWithSeed(e.current(), fn, seed)
}

// Count returns the number of values.
func (e *Enumerable[T]) Count() int {
	e.observe("count")
	return sequence.Count(e.current())
}

// CountWhere returns the number of values for which pred holds.
func (e *Enumerable[T]) CountWhere(pred func(T) bool) int {
	e.observe("count_where")
	return sequence.CountWhere(e.current(), pred)
}

// First returns the first value, or false for an empty view.
func (e *Enumerable[T]) First() (T, bool) {
	e.observe("first")
	return sequence.First(e.current())
}

// FirstWhere returns the first value for which pred holds.
func (e *Enumerable[T]) FirstWhere(pred func(T) bool) (T, bool) {
	e.observe("first_where")
	return sequence.FirstWhere(e.current(), pred)
}

// Last returns the last value, or false for an empty view.
func (e *Enumerable[T]) Last() (T, bool) {
	e.observe("last")
	return sequence.Last(e.current())
}

// LastWhere returns the last value for which pred holds.
func (e *Enumerable[T]) LastWhere(pred func(T) bool) (T, bool) {
	e.observe("last_where")
	return sequence.LastWhere(e.current(), pred)
}

// Any reports whether pred holds for some value.
func (e *Enumerable[T]) Any(pred func(T) bool) bool {
	e.observe("any")
	return sequence.Any(e.current(), pred)
}

// All reports whether pred holds for every value. An empty view yields true.
func (e *Enumerable[T]) All(pred func(T) bool) bool {
	e.observe("all")
	return sequence.All(e.current(), pred)
}

// IsEmpty reports whether the view yields no values, pulling at most one.
func (e *Enumerable[T]) IsEmpty() bool {
	e.observe("is_empty")
	return sequence.IsEmpty(e.current())
}

// ForEach calls action on every value.
func (e *Enumerable[T]) ForEach(action func(T)) {
	e.observe("for_each")
	sequence.ForEach(e.current(), action)
}

// ToList collects the values into a new slice, never nil.
func (e *Enumerable[T]) ToList() []T {
	e.observe("to_list")
	return sequence.ToList(e.current())
}

// ToSet collects the distinct values of e.
func ToSet[T comparable](e *Enumerable[T]) map[T]struct{} {
	e.observe("to_set")
	return sequence.ToSet(e.current())
}
