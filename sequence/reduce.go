package sequence

import (
	"iter"

	"github.com/kbukum/linqkit/errors"
)

// Aggregate folds values left to right, seeded with the first value.
// Returns an EMPTY_SEQUENCE error when seq yields nothing.
func Aggregate[T any](seq iter.Seq[T], fn func(T, T) T) (T, error) {
	var acc T
	seeded := false
	for v := range seq {
		if !seeded {
			acc, seeded = v, true
			continue
		}
		acc = fn(acc, v)
	}
	if !seeded {
		var zero T
		return zero, errors.EmptySequence("aggregate")
	}
	return acc, nil
}

// AggregateWithSeed folds values left to right starting from seed.
// An empty sequence returns seed.
func AggregateWithSeed[T, A any](seq iter.Seq[T], fn func(A, T) A, seed A) A {
	acc := seed
	for v := range seq {
		acc = fn(acc, v)
	}
	return acc
}

// Count returns the number of values in seq.
func Count[T any](seq iter.Seq[T]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

// CountWhere returns the number of values that satisfy pred.
func CountWhere[T any](seq iter.Seq[T], pred func(T) bool) int {
	n := 0
	for v := range seq {
		if pred(v) {
			n++
		}
	}
	return n
}
