package sequence

import (
	"iter"
	"runtime"
	"strings"

	"github.com/kbukum/linqkit/errors"
)

// Distinct yields each value the first time it is seen.
// Order of first occurrences is preserved.
func Distinct[T comparable](seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		seen := newKeySet[T]("distinct")
		for v := range seq {
			if seen.add(v) && !yield(v) {
				return
			}
		}
	}
}

// DistinctBy yields each value whose key has not been seen before.
func DistinctBy[T any, K comparable](seq iter.Seq[T], key func(T) K) iter.Seq[T] {
	return func(yield func(T) bool) {
		seen := newKeySet[K]("distinct_by")
		for v := range seq {
			if seen.add(key(v)) && !yield(v) {
				return
			}
		}
	}
}

// keySet is a seen-set that reports unhashable keys as TYPE_MISMATCH.
// Keys of interface type satisfy comparable at compile time but still panic
// when the dynamic value is a slice, map or func.
type keySet[K comparable] struct {
	op   string
	keys map[K]struct{}
}

func newKeySet[K comparable](op string) *keySet[K] {
	return &keySet[K]{op: op, keys: make(map[K]struct{})}
}

// add reports whether k was absent before the call.
func (s *keySet[K]) add(k K) bool {
	defer s.rethrow()
	if _, ok := s.keys[k]; ok {
		return false
	}
	s.keys[k] = struct{}{}
	return true
}

func (s *keySet[K]) has(k K) bool {
	defer s.rethrow()
	_, ok := s.keys[k]
	return ok
}

func (s *keySet[K]) rethrow() {
	r := recover()
	if r == nil {
		return
	}
	if rerr, ok := r.(runtime.Error); ok && isHashFailure(rerr) {
		panic(errors.TypeMismatch(s.op, rerr))
	}
	panic(r)
}

// isHashFailure matches the runtime's "hash of unhashable type" and
// "comparing uncomparable type" panics, as worded through Go 1.26.
func isHashFailure(err runtime.Error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unhashable") || strings.Contains(msg, "uncomparable")
}
