// Package enumerable provides Enumerable, a chainable view over a lazy
// sequence.
//
// A view holds one iter.Seq and exposes the operations of package sequence
// as methods. Methods that return a view compose lazily and evaluate
// nothing; terminals pull values and return plain results. Operations that
// change the element type are package functions, since Go methods cannot
// declare type parameters:
//
//	words := enumerable.FromSlice([]string{"a", "bb", "a", "ccc"})
//	lengths := enumerable.Select(words.Distinct(), func(s string) int { return len(s) })
//	total, err := lengths.Aggregate(func(a, b int) int { return a + b })
//
// The held sequence is guarded by a read/write mutex. Under the default
// aliasing isolation every reader shares the source, so a single-pass
// source such as a channel is consumed by whichever reader gets there first.
// Snapshot isolation copies a constructor-supplied source into memory on
// first read so every later pass sees the same values; it requires a finite
// source.
package enumerable
