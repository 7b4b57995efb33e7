// Package sequence is the operation library behind linqkit: free generic
// functions over iter.Seq.
//
// Lazy operators (Where, Select, SelectMany, Distinct, Take, Skip, ...) return
// a new iter.Seq and do no work until it is ranged over. Each pass over a
// returned sequence starts from scratch, so hidden state such as the
// seen-set of Distinct never leaks between passes. Terminal operations
// (Count, First, Aggregate, ToList, ...) pull from the source and return a
// concrete value.
//
// Panics raised by caller-supplied functions are never recovered here; they
// surface at whichever terminal forced evaluation.
//
// # Usage
//
//	evens := sequence.Where(sequence.Range(0, 10), func(n int) bool { return n%2 == 0 })
//	squares := sequence.Select(evens, func(n int) int { return n * n })
//	total := sequence.AggregateWithSeed(squares, func(acc, n int) int { return acc + n }, 0)
package sequence
