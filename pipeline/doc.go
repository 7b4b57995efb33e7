// Package pipeline routes stages onto an enumerable view.
//
// A Stage is one of five variants, and Pipe dispatches each by its variant
// in a fixed priority:
//
//   - Predicate: filters via Where, the chain continues
//   - Projector: maps via Select, the chain continues
//   - Accumulator: folds via Aggregate, terminal
//   - Action: runs ForEach, terminal with no value
//   - Func: called with the view itself; a returned view continues the
//     chain, a returned error ends it with that error, anything else is a
//     terminal value
//
// Piping into a terminal result yields PIPE_TERMINATED.
//
// # Usage
//
//	double := pipeline.Projector[int](func(n int) int { return n * 2 })
//	big := pipeline.Predicate[int](func(n int) bool { return n > 10 })
//	sum := pipeline.Accumulator[int](func(a, b int) int { return a + b })
//
//	r := pipeline.Pipe(enumerable.Range(0, 10), double, big, sum)
//	total, _ := pipeline.ValueAs[int](r) // 60
//
// Compose names a reusable stage list. Its Run tags the run with an ID,
// traces it as a "pipeline.run" span and records dispatch metrics:
//
//	totals := pipeline.Compose[int]("totals", double, big, sum).WithMetrics(m)
//	r := totals.Run(ctx, view)
package pipeline
