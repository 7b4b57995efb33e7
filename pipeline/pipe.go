package pipeline

import (
	"fmt"

	"github.com/kbukum/linqkit/enumerable"
	"github.com/kbukum/linqkit/errors"
)

// Result is the outcome of piping stages into a view. It holds either a view
// to continue from, or a terminal value, or an error.
type Result[T any] struct {
	view     *enumerable.Enumerable[T]
	value    any
	err      error
	route    Route
	terminal bool
}

// Pipe applies stages to e in order.
func Pipe[T any](e *enumerable.Enumerable[T], stages ...Stage[T]) Result[T] {
	return start(e).Pipe(stages...)
}

// Pipe applies further stages to a non-terminal result. A result that
// already failed is returned unchanged; a terminal one fails with
// PIPE_TERMINATED.
func (r Result[T]) Pipe(stages ...Stage[T]) Result[T] {
	for _, s := range stages {
		r = r.step(s)
		if r.err != nil {
			break
		}
	}
	return r
}

// View returns the view to continue from, or false for a terminal or
// failed result.
func (r Result[T]) View() (*enumerable.Enumerable[T], bool) {
	if r.terminal || r.err != nil {
		return nil, false
	}
	return r.view, true
}

// Value returns the terminal value. Action stages and non-terminal results
// have none.
func (r Result[T]) Value() any { return r.value }

// Err returns the error that ended the chain, if any.
func (r Result[T]) Err() error { return r.err }

// Route returns the route of the last stage applied.
func (r Result[T]) Route() Route { return r.route }

// Terminal reports whether the chain has ended with a value.
func (r Result[T]) Terminal() bool { return r.terminal }

// ValueAs returns the terminal value of r as a V.
func ValueAs[V, T any](r Result[T]) (V, bool) {
	v, ok := r.value.(V)
	return v, ok
}

func start[T any](e *enumerable.Enumerable[T]) Result[T] {
	if e == nil {
		return Result[T]{err: errors.InvalidArgument("view", "view is nil")}
	}
	return Result[T]{view: e}
}

// step dispatches one stage.
func (r Result[T]) step(s Stage[T]) Result[T] {
	if r.err != nil {
		return r
	}
	if r.terminal {
		r.err = errors.PipeTerminated(stageName[T](s)).
			WithDetail("previous", r.route.String())
		return r
	}
	return dispatch(r.view, s)
}

func dispatch[T any](e *enumerable.Enumerable[T], s Stage[T]) Result[T] {
	switch st := s.(type) {
	case Predicate[T]:
		if st == nil {
			return invalid[T](s)
		}
		return Result[T]{view: e.Where(st), route: RouteWhere}
	case Projector[T]:
		if st == nil {
			return invalid[T](s)
		}
		return Result[T]{view: e.Select(st), route: RouteSelect}
	case Accumulator[T]:
		if st == nil {
			return invalid[T](s)
		}
		v, err := e.Aggregate(st)
		if err != nil {
			return Result[T]{err: err, route: RouteAggregate}
		}
		return Result[T]{value: v, route: RouteAggregate, terminal: true}
	case Action[T]:
		if st == nil {
			return invalid[T](s)
		}
		e.ForEach(st)
		return Result[T]{route: RouteForEach, terminal: true}
	case Func[T]:
		if st == nil {
			return invalid[T](s)
		}
		return called[T](st(e))
	default:
		return invalid[T](s)
	}
}

// called classifies the return value of a Func stage.
func called[T any](out any) Result[T] {
	switch o := out.(type) {
	case *enumerable.Enumerable[T]:
		if o == nil {
			return Result[T]{err: errors.InvalidArgument("stage", "call stage returned a nil view"), route: RouteCall}
		}
		return Result[T]{view: o, route: RouteCall}
	case error:
		return Result[T]{err: o, route: RouteCall}
	default:
		return Result[T]{value: o, route: RouteCall, terminal: true}
	}
}

func invalid[T any](s Stage[T]) Result[T] {
	reason := "stage is nil"
	if s != nil {
		reason = fmt.Sprintf("%s stage has a nil function", s.route())
	}
	return Result[T]{err: errors.InvalidArgument("stage", reason)}
}
