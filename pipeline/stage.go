package pipeline

import "github.com/kbukum/linqkit/enumerable"

// Route identifies the view operation a stage was dispatched to.
type Route int

const (
	RouteNone Route = iota
	RouteWhere
	RouteSelect
	RouteAggregate
	RouteForEach
	RouteCall
)

var routeNames = [...]string{
	RouteNone:      "none",
	RouteWhere:     "where",
	RouteSelect:    "select",
	RouteAggregate: "aggregate",
	RouteForEach:   "for_each",
	RouteCall:      "call",
}

func (r Route) String() string {
	if r < 0 || int(r) >= len(routeNames) {
		return "unknown"
	}
	return routeNames[r]
}

// Terminal reports whether stages on this route end the chain.
func (r Route) Terminal() bool {
	return r == RouteAggregate || r == RouteForEach
}

// Stage is a callable tagged with the operation it routes to. The set of
// variants is closed: Predicate, Projector, Accumulator, Action and Func.
type Stage[T any] interface {
	route() Route
}

// Predicate routes to Where.
type Predicate[T any] func(T) bool

// Projector routes to Select. It preserves the element type; wrap
// enumerable.Select in a Func to change it.
type Projector[T any] func(T) T

// Accumulator routes to Aggregate.
type Accumulator[T any] func(T, T) T

// Action routes to ForEach.
type Action[T any] func(T)

// Func is called with the view itself.
type Func[T any] func(*enumerable.Enumerable[T]) any

func (Predicate[T]) route() Route   { return RouteWhere }
func (Projector[T]) route() Route   { return RouteSelect }
func (Accumulator[T]) route() Route { return RouteAggregate }
func (Action[T]) route() Route      { return RouteForEach }
func (Func[T]) route() Route        { return RouteCall }

// stageName describes s for error details.
func stageName[T any](s Stage[T]) string {
	if s == nil {
		return "nil"
	}
	return s.route().String()
}
