package enumerable

import (
	"context"
	"iter"
	"sync"

	"github.com/kbukum/linqkit/errors"
	"github.com/kbukum/linqkit/logger"
	"github.com/kbukum/linqkit/sequence"
)

// Enumerable is a chainable view over a lazy sequence. The zero value is an
// empty view with aliasing isolation.
type Enumerable[T any] struct {
	mu   sync.RWMutex
	seq  iter.Seq[T]
	opts options

	// step serializes Next against cursor resets. It is taken before mu.
	step sync.Mutex

	// source is set while seq is a constructor-supplied sequence that
	// snapshot isolation has not yet copied.
	source bool
	cursor *cursor[T]
}

type cursor[T any] struct {
	next func() (T, bool)
	stop func()
}

// Of creates a view over seq. A nil seq is treated as empty.
func Of[T any](seq iter.Seq[T], opts ...Option) *Enumerable[T] {
	e := &Enumerable[T]{opts: newOptions(opts)}
	return e.Of(seq)
}

// Empty creates a view over no values.
func Empty[T any](opts ...Option) *Enumerable[T] {
	return Of(sequence.Empty[T](), opts...)
}

// FromSlice creates a view over the elements of s. The slice is not copied.
func FromSlice[T any](s []T, opts ...Option) *Enumerable[T] {
	return Of(sequence.Values(s), opts...)
}

// Range creates a view over count consecutive integers starting at start.
func Range(start, count int, opts ...Option) *Enumerable[int] {
	return Of(sequence.Range(start, count), opts...)
}

// FromChan creates a view that receives from ch until it is closed.
// The channel is single-pass: values received by one pass are gone.
func FromChan[T any](ch <-chan T, opts ...Option) *Enumerable[T] {
	return Of(sequence.FromChan(ch), opts...)
}

// Of replaces the held sequence under the write lock, resets the Next
// cursor and any snapshot, and returns e.
func (e *Enumerable[T]) Of(seq iter.Seq[T]) *Enumerable[T] {
	if seq == nil {
		seq = sequence.Empty[T]()
	}
	e.step.Lock()
	defer e.step.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq, e.source = seq, true
	e.resetCursor()
	return e
}

// Seq returns the current sequence for range-over-func iteration.
func (e *Enumerable[T]) Seq() iter.Seq[T] {
	return e.current()
}

// Next advances a cursor over the current sequence and returns the next
// value, or false once it is exhausted. The cursor is opened on first call
// and reset by Of and Close.
//
// The guard is held only while the cursor is opened, so the source may
// derive from e while Next runs it. It must not call Next, Of or Close on
// e: those wait for the step in progress. A snapshot view copies its
// source under the guard on the first read.
func (e *Enumerable[T]) Next() (T, bool) {
	e.step.Lock()
	defer e.step.Unlock()
	return e.open().next()
}

func (e *Enumerable[T]) open() *cursor[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cursor == nil {
		next, stop := iter.Pull(e.held())
		e.cursor = &cursor[T]{next: next, stop: stop}
	}
	return e.cursor
}

// Close releases the Next cursor. It is safe to call more than once.
func (e *Enumerable[T]) Close() error {
	e.step.Lock()
	defer e.step.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetCursor()
	return nil
}

// Isolation reports the view's isolation mode.
func (e *Enumerable[T]) Isolation() Isolation {
	if e.opts.isolation == "" {
		return IsolationAliasing
	}
	return e.opts.isolation
}

// current reads the held sequence under the guard.
func (e *Enumerable[T]) current() iter.Seq[T] {
	if e.opts.isolation == IsolationSnapshot {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.held()
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.seq == nil {
		return sequence.Empty[T]()
	}
	return e.seq
}

// src is the sequence derived views read from. Aliasing views capture the
// held sequence now. Snapshot views pin the parent's snapshot on their first
// read, so building a chain never forces the copy and a later Of on the
// parent does not reach views already read.
func (e *Enumerable[T]) src() iter.Seq[T] {
	if e.opts.isolation != IsolationSnapshot {
		return e.current()
	}
	var (
		once   sync.Once
		pinned iter.Seq[T]
	)
	return func(yield func(T) bool) {
		once.Do(func() { pinned = e.current() })
		for v := range pinned {
			if !yield(v) {
				return
			}
		}
	}
}

// held returns the sequence, taking the snapshot if one is due.
// Callers hold mu for writing.
func (e *Enumerable[T]) held() iter.Seq[T] {
	if e.seq == nil {
		e.seq = sequence.Empty[T]()
	}
	if e.opts.isolation == IsolationSnapshot && e.source {
		e.seq = sequence.Values(sequence.ToList(e.seq))
		e.source = false
		if e.opts.logOps {
			e.opts.logger().Debug("snapshot taken", logger.Fields(logger.FieldIsolation, string(IsolationSnapshot)))
		}
	}
	return e.seq
}

func (e *Enumerable[T]) resetCursor() {
	if e.cursor != nil {
		e.cursor.stop()
		e.cursor = nil
	}
}

// derive wraps seq in a new view that inherits e's options.
func (e *Enumerable[T]) derive(seq iter.Seq[T]) *Enumerable[T] {
	return &Enumerable[T]{seq: seq, opts: e.opts}
}

// wrap is derive for operations that change the element type.
func wrap[T, U any](e *Enumerable[T], seq iter.Seq[U]) *Enumerable[U] {
	return &Enumerable[U]{seq: seq, opts: e.opts}
}

// observe records a terminal operation.
func (e *Enumerable[T]) observe(op string) {
	e.opts.metrics.RecordEvaluation(context.Background(), op)
	if e.opts.logOps {
		e.opts.logger().Debug("evaluating", logger.Fields(logger.FieldOperation, op))
	}
}

// fail records a terminal that ended in err.
func (e *Enumerable[T]) fail(op string, err *errors.AppError) {
	e.opts.metrics.RecordError(context.Background(), string(err.Code), "enumerable")
	if e.opts.logOps {
		e.opts.logger().Debug("evaluation failed", logger.Fields(
			logger.FieldOperation, op,
			logger.FieldCode, string(err.Code),
		))
	}
}
