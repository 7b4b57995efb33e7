package enumerable

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func chanOf(values ...int) chan int {
	ch := make(chan int, len(values))
	for _, v := range values {
		ch <- v
	}
	close(ch)
	return ch
}

func TestIsolation_AliasingSharesSinglePassSource(t *testing.T) {
	e := FromChan(chanOf(1, 2, 3))
	if n := e.Count(); n != 3 {
		t.Fatalf("first pass = %d, want 3", n)
	}
	if n := e.Count(); n != 0 {
		t.Errorf("second pass over a drained channel = %d, want 0", n)
	}
}

func TestIsolation_SnapshotRepeatsSinglePassSource(t *testing.T) {
	e := FromChan(chanOf(1, 2, 3), WithIsolation(IsolationSnapshot))
	if n := e.Count(); n != 3 {
		t.Fatalf("first pass = %d, want 3", n)
	}
	if got := e.ToList(); !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("second pass = %v, want [1 2 3]", got)
	}
	if got := e.Where(isEven).ToList(); !intSliceEqual(got, []int{2}) {
		t.Errorf("derived pass = %v, want [2]", got)
	}
}

func TestIsolation_SnapshotDeferredUntilIteration(t *testing.T) {
	ch := chanOf(1, 2, 3)
	e := FromChan(ch, WithIsolation(IsolationSnapshot))
	derived := e.Where(isEven).Select(func(n int) int { return n * 10 })

	if len(ch) != 3 {
		t.Fatalf("building a chain consumed the source: %d left", len(ch))
	}
	if got := derived.ToList(); !intSliceEqual(got, []int{20}) {
		t.Errorf("got %v", got)
	}
	if got := e.Count(); got != 3 {
		t.Errorf("parent after derived pass = %d, want 3", got)
	}
}

func TestIsolation_SnapshotResetByOf(t *testing.T) {
	e := FromChan(chanOf(1, 2), WithIsolation(IsolationSnapshot))
	e.Count()
	e.Of(FromChan(chanOf(7, 8, 9)).Seq())
	if got := e.ToList(); !intSliceEqual(got, []int{7, 8, 9}) {
		t.Errorf("got %v", got)
	}
	if got := e.Count(); got != 3 {
		t.Errorf("snapshot of replaced source = %d, want 3", got)
	}
}

func TestIsolation_DerivedViewUnaffectedByLaterOf(t *testing.T) {
	for _, mode := range []Isolation{IsolationAliasing, IsolationSnapshot} {
		t.Run(string(mode), func(t *testing.T) {
			e := FromSlice([]int{1, 2, 3}, WithIsolation(mode))
			derived := e.Where(func(int) bool { return true })
			if got := derived.ToList(); !intSliceEqual(got, []int{1, 2, 3}) {
				t.Fatalf("first pass = %v, want [1 2 3]", got)
			}

			e.Of(FromSlice([]int{9}).Seq())
			if got := derived.ToList(); !intSliceEqual(got, []int{1, 2, 3}) {
				t.Errorf("after Of = %v, want [1 2 3]", got)
			}
			if got := e.ToList(); !intSliceEqual(got, []int{9}) {
				t.Errorf("parent after Of = %v, want [9]", got)
			}
		})
	}
}

func TestIsolation_ConcurrentSnapshotReaders(t *testing.T) {
	e := FromChan(chanOf(0, 1, 2, 3, 4, 5, 6, 7, 8, 9), WithIsolation(IsolationSnapshot))

	var wg sync.WaitGroup
	counts := make([]int, 16)
	for i := range counts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counts[i] = e.Where(isEven).Count()
		}()
	}
	wg.Wait()

	for i, n := range counts {
		if n != 5 {
			t.Errorf("reader %d saw %d evens, want 5", i, n)
		}
	}
}

func TestGuard_ConcurrentReadersAndWriter(t *testing.T) {
	e := Range(0, 100)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if n := e.Count(); n != 100 && n != 50 {
				t.Errorf("count = %d, want 100 or 50", n)
			}
		}()
		go func() {
			defer wg.Done()
			e.Of(Range(0, 50).Seq())
		}()
	}
	wg.Wait()
}

func TestGuard_ReleasedOnPanic(t *testing.T) {
	e := Of(func(yield func(int) bool) {
		yield(1)
		panic(fmt.Errorf("source failed"))
	})

	if r := panicValue(func() { e.Next(); e.Next() }); r == nil {
		t.Fatal("expected the source panic to reach the caller")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		e.Of(Range(0, 2).Seq())
		e.Close()
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("guard still held after a panic in Next")
	}
	if got := e.ToList(); !intSliceEqual(got, []int{0, 1}) {
		t.Errorf("got %v", got)
	}
}

func TestNext(t *testing.T) {
	e := Range(0, 3)
	var got []int
	for {
		v, ok := e.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if !intSliceEqual(got, []int{0, 1, 2}) {
		t.Errorf("got %v", got)
	}
	if _, ok := e.Next(); ok {
		t.Error("Next after exhaustion should keep reporting false")
	}

	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if v, ok := e.Next(); !ok || v != 0 {
		t.Errorf("Next after Close = %d, %v; want a fresh cursor", v, ok)
	}

	e.Of(Range(5, 1).Seq())
	if v, ok := e.Next(); !ok || v != 5 {
		t.Errorf("Next after Of = %d, %v; want 5, true", v, ok)
	}
	if err := e.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("repeated Close: %v", err)
	}
}

func TestNext_StopsSourceOnClose(t *testing.T) {
	stopped := false
	e := Of(func(yield func(int) bool) {
		defer func() { stopped = true }()
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	})
	e.Next()
	e.Next()
	e.Close()
	if !stopped {
		t.Error("Close should stop the underlying pass")
	}
}

func TestNext_SourceDerivesFromSameView(t *testing.T) {
	var (
		e       *Enumerable[int]
		derived []*Enumerable[int]
	)
	e = Of(func(yield func(int) bool) {
		for i := 1; i <= 3; i++ {
			derived = append(derived, e.Where(isEven))
			if !yield(i) {
				return
			}
		}
	})

	done := make(chan []int)
	go func() {
		var got []int
		for {
			v, ok := e.Next()
			if !ok {
				break
			}
			got = append(got, v)
		}
		done <- got
	}()

	select {
	case got := <-done:
		if !intSliceEqual(got, []int{1, 2, 3}) {
			t.Errorf("got %v, want [1 2 3]", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Next held the guard while the source ran")
	}
	if len(derived) != 3 {
		t.Errorf("views derived by the source = %d, want 3", len(derived))
	}
}

func TestIter(t *testing.T) {
	ctx := context.Background()
	it := Range(0, 3).Iter()
	defer it.Close()

	var got []int
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, v)
	}
	if !intSliceEqual(got, []int{0, 1, 2}) {
		t.Errorf("got %v", got)
	}
	if _, ok, err := it.Next(ctx); ok || err != nil {
		t.Errorf("after exhaustion: ok=%v err=%v", ok, err)
	}
}

func TestIter_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	it := Range(0, 10).Iter()
	defer it.Close()

	if v, ok, err := it.Next(ctx); err != nil || !ok || v != 0 {
		t.Fatalf("first Next = %d, %v, %v", v, ok, err)
	}
	cancel()
	if _, ok, err := it.Next(ctx); ok || err != context.Canceled {
		t.Errorf("after cancel: ok=%v err=%v; want context.Canceled", ok, err)
	}
}

func TestIter_Independent(t *testing.T) {
	e := Range(0, 3)
	a, b := e.Iter(), e.Iter()
	defer a.Close()
	defer b.Close()

	ctx := context.Background()
	a.Next(ctx)
	a.Next(ctx)
	if v, _, _ := b.Next(ctx); v != 0 {
		t.Errorf("second iterator started at %d, want 0", v)
	}
}

type fakeIter struct {
	values []int
	failAt int
	pos    int
	closed bool
}

func (f *fakeIter) Next(ctx context.Context) (int, bool, error) {
	if f.pos == f.failAt {
		return 0, false, fmt.Errorf("fetch failed at %d", f.pos)
	}
	if f.pos >= len(f.values) {
		return 0, false, nil
	}
	v := f.values[f.pos]
	f.pos++
	return v, true, nil
}

func (f *fakeIter) Close() error {
	f.closed = true
	return nil
}

func TestFromIterator(t *testing.T) {
	src := &fakeIter{values: []int{1, 2, 3}, failAt: -1}
	e := FromIterator(context.Background(), src)
	if got := e.Where(isEven).ToList(); !intSliceEqual(got, []int{2}) {
		t.Errorf("got %v", got)
	}
	if !src.closed {
		t.Error("iterator should be closed after the pass")
	}
}

func TestFromIterator_ErrorPanicsAtEvaluation(t *testing.T) {
	src := &fakeIter{values: []int{1, 2, 3}, failAt: 2}
	e := FromIterator(context.Background(), src)

	if got := e.Take(2).ToList(); !intSliceEqual(got, []int{1, 2}) {
		t.Fatalf("got %v", got)
	}
	r := panicValue(func() { e.Count() })
	err, ok := r.(error)
	if !ok || err.Error() != "fetch failed at 2" {
		t.Errorf("expected the iterator error as panic value, got %v", r)
	}
}

func TestFromIterator_RoundTrip(t *testing.T) {
	it := Range(0, 4).Iter()
	back := FromIterator(context.Background(), it)
	if got := back.ToList(); !intSliceEqual(got, []int{0, 1, 2, 3}) {
		t.Errorf("got %v", got)
	}
}
