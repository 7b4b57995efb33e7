package sequence

import (
	stderrors "errors"
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/kbukum/linqkit/errors"
)

func TestWhere(t *testing.T) {
	got := ToList(Where(Range(0, 10), isEven))
	want := []int{0, 2, 4, 6, 8}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWhere_LengthMatchesCountWhere(t *testing.T) {
	inputs := [][]int{nil, {1}, {2, 2, 3}, {5, 4, 3, 2, 1, 0}}
	for _, in := range inputs {
		filtered := ToList(Where(Values(in), isEven))
		if len(filtered) != CountWhere(Values(in), isEven) {
			t.Errorf("input %v: len(where)=%d, count_where=%d", in, len(filtered), CountWhere(Values(in), isEven))
		}
		for i := 1; i < len(filtered); i++ {
			if slices.Index(in, filtered[i-1]) > slices.Index(in, filtered[i]) {
				t.Errorf("input %v: order not preserved in %v", in, filtered)
			}
		}
	}
}

func TestSelect(t *testing.T) {
	got := ToList(Select(Range(0, 5), func(n int) int { return n*2 + 1 }))
	want := []int{1, 3, 5, 7, 9}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSelect_TypeConversion(t *testing.T) {
	got := ToList(Select(Values([]string{"a", "bb", "ccc"}), func(s string) int { return len(s) }))
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestSelectMany(t *testing.T) {
	pairs := [][]int{{1, 2}, {3, 4}}
	got := ToList(SelectMany(Values(pairs), func(p []int) iter.Seq[int] { return Values(p) }))
	want := []int{1, 2, 3, 4}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSelectMany_EmptyInner(t *testing.T) {
	got := ToList(SelectMany(Range(1, 3), func(n int) iter.Seq[int] {
		if n == 2 {
			return Empty[int]()
		}
		return Values([]int{n, n * 10})
	}))
	want := []int{1, 10, 3, 30}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTap(t *testing.T) {
	var tapped []int
	got := ToList(Tap(Range(1, 3), func(n int) { tapped = append(tapped, n) }))
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("values should pass through unchanged, got %v", got)
	}
	if !intSliceEqual(tapped, []int{1, 2, 3}) {
		t.Errorf("tap should see all values, got %v", tapped)
	}
}

func TestLazy_NoWorkUntilIterated(t *testing.T) {
	calls := 0
	seq := Where(Range(0, 10), func(n int) bool {
		calls++
		return true
	})
	seq = Select(seq, func(n int) int { calls++; return n })
	if calls != 0 {
		t.Fatalf("expected no calls before iteration, got %d", calls)
	}
	if v, ok := First(seq); !ok || v != 0 {
		t.Errorf("First = %d, %v", v, ok)
	}
	if calls != 2 {
		t.Errorf("expected exactly one element pulled through two stages, got %d calls", calls)
	}
}

func TestDistinct(t *testing.T) {
	got := ToList(Distinct(Values([]int{1, 2, 2, 3, 3, 3})))
	want := []int{1, 2, 3}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDistinct_FirstOccurrenceOrder(t *testing.T) {
	got := ToList(Distinct(Values([]int{3, 1, 3, 2, 1})))
	want := []int{3, 1, 2}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDistinct_Idempotent(t *testing.T) {
	in := []int{4, 4, 1, 2, 1, 9, 4}
	once := ToList(Distinct(Values(in)))
	twice := ToList(Distinct(Distinct(Values(in))))
	if !intSliceEqual(once, twice) {
		t.Errorf("distinct(distinct(S)) = %v, distinct(S) = %v", twice, once)
	}
}

func TestDistinct_FreshStatePerPass(t *testing.T) {
	seq := Distinct(Values([]int{1, 1, 2}))
	first := ToList(seq)
	second := ToList(seq)
	if !intSliceEqual(first, second) {
		t.Errorf("second pass %v differs from first %v", second, first)
	}
}

func TestDistinctBy(t *testing.T) {
	in := []Pair[int, int]{{1, 2}, {3, 4}, {1, 7}}
	got := ToList(DistinctBy(Values(in), func(p Pair[int, int]) int { return p.First }))
	want := []Pair[int, int]{{1, 2}, {3, 4}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDistinct_UnhashableIsTypeMismatch(t *testing.T) {
	in := []any{1, []int{2}}
	err := panicError(func() { ToList(Distinct(Values(in))) })
	if !stderrors.Is(err, errors.ErrTypeMismatch) {
		t.Fatalf("expected TYPE_MISMATCH panic, got %v", err)
	}
}

func TestDistinctBy_CallablePanicPropagatesUnchanged(t *testing.T) {
	boom := stderrors.New("boom")
	err := panicError(func() {
		ToList(DistinctBy(Range(0, 3), func(n int) int {
			if n == 1 {
				panic(boom)
			}
			return n
		}))
	})
	if err != boom {
		t.Errorf("expected the original panic value, got %v", err)
	}
}

func TestTake(t *testing.T) {
	got := ToList(Take(Range(0, 10), 5))
	want := []int{0, 1, 2, 3, 4}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTake_InfiniteSource(t *testing.T) {
	got := ToList(Take(naturals(), 3))
	if !intSliceEqual(got, []int{0, 1, 2}) {
		t.Errorf("got %v, want [0 1 2]", got)
	}
}

func TestTakeSkip_NonPositive(t *testing.T) {
	if got := ToList(Take(Range(0, 3), -1)); len(got) != 0 {
		t.Errorf("Take(-1) = %v, want empty", got)
	}
	if got := ToList(Skip(Range(0, 3), -1)); !intSliceEqual(got, []int{0, 1, 2}) {
		t.Errorf("Skip(-1) = %v, want [0 1 2]", got)
	}
}

func TestTakeWhile(t *testing.T) {
	got := ToList(TakeWhile(Range(0, 10), func(n int) bool { return n < 5 }))
	want := []int{0, 1, 2, 3, 4}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTakeWhile_StopsAtFirstFlip(t *testing.T) {
	calls := 0
	got := ToList(TakeWhile(Values([]int{1, 2, 9, 3, 4}), func(n int) bool {
		calls++
		return n < 5
	}))
	if !intSliceEqual(got, []int{1, 2}) {
		t.Errorf("got %v, want [1 2]", got)
	}
	if calls != 3 {
		t.Errorf("predicate called %d times, want 3", calls)
	}
}

func TestSkip(t *testing.T) {
	got := ToList(Skip(Range(0, 10), 5))
	want := []int{5, 6, 7, 8, 9}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSkipWhile(t *testing.T) {
	got := ToList(SkipWhile(Range(0, 10), func(n int) bool { return n < 5 }))
	want := []int{5, 6, 7, 8, 9}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSkipWhile_NotReevaluatedAfterFlip(t *testing.T) {
	calls := 0
	got := ToList(SkipWhile(Values([]int{1, 7, 2, 3}), func(n int) bool {
		calls++
		return n < 5
	}))
	if !intSliceEqual(got, []int{7, 2, 3}) {
		t.Errorf("got %v, want [7 2 3]", got)
	}
	if calls != 2 {
		t.Errorf("predicate called %d times, want 2", calls)
	}
}

func TestConcat(t *testing.T) {
	got := ToList(Concat(Range(0, 5), Range(5, 5)))
	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestConcat_LengthAndDuplicates(t *testing.T) {
	a, b := []int{1, 1, 2}, []int{2, 3}
	got := ToList(Concat(Values(a), Values(b)))
	if len(got) != len(a)+len(b) {
		t.Errorf("len = %d, want %d", len(got), len(a)+len(b))
	}
}

func TestConcat_Deferred(t *testing.T) {
	pulled := false
	var src iter.Seq[int] = func(yield func(int) bool) { pulled = true }
	seq := Concat(src, Range(0, 1))
	if pulled {
		t.Fatal("concat must not read operands before iteration")
	}
	ToList(seq)
	if !pulled {
		t.Error("expected operand to be read on iteration")
	}
}

func TestIntersect(t *testing.T) {
	got := ToList(Intersect(Range(0, 10), Range(5, 10)))
	want := []int{5, 6, 7, 8, 9}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestIntersect_MembershipNotMultiset(t *testing.T) {
	got := ToList(Intersect(Values([]int{2, 2, 2, 1}), Values([]int{2})))
	if !intSliceEqual(got, []int{2, 2, 2}) {
		t.Errorf("got %v, want [2 2 2]", got)
	}
}

func TestWithout(t *testing.T) {
	got := ToList(Without(Range(0, 10), Range(5, 5)))
	want := []int{0, 1, 2, 3, 4}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestIntersectWithout_Partition(t *testing.T) {
	a := []int{1, 5, 2, 5, 8, 3, 1}
	b := []int{5, 1, 42}
	in := ToList(Intersect(Values(a), Values(b)))
	out := ToList(Without(Values(a), Values(b)))
	if len(in)+len(out) != len(a) {
		t.Fatalf("partition sizes %d+%d != %d", len(in), len(out), len(a))
	}
	union := append(slices.Clone(in), out...)
	slices.Sort(union)
	sorted := slices.Clone(a)
	slices.Sort(sorted)
	if !intSliceEqual(union, sorted) {
		t.Errorf("intersect ∪ without = %v, want %v", union, sorted)
	}
	for _, v := range in {
		if slices.Contains(out, v) {
			t.Errorf("%d appears in both partitions", v)
		}
	}
}

func TestZip(t *testing.T) {
	got := ToList(Zip(Range(0, 3), Values([]string{"a", "b", "c"})))
	want := []Pair[int, string]{{0, "a"}, {1, "b"}, {2, "c"}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestZip_TruncatesToShorter(t *testing.T) {
	tests := []struct {
		name string
		a, b int
	}{
		{"first shorter", 2, 5},
		{"second shorter", 5, 2},
		{"equal", 3, 3},
		{"empty", 0, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := Count(Zip(Range(0, tc.a), Range(0, tc.b)))
			if n != min(tc.a, tc.b) {
				t.Errorf("len(zip) = %d, want %d", n, min(tc.a, tc.b))
			}
		})
	}
}

func TestZip_InfiniteSecond(t *testing.T) {
	got := ToList(Zip(Range(10, 2), naturals()))
	want := []Pair[int, int]{{10, 0}, {11, 1}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSort(t *testing.T) {
	got := ToList(Sort(Values([]int{3, 1, 2}), false))
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
	got = ToList(Sort(Values([]int{3, 1, 2}), true))
	if !intSliceEqual(got, []int{3, 2, 1}) {
		t.Errorf("got %v, want [3 2 1]", got)
	}
}

func TestSortBy_NegatedKey(t *testing.T) {
	got := ToList(SortBy(Range(0, 10), func(n int) int { return -n }, false))
	want := []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSortBy_Stable(t *testing.T) {
	words := []string{"bb", "a", "cc", "d", "ee"}
	got := ToList(SortBy(Values(words), func(s string) int { return len(s) }, false))
	want := []string{"a", "d", "bb", "cc", "ee"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	got = ToList(SortBy(Values(words), func(s string) int { return len(s) }, true))
	want = []string{"bb", "cc", "ee", "a", "d"}
	if !slices.Equal(got, want) {
		t.Errorf("reverse got %v, want %v", got, want)
	}
}

func TestSortThenReverse_EqualsInvertedFlag(t *testing.T) {
	in := []int{7, -2, 9, 0, 4}
	for _, flag := range []bool{false, true} {
		reversed := ToList(Reverse(Sort(Values(in), flag)))
		inverted := ToList(Sort(Values(in), !flag))
		if !intSliceEqual(reversed, inverted) {
			t.Errorf("reverse(sort(%v)) = %v, sort(%v) = %v", flag, reversed, !flag, inverted)
		}
	}
}

func TestSortFunc(t *testing.T) {
	got := ToList(SortFunc(Values([]string{"pear", "fig", "apple"}), strings.Compare, false))
	want := []string{"apple", "fig", "pear"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReverse(t *testing.T) {
	got := ToList(Reverse(Range(0, 10)))
	want := []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	if !intSliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFromChan(t *testing.T) {
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	ch <- 3
	close(ch)
	seq := FromChan(ch)
	if got := ToList(seq); !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
	if got := ToList(seq); len(got) != 0 {
		t.Errorf("channel source is single-pass, second pass got %v", got)
	}
}

// --- helpers ---

func isEven(n int) bool { return n%2 == 0 }

func naturals() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// panicError runs fn and returns the recovered panic value as an error.
func panicError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()
	fn()
	return nil
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestIntersectBy_AnyKeys(t *testing.T) {
	box := func(n int) any { return n }
	got := ToList(IntersectBy(Range(0, 6), Range(3, 10), box))
	if !intSliceEqual(got, []int{3, 4, 5}) {
		t.Errorf("got %v, want [3 4 5]", got)
	}
	got = ToList(WithoutBy(Range(0, 6), Range(3, 10), box))
	if !intSliceEqual(got, []int{0, 1, 2}) {
		t.Errorf("got %v, want [0 1 2]", got)
	}
}

func TestWithoutBy_UnhashableIsTypeMismatch(t *testing.T) {
	box := func(s []int) any { return s }
	in := Values([][]int{{1}, {2}})
	err := panicError(func() { ToList(WithoutBy(in, in, box)) })
	if !errors.HasCode(err, errors.ErrCodeTypeMismatch) {
		t.Fatalf("expected TYPE_MISMATCH panic, got %v", err)
	}
}
