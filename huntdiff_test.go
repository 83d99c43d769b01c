package huntdiff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rec is a comparable view of a Difference used in table tests.
type rec struct {
	Kind                  Kind
	F1, F2, S1, S2        int
	FirstText, SecondText string
}

func recs(diffs []Difference) []rec {
	out := make([]rec, 0, len(diffs))
	for _, d := range diffs {
		out = append(out, rec{
			Kind: d.Kind, F1: d.FirstStart, F2: d.FirstEnd, S1: d.SecondStart, S2: d.SecondEnd,
			FirstText: d.FirstText(), SecondText: d.SecondText(),
		})
	}
	return out
}

func mustDiff(t *testing.T, a, b []string, opts ...Option) []Difference {
	t.Helper()
	diffs, err := Diff(context.Background(), a, b, opts...)
	require.NoError(t, err)
	return diffs
}

func TestDiff_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want []rec
	}{
		{
			name: "change in the middle",
			a:    []string{"a", "b", "c"},
			b:    []string{"a", "x", "c"},
			want: []rec{{Kind: Change, F1: 2, F2: 2, S1: 2, S2: 2, FirstText: "b\n", SecondText: "x\n"}},
		},
		{
			name: "append at end",
			a:    []string{"a", "b"},
			b:    []string{"a", "b", "c"},
			want: []rec{{Kind: Add, F1: 2, F2: 0, S1: 3, S2: 3, SecondText: "c\n"}},
		},
		{
			name: "delete in the middle",
			a:    []string{"a", "b", "c"},
			b:    []string{"a", "c"},
			want: []rec{{Kind: Delete, F1: 2, F2: 2, S1: 1, S2: 0, FirstText: "b\n"}},
		},
		{
			name: "insert at top",
			a:    []string{"b", "c"},
			b:    []string{"a", "b", "c"},
			want: []rec{{Kind: Add, F1: 0, F2: 0, S1: 1, S2: 1, SecondText: "a\n"}},
		},
		{
			name: "delete at end",
			a:    []string{"a", "b", "c"},
			b:    []string{"a"},
			want: []rec{{Kind: Delete, F1: 2, F2: 3, S1: 1, S2: 0, FirstText: "b\nc\n"}},
		},
		{
			name: "first empty",
			a:    []string{},
			b:    []string{"x", "y"},
			want: []rec{{Kind: Add, F1: 0, F2: 0, S1: 1, S2: 2, SecondText: "x\ny\n"}},
		},
		{
			name: "second empty",
			a:    []string{"x", "y"},
			b:    []string{},
			want: []rec{{Kind: Delete, F1: 1, F2: 2, S1: 0, S2: 0, FirstText: "x\ny\n"}},
		},
		{
			name: "all different",
			a:    []string{"a", "b"},
			b:    []string{"x", "y", "z"},
			want: []rec{{Kind: Change, F1: 1, F2: 2, S1: 1, S2: 3, FirstText: "a\nb\n", SecondText: "x\ny\nz\n"}},
		},
		{
			name: "multi-line change",
			a:    []string{"a", "b", "c", "d"},
			b:    []string{"a", "x", "y", "d"},
			want: []rec{{Kind: Change, F1: 2, F2: 3, S1: 2, S2: 3, FirstText: "b\nc\n", SecondText: "x\ny\n"}},
		},
		{
			name: "two separate edits",
			a:    []string{"a", "b", "c", "d", "e"},
			b:    []string{"a", "c", "d", "x", "e"},
			want: []rec{
				{Kind: Delete, F1: 2, F2: 2, S1: 1, S2: 0, FirstText: "b\n"},
				{Kind: Add, F1: 4, F2: 0, S1: 4, S2: 4, SecondText: "x\n"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustDiff(t, tt.a, tt.b)
			assert.Equal(t, tt.want, recs(got))
		})
	}
}

func TestDiff_Identity(t *testing.T) {
	inputs := [][]string{
		{},
		{"a"},
		{"a", "b", "c"},
		{"x", "x", "x", "y", "x"},
		{"", "", "  indented", "\ttab"},
	}
	optionSets := [][]Option{
		nil,
		{WithIgnoreCase(true)},
		{WithIgnoreSpace(true), WithIgnoreInnerSpace(true)},
	}
	for _, lines := range inputs {
		for _, opts := range optionSets {
			assert.Empty(t, mustDiff(t, lines, lines, opts...), "lines %q", lines)
		}
	}
}

func TestDiff_IgnoreCase(t *testing.T) {
	a := []string{"ABC"}
	b := []string{"abc"}

	assert.Empty(t, mustDiff(t, a, b, WithIgnoreCase(true)))

	got := mustDiff(t, a, b, WithIgnoreCase(false))
	require.Len(t, got, 1)
	assert.Equal(t, Change, got[0].Kind)
	assert.Equal(t, "ABC\n", got[0].FirstText())
	assert.Equal(t, "abc\n", got[0].SecondText())
}

func TestDiff_IgnoreCaseFolding(t *testing.T) {
	assert.Empty(t, mustDiff(t, []string{"ΌΣΟΣ"}, []string{"όσος"}, WithIgnoreCase(true)))
	assert.NotEmpty(t, mustDiff(t, []string{"ΌΣΟΣ"}, []string{"όσος"}))
}

func TestDiff_IgnoreSpace(t *testing.T) {
	a := []string{"  func main() {", "\treturn\t", "}"}
	b := []string{"func main() {", "return", "}  "}

	assert.Empty(t, mustDiff(t, a, b, WithIgnoreSpace(true)))
	assert.NotEmpty(t, mustDiff(t, a, b))
}

func TestDiff_IgnoreInnerSpace(t *testing.T) {
	a := []string{"x  :=   1", "  y = 2"}
	b := []string{"x := 1", "  y\t=  2"}
	assert.Empty(t, mustDiff(t, a, b, WithIgnoreInnerSpace(true)))

	// Inner runs collapse to one space; they do not disappear.
	assert.NotEmpty(t, mustDiff(t, []string{"x := 1"}, []string{"x:=1"}, WithIgnoreInnerSpace(true)))

	// Leading whitespace is still significant without WithIgnoreSpace.
	assert.NotEmpty(t, mustDiff(t, []string{"  y = 2"}, []string{"y = 2"}, WithIgnoreInnerSpace(true)))
	assert.Empty(t, mustDiff(t, []string{"  y  = 2"}, []string{"y = 2 "},
		WithIgnoreInnerSpace(true), WithIgnoreSpace(true)))
}

func TestDiff_OriginalTextKept(t *testing.T) {
	a := []string{"Keep", "OLD Line"}
	b := []string{"keep", "new line"}

	got := mustDiff(t, a, b, WithIgnoreCase(true))
	require.Len(t, got, 1)
	assert.Equal(t, []string{"OLD Line"}, got[0].FirstLines())
	assert.Equal(t, []string{"new line"}, got[0].SecondLines())
}

func TestDiff_WithOptions(t *testing.T) {
	a := []string{" A "}
	b := []string{"a"}
	assert.Empty(t, mustDiff(t, a, b, WithOptions(Options{IgnoreSpace: true, IgnoreCase: true})))
	assert.NotEmpty(t, mustDiff(t, a, b, WithIgnoreCase(true), WithOptions(Options{})))
}

func TestDiff_NilInput(t *testing.T) {
	_, err := Diff(context.Background(), nil, []string{"a"})
	assert.ErrorIs(t, err, ErrNilInput)

	_, err = Diff(context.Background(), []string{"a"}, nil)
	assert.ErrorIs(t, err, ErrNilInput)
}

func TestDiff_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	diffs, err := Diff(ctx, []string{"a", "b"}, []string{"b", "c"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, diffs)
}

func TestDiff_CancelledWithCause(t *testing.T) {
	cause := errors.New("user closed the window")
	ctx, cancel := context.WithCancelCause(context.Background())
	cancel(cause)

	_, err := Diff(ctx, []string{"a"}, []string{"b"})
	assert.ErrorIs(t, err, ErrCancelled)
	assert.ErrorIs(t, err, cause)
}

func TestDiff_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_ = mustDiff(t, []string{"a", "b", "c"}, []string{"a", "x", "c"}, WithLogger(logger))

	out := buf.String()
	assert.Contains(t, out, "hunt diff complete")
	assert.Contains(t, out, "common=2")
	assert.Contains(t, out, "differences=1")
}

func TestDiff_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
	}{
		{"simple", []string{"a", "b", "c"}, []string{"a", "x", "c"}},
		{"insert", []string{"a", "c"}, []string{"a", "b", "c"}},
		{"delete", []string{"a", "b", "c"}, []string{"a", "c"}},
		{"replace all", []string{"a", "b"}, []string{"x", "y"}},
		{"complex", []string{"a", "b", "c", "d", "e"}, []string{"a", "x", "c", "y", "e"}},
		{"permutation", []string{"a", "b", "c", "d", "e"}, []string{"e", "c", "a", "d", "b"}},
		{"reversed", []string{"1", "2", "3", "4"}, []string{"4", "3", "2", "1"}},
		{"repeated lines", []string{"x", "x", "y", "x", "x"}, []string{"x", "y", "x", "x", "x", "y"}},
		{"blank lines", []string{"", "a", "", "b", ""}, []string{"a", "", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diffs := mustDiff(t, tt.a, tt.b)
			got, err := Apply(tt.a, diffs)
			require.NoError(t, err)
			assert.Equal(t, tt.b, got, "diffs:\n%s", FormatNormal(diffs))
			checkWellFormed(t, tt.a, tt.b, diffs)
		})
	}
}

func TestDiff_RandomAgainstLCS(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := []string{"a", "b", "c", "d", ""}

	gen := func() []string {
		n := rng.Intn(25)
		lines := make([]string, n)
		for i := range lines {
			lines[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return lines
	}

	for iter := 0; iter < 500; iter++ {
		a, b := gen(), gen()
		diffs := mustDiff(t, a, b)

		got, err := Apply(a, diffs)
		require.NoError(t, err)
		require.Equal(t, b, got, "a=%q b=%q", a, b)
		checkWellFormed(t, a, b, diffs)

		// Every line not deleted is part of the common subsequence.
		s := Stats(diffs)
		require.Equal(t, lcsLength(a, b), len(a)-s.Deletions, "a=%q b=%q", a, b)
		require.Equal(t, lcsLength(a, b), len(b)-s.Additions, "a=%q b=%q", a, b)
	}
}

func TestDiff_Deterministic(t *testing.T) {
	a := strings.Split("the quick brown fox jumps over the lazy dog the end", " ")
	b := strings.Split("a quick red fox jumps the lazy cat over the end the", " ")

	first := mustDiff(t, a, b)
	for i := 0; i < 5; i++ {
		assert.Equal(t, recs(first), recs(mustDiff(t, a, b)))
	}
}

func TestDiff_LargerSequences(t *testing.T) {
	a := make([]string, 1000)
	b := make([]string, 1000)
	for i := range a {
		a[i] = fmt.Sprintf("line %d", i%97)
		b[i] = a[i]
	}
	b[10] = "X"
	b[500] = "Y"
	b[990] = "Z"

	diffs := mustDiff(t, a, b)
	assert.Len(t, diffs, 3)
	for _, d := range diffs {
		assert.Equal(t, Change, d.Kind)
	}

	got, err := Apply(a, diffs)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

// checkWellFormed verifies ordering and coverage: records are ascending and
// non-overlapping, and the lines they leave out pair up one-to-one.
func checkWellFormed(t *testing.T, a, b []string, diffs []Difference) {
	t.Helper()
	next1, next2 := 1, 1
	for _, d := range diffs {
		switch d.Kind {
		case Add:
			require.GreaterOrEqual(t, d.FirstStart, next1-1, "%v", d)
			require.Equal(t, d.SecondStart-next2, d.FirstStart-next1+1, "unmatched gap before %v", d)
			require.Equal(t, b[d.SecondStart-1:d.SecondEnd], d.SecondLines())
			next1 = d.FirstStart + 1
			next2 = d.SecondEnd + 1
		case Delete:
			require.GreaterOrEqual(t, d.FirstStart, next1, "%v", d)
			require.Equal(t, d.FirstStart-next1, d.SecondStart-next2+1, "unmatched gap before %v", d)
			require.Equal(t, a[d.FirstStart-1:d.FirstEnd], d.FirstLines())
			next1 = d.FirstEnd + 1
			next2 = d.SecondStart + 1
		case Change:
			require.GreaterOrEqual(t, d.FirstStart, next1, "%v", d)
			require.Equal(t, d.FirstStart-next1, d.SecondStart-next2, "unmatched gap before %v", d)
			require.Equal(t, a[d.FirstStart-1:d.FirstEnd], d.FirstLines())
			require.Equal(t, b[d.SecondStart-1:d.SecondEnd], d.SecondLines())
			next1 = d.FirstEnd + 1
			next2 = d.SecondEnd + 1
		}
	}
	require.Equal(t, len(a)-next1, len(b)-next2, "unmatched tail")
	for i := 0; next1+i <= len(a); i++ {
		require.Equal(t, a[next1+i-1], b[next2+i-1])
	}
}

// lcsLength is a quadratic reference implementation.
func lcsLength(a, b []string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func BenchmarkDiff_Small(b *testing.B) {
	a := []string{"a", "b", "c", "d", "e"}
	bSeq := []string{"a", "x", "c", "y", "e"}
	ctx := context.Background()

	for i := 0; i < b.N; i++ {
		_, _ = Diff(ctx, a, bSeq)
	}
}

func BenchmarkDiff_Large(b *testing.B) {
	a := make([]string, 1000)
	bSeq := make([]string, 1000)
	for i := range a {
		a[i] = fmt.Sprintf("line %d", i)
		bSeq[i] = a[i]
	}
	for i := 0; i < 100; i++ {
		bSeq[i*10] = "X"
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Diff(ctx, a, bSeq)
	}
}
