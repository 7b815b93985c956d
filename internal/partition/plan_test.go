package partition

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhartunian/brcagg/internal/cursor"
)

func TestPlanDropsRemainder(t *testing.T) {
	ranges := Plan(3, 2, DropRemainder)

	assert.Equal(t, []cursor.Range{{Start: 0, End: 1}, {Start: 1, End: 2}}, ranges)
	assert.Equal(t, uint64(2), Covered(ranges))
}

func TestPlanRemainderToLast(t *testing.T) {
	ranges := Plan(10, 3, RemainderToLast)

	assert.Equal(t, []cursor.Range{{Start: 0, End: 3}, {Start: 3, End: 6}, {Start: 6, End: 10}}, ranges)
	assert.Equal(t, uint64(10), Covered(ranges))
}

func TestPlanCompleteModuloRemainder(t *testing.T) {
	for _, lines := range []uint64{0, 1, 7, 64, 1000, 1001, 999_983} {
		for workers := 1; workers <= 17; workers++ {
			ranges := Plan(lines, workers, DropRemainder)
			require.Len(t, ranges, workers)

			per := lines / uint64(workers)
			var next uint64
			for _, r := range ranges {
				assert.Equal(t, next, r.Start, "ranges are contiguous")
				assert.Equal(t, per, r.Len())
				next = r.End
			}
			assert.Equal(t, uint64(workers)*per, next, "lines=%d workers=%d", lines, workers)

			// Remainder lines belong to no range.
			for line := next; line < lines; line++ {
				for _, r := range ranges {
					assert.False(t, line >= r.Start && line < r.End)
				}
			}
		}
	}
}

func TestPlanMoreWorkersThanLines(t *testing.T) {
	ranges := Plan(3, 8, DropRemainder)
	assert.Equal(t, uint64(0), Covered(ranges))

	ranges = Plan(3, 8, RemainderToLast)
	assert.Equal(t, uint64(3), Covered(ranges))
	assert.Equal(t, cursor.Range{Start: 0, End: 3}, ranges[7])
}

func TestPlanAtLeastOneWorker(t *testing.T) {
	assert.Equal(t, []cursor.Range{{Start: 0, End: 5}}, Plan(5, 0, DropRemainder))
}

func TestWorkers(t *testing.T) {
	assert.Equal(t, Available(), Workers(0))
	assert.Equal(t, Available(), Workers(-3))
	assert.Equal(t, 5, Workers(5))
	assert.GreaterOrEqual(t, Available(), 1)
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{DropRemainder, RemainderToLast} {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePolicy("spread")
	assert.Error(t, err)
}

func TestCountLines(t *testing.T) {
	testCases := []struct {
		input string
		want  uint64
	}{
		{"", 0},
		{"a;1\n", 1},
		{"a;1", 1},
		{"a;1\nb;2\nc;3\n", 3},
		{"a;1\nb;2\nc;3", 3},
		{"\n\n", 2},
	}
	for _, tc := range testCases {
		r := strings.NewReader(tc.input)
		got, err := CountLines(r, r.Size())
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestOffsets(t *testing.T) {
	input := "Paris;10.0\nParis;20.0\nOslo;5.5\nLima;18"
	r := strings.NewReader(input)

	offsets, err := Offsets(r, r.Size(), []uint64{0, 0, 1, 2, 3, 4, 9})
	require.NoError(t, err)

	oslo := int64(strings.Index(input, "Oslo"))
	lima := int64(strings.Index(input, "Lima"))
	assert.Equal(t, []int64{0, 0, 11, oslo, lima, r.Size(), r.Size()}, offsets)
}

func TestOffsetsLeadToLineStarts(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 500; i++ {
		b.WriteString(strings.Repeat("x", i%13))
		b.WriteString(";1\n")
	}
	input := b.String()
	lines := strings.SplitAfter(input, "\n")
	r := strings.NewReader(input)

	starts := []uint64{0, 1, 99, 250, 499, 500}
	offsets, err := Offsets(r, r.Size(), starts)
	require.NoError(t, err)

	for i, s := range starts {
		want := int64(len(strings.Join(lines[:s], "")))
		assert.Equal(t, want, offsets[i], "line %d", s)
	}
}
