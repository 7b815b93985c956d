// Package partition splits a line count into per-worker ranges.
package partition

import (
	"fmt"
	"runtime"

	"github.com/dhartunian/brcagg/internal/cursor"
)

// Policy decides what happens to the lines left over by integer division.
type Policy int

const (
	// DropRemainder leaves the last lines%workers lines unassigned.
	DropRemainder Policy = iota
	// RemainderToLast extends the final range to cover every line.
	RemainderToLast
)

func (p Policy) String() string {
	switch p {
	case DropRemainder:
		return "drop"
	case RemainderToLast:
		return "last"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy parses the names returned by Policy.String.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "drop":
		return DropRemainder, nil
	case "last":
		return RemainderToLast, nil
	}
	return 0, fmt.Errorf("unknown remainder policy %q", name)
}

// Available returns the hardware parallelism the runtime will use.
func Available() int {
	return runtime.GOMAXPROCS(0)
}

// Workers returns requested, or the available parallelism when requested is
// not positive.
func Workers(requested int) int {
	if requested <= 0 {
		return Available()
	}
	return requested
}

// Plan divides lines into workers contiguous ranges of lines/workers lines
// each. The leftover lines are handled according to policy.
func Plan(lines uint64, workers int, policy Policy) []cursor.Range {
	workers = max(workers, 1)
	per := lines / uint64(workers)

	ranges := make([]cursor.Range, workers)
	for i := range ranges {
		start := uint64(i) * per
		ranges[i] = cursor.Range{Start: start, End: start + per}
	}
	if policy == RemainderToLast {
		ranges[workers-1].End = lines
	}
	return ranges
}

// Covered returns the number of lines the ranges assign.
func Covered(ranges []cursor.Range) uint64 {
	var n uint64
	for _, r := range ranges {
		n += r.Len()
	}
	return n
}
