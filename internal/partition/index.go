package partition

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

const chunkSize = 1 << 22

// CountLines returns the number of lines in src. A trailing line without a
// newline counts as a line.
func CountLines(src io.ReaderAt, size int64) (uint64, error) {
	var (
		lines uint64
		last  byte = '\n'
	)
	err := eachChunk(src, size, func(chunk []byte, _ int64) bool {
		lines += uint64(bytes.Count(chunk, []byte{'\n'}))
		last = chunk[len(chunk)-1]
		return true
	})
	if err != nil {
		return 0, err
	}
	if last != '\n' {
		lines++
	}
	return lines, nil
}

// Offsets returns the byte offset at which each of the given lines begins.
// starts must be sorted ascending. Lines that begin at or past the end of src
// map to size.
func Offsets(src io.ReaderAt, size int64, starts []uint64) ([]int64, error) {
	offsets := make([]int64, len(starts))
	next := 0
	var line uint64
	assign := func(off int64) {
		for next < len(starts) && starts[next] <= line {
			offsets[next] = off
			next++
		}
	}

	assign(0)
	err := eachChunk(src, size, func(chunk []byte, pos int64) bool {
		for next < len(starts) {
			i := bytes.IndexByte(chunk, '\n')
			if i < 0 {
				return true
			}
			pos += int64(i) + 1
			chunk = chunk[i+1:]
			line++
			assign(pos)
		}
		return false
	})
	if err != nil {
		return nil, err
	}

	for ; next < len(starts); next++ {
		offsets[next] = size
	}
	return offsets, nil
}

// eachChunk hands consecutive non-empty chunks of src to fn along with their
// offset until fn returns false or src is exhausted.
func eachChunk(src io.ReaderAt, size int64, fn func(chunk []byte, pos int64) bool) error {
	buf := make([]byte, min(int64(chunkSize), max(size, 1)))
	for pos := int64(0); pos < size; {
		n, err := src.ReadAt(buf[:min(int64(len(buf)), size-pos)], pos)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("index at offset %d: %w", pos, err)
		}
		if n == 0 {
			return nil
		}
		if !fn(buf[:n], pos) {
			return nil
		}
		pos += int64(n)
	}
	return nil
}
