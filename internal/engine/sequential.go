package engine

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dhartunian/brcagg/internal/cursor"
	"github.com/dhartunian/brcagg/internal/stats"
)

const maxLineSize = 1 << 26

// Sequential aggregates r on the calling goroutine, reading at most *lines
// lines and stopping at the first malformed line. A nil lines reads to end
// of file.
func Sequential(r io.Reader, lines *uint64) (stats.Table, error) {
	temps := make(stats.Table)

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var n uint64
	for (lines == nil || n < *lines) && s.Scan() {
		key, value, err := cursor.ParseLine(s.Bytes())
		if err != nil {
			break
		}
		temps.Add(key, value)
		n++
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("sequential scan: %w", err)
	}
	return temps, nil
}
