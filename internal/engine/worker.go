package engine

import (
	"context"
	"fmt"

	"github.com/dhartunian/brcagg/internal/cursor"
	"github.com/dhartunian/brcagg/internal/logger"
	"github.com/dhartunian/brcagg/internal/stats"
)

const (
	expectedKeys = 512
	checkEvery   = 1 << 12
)

// Summary describes how one worker's range was consumed.
type Summary struct {
	Worker  int
	Range   cursor.Range
	Records uint64
	Keys    int
	Stop    cursor.Stop
	// Line is the line number the cursor stopped at.
	Line uint64
}

type partial struct {
	table   stats.Table
	summary Summary
}

type worker struct {
	id  int
	src Source
	rng cursor.Range
	// offset is the byte offset of rng.Start, or -1 to skip lines instead.
	offset int64
	log    *logger.Logger
}

func (w *worker) open() *cursor.Cursor {
	if w.offset < 0 {
		return cursor.New(w.src, w.src.Size(), w.rng)
	}
	return cursor.NewAt(w.src, w.src.Size(), w.offset, w.rng)
}

func (w *worker) run(ctx context.Context) (partial, error) {
	if err := ctx.Err(); err != nil {
		return partial{}, err
	}

	c := w.open()
	table := make(stats.Table, expectedKeys)

	var n uint64
	for c.Scan() {
		table.Add(c.Key(), c.Value())
		n++
		if n%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return partial{}, err
			}
		}
	}
	if err := c.Err(); err != nil {
		return partial{}, fmt.Errorf("worker %d %s: %w", w.id, w.rng, err)
	}

	s := Summary{
		Worker:  w.id,
		Range:   w.rng,
		Records: n,
		Keys:    len(table),
		Stop:    c.Stop(),
		Line:    c.Line(),
	}
	if s.Stop.Early() && s.Line < w.rng.End {
		w.log.Debugf("worker %d stopped at line %d of %s: %s", w.id, s.Line, w.rng, s.Stop)
	}
	return partial{table: table, summary: s}, nil
}
