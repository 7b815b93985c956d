// Package engine aggregates a key;value file by splitting it into line
// ranges, scanning each range on its own goroutine and folding the partial
// tables into one.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/dhartunian/brcagg/internal/cursor"
	"github.com/dhartunian/brcagg/internal/logger"
	"github.com/dhartunian/brcagg/internal/partition"
	"github.com/dhartunian/brcagg/internal/source"
	"github.com/dhartunian/brcagg/internal/stats"
)

// ErrIncomplete is returned when fewer partial results were folded than
// workers were started.
var ErrIncomplete = errors.New("incomplete reduction")

// Source is a read-only file view. ReadAt must be safe for concurrent use.
type Source interface {
	io.ReaderAt
	Size() int64
}

// Config controls a single aggregation run. The zero value reads the whole
// file with one worker per available CPU.
type Config struct {
	// Lines bounds the number of lines to process. Nil means until end of
	// file.
	Lines *uint64
	// Workers is the number of partitions. Zero uses the available
	// parallelism.
	Workers int
	// Remainder decides what happens to the Lines%Workers leftover lines of
	// a bounded run. Unbounded runs always give them to the last worker.
	Remainder partition.Policy
	// Start selects how each worker reaches its first line.
	Start cursor.Strategy
	// Source selects the file backing used by AggregateFile.
	Source source.Kind
	Logger *logger.Logger
}

// Limit returns a line bound for Config.Lines.
func Limit(n uint64) *uint64 {
	return &n
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = logger.Discard()
	}
	c.Workers = partition.Workers(c.Workers)
	return c
}

// AggregateFile opens path and aggregates it.
func AggregateFile(ctx context.Context, path string, cfg Config) (stats.Table, error) {
	src, err := source.Open(path, cfg.Source)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return Aggregate(ctx, src, cfg)
}

// Aggregate computes per-key statistics over src. It returns only after every
// worker's partial table has been folded in. Malformed lines end a worker's
// range early and are not errors; read failures are.
func Aggregate(ctx context.Context, src Source, cfg Config) (stats.Table, error) {
	cfg = cfg.withDefaults()
	log := cfg.Logger

	if avail := partition.Available(); cfg.Workers > avail {
		log.Warnf("running %d workers on %d available CPUs", cfg.Workers, avail)
	}

	ranges, err := plan(src, cfg)
	if err != nil {
		return nil, err
	}

	offsets, err := startOffsets(src, ranges, cfg.Start)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	partials := make(chan partial, len(ranges))
	for i, rng := range ranges {
		w := &worker{id: i, src: src, rng: rng, offset: -1, log: log}
		if offsets != nil {
			w.offset = offsets[i]
		}
		g.Go(func() error {
			p, err := w.run(gctx)
			if err != nil {
				return err
			}
			partials <- p
			return nil
		})
	}

	var waitErr error
	go func() {
		waitErr = g.Wait()
		close(partials)
	}()

	red := newReducer(len(ranges), log)
	for p := range partials {
		red.fold(p)
	}
	if waitErr != nil {
		return nil, waitErr
	}
	return red.result()
}

func plan(src Source, cfg Config) ([]cursor.Range, error) {
	log := cfg.Logger

	var lines uint64
	policy := cfg.Remainder
	if cfg.Lines != nil {
		lines = *cfg.Lines
	} else {
		n, err := partition.CountLines(src, src.Size())
		if err != nil {
			return nil, fmt.Errorf("count lines: %w", err)
		}
		lines, policy = n, partition.RemainderToLast
	}

	ranges := partition.Plan(lines, cfg.Workers, policy)
	log.Infof("planned %d lines over %d workers (remainder=%s, start=%s)", lines, len(ranges), policy, cfg.Start)
	if dropped := lines - partition.Covered(ranges); dropped > 0 {
		log.Infof("%d remainder lines are not assigned to any worker", dropped)
	}
	return ranges, nil
}

// startOffsets finds the first byte of every range in one pass over src. It
// returns nil when workers should skip lines themselves.
func startOffsets(src Source, ranges []cursor.Range, strategy cursor.Strategy) ([]int64, error) {
	if strategy != cursor.Seek {
		return nil, nil
	}
	starts := make([]uint64, len(ranges))
	for i, r := range ranges {
		starts[i] = r.Start
	}
	offsets, err := partition.Offsets(src, src.Size(), starts)
	if err != nil {
		return nil, fmt.Errorf("locate ranges: %w", err)
	}
	return offsets, nil
}
