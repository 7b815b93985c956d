package engine

import (
	"fmt"

	"github.com/dhartunian/brcagg/internal/logger"
	"github.com/dhartunian/brcagg/internal/stats"
)

// reducer folds partial tables as they arrive. Arrival order does not affect
// the result beyond floating point summation order.
type reducer struct {
	want   int
	folded int
	final  stats.Table
	log    *logger.Logger
}

func newReducer(want int, log *logger.Logger) *reducer {
	return &reducer{
		want:  want,
		final: make(stats.Table, expectedKeys),
		log:   log,
	}
}

func (r *reducer) fold(p partial) {
	r.final.Merge(p.table)
	r.folded++

	s := p.summary
	r.log.Debugf("folded worker %d %s: %d records, %d keys, stop=%s (%d/%d)",
		s.Worker, s.Range, s.Records, s.Keys, s.Stop, r.folded, r.want)
}

func (r *reducer) result() (stats.Table, error) {
	if r.folded != r.want {
		return nil, fmt.Errorf("%w: folded %d of %d partial results", ErrIncomplete, r.folded, r.want)
	}
	return r.final, nil
}

// Reduce folds partial tables into a new table. The partials are consumed.
func Reduce(partials ...stats.Table) stats.Table {
	r := newReducer(len(partials), logger.Discard())
	for i, t := range partials {
		r.fold(partial{table: t, summary: Summary{Worker: i}})
	}
	return r.final
}
