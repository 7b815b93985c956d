// Package stats holds the per-key running statistics that workers build and
// the reducer merges.
package stats

// Record is the running min/max/sum/count for one key. A Record always holds
// at least one observation.
type Record struct {
	Min   float64
	Max   float64
	Sum   float64
	Count uint64
}

// New returns a record holding a single observation.
func New(v float64) *Record {
	return &Record{Min: v, Max: v, Sum: v, Count: 1}
}

// Add folds one observation into the record.
func (r *Record) Add(v float64) {
	r.Min = min(r.Min, v)
	r.Max = max(r.Max, v)
	r.Sum += v
	r.Count++
}

// Combine merges other into r. Order of application does not matter.
func (r *Record) Combine(other *Record) {
	r.Min = min(r.Min, other.Min)
	r.Max = max(r.Max, other.Max)
	r.Sum += other.Sum
	r.Count += other.Count
}

// Mean returns the average of all observations.
func (r *Record) Mean() float64 {
	return r.Sum / float64(r.Count)
}

// Table maps a key to its running statistics.
type Table map[string]*Record

// Add records one observation for key.
func (t Table) Add(key string, v float64) {
	if r, ok := t[key]; ok {
		r.Add(v)
		return
	}
	t[key] = New(v)
}

// Merge folds every entry of other into t. Records for keys that t has not
// seen are moved, not copied, so other must not be used afterwards.
func (t Table) Merge(other Table) {
	for key, r := range other {
		if found, ok := t[key]; ok {
			found.Combine(r)
		} else {
			t[key] = r
		}
	}
}

// Count returns the number of observations across all keys.
func (t Table) Count() uint64 {
	var n uint64
	for _, r := range t {
		n += r.Count
	}
	return n
}
