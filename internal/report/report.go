// Package report renders a final table for people and for comparison.
package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/andreyvit/diff"
	"github.com/zeebo/xxh3"
	"golang.org/x/exp/maps"

	"github.com/dhartunian/brcagg/internal/stats"
)

// Format selects an output layout.
type Format int

const (
	// FormatBraces prints {key=min/mean/max, ...} on one line.
	FormatBraces Format = iota
	// FormatLines prints key=min/mean/max, one key per line.
	FormatLines
)

// ParseFormat parses "braces" or "lines".
func ParseFormat(name string) (Format, error) {
	switch name {
	case "braces":
		return FormatBraces, nil
	case "lines":
		return FormatLines, nil
	}
	return 0, fmt.Errorf("unknown output format %q", name)
}

// Render renders t in the given format.
func Render(t stats.Table, f Format) string {
	if f == FormatLines {
		return Lines(t)
	}
	return Braces(t)
}

// Keys returns the keys of t in byte order.
func Keys(t stats.Table) []string {
	keys := maps.Keys(t)
	slices.Sort(keys)
	return keys
}

func entry(key string, r *stats.Record) string {
	return fmt.Sprintf("%s=%.1f/%.1f/%.1f", key, r.Min, r.Mean(), r.Max)
}

// Braces renders t as {key=min/mean/max, ...} with keys sorted.
func Braces(t stats.Table) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, key := range Keys(t) {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(entry(key, t[key]))
	}
	b.WriteByte('}')
	return b.String()
}

// Lines renders t as one key=min/mean/max line per key, sorted.
func Lines(t stats.Table) string {
	var b strings.Builder
	for _, key := range Keys(t) {
		b.WriteString(entry(key, t[key]))
		b.WriteByte('\n')
	}
	return b.String()
}

// Digest hashes the line rendering of t. Two runs over the same input with
// the same line bound produce the same digest.
func Digest(t stats.Table) uint64 {
	return xxh3.HashString(Lines(t))
}

// Compare returns a line diff between expected and actual output, or "" when
// they match once surrounding whitespace is trimmed from every line.
func Compare(expected, actual string) string {
	expected = diff.TrimLinesInString(expected)
	actual = diff.TrimLinesInString(actual)
	if expected == actual {
		return ""
	}
	return diff.LineDiff(expected, actual)
}

// Split turns a braces rendering into one entry per line so that it diffs
// line by line.
func Split(braces string) string {
	braces = strings.TrimSpace(braces)
	braces = strings.TrimSuffix(strings.TrimPrefix(braces, "{"), "}")
	if braces == "" {
		return ""
	}
	return strings.Join(strings.Split(braces, ", "), "\n") + "\n"
}
