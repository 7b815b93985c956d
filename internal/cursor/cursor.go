// Package cursor reads parsed records from a line range of a shared file.
//
// Every Cursor owns its own read position over an io.ReaderAt, so any number
// of cursors can walk the same file concurrently without locking.
package cursor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

const readBufferSize = 1 << 16

// Range is a half-open interval [Start, End) of zero-based line numbers.
type Range struct {
	Start uint64
	End   uint64
}

// Len returns the number of lines in the range.
func (r Range) Len() uint64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Stop says why a cursor stopped producing records.
type Stop int

const (
	Running Stop = iota
	RangeEnd
	EOF
	NoDelimiter
	BadValue
	ReadError
)

func (s Stop) String() string {
	switch s {
	case Running:
		return "running"
	case RangeEnd:
		return "range end"
	case EOF:
		return "end of file"
	case NoDelimiter:
		return "line without delimiter"
	case BadValue:
		return "unparsable value"
	case ReadError:
		return "read error"
	}
	return fmt.Sprintf("Stop(%d)", int(s))
}

// Early reports whether the cursor stopped before reaching the end of its
// range.
func (s Stop) Early() bool {
	return s != Running && s != RangeEnd
}

// Cursor yields (key, value) pairs from consecutive lines. A line that cannot
// be parsed ends the sequence, as does end of file; neither is an error.
type Cursor struct {
	r    *bufio.Reader
	rng  Range
	line uint64
	buf  []byte

	key   string
	value float64

	stop Stop
	err  error
}

// New returns a cursor over rng that reads src from the beginning and
// discards rng.Start lines before producing anything.
func New(src io.ReaderAt, size int64, rng Range) *Cursor {
	c := newCursor(src, size, 0, rng)
	if rng.Len() == 0 {
		c.line = rng.Start
		c.stop = RangeEnd
		return c
	}
	for c.line < rng.Start {
		line, err := c.readLine()
		if err != nil && !errors.Is(err, io.EOF) {
			c.fail(err)
			return c
		}
		if len(line) == 0 {
			// Ran out of file before reaching the range.
			c.stop = EOF
			return c
		}
		c.line++
	}
	return c
}

// NewAt returns a cursor over rng whose first line starts at byte offset off.
// The caller is responsible for off being the start of line rng.Start.
func NewAt(src io.ReaderAt, size, off int64, rng Range) *Cursor {
	c := newCursor(src, size, off, rng)
	c.line = rng.Start
	return c
}

func newCursor(src io.ReaderAt, size, off int64, rng Range) *Cursor {
	off = min(max(off, 0), size)
	return &Cursor{
		r:   bufio.NewReaderSize(io.NewSectionReader(src, off, size-off), readBufferSize),
		rng: rng,
	}
}

// Scan advances to the next record. It returns false once the range is
// exhausted, the file ends, a malformed line is met or a read fails.
func (c *Cursor) Scan() bool {
	if c.stop != Running {
		return false
	}
	if c.line >= c.rng.End {
		c.stop = RangeEnd
		return false
	}

	line, err := c.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		c.fail(err)
		return false
	}
	if len(line) == 0 {
		c.stop = EOF
		return false
	}

	key, value, err := ParseLine(line)
	switch {
	case errors.Is(err, ErrNoDelimiter):
		c.stop = NoDelimiter
		return false
	case err != nil:
		c.stop = BadValue
		return false
	}

	c.line++
	c.key, c.value = key, value
	return true
}

// Key returns the key of the most recent record.
func (c *Cursor) Key() string { return c.key }

// Value returns the value of the most recent record.
func (c *Cursor) Value() float64 { return c.value }

// Line returns the number of the next line the cursor would read.
func (c *Cursor) Line() uint64 { return c.line }

// Range returns the line range the cursor was built for.
func (c *Cursor) Range() Range { return c.rng }

// Stop returns why the cursor stopped, or Running.
func (c *Cursor) Stop() Stop { return c.stop }

// Err returns the first read error that is not end of file.
func (c *Cursor) Err() error { return c.err }

func (c *Cursor) fail(err error) {
	c.stop = ReadError
	c.err = fmt.Errorf("read line %d: %w", c.line, err)
}

// readLine returns the next line including its newline. Lines longer than the
// reader's buffer are assembled in c.buf.
func (c *Cursor) readLine() ([]byte, error) {
	line, err := c.r.ReadSlice('\n')
	if !errors.Is(err, bufio.ErrBufferFull) {
		return line, err
	}

	c.buf = append(c.buf[:0], line...)
	for errors.Is(err, bufio.ErrBufferFull) {
		line, err = c.r.ReadSlice('\n')
		c.buf = append(c.buf, line...)
	}
	return c.buf, err
}
