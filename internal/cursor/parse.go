package cursor

import (
	"bytes"
	"errors"
	"math"
	"strconv"
)

// Delimiter separates the key from the value on every line.
const Delimiter = ';'

var (
	ErrNoDelimiter = errors.New("no delimiter")
	ErrBadValue    = errors.New("value is not a finite number")
)

// ParseLine splits line at the first delimiter. The key is taken verbatim and
// the value is trimmed of surrounding whitespace, including the line ending.
func ParseLine(line []byte) (key string, value float64, err error) {
	sep := bytes.IndexByte(line, Delimiter)
	if sep == -1 {
		return "", 0, ErrNoDelimiter
	}

	value, err = strconv.ParseFloat(string(bytes.TrimSpace(line[sep+1:])), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return "", 0, ErrBadValue
	}
	return string(line[:sep]), value, nil
}
