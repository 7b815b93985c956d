// Package source opens the measurements file as a shared, read-only view that
// any number of goroutines can read concurrently.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// Kind selects how the file is exposed to readers.
type Kind int

const (
	// MMap maps the whole file into memory.
	MMap Kind = iota
	// File serves reads with pread on an open descriptor.
	File
)

var ErrUnknownKind = errors.New("unknown source kind")

func (k Kind) String() string {
	switch k {
	case MMap:
		return "mmap"
	case File:
		return "file"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the names returned by Kind.String.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "mmap":
		return MMap, nil
	case "file":
		return File, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Source is a read-only view of one file. ReadAt is safe for concurrent use.
type Source struct {
	name   string
	r      io.ReaderAt
	size   int64
	closer io.Closer
}

// Open opens path with the given kind of backing.
func Open(path string, kind Kind) (*Source, error) {
	switch kind {
	case MMap:
		return openMMap(path)
	case File:
		return openFile(path)
	}
	return nil, fmt.Errorf("open %s: %w: %d", path, ErrUnknownKind, int(kind))
}

func openMMap(path string) (*Source, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return &Source{name: path, r: r, size: int64(r.Len()), closer: r}, nil
}

func openFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("open %s: is a directory", path)
	}
	advise(f)
	return &Source{name: path, r: f, size: fi.Size(), closer: f}, nil
}

// FromReaderAt wraps an existing reader, such as a strings.Reader in tests.
func FromReaderAt(name string, r io.ReaderAt, size int64) *Source {
	return &Source{name: name, r: r, size: size}
}

func (s *Source) ReadAt(p []byte, off int64) (int, error) {
	// An empty mapping has no backing memory to read from.
	if off >= s.size {
		return 0, io.EOF
	}
	return s.r.ReadAt(p, off)
}

func (s *Source) Size() int64 { return s.size }

func (s *Source) Name() string { return s.name }

func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
