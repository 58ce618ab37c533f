// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Blob is a random access input of known size, for example a [bytes.Reader],
// an [io.SectionReader] or an object in a remote storage.
type Blob interface {
	io.ReaderAt
	Size() int64
}

// readAheadSize is the minimum number of bytes fetched by a single positioned
// read. Detectors peek in small steps; reading ahead keeps the number of calls
// into the underlying [io.ReaderAt] low.
const readAheadSize = 4096

// readerAtSource is a [Source] backed by positioned reads. The bytes read so far
// are kept as a contiguous prefix, so each byte is fetched at most once.
type readerAtSource struct {
	r      io.ReaderAt
	closer io.Closer
	limit  int64
	cache  []byte
	pos    int64
}

// NewReaderAtSource returns a [Source] that reads from r, which holds size bytes.
// Peeks are limited to the first window bytes; a window <= 0 selects the default
// sniffing window.
func NewReaderAtSource(r io.ReaderAt, size int64, window int64) Source {
	return newReaderAtSource(r, nil, size, window)
}

// OpenFileSource opens the file at path and returns a [Source] reading its
// leading bytes with positioned reads. The file is closed by [Source.Close].
func OpenFileSource(path string, window int64) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("cannot stat file: %w", err)
	}
	if stat.IsDir() {
		f.Close()
		return nil, fmt.Errorf("cannot sniff directory: %s", path)
	}
	return newReaderAtSource(f, f, stat.Size(), window), nil
}

func newReaderAtSource(r io.ReaderAt, closer io.Closer, size int64, window int64) *readerAtSource {
	if window <= 0 {
		window = defaultMaxSniffSize
	}
	limit := window
	if size >= 0 && size < limit {
		limit = size
	}
	return &readerAtSource{r: r, closer: closer, limit: limit}
}

// Peek returns up to n bytes at offset, fetching missing bytes from the
// underlying reader.
func (s *readerAtSource) Peek(offset int64, n int) ([]byte, error) {
	end, err := peekRange(offset, n, s.limit)
	if err != nil {
		return nil, err
	}
	if err := s.fill(end); err != nil {
		return nil, err
	}
	if end > int64(len(s.cache)) {
		end = int64(len(s.cache))
	}
	if offset >= end {
		return []byte{}, nil
	}
	if end > s.pos {
		s.pos = end
	}
	return s.cache[offset:end:end], nil
}

// fill extends the cached prefix to at least end bytes.
func (s *readerAtSource) fill(end int64) error {
	have := int64(len(s.cache))
	if end <= have {
		return nil
	}

	// read ahead, but never beyond the limit
	want := end
	if want-have < readAheadSize {
		want = have + readAheadSize
	}
	if want > s.limit {
		want = s.limit
	}

	buf := make([]byte, want-have)
	m, err := s.r.ReadAt(buf, have)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("cannot read at offset %d: %w", have, err)
	}
	s.cache = append(s.cache, buf[:m]...)

	// a short read without EOF leaves the limit reachable for later peeks,
	// an EOF pins the limit to what is actually there
	if errors.Is(err, io.EOF) {
		s.limit = int64(len(s.cache))
	}
	return nil
}

// Position returns the end of the furthest peeked range.
func (s *readerAtSource) Position() int64 {
	return s.pos
}

// Close closes the underlying file, if the source owns one.
func (s *readerAtSource) Close() error {
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c.Close()
}
