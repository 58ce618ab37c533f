// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import (
	"fmt"
	"io"
	"math"
)

// Source is a bounded, non-destructive lookahead over the leading bytes of an
// input. Detectors inspect the input exclusively through a Source.
//
// Peek returns up to n bytes starting at offset. A result shorter than n with a
// nil error means that the end of the input or the end of the sniffing window
// was reached; it is not a failure. Peeking the same range twice returns the
// same bytes. The returned slice must not be modified.
//
// A Source is not safe for concurrent use.
type Source interface {
	Peek(offset int64, n int) ([]byte, error)

	// Position returns the end offset of the furthest byte range that has been
	// made available by Peek so far.
	Position() int64

	// Close releases the resources held by the source.
	Close() error
}

// defaultMaxSniffSize is the default size of the sniffing window.
//
// https://github.com/gabriel-vasile/mimetype/blob/master/mimetype.go#L17
const defaultMaxSniffSize int64 = 65536 // 2^16

// peekWindow is a peek length that asks for everything up to the end of the
// sniffing window.
const peekWindow = math.MaxInt32

// peekRange validates a peek request and returns the exclusive end offset of the
// range, clamped to limit. The range is empty if the returned end is not beyond
// offset. limit is the smaller of the input size and the
// sniffing window, or just the window if the input size is unknown.
func peekRange(offset int64, n int, limit int64) (int64, error) {
	if offset < 0 || n < 0 {
		return 0, fmt.Errorf("invalid peek range: offset %d, length %d", offset, n)
	}
	end := offset + int64(n)
	if end > limit {
		end = limit
	}
	return end, nil
}

// sourceReader exposes a [Source] as a sequential [io.Reader], starting at
// offset 0. It is used to feed decoders with the sniffing window. The first
// error of the source is kept in err, so it can be told apart from decoding
// errors.
type sourceReader struct {
	src Source
	off int64
	err error
}

// Read reads the next bytes from the underlying source.
func (r *sourceReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.err != nil {
		return 0, r.err
	}
	b, err := r.src.Peek(r.off, len(p))
	if err != nil {
		r.err = err
		return 0, err
	}
	if len(b) == 0 {
		return 0, io.EOF
	}
	n := copy(p, b)
	r.off += int64(n)
	return n, nil
}

// newSourceReader returns an io.Reader over src, starting at the first byte.
func newSourceReader(src Source) *sourceReader {
	return &sourceReader{src: src}
}
