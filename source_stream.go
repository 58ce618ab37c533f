// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
)

// StreamSource is a [Source] over a forward-only [io.Reader]. Bytes pulled from
// the reader are cached and never discarded, so every peek within the cached
// prefix is answered from memory and no byte is requested twice. Only as many
// bytes as peeks ask for are read; the stream is never drained eagerly.
type StreamSource struct {
	ctx    context.Context
	r      io.Reader
	window int64
	cache  []byte
	pos    int64
	eof    bool
	err    error
}

// NewStreamSource returns a [StreamSource] reading from r. Peeks are limited to the
// first window bytes; a window <= 0 selects the default sniffing window. ctx is
// checked before every read from r.
func NewStreamSource(ctx context.Context, r io.Reader, window int64) *StreamSource {
	if window <= 0 {
		window = defaultMaxSniffSize
	}
	return &StreamSource{ctx: ctx, r: r, window: window}
}

// Peek returns up to n bytes at offset, pulling missing bytes from the stream.
func (s *StreamSource) Peek(offset int64, n int) ([]byte, error) {
	end, err := peekRange(offset, n, s.window)
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

// streamFillChunk is the largest number of bytes requested from the stream by a
// single read, so the cache only grows with bytes the stream actually delivers.
const streamFillChunk = 32 << 10

// fill reads the bytes missing to cache end bytes, in chunks of at most
// streamFillChunk. Ranges inside the cache are served even after a failure. An
// end of stream is remembered; any other read error is remembered and returned
// on every following fill beyond the cache.
func (s *StreamSource) fill(end int64) error {
	for int64(len(s.cache)) < end && !s.eof {
		if s.err != nil {
			return s.err
		}

		// check if context is canceled
		if err := s.ctx.Err(); err != nil {
			return err
		}

		n := end - int64(len(s.cache))
		if n > streamFillChunk {
			n = streamFillChunk
		}
		start := len(s.cache)
		s.cache = slices.Grow(s.cache, int(n))[:start+int(n)]
		m, err := io.ReadFull(s.r, s.cache[start:])
		s.cache = s.cache[:start+m]
		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			s.eof = true
		default:
			s.err = fmt.Errorf("cannot read from stream: %w", err)
		}
	}
	return nil
}

// Position returns the end of the furthest peeked range.
func (s *StreamSource) Position() int64 {
	return s.pos
}

// Buffered returns the prefix of the stream that has been read and cached so far.
// The returned slice must not be modified.
func (s *StreamSource) Buffered() []byte {
	return s.cache[:len(s.cache):len(s.cache)]
}

// Close releases the cache. The wrapped reader is owned by the caller and is
// not closed.
func (s *StreamSource) Close() error {
	s.cache = nil
	return nil
}
