// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

// bufferSource is a [Source] over an in-memory byte slice.
type bufferSource struct {
	data   []byte
	window int64
	pos    int64
}

// NewBufferSource returns a [Source] with random access over b. Peeks are limited
// to the first window bytes; a window <= 0 selects the default sniffing window.
// The slice is referenced, not copied, and must not be modified while the source
// is in use.
func NewBufferSource(b []byte, window int64) Source {
	if window <= 0 {
		window = defaultMaxSniffSize
	}
	return &bufferSource{data: b, window: window}
}

// Peek returns up to n bytes at offset.
func (s *bufferSource) Peek(offset int64, n int) ([]byte, error) {
	limit := int64(len(s.data))
	if s.window < limit {
		limit = s.window
	}
	end, err := peekRange(offset, n, limit)
	if err != nil {
		return nil, err
	}
	if offset >= end {
		return []byte{}, nil
	}
	if end > s.pos {
		s.pos = end
	}
	return s.data[offset:end:end], nil
}

// Position returns the end of the furthest peeked range.
func (s *bufferSource) Position() int64 {
	return s.pos
}

// Close is a no-op.
func (s *bufferSource) Close() error {
	return nil
}
