// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import (
	"errors"
	"io"
)

// DetectedStream is an [io.ReadCloser] carrying the format detected from the
// leading bytes of a stream. Reading it yields the bytes consumed during the
// detection first, then continues with the rest of the original stream.
type DetectedStream struct {
	r      io.ReadCloser
	header []byte
	format *Format
}

func newDetectedStream(r io.Reader, header []byte, f *Format) *DetectedStream {
	rc, ok := r.(io.ReadCloser)
	if !ok {
		rc = &noopReaderCloser{r}
	}
	return &DetectedStream{r: rc, header: header, format: f}
}

// Format returns the detected format, or nil if the format is unknown.
func (s *DetectedStream) Format() *Format {
	if s.format == nil {
		return nil
	}
	return newFormat(*s.format)
}

// Read replays the detection header first and then reads from the original
// stream. Failures of the original stream are wrapped in an [*Error] with phase
// [PhaseReplay]; the end of the stream is reported as plain io.EOF.
func (s *DetectedStream) Read(b []byte) (int, error) {
	// read from header first
	if len(s.header) > 0 {
		n := copy(b, s.header)
		s.header = s.header[n:]
		return n, nil
	}

	// then continue reading from the source
	n, err := s.r.Read(b)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, &Error{Phase: PhaseReplay, Detector: -1, Err: err}
	}
	return n, err
}

// Close closes the original stream, if it implements io.Closer.
func (s *DetectedStream) Close() error {
	s.header = nil
	return s.r.Close()
}

// noopReaderCloser is a struct that implements the io.ReaderCloser interface with a no-op Close method.
type noopReaderCloser struct {
	io.Reader
}

// Close is a no-op method that satisfies the io.Closer interface.
func (n *noopReaderCloser) Close() error {
	return nil
}
