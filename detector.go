// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import (
	"bytes"
	"context"
)

// Detector inspects the leading bytes of an input through a [Source] and reports
// the recognized [Format].
//
// Detect returns (nil, nil) if the content is not recognized, including when the
// source is too short to hold the signature. A returned error aborts the
// detection and is passed on to the caller. Detectors must not keep state
// between calls and must not close or retain the source.
type Detector interface {
	Detect(ctx context.Context, src Source) (*Format, error)
}

// DetectorFunc is an adapter to use an ordinary function as a [Detector].
type DetectorFunc func(ctx context.Context, src Source) (*Format, error)

// Detect calls f(ctx, src).
func (f DetectorFunc) Detect(ctx context.Context, src Source) (*Format, error) {
	return f(ctx, src)
}

// matchesMagicBytes checks if data contains one of the magic byte sequences at
// offset.
func matchesMagicBytes(data []byte, offset int, magicBytes [][]byte) bool {
	// check all possible magic bytes until match is found
	for _, mb := range magicBytes {
		// check if header is long enough
		if offset+len(mb) > len(data) {
			continue
		}

		// check for byte match
		if bytes.Equal(mb, data[offset:offset+len(mb)]) {
			return true
		}
	}

	// no match found
	return false
}

// peekMagicBytes peeks just enough bytes from src to check for magicBytes at
// offset.
func peekMagicBytes(src Source, offset int, magicBytes [][]byte) (bool, error) {
	needs := 0
	for _, mb := range magicBytes {
		if len(mb) > needs {
			needs = len(mb)
		}
	}
	header, err := src.Peek(0, offset+needs)
	if err != nil {
		return false, err
	}
	return matchesMagicBytes(header, offset, magicBytes), nil
}
