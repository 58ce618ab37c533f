// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import (
	"context"
	"io"
	"reflect"
)

// Sniffer detects formats with a fixed configuration. A Sniffer is safe for
// concurrent use: every detection builds its own detector list and source.
type Sniffer struct {
	cfg *Config
}

// New returns a [Sniffer] configured with opts, see [NewConfig].
func New(opts ...ConfigOption) *Sniffer {
	return &Sniffer{cfg: NewConfig(opts...)}
}

// Config returns the configuration of the sniffer.
func (s *Sniffer) Config() *Config {
	return s.cfg
}

// DetectBytes detects the format of b.
func (s *Sniffer) DetectBytes(ctx context.Context, b []byte) (*Format, error) {
	src := NewBufferSource(b, s.cfg.MaxSniffSize())
	defer src.Close()
	return detect(ctx, s.cfg, src, inputTypeBuffer)
}

// DetectBlob detects the format of blob. Only the bytes inside the sniffing
// window are read, using positioned reads. A nil blob, including a nil pointer
// stored in the interface, is rejected with [ErrNilReader].
func (s *Sniffer) DetectBlob(ctx context.Context, blob Blob) (*Format, error) {
	if isNil(blob) {
		return nil, handleError(s.cfg, nil, PhaseAdapter, -1, "cannot read blob", ErrNilReader)
	}
	src := NewReaderAtSource(blob, blob.Size(), s.cfg.MaxSniffSize())
	defer src.Close()
	return detect(ctx, s.cfg, src, inputTypeBlob)
}

// DetectReader detects the format of the stream r. Only the bytes the detectors
// ask for are read from r, at most the sniffing window. These bytes are consumed;
// use [Sniffer.WrapReader] to keep reading the complete stream afterwards.
// A nil reader, including a nil pointer stored in the interface, is rejected
// with [ErrNilReader].
func (s *Sniffer) DetectReader(ctx context.Context, r io.Reader) (*Format, error) {
	if isNil(r) {
		return nil, handleError(s.cfg, nil, PhaseAdapter, -1, "cannot read stream", ErrNilReader)
	}
	src := NewStreamSource(ctx, r, s.cfg.MaxSniffSize())
	defer src.Close()
	return detect(ctx, s.cfg, src, inputTypeStream)
}

// DetectFile detects the format of the file at path. The file is opened for the
// duration of the detection and closed on every return path.
func (s *Sniffer) DetectFile(ctx context.Context, path string) (*Format, error) {

	// check if context is canceled
	if err := ctx.Err(); err != nil {
		return nil, handleError(s.cfg, nil, PhaseAdapter, -1, "context error", err)
	}

	src, err := OpenFileSource(path, s.cfg.MaxSniffSize())
	if err != nil {
		return nil, handleError(s.cfg, nil, PhaseAdapter, -1, "cannot open file source", err)
	}
	defer src.Close()
	return detect(ctx, s.cfg, src, inputTypeFile)
}

// DetectSource detects the format of an existing source. The source stays
// owned by the caller and is not closed.
func (s *Sniffer) DetectSource(ctx context.Context, src Source) (*Format, error) {
	if isNil(src) {
		return nil, handleError(s.cfg, nil, PhaseAdapter, -1, "cannot read source", ErrNilReader)
	}
	return detect(ctx, s.cfg, src, inputTypeSource)
}

// WrapReader detects the format of the stream r and returns a [DetectedStream]
// that yields every byte of r, including the bytes read for the detection, in
// the original order. The detected format is available before the first read.
//
// Read errors of r during the detection are returned from WrapReader.
func (s *Sniffer) WrapReader(ctx context.Context, r io.Reader) (*DetectedStream, error) {
	if isNil(r) {
		return nil, handleError(s.cfg, nil, PhaseAdapter, -1, "cannot read stream", ErrNilReader)
	}
	src := NewStreamSource(ctx, r, s.cfg.MaxSniffSize())
	f, err := detect(ctx, s.cfg, src, inputTypeStream)
	if err != nil {
		return nil, err
	}
	ds := newDetectedStream(r, src.Buffered(), f)
	src.Close()
	return ds, nil
}

// DetectBytes detects the format of b, see [Sniffer.DetectBytes].
func DetectBytes(ctx context.Context, b []byte, opts ...ConfigOption) (*Format, error) {
	return New(opts...).DetectBytes(ctx, b)
}

// DetectBlob detects the format of blob, see [Sniffer.DetectBlob].
func DetectBlob(ctx context.Context, blob Blob, opts ...ConfigOption) (*Format, error) {
	return New(opts...).DetectBlob(ctx, blob)
}

// DetectReader detects the format of the stream r, see [Sniffer.DetectReader].
func DetectReader(ctx context.Context, r io.Reader, opts ...ConfigOption) (*Format, error) {
	return New(opts...).DetectReader(ctx, r)
}

// DetectFile detects the format of the file at path, see [Sniffer.DetectFile].
func DetectFile(ctx context.Context, path string, opts ...ConfigOption) (*Format, error) {
	return New(opts...).DetectFile(ctx, path)
}

// DetectSource detects the format of src, see [Sniffer.DetectSource].
func DetectSource(ctx context.Context, src Source, opts ...ConfigOption) (*Format, error) {
	return New(opts...).DetectSource(ctx, src)
}

// WrapReader detects the format of r and returns a pass-through stream, see
// [Sniffer.WrapReader].
func WrapReader(ctx context.Context, r io.Reader, opts ...ConfigOption) (*DetectedStream, error) {
	return New(opts...).WrapReader(ctx, r)
}

// isNil reports whether v is nil or an interface holding a nil pointer, func,
// map, slice or channel.
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
