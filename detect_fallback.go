// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import (
	"context"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// mimetypeFallback is the media type tree root reported by mimetype when nothing
// matched, and the generic text type. Neither identifies a format.
var mimetypeFallback = []string{"application/octet-stream", "text/plain"}

// builtinByExtension maps the extensions of the built-in formats to their
// format, so the fallback detector reports the same media type as a built-in
// detector would.
var builtinByExtension = func() map[string]Format {
	m := make(map[string]Format, len(builtinFormats))
	for _, f := range builtinFormats {
		if _, ok := m[f.Extension]; !ok {
			m[f.Extension] = f
		}
	}
	return m
}()

// detectFallback hands the whole sniffing window to
// github.com/gabriel-vasile/mimetype. It runs after the built-in and the custom
// detectors. Results with the extension of a built-in format are reported as
// that format, e.g. text/xml is reported as application/xml.
func detectFallback(ctx context.Context, src Source) (*Format, error) {
	window, err := src.Peek(0, peekWindow)
	if err != nil || len(window) == 0 {
		return nil, err
	}

	mtype := mimetype.Detect(window)
	if mtype.Is(mimetypeFallback[0]) || mtype.Is(mimetypeFallback[1]) {
		return nil, nil
	}
	ext := strings.TrimPrefix(mtype.Extension(), ".")
	if ext == "" {
		return nil, nil
	}
	if f, ok := builtinByExtension[ext]; ok {
		return newFormat(f), nil
	}
	mediaType, _, _ := strings.Cut(mtype.String(), ";")
	return &Format{Extension: ext, MediaType: strings.TrimSpace(mediaType)}, nil
}
