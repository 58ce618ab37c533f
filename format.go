// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import (
	"fmt"
	"sort"
)

// Format identifies a recognized file format by its canonical file extension
// (without a leading dot) and its media type.
//
// A nil *Format returned by a [Detector] or a detection function means the
// content was not recognized.
type Format struct {
	// Extension is the canonical file extension, e.g. "pdf".
	Extension string `json:"extension"`

	// MediaType is the IANA media type, e.g. "application/pdf".
	MediaType string `json:"media_type"`
}

// String returns a human readable representation of the format.
func (f Format) String() string {
	return fmt.Sprintf("%s (%s)", f.Extension, f.MediaType)
}

// newFormat returns a pointer to a fresh copy of f, so callers can never alter
// the values held in the built-in format tables.
func newFormat(f Format) *Format {
	return &f
}

// builtinFormats lists every format the built-in detectors can report. The
// generic fallback detector is not part of this list, because its result set
// is defined by github.com/gabriel-vasile/mimetype.
var builtinFormats = []Format{
	formatXML, formatSVG, formatSMIL, formatRSS, formatAtom, formatKML, formatGPX,
	formatXHTML, formatX3D, formatDAE, formatMusicXML,
	formatPDF, formatAI,
	formatCFB, formatPUB, formatDOC, formatXLS, formatPPT, formatMSG, formatMSI,
	formatBMP, formatPNG, formatGIF, formatJPG, formatWEBP, formatTIF, formatICO,
	formatZIP, format7z, formatRAR, formatTAR, formatGZip, formatBzip2, formatXz,
	formatZstd, formatLZ4, formatSnappy,
	formatTarGZip, formatTarBzip2, formatTarXz, formatTarZstd, formatTarLZ4,
	formatTarSnappy, formatTarBrotli,
}

// SupportedExtensions returns the sorted, de-duplicated list of extensions the
// built-in detectors can report.
func SupportedExtensions() []string {
	return uniqueSorted(func(f Format) string { return f.Extension })
}

// SupportedMediaTypes returns the sorted, de-duplicated list of media types the
// built-in detectors can report.
func SupportedMediaTypes() []string {
	return uniqueSorted(func(f Format) string { return f.MediaType })
}

func uniqueSorted(field func(Format) string) []string {
	seen := make(map[string]struct{}, len(builtinFormats))
	out := make([]string, 0, len(builtinFormats))
	for _, f := range builtinFormats {
		v := field(f)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
