// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import (
	"bytes"
	"context"
)

var (
	formatPDF = Format{Extension: "pdf", MediaType: "application/pdf"}
	formatAI  = Format{Extension: "ai", MediaType: "application/illustrator"}
)

// magicBytesPDF are the magic bytes for PDF documents.
var magicBytesPDF = [][]byte{
	[]byte("%PDF"),
}

// markerIllustrator is written by Adobe Illustrator into the PDF compatible
// files it saves.
var markerIllustrator = []byte("AIPrivateData")

// detectPDF recognizes PDF documents and refines them to Illustrator files if
// the Illustrator private data marker shows up within the sniffing window.
func detectPDF(ctx context.Context, src Source) (*Format, error) {
	ok, err := peekMagicBytes(src, 0, magicBytesPDF)
	if err != nil || !ok {
		return nil, err
	}

	// check if context is canceled before scanning the window
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	window, err := src.Peek(0, peekWindow)
	if err != nil {
		return nil, err
	}
	if bytes.Contains(window, markerIllustrator) {
		return newFormat(formatAI), nil
	}
	return newFormat(formatPDF), nil
}
