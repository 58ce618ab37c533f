// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import "context"

var (
	formatBMP    = Format{Extension: "bmp", MediaType: "image/bmp"}
	formatPNG    = Format{Extension: "png", MediaType: "image/png"}
	formatGIF    = Format{Extension: "gif", MediaType: "image/gif"}
	formatJPG    = Format{Extension: "jpg", MediaType: "image/jpeg"}
	formatWEBP   = Format{Extension: "webp", MediaType: "image/webp"}
	formatTIF    = Format{Extension: "tif", MediaType: "image/tiff"}
	formatICO    = Format{Extension: "ico", MediaType: "image/x-icon"}
	formatZIP    = Format{Extension: "zip", MediaType: "application/zip"}
	format7z     = Format{Extension: "7z", MediaType: "application/x-7z-compressed"}
	formatRAR    = Format{Extension: "rar", MediaType: "application/x-rar-compressed"}
	formatTAR    = Format{Extension: "tar", MediaType: "application/x-tar"}
	formatGZip   = Format{Extension: "gz", MediaType: "application/gzip"}
	formatBzip2  = Format{Extension: "bz2", MediaType: "application/x-bzip2"}
	formatXz     = Format{Extension: "xz", MediaType: "application/x-xz"}
	formatZstd   = Format{Extension: "zst", MediaType: "application/zstd"}
	formatLZ4    = Format{Extension: "lz4", MediaType: "application/x-lz4"}
	formatSnappy = Format{Extension: "sz", MediaType: "application/x-snappy-framed"}
)

// offsetTar is the offset where the magic bytes are located in a tar header.
const offsetTar = 257

var (
	// magicBytesTar are the magic bytes for tar files
	magicBytesTar = [][]byte{
		[]byte("ustar\x00tar\x00"),
		[]byte("ustar\x00"),
		[]byte("ustar  \x00"),
	}

	// magicBytesGZip are the magic bytes for gzip compressed files.
	magicBytesGZip = [][]byte{
		{0x1f, 0x8b},
	}

	// magicBytesBzip2 are the magic bytes for bzip2 compressed files
	// reference: https://github.com/dsnet/compress/blob/master/doc/bzip2-format.pdf
	magicBytesBzip2 = [][]byte{
		[]byte("BZh1"),
		[]byte("BZh2"),
		[]byte("BZh3"),
		[]byte("BZh4"),
		[]byte("BZh5"),
		[]byte("BZh6"),
		[]byte("BZh7"),
		[]byte("BZh8"),
		[]byte("BZh9"),
	}

	// magicBytesXz is the magic bytes for xz files.
	// reference https://tukaani.org/xz/xz-file-format-1.0.4.txt
	magicBytesXz = [][]byte{
		{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00},
	}

	// magicBytesZstd is the magic bytes for zstandard files.
	// reference: https://www.rfc-editor.org/rfc/rfc8878.html
	magicBytesZstd = [][]byte{
		{0x28, 0xb5, 0x2f, 0xfd},
	}

	// magicBytesLZ4 is the magic bytes for LZ4 files.
	// reference https://android.googlesource.com/platform/external/lz4/+/HEAD/doc/lz4_Frame_format.md
	magicBytesLZ4 = [][]byte{
		{0x04, 0x22, 0x4D, 0x18},
	}

	// magicBytesSnappy is the magic bytes for framed snappy files.
	magicBytesSnappy = [][]byte{
		append([]byte{0xff, 0x06, 0x00, 0x00}, []byte("sNaPpY")...),
	}
)

// signature describes a format that is identified by magic bytes alone.
type signature struct {
	format     Format
	magicBytes [][]byte
	offset     int

	// next optionally requires a second set of magic bytes
	next       [][]byte
	nextOffset int
}

// signatures are checked in order. Short signatures come first, so that
// common formats are recognized with as little lookahead as possible.
var signatures = []signature{
	{format: formatBMP, magicBytes: [][]byte{[]byte("BM")}},
	{format: formatGZip, magicBytes: magicBytesGZip},
	{format: formatJPG, magicBytes: [][]byte{{0xFF, 0xD8, 0xFF}}},
	{format: formatZIP, magicBytes: [][]byte{
		{0x50, 0x4B, 0x03, 0x04},
		{0x50, 0x4B, 0x05, 0x06},
		{0x50, 0x4B, 0x07, 0x08},
	}},
	{format: formatTIF, magicBytes: [][]byte{
		{0x49, 0x49, 0x2A, 0x00},
		{0x4D, 0x4D, 0x00, 0x2A},
	}},
	{format: formatICO, magicBytes: [][]byte{{0x00, 0x00, 0x01, 0x00}}},
	{format: formatBzip2, magicBytes: magicBytesBzip2},
	{format: formatZstd, magicBytes: magicBytesZstd},
	{format: formatLZ4, magicBytes: magicBytesLZ4},
	{format: formatGIF, magicBytes: [][]byte{[]byte("GIF87a"), []byte("GIF89a")}},
	{format: format7z, magicBytes: [][]byte{{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}}},
	{format: formatXz, magicBytes: magicBytesXz},
	{format: formatRAR, magicBytes: [][]byte{
		{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x00},       // Rar 1.5
		{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x01, 0x00}, // Rar 5.0
	}},
	{format: formatPNG, magicBytes: [][]byte{{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}}},
	{format: formatWEBP, magicBytes: [][]byte{[]byte("RIFF")}, next: [][]byte{[]byte("WEBP")}, nextOffset: 8},
	{format: formatSnappy, magicBytes: magicBytesSnappy},
	{format: formatTAR, magicBytes: magicBytesTar, offset: offsetTar},
}

// detectSignature recognizes formats by their magic bytes.
func detectSignature(ctx context.Context, src Source) (*Format, error) {
	for _, s := range signatures {
		ok, err := peekMagicBytes(src, s.offset, s.magicBytes)
		if err != nil {
			return nil, err
		}
		if ok && s.next != nil {
			ok, err = peekMagicBytes(src, s.nextOffset, s.next)
			if err != nil {
				return nil, err
			}
		}
		if ok {
			return newFormat(s.format), nil
		}
	}
	return nil, nil
}

// isTar checks if the header matches the magic bytes for tar files
func isTar(header []byte) bool {
	return matchesMagicBytes(header, offsetTar, magicBytesTar)
}
