// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import (
	"compress/bzip2"
	"compress/gzip"
	"context"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

var (
	formatTarGZip   = Format{Extension: "tar.gz", MediaType: "application/x-compressed-tar"}
	formatTarBzip2  = Format{Extension: "tar.bz2", MediaType: "application/x-bzip-compressed-tar"}
	formatTarXz     = Format{Extension: "tar.xz", MediaType: "application/x-xz-compressed-tar"}
	formatTarZstd   = Format{Extension: "tar.zst", MediaType: "application/x-zstd-compressed-tar"}
	formatTarLZ4    = Format{Extension: "tar.lz4", MediaType: "application/x-lz4-compressed-tar"}
	formatTarSnappy = Format{Extension: "tar.sz", MediaType: "application/x-snappy-compressed-tar"}
	formatTarBrotli = Format{Extension: "tar.br", MediaType: "application/x-brotli-compressed-tar"}
)

// tarHeaderSize is the number of decompressed bytes needed to identify a tar
// archive.
const tarHeaderSize = 512

// decompressionFunc returns a reader that decompresses src.
type decompressionFunc func(src io.Reader) (io.Reader, error)

// compressedTar describes a compression format that may wrap a tar archive.
type compressedTar struct {
	format     Format
	magicBytes [][]byte
	decompress decompressionFunc
}

// compressedTars are checked in order by detectCompressedTar.
var compressedTars = []compressedTar{
	{format: formatTarGZip, magicBytes: magicBytesGZip, decompress: decompressGZipStream},
	{format: formatTarBzip2, magicBytes: magicBytesBzip2, decompress: decompressBzip2Stream},
	{format: formatTarXz, magicBytes: magicBytesXz, decompress: decompressXzStream},
	{format: formatTarZstd, magicBytes: magicBytesZstd, decompress: decompressZstdStream},
	{format: formatTarLZ4, magicBytes: magicBytesLZ4, decompress: decompressLZ4Stream},
	{format: formatTarSnappy, magicBytes: magicBytesSnappy, decompress: decompressSnappyStream},
}

// detectCompressedTar recognizes tar archives wrapped in a compression format
// with magic bytes. The sniffing window is decompressed just far enough to read
// the first tar header. Plain compressed files are left to detectSignature.
func detectCompressedTar(ctx context.Context, src Source) (*Format, error) {
	for _, ct := range compressedTars {
		ok, err := peekMagicBytes(src, 0, ct.magicBytes)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		// check if context is canceled before decompressing
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tar, err := decompressesToTar(src, ct.decompress)
		if err != nil || !tar {
			return nil, err
		}
		return newFormat(ct.format), nil
	}
	return nil, nil
}

// detectBrotliTar recognizes tar archives compressed with brotli. Brotli streams
// carry no magic bytes, so the window is test decompressed and only a valid tar
// header counts as a match.
func detectBrotliTar(ctx context.Context, src Source) (*Format, error) {
	head, err := src.Peek(0, 1)
	if err != nil || len(head) == 0 {
		return nil, err
	}
	tar, err := decompressesToTar(src, decompressBrotliStream)
	if err != nil || !tar {
		return nil, err
	}
	return newFormat(formatTarBrotli), nil
}

// decompressesToTar decompresses the beginning of src and checks for a tar
// header. Decoding errors mean "no tar"; read errors of src are returned.
func decompressesToTar(src Source, decFunc decompressionFunc) (bool, error) {
	sr := newSourceReader(src)
	decompressedStream, err := decFunc(sr)
	if err != nil {
		return false, sr.err
	}
	defer func() {
		if closer, ok := decompressedStream.(io.Closer); ok {
			closer.Close()
		}
	}()

	header := make([]byte, tarHeaderSize)
	n, _ := io.ReadFull(decompressedStream, header)
	if sr.err != nil {
		return false, sr.err
	}
	return isTar(header[:n]), nil
}

// decompressGZipStream returns an io.Reader that decompresses src with gzip algorithm.
func decompressGZipStream(src io.Reader) (io.Reader, error) {
	return gzip.NewReader(src)
}

// decompressBzip2Stream returns an io.Reader that decompresses src with bzip2 algorithm.
func decompressBzip2Stream(src io.Reader) (io.Reader, error) {
	return bzip2.NewReader(src), nil
}

// decompressXzStream returns an io.Reader that decompresses src with xz algorithm.
func decompressXzStream(src io.Reader) (io.Reader, error) {
	return xz.NewReader(src)
}

// zstdReadCloser adapts a zstd decoder to io.Closer, so the decoder goroutines
// are released after the header has been read.
type zstdReadCloser struct {
	*zstd.Decoder
}

// Close releases the decoder.
func (z *zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// decompressZstdStream returns an io.Reader that decompresses src with zstandard algorithm.
func decompressZstdStream(src io.Reader) (io.Reader, error) {
	d, err := zstd.NewReader(src, zstd.WithDecoderConcurrency(1), zstd.WithDecoderLowmem(true))
	if err != nil {
		return nil, err
	}
	return &zstdReadCloser{d}, nil
}

// decompressLZ4Stream returns an io.Reader that decompresses src with lz4 algorithm.
func decompressLZ4Stream(src io.Reader) (io.Reader, error) {
	return lz4.NewReader(src), nil
}

// decompressSnappyStream returns an io.Reader that decompresses src with snappy algorithm.
func decompressSnappyStream(src io.Reader) (io.Reader, error) {
	return snappy.NewReader(src), nil
}

// decompressBrotliStream returns an io.Reader that decompresses src with brotli algorithm.
func decompressBrotliStream(src io.Reader) (io.Reader, error) {
	return brotli.NewReader(src), nil
}
