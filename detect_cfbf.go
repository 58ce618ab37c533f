// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"strings"
)

var (
	formatCFB = Format{Extension: "cfb", MediaType: "application/x-cfb"}
	formatPUB = Format{Extension: "pub", MediaType: "application/x-mspublisher"}
	formatDOC = Format{Extension: "doc", MediaType: "application/msword"}
	formatXLS = Format{Extension: "xls", MediaType: "application/vnd.ms-excel"}
	formatPPT = Format{Extension: "ppt", MediaType: "application/vnd.ms-powerpoint"}
	formatMSG = Format{Extension: "msg", MediaType: "application/vnd.ms-outlook"}
	formatMSI = Format{Extension: "msi", MediaType: "application/x-msi"}
)

// magicBytesCFBF are the magic bytes of the Compound File Binary Format.
//
// reference: https://learn.microsoft.com/en-us/openspecs/windows_protocols/ms-cfb/
var magicBytesCFBF = [][]byte{
	{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1},
}

// layout of the compound file header and directory entries
const (
	cfbfHeaderSize        = 512
	cfbfByteOrderOffset   = 28
	cfbfSectorShiftOffset = 30
	cfbfFirstDirOffset    = 48
	cfbfEntrySize         = 128
	cfbfEntryTypeOffset   = 66
	cfbfEntryCLSIDOffset  = 80
	cfbfRootStorage       = 5
	cfbfMaxRegularSector  = 0xFFFFFFFA
)

// cfbfApplications maps the CLSID of the root storage to the application format.
// The keys are in the on-disk byte order, see init.
var cfbfApplications = map[[16]byte]Format{}

func init() {
	for guid, f := range map[string]Format{
		"00021201-0000-0000-C000-000000000046": formatPUB, // Publisher
		"00020906-0000-0000-C000-000000000046": formatDOC, // Word 97-2003
		"00020900-0000-0000-C000-000000000046": formatDOC, // Word 6.0-7.0
		"00020820-0000-0000-C000-000000000046": formatXLS, // Excel 97-2003
		"00020810-0000-0000-C000-000000000046": formatXLS, // Excel 5.0/95
		"64818D10-4F9B-11CF-86EA-00AA00B929E8": formatPPT, // PowerPoint 97-2003
		"00020D0B-0000-0000-C000-000000000046": formatMSG, // Outlook message
		"000C1084-0000-0000-C000-000000000046": formatMSI, // Windows Installer
		"000C1086-0000-0000-C000-000000000046": formatMSI, // Windows Installer patch
	} {
		cfbfApplications[clsid(guid)] = f
	}
}

// clsid converts a textual GUID into the mixed endian layout used on disk.
func clsid(guid string) [16]byte {
	var id [16]byte
	raw, err := hex.DecodeString(strings.ReplaceAll(guid, "-", ""))
	if err != nil || len(raw) != len(id) {
		panic("invalid clsid: " + guid)
	}
	copy(id[:], raw)
	reverse := func(b []byte) {
		for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
			b[i], b[j] = b[j], b[i]
		}
	}
	reverse(id[0:4])
	reverse(id[4:6])
	reverse(id[6:8])
	return id
}

// detectCFBF recognizes compound binary files and identifies the application
// that wrote them by the CLSID of the root storage. Files whose directory lies
// beyond the sniffing window, or whose CLSID is unknown, are reported as
// generic compound files.
func detectCFBF(ctx context.Context, src Source) (*Format, error) {
	ok, err := peekMagicBytes(src, 0, magicBytesCFBF)
	if err != nil || !ok {
		return nil, err
	}

	header, err := src.Peek(0, cfbfHeaderSize)
	if err != nil {
		return nil, err
	}
	if len(header) < cfbfFirstDirOffset+4 {
		return newFormat(formatCFB), nil
	}

	// only little endian files exist in the wild
	if header[cfbfByteOrderOffset] != 0xFE || header[cfbfByteOrderOffset+1] != 0xFF {
		return newFormat(formatCFB), nil
	}

	shift := binary.LittleEndian.Uint16(header[cfbfSectorShiftOffset:])
	if shift != 9 && shift != 12 {
		return newFormat(formatCFB), nil
	}
	sectorSize := int64(1) << shift

	dirSector := binary.LittleEndian.Uint32(header[cfbfFirstDirOffset:])
	if dirSector > cfbfMaxRegularSector {
		return newFormat(formatCFB), nil
	}

	// check if context is canceled before following the directory
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// sector n starts after the header, which occupies one sector
	entry, err := src.Peek((int64(dirSector)+1)*sectorSize, cfbfEntrySize)
	if err != nil {
		return nil, err
	}
	if len(entry) < cfbfEntrySize || entry[cfbfEntryTypeOffset] != cfbfRootStorage {
		return newFormat(formatCFB), nil
	}

	var id [16]byte
	copy(id[:], entry[cfbfEntryCLSIDOffset:cfbfEntryCLSIDOffset+16])
	if f, ok := cfbfApplications[id]; ok {
		return newFormat(f), nil
	}
	return newFormat(formatCFB), nil
}
