// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"strings"
)

var (
	formatXML      = Format{Extension: "xml", MediaType: "application/xml"}
	formatSVG      = Format{Extension: "svg", MediaType: "image/svg+xml"}
	formatSMIL     = Format{Extension: "smil", MediaType: "application/smil+xml"}
	formatRSS      = Format{Extension: "rss", MediaType: "application/rss+xml"}
	formatAtom     = Format{Extension: "atom", MediaType: "application/atom+xml"}
	formatKML      = Format{Extension: "kml", MediaType: "application/vnd.google-earth.kml+xml"}
	formatGPX      = Format{Extension: "gpx", MediaType: "application/gpx+xml"}
	formatXHTML    = Format{Extension: "xhtml", MediaType: "application/xhtml+xml"}
	formatX3D      = Format{Extension: "x3d", MediaType: "model/x3d+xml"}
	formatDAE      = Format{Extension: "dae", MediaType: "model/vnd.collada+xml"}
	formatMusicXML = Format{Extension: "musicxml", MediaType: "application/vnd.recordare.musicxml+xml"}
)

const (
	// xmlScanSize is the number of bytes handed to the XML tokenizer while
	// looking for the root element.
	xmlScanSize = 16384

	namespaceAtom  = "http://www.w3.org/2005/Atom"
	namespaceXHTML = "http://www.w3.org/1999/xhtml"
)

// xmlRoot maps a root element to a format. An empty namespace matches any
// namespace.
type xmlRoot struct {
	local     string
	namespace string
	format    Format
}

// xmlRoots is checked in order against the (case-insensitive) local name of
// the root element.
var xmlRoots = []xmlRoot{
	{local: "svg", format: formatSVG},
	{local: "smil", format: formatSMIL},
	{local: "rss", format: formatRSS},
	{local: "feed", namespace: namespaceAtom, format: formatAtom},
	{local: "kml", format: formatKML},
	{local: "gpx", format: formatGPX},
	{local: "html", namespace: namespaceXHTML, format: formatXHTML},
	{local: "x3d", format: formatX3D},
	{local: "collada", format: formatDAE},
	{local: "score-partwise", format: formatMusicXML},
	{local: "score-timewise", format: formatMusicXML},
}

var (
	bomUTF8        = []byte{0xEF, 0xBB, 0xBF}
	xmlDeclaration = []byte("<?xml")
)

// detectXML recognizes XML documents. Documents with an XML declaration are
// reported as generic XML unless the root element identifies a more specific
// format. Documents without a declaration are only reported when the root
// element is recognized. A byte order mark and whitespace may precede the
// declaration or the root element.
func detectXML(ctx context.Context, src Source) (*Format, error) {
	head, err := src.Peek(0, len(bomUTF8)+1)
	if err != nil {
		return nil, err
	}
	head = bytes.TrimPrefix(head, bomUTF8)
	if len(head) == 0 || head[0] != '<' && !isXMLSpace(head[0]) {
		return nil, nil
	}

	sample, err := src.Peek(0, xmlScanSize)
	if err != nil {
		return nil, err
	}
	sample = bytes.TrimLeft(bytes.TrimPrefix(sample, bomUTF8), " \t\r\n")
	declared := bytes.HasPrefix(sample, xmlDeclaration)
	if !declared && (len(sample) < 2 || sample[0] != '<' || !isXMLNameStart(sample[1])) {
		return nil, nil
	}

	root, ok := xmlRootElement(sample)
	if ok {
		for _, r := range xmlRoots {
			if !strings.EqualFold(root.Local, r.local) {
				continue
			}
			if r.namespace != "" && root.Space != r.namespace {
				continue
			}
			return newFormat(r.format), nil
		}
	}

	if declared {
		return newFormat(formatXML), nil
	}
	return nil, nil
}

// xmlRootElement returns the name of the first element in sample. The sample may
// be truncated; only the tokens up to the root start tag need to be complete.
func xmlRootElement(sample []byte) (xml.Name, bool) {
	d := xml.NewDecoder(bytes.NewReader(sample))
	d.Strict = false
	d.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		// element names of the supported formats are plain ASCII
		return input, nil
	}
	for {
		tok, err := d.RawToken()
		if err != nil {
			return xml.Name{}, false
		}
		if se, ok := tok.(xml.StartElement); ok {
			name := se.Name
			if name.Space == "" {
				name.Space = xmlDefaultNamespace(se)
			} else {
				// resolve prefixed root element, e.g. <atom:feed>
				name.Space = xmlPrefixNamespace(se, name.Space)
			}
			return name, true
		}
	}
}

// xmlDefaultNamespace returns the value of the xmlns attribute of se.
func xmlDefaultNamespace(se xml.StartElement) string {
	for _, a := range se.Attr {
		if a.Name.Space == "" && a.Name.Local == "xmlns" {
			return a.Value
		}
	}
	return ""
}

// xmlPrefixNamespace returns the namespace bound to prefix on se, or prefix
// itself if the binding is declared elsewhere.
func xmlPrefixNamespace(se xml.StartElement, prefix string) string {
	for _, a := range se.Attr {
		if a.Name.Space == "xmlns" && a.Name.Local == prefix {
			return a.Value
		}
	}
	return prefix
}

func isXMLSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isXMLNameStart(b byte) bool {
	return b == '_' || b == ':' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
