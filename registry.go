// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

// builtinDetectors is the fixed, ordered set of built-in detectors. It is never
// modified after initialization and never handed out, see [MergeDetectors].
//
// The order matters: markup can be embedded in other containers, and the
// compressed tar detector must see gzip and friends before the plain signature
// table claims them. Brotli has no magic bytes and is tried last.
var builtinDetectors = []Detector{
	DetectorFunc(detectXML),
	DetectorFunc(detectPDF),
	DetectorFunc(detectCFBF),
	DetectorFunc(detectCompressedTar),
	DetectorFunc(detectSignature),
	DetectorFunc(detectBrotliTar),
}

// fallbackDetector runs after all built-in and custom detectors if enabled.
var fallbackDetector Detector = DetectorFunc(detectFallback)

// MergeDetectors returns a new slice holding the built-in detectors followed by
// custom in the given order. Custom detectors can add formats or resolve inputs
// the built-in detectors leave unrecognized, they can never take precedence
// over a built-in detector. Nil detectors, including nil funcs and nil pointers
// stored in the interface, are dropped. The returned slice is owned by the
// caller.
func MergeDetectors(custom ...Detector) []Detector {
	merged := make([]Detector, 0, len(builtinDetectors)+len(custom))
	merged = append(merged, builtinDetectors...)
	for _, d := range custom {
		if isNil(d) {
			continue
		}
		merged = append(merged, d)
	}
	return merged
}
