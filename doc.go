// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

// Package sniff identifies the format of a byte input (buffer, blob, file or
// stream) by inspecting its leading bytes and returns a [Format], i.e. the
// canonical file extension and media type.
//
// Detection runs an ordered list of [Detector] values against a [Source], a
// non-destructive lookahead over the sniffing window of the input. The built-in
// detectors always come first; custom detectors configured with
// [WithCustomDetectors] are appended after them and can never override them.
// Streams can be sniffed without losing data with [WrapReader], which replays
// the bytes read for the detection before the rest of the stream.
//
// Configuration is done using the [Config], which is a configuration struct
// that can be used to set custom detectors, the logger, the telemetry hook and
// the size of the sniffing window. Telemetry data of each detection is passed
// to the [TelemetryHook].
package sniff
