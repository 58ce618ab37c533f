// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import (
	"context"
	"encoding/json"
	"time"
)

// TelemetryData holds all telemetry data of a detection.
type TelemetryData struct {
	// DetectedExtension is the extension of the detected format, empty if unknown
	DetectedExtension string `json:"detected_extension"`

	// DetectedMediaType is the media type of the detected format, empty if unknown
	DetectedMediaType string `json:"detected_media_type"`

	// DetectionDuration is the time it took to run the detectors
	DetectionDuration time.Duration `json:"detection_duration"`

	// DetectorIndex is the position of the matching detector, -1 if none matched
	DetectorIndex int `json:"detector_index"`

	// Detectors is the number of detectors consulted for the detection
	Detectors int `json:"detectors"`

	// InputType is the kind of input, e.g. buffer, blob, file or stream
	InputType string `json:"input_type"`

	// LastDetectionError is the error that ended the detection
	LastDetectionError error `json:"last_detection_error"`

	// SniffedBytes is the furthest offset the detectors looked at
	SniffedBytes int64 `json:"sniffed_bytes"`
}

// String returns a string representation of [TelemetryData].
func (m TelemetryData) String() string {
	b, _ := json.Marshal(m)
	return string(b)
}

// MarshalJSON implements the [encoding/json.Marshaler] interface.
func (m TelemetryData) MarshalJSON() ([]byte, error) {
	var lastError string
	if m.LastDetectionError != nil {
		lastError = m.LastDetectionError.Error()
	}

	type Alias TelemetryData
	return json.Marshal(&struct {
		LastDetectionError string `json:"last_detection_error"`
		*Alias
	}{
		LastDetectionError: lastError,
		Alias:              (*Alias)(&m),
	})
}

// TelemetryHook is a function type that performs operations on [TelemetryData]
// after a detection has finished which can be used to submit the [TelemetryData]
// to a telemetry service, for example.
type TelemetryHook func(context.Context, *TelemetryData)

// captureFormat records the detected format.
func captureFormat(td *TelemetryData, f *Format) {
	if f == nil {
		return
	}
	td.DetectedExtension = f.Extension
	td.DetectedMediaType = f.MediaType
}

// captureDetectionDuration records the time since start.
func captureDetectionDuration(td *TelemetryData, start time.Time) {
	td.DetectionDuration = time.Since(start)
}

// captureSniffedBytes records how far the detectors looked into src.
func captureSniffedBytes(td *TelemetryData, src Source) {
	td.SniffedBytes = src.Position()
}
