package sniff_test

import (
	"fmt"
	"testing"
	"time"

	sniff "github.com/hashicorp/go-sniff"
)

// TestDataString tests the String method of the data struct
func TestDataString(t *testing.T) {
	m := sniff.TelemetryData{
		DetectedExtension:  "pdf",
		DetectedMediaType:  "application/pdf",
		DetectionDuration:  time.Duration(5 * time.Millisecond),
		DetectorIndex:      1,
		Detectors:          7,
		InputType:          "buffer",
		LastDetectionError: fmt.Errorf("example error"),
		SniffedBytes:       1024,
	}

	expected := `{"last_detection_error":"example error","detected_extension":"pdf","detected_media_type":"application/pdf","detection_duration":5000000,"detector_index":1,"detectors":7,"input_type":"buffer","sniffed_bytes":1024}`
	if m.String() != expected {
		t.Errorf("Expected '%s', but got '%s'", expected, m.String())
	}
}

// TestDataStringWithoutError tests the String method without an error
func TestDataStringWithoutError(t *testing.T) {
	m := sniff.TelemetryData{DetectorIndex: -1, InputType: "stream"}

	expected := `{"last_detection_error":"","detected_extension":"","detected_media_type":"","detection_duration":0,"detector_index":-1,"detectors":0,"input_type":"stream","sniffed_bytes":0}`
	if m.String() != expected {
		t.Errorf("Expected '%s', but got '%s'", expected, m.String())
	}
}
