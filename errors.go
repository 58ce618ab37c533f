// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import (
	"errors"
	"fmt"
)

// Phase names the stage of a detection in which an error occurred.
type Phase string

const (
	// PhaseAdapter covers turning the input into a [Source], e.g. opening a file.
	PhaseAdapter Phase = "adapter"

	// PhaseDetection covers running the detectors, including the reads they
	// trigger on the input.
	PhaseDetection Phase = "detection"

	// PhaseReplay covers reading a [DetectedStream] after the detection.
	PhaseReplay Phase = "replay"
)

var (
	// ErrNilReader is returned if a nil reader, blob or source is passed in.
	ErrNilReader = errors.New("input is nil")
)

// Error is returned by all detection functions. It records the phase and, for
// failures in the detection phase, the position of the failing detector.
type Error struct {
	// Phase is the stage that failed.
	Phase Phase

	// Detector is the position of the failing detector in the detector list,
	// or -1 if the failure is not tied to a detector.
	Detector int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detector >= 0 {
		return fmt.Sprintf("%s: detector %d: %s", e.Phase, e.Detector, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// handleError logs the error, records it in the telemetry data and returns it
// wrapped with the phase and detector position.
func handleError(c *Config, td *TelemetryData, phase Phase, detector int, msg string, err error) error {
	wrapped := &Error{Phase: phase, Detector: detector, Err: fmt.Errorf("%s: %w", msg, err)}
	c.Logger().Error(msg, "phase", phase, "detector", detector, "error", err)
	if td != nil {
		td.LastDetectionError = wrapped
	}
	return wrapped
}
