// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import (
	"context"
	"time"
)

// input types reported in [TelemetryData]
const (
	inputTypeBlob   = "blob"
	inputTypeBuffer = "buffer"
	inputTypeFile   = "file"
	inputTypeSource = "source"
	inputTypeStream = "stream"
)

// now is a function point that returns time.Now to the caller.
var now = time.Now

// detect runs the detectors configured in cfg against src, one after another,
// and returns the result of the first detector that recognizes the content.
// It returns (nil, nil) if no detector matched. The context is checked before
// every detector; a failing detector ends the detection.
func detect(ctx context.Context, cfg *Config, src Source, inputType string) (*Format, error) {

	// prepare telemetry capturing
	td := &TelemetryData{InputType: inputType, DetectorIndex: -1}
	defer cfg.TelemetryHook()(ctx, td)
	defer captureSniffedBytes(td, src)
	defer captureDetectionDuration(td, now())

	detectors := cfg.detectors()
	td.Detectors = len(detectors)

	for i, d := range detectors {

		// check if context is canceled
		if err := ctx.Err(); err != nil {
			return nil, handleError(cfg, td, PhaseDetection, -1, "context error", err)
		}

		f, err := d.Detect(ctx, src)
		if err != nil {
			return nil, handleError(cfg, td, PhaseDetection, i, "detector failed", err)
		}
		if f == nil {
			continue
		}

		td.DetectorIndex = i
		captureFormat(td, f)
		cfg.Logger().Debug("format detected", "input", inputType, "detector", i, "extension", f.Extension, "mediaType", f.MediaType)
		return f, nil
	}

	cfg.Logger().Debug("format unknown", "input", inputType, "detectors", len(detectors))
	return nil, nil
}
