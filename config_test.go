package sniff_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	sniff "github.com/hashicorp/go-sniff"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := sniff.NewConfig()

	if got := cfg.MaxSniffSize(); got != 65536 {
		t.Errorf("MaxSniffSize() = %d, want 65536", got)
	}
	if !cfg.FallbackDetection() {
		t.Errorf("FallbackDetection() = false, want true")
	}
	if len(cfg.CustomDetectors()) != 0 {
		t.Errorf("CustomDetectors() = %v, want none", cfg.CustomDetectors())
	}
	if cfg.Logger() == nil {
		t.Errorf("Logger() = nil, want default logger")
	}
	if cfg.TelemetryHook() == nil {
		t.Errorf("TelemetryHook() = nil, want default hook")
	}
}

func TestZeroConfig(t *testing.T) {
	// accessors return defaults for values that were never set
	cfg := &sniff.Config{}

	if got := cfg.MaxSniffSize(); got != 65536 {
		t.Errorf("MaxSniffSize() = %d, want 65536", got)
	}
	if cfg.Logger() == nil {
		t.Errorf("Logger() = nil, want default logger")
	}
	if cfg.TelemetryHook() == nil {
		t.Errorf("TelemetryHook() = nil, want default hook")
	}
}

func TestWithMaxSniffSize(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  int64
	}{
		{name: "custom size", input: 1024, want: 1024},
		{name: "zero selects default", input: 0, want: 65536},
		{name: "negative selects default", input: -1, want: 65536},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := sniff.NewConfig(sniff.WithMaxSniffSize(tc.input))
			if got := cfg.MaxSniffSize(); got != tc.want {
				t.Errorf("MaxSniffSize() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestWithFallbackDetection(t *testing.T) {
	tests := []struct {
		name string
		cfg  *sniff.Config
		want bool
	}{
		{
			name: "fallback enabled",
			cfg:  sniff.NewConfig(sniff.WithFallbackDetection(true)),
			want: true,
		},
		{
			name: "fallback disabled",
			cfg:  sniff.NewConfig(sniff.WithFallbackDetection(false)),
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.FallbackDetection(); got != tc.want {
				t.Errorf("FallbackDetection() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFallbackDetection(t *testing.T) {
	input := []byte(`{"name": "sniff", "version": 1}`)
	ctx := context.Background()

	f, err := sniff.DetectBytes(ctx, input)
	if err != nil {
		t.Fatalf("DetectBytes() error = %v", err)
	}
	want := &sniff.Format{Extension: "json", MediaType: "application/json"}
	if !equalFormat(f, want) {
		t.Errorf("DetectBytes() = %v, want %v", f, want)
	}

	f, err = sniff.DetectBytes(ctx, input, sniff.WithFallbackDetection(false))
	if err != nil {
		t.Fatalf("DetectBytes() error = %v", err)
	}
	if f != nil {
		t.Errorf("DetectBytes() without fallback = %v, want nil", f)
	}
}

func TestWithCustomDetectors(t *testing.T) {
	a, b, c := &namedDetector{name: "a"}, &namedDetector{name: "b"}, &namedDetector{name: "c"}

	detectors := []sniff.Detector{a, b}
	cfg := sniff.NewConfig(sniff.WithCustomDetectors(detectors...), sniff.WithCustomDetectors(c))

	got := cfg.CustomDetectors()
	want := []sniff.Detector{a, b, c}
	if len(got) != len(want) {
		t.Fatalf("CustomDetectors() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CustomDetectors()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// the configuration keeps its own copies
	detectors[0] = c
	got[1] = c
	if cfg.CustomDetectors()[0] != a || cfg.CustomDetectors()[1] != b {
		t.Errorf("CustomDetectors() changed through a caller owned slice")
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := sniff.DetectBytes(context.Background(), []byte("BM"), sniff.WithLogger(logger))
	if err != nil {
		t.Fatalf("DetectBytes() error = %v", err)
	}
	if !strings.Contains(buf.String(), "format detected") {
		t.Errorf("log output %q does not contain the detection", buf.String())
	}
}

func TestWithTelemetryHook(t *testing.T) {
	var td *sniff.TelemetryData
	hook := func(ctx context.Context, d *sniff.TelemetryData) {
		td = d
	}

	_, err := sniff.DetectBytes(context.Background(), []byte("BM\x00\x00"), sniff.WithTelemetryHook(hook))
	if err != nil {
		t.Fatalf("DetectBytes() error = %v", err)
	}
	if td == nil {
		t.Fatalf("telemetry hook not called")
	}

	builtins := len(sniff.MergeDetectors())
	if td.DetectedExtension != "bmp" || td.DetectedMediaType != "image/bmp" {
		t.Errorf("detected format = %s %s, want bmp image/bmp", td.DetectedExtension, td.DetectedMediaType)
	}
	if td.InputType != "buffer" {
		t.Errorf("InputType = %q, want %q", td.InputType, "buffer")
	}
	if td.Detectors != builtins+1 {
		t.Errorf("Detectors = %d, want %d", td.Detectors, builtins+1)
	}
	if td.DetectorIndex < 0 || td.DetectorIndex >= builtins {
		t.Errorf("DetectorIndex = %d, want a built-in detector", td.DetectorIndex)
	}
	if td.SniffedBytes != 4 {
		t.Errorf("SniffedBytes = %d, want 4", td.SniffedBytes)
	}
	if td.LastDetectionError != nil {
		t.Errorf("LastDetectionError = %v, want nil", td.LastDetectionError)
	}
}

func TestTelemetryHookOnError(t *testing.T) {
	var td *sniff.TelemetryData
	hook := func(ctx context.Context, d *sniff.TelemetryData) {
		td = d
	}
	faulty := sniff.DetectorFunc(func(ctx context.Context, src sniff.Source) (*sniff.Format, error) {
		return nil, context.DeadlineExceeded
	})

	_, err := sniff.DetectBytes(context.Background(), []byte{0x01}, sniff.WithTelemetryHook(hook), sniff.WithCustomDetectors(faulty))
	if err == nil {
		t.Fatalf("DetectBytes() succeeded, want error")
	}
	if td == nil || td.LastDetectionError == nil {
		t.Fatalf("telemetry data without error: %v", td)
	}
	if td.DetectorIndex != -1 {
		t.Errorf("DetectorIndex = %d, want -1", td.DetectorIndex)
	}
}
