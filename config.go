// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sniff

import (
	"context"
	"io"
	"log/slog"
)

// logger is an interface that defines the logging functions
// that are used during detection. It is satisfied by [*slog.Logger].
type logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ConfigOption is a function pointer to implement the option pattern
type ConfigOption func(*Config)

// Config provides a configuration struct and options to adjust the configuration.
//
// The configuration struct holds all configuration options for a detection.
// The configuration options can be adjusted using the option pattern style.
type Config struct {
	// customDetectors are consulted after the built-in detectors, in order
	customDetectors []Detector

	// fallbackDetection enables the generic content sniffer after all other detectors
	fallbackDetection bool

	// logger stream for detection
	logger logger

	// maxSniffSize is the size of the sniffing window
	maxSniffSize int64

	// telemetryHook is a function to consume telemetry data after a finished detection
	telemetryHook TelemetryHook
}

// CustomDetectors returns a copy of the configured custom detectors.
func (c *Config) CustomDetectors() []Detector {
	return append([]Detector(nil), c.customDetectors...)
}

// FallbackDetection returns true if the generic content sniffer runs after the
// built-in and custom detectors.
func (c *Config) FallbackDetection() bool {
	return c.fallbackDetection
}

// Logger returns the logger.
func (c *Config) Logger() logger {
	if c.logger == nil {
		return defaultLogger
	}
	return c.logger
}

// MaxSniffSize returns the size of the sniffing window in bytes.
func (c *Config) MaxSniffSize() int64 {
	if c.maxSniffSize <= 0 {
		return defaultMaxSniffSize
	}
	return c.maxSniffSize
}

// TelemetryHook returns the telemetry hook.
func (c *Config) TelemetryHook() TelemetryHook {
	if c.telemetryHook == nil {
		return defaultTelemetryHook
	}
	return c.telemetryHook
}

// detectors returns the detector list for a single detection: the built-in
// detectors, the custom detectors and, if enabled, the fallback detector.
func (c *Config) detectors() []Detector {
	detectors := MergeDetectors(c.customDetectors...)
	if c.fallbackDetection {
		detectors = append(detectors, fallbackDetector)
	}
	return detectors
}

const (
	defaultFallbackDetection = true // sniff generic content after all detectors
)

var (
	// slog to discard
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	// no operation telemetry hook
	defaultTelemetryHook = func(ctx context.Context, d *TelemetryData) {
		// noop
	}
)

// NewConfig is a generator option that takes opts as adjustments of the
// default configuration in an option pattern style.
func NewConfig(opts ...ConfigOption) *Config {

	// setup default values
	config := &Config{
		fallbackDetection: defaultFallbackDetection,
		logger:            defaultLogger,
		maxSniffSize:      defaultMaxSniffSize,
		telemetryHook:     defaultTelemetryHook,
	}

	// Loop through each option
	for _, opt := range opts {
		opt(config)
	}

	return config
}

// WithCustomDetectors options pattern function to add detectors, which are
// consulted after the built-in detectors in the given order. The option can be
// used multiple times; detectors accumulate.
func WithCustomDetectors(detectors ...Detector) ConfigOption {
	return func(c *Config) {
		merged := make([]Detector, 0, len(c.customDetectors)+len(detectors))
		merged = append(merged, c.customDetectors...)
		c.customDetectors = append(merged, detectors...)
	}
}

// WithFallbackDetection options pattern function to enable/disable the generic
// content sniffer, which runs after the built-in and custom detectors.
func WithFallbackDetection(enable bool) ConfigOption {
	return func(c *Config) {
		c.fallbackDetection = enable
	}
}

// WithLogger options pattern function to set a custom logger.
func WithLogger(logger logger) ConfigOption {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithMaxSniffSize options pattern function to set the size of the sniffing
// window. Values <= 0 select the default of 64 KiB.
func WithMaxSniffSize(maxSniffSize int64) ConfigOption {
	return func(c *Config) {
		c.maxSniffSize = maxSniffSize
	}
}

// WithTelemetryHook options pattern function to set a [TelemetryHook], which is
// called after every detection.
func WithTelemetryHook(hook TelemetryHook) ConfigOption {
	return func(c *Config) {
		c.telemetryHook = hook
	}
}
