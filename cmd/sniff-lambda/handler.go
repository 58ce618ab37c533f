// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	sniff "github.com/hashicorp/go-sniff"
)

// blobOpener returns the object stored under bucket and key.
type blobOpener func(ctx context.Context, bucket, key string) (sniff.Blob, error)

// ObjectFormat is the detected format of one S3 object.
type ObjectFormat struct {
	Bucket    string `json:"bucket"`
	Key       string `json:"key"`
	Extension string `json:"extension,omitempty"`
	MediaType string `json:"media_type,omitempty"`
}

// Response is returned to the Lambda runtime.
type Response struct {
	Objects []ObjectFormat `json:"objects"`
}

// handler sniffs every object referenced by an S3 event notification.
type handler struct {
	sniffer *sniff.Sniffer
	open    blobOpener
	logger  logger
}

// logger is the subset of *slog.Logger used by the handler
type logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

func newHandler(sniffer *sniff.Sniffer, open blobOpener, logger logger) *handler {
	return &handler{sniffer: sniffer, open: open, logger: logger}
}

// Handle detects the format of all objects in the event. The first failing
// object ends the invocation, so the runtime can retry the event.
func (h *handler) Handle(ctx context.Context, event events.S3Event) (Response, error) {
	resp := Response{Objects: make([]ObjectFormat, 0, len(event.Records))}
	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			return resp, fmt.Errorf("cannot decode key %q: %w", record.S3.Object.Key, err)
		}

		blob, err := h.open(ctx, bucket, key)
		if err != nil {
			h.logger.Error("cannot open object", "bucket", bucket, "key", key, "error", err)
			return resp, err
		}

		f, err := h.sniffer.DetectBlob(ctx, blob)
		if err != nil {
			h.logger.Error("cannot sniff object", "bucket", bucket, "key", key, "error", err)
			return resp, err
		}

		of := ObjectFormat{Bucket: bucket, Key: key}
		if f != nil {
			of.Extension = f.Extension
			of.MediaType = f.MediaType
		}
		h.logger.Info("object sniffed", "bucket", bucket, "key", key, "extension", of.Extension, "mediaType", of.MediaType)
		resp.Objects = append(resp.Objects, of)
	}
	return resp, nil
}
