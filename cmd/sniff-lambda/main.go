// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchevents"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sniff "github.com/hashicorp/go-sniff"
	"github.com/hashicorp/go-sniff/s3blob"
)

// envEventBus names the event bus that receives telemetry data, telemetry is
// not published if it is unset
const envEventBus = "SNIFF_EVENT_BUS"

// main starts the Lambda function that sniffs objects from S3 event notifications
func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{}))

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Error("cannot load aws config", "error", err)
		os.Exit(1)
	}
	client := s3.NewFromConfig(awsCfg)

	opts := []sniff.ConfigOption{sniff.WithLogger(logger)}
	if bus := os.Getenv(envEventBus); bus != "" {
		publisher := &eventPublisher{client: cloudwatchevents.NewFromConfig(awsCfg), bus: bus, logger: logger}
		opts = append(opts, sniff.WithTelemetryHook(publisher.Publish))
	}

	open := func(ctx context.Context, bucket, key string) (sniff.Blob, error) {
		return s3blob.Open(ctx, client, bucket, key)
	}
	lambda.Start(newHandler(sniff.New(opts...), open, logger).Handle)
}
