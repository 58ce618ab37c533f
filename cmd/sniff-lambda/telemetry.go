// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchevents"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchevents/types"
	sniff "github.com/hashicorp/go-sniff"
)

const (
	eventSource     = "go-sniff"
	eventDetailType = "Detection Finished"
)

//go:generate mockgen -source=telemetry.go -destination=mock_events_test.go -package=main

// eventsAPI is the subset of the CloudWatch Events client used to publish
// telemetry.
type eventsAPI interface {
	PutEvents(ctx context.Context, params *cloudwatchevents.PutEventsInput, optFns ...func(*cloudwatchevents.Options)) (*cloudwatchevents.PutEventsOutput, error)
}

// eventPublisher sends the telemetry data of every detection to an event bus.
type eventPublisher struct {
	client eventsAPI
	bus    string
	logger logger
}

// Publish is a [sniff.TelemetryHook]. Publishing failures are logged and never
// fail the detection.
func (p *eventPublisher) Publish(ctx context.Context, td *sniff.TelemetryData) {
	out, err := p.client.PutEvents(ctx, &cloudwatchevents.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{{
			EventBusName: aws.String(p.bus),
			Source:       aws.String(eventSource),
			DetailType:   aws.String(eventDetailType),
			Detail:       aws.String(td.String()),
		}},
	})
	if err != nil {
		p.logger.Error("cannot publish telemetry", "bus", p.bus, "error", err)
		return
	}
	for _, entry := range out.Entries {
		if entry.ErrorCode != nil {
			p.logger.Error("telemetry event rejected", "bus", p.bus, "code", aws.ToString(entry.ErrorCode), "message", aws.ToString(entry.ErrorMessage))
		}
	}
}
