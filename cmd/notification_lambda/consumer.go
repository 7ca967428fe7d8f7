package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/behavior-points/pkg/notify"
	"github.com/chris/behavior-points/pkg/storage"
	log "github.com/sirupsen/logrus"
)

// Consumer writes award notifications from the queue into the notification sink.
type Consumer struct {
	Sink storage.NotificationSink
}

// NewConsumer creates a Consumer.
func NewConsumer(sink storage.NotificationSink) *Consumer {
	return &Consumer{Sink: sink}
}

// HandleRequest delivers each record. Failed records are reported individually so SQS
// only redelivers those.
func (c *Consumer) HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, message := range sqsEvent.Records {
		entry := log.WithField("message_id", message.MessageId)

		stored, err := notify.Deliver(ctx, c.Sink, []byte(message.Body))
		if err != nil {
			entry.WithError(err).Error("failed to deliver notification")
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
			continue
		}
		if !stored {
			entry.Debug("duplicate notification ignored")
			continue
		}
		entry.Info("notification delivered")
	}
	return resp, nil
}
