// Package notify carries award notifications from the awarder to the notification sink.
// Publishing only enqueues an event; delivery happens in the notification consumer.
package notify

import (
	"context"
	"fmt"

	"github.com/chris/behavior-points/pkg/models"
	"github.com/chris/behavior-points/pkg/storage"
	log "github.com/sirupsen/logrus"
)

// Publisher emits award notification events.
type Publisher interface {
	Publish(ctx context.Context, n models.Notification) error
}

// LogPublisher logs events instead of sending them anywhere.
type LogPublisher struct{}

// Make sure we conform to the interface
var _ Publisher = (*LogPublisher)(nil)

// Publish logs the event.
func (p *LogPublisher) Publish(_ context.Context, n models.Notification) error {
	log.WithFields(log.Fields{
		"event_id":   n.Id,
		"subject_id": n.SubjectId,
		"kind":       n.Kind,
		"item_id":    n.ItemId,
	}).Info(n.Message)
	return nil
}

// Deliver decodes a queue message and stores it in the sink. Redelivered events are
// ignored, so it reports stored=false without error for a duplicate.
func Deliver(ctx context.Context, sink storage.NotificationSink, body []byte) (bool, error) {
	n, err := Decode(body)
	if err != nil {
		return false, err
	}
	stored, err := sink.SaveNotification(ctx, n)
	if err != nil {
		return false, fmt.Errorf("failed to save notification %s: %w", n.Id, err)
	}
	return stored, nil
}
