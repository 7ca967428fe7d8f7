package storage

import (
	"context"

	"github.com/chris/behavior-points/pkg/models"
)

// NotificationSink stores delivered award notifications.
type NotificationSink interface {
	// SaveNotification stores n keyed by its id. It returns false when the id was already stored.
	SaveNotification(ctx context.Context, n *models.Notification) (bool, error)
}
