package postgres

import (
	"context"
	"fmt"

	"github.com/chris/behavior-points/pkg/models"
)

// SaveNotification stores a delivered notification once per event id.
func (s *Store) SaveNotification(ctx context.Context, n *models.Notification) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO notifications (id, subject_id, kind, item_id, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, n.Id, n.SubjectId, n.Kind, n.ItemId, n.Message, n.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert notification: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
