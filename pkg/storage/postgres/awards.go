package postgres

import (
	"context"
	"fmt"

	"github.com/chris/behavior-points/pkg/models"
)

// ListCatalog returns every medal and badge definition.
func (s *Store) ListCatalog(ctx context.Context) ([]models.CatalogItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, kind, name, description, min_points, max_points
		FROM catalog_items ORDER BY min_points, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var items []models.CatalogItem
	for rows.Next() {
		var item models.CatalogItem
		if err := rows.Scan(&item.Id, &item.Kind, &item.Name, &item.Description, &item.MinPoints, &item.MaxPoints); err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return items, nil
}

// InsertAward records an award. The unique (subject_id, catalog_item_id) constraint makes a
// duplicate a no-op, reported as inserted=false.
func (s *Store) InsertAward(ctx context.Context, a *models.AwardRecord) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO user_awards (id, subject_id, catalog_item_id, kind, awarded_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (subject_id, catalog_item_id) DO NOTHING
	`, a.Id, a.SubjectId, a.CatalogItemId, a.Kind, a.AwardedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert award: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListAwards returns a subject's awards, newest first.
func (s *Store) ListAwards(ctx context.Context, subjectID string) ([]models.AwardRecord, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, subject_id, catalog_item_id, kind, awarded_at
		FROM user_awards WHERE subject_id = $1
		ORDER BY awarded_at DESC, catalog_item_id
	`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query awards: %w", err)
	}
	defer rows.Close()

	var awards []models.AwardRecord
	for rows.Next() {
		var a models.AwardRecord
		if err := rows.Scan(&a.Id, &a.SubjectId, &a.CatalogItemId, &a.Kind, &a.AwardedAt); err != nil {
			return nil, fmt.Errorf("failed to scan award: %w", err)
		}
		awards = append(awards, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read awards: %w", err)
	}
	return awards, nil
}
