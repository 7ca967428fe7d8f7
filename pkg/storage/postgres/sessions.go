package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/behavior-points/pkg/models"
	"github.com/jackc/pgx/v5"
)

func (s *Store) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	var sess models.Session
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, secret_hash, expires_at, revoked FROM sessions WHERE id = $1
	`, sessionID).Scan(&sess.Id, &sess.UserId, &sess.SecretHash, &sess.ExpiresAt, &sess.Revoked)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &sess, nil
}

func (s *Store) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRow(ctx, `SELECT user_id, role FROM profiles WHERE user_id = $1`, userID).Scan(&p.UserId, &p.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}
