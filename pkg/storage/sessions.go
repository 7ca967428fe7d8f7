package storage

import (
	"context"

	"github.com/chris/behavior-points/pkg/models"
)

// SessionStore is the trusted identity source used by the privilege gateway.
type SessionStore interface {
	// GetSession returns the session, or models.ErrNotFound.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// GetProfile returns the user's role record, or models.ErrNotFound.
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}
