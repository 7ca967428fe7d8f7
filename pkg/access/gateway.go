// Package access resolves the data path a caller may use for an operation.
//
// Roles come from the trusted profiles store, keyed by the session's user id.
// Nothing in the request is trusted beyond the session token itself.
package access

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chris/behavior-points/pkg/models"
	"github.com/chris/behavior-points/pkg/storage"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Identity is an authenticated caller.
type Identity struct {
	UserID string
	Role   models.Role
}

// Gateway authenticates session tokens and issues capabilities.
type Gateway struct {
	Sessions storage.SessionStore
	Now      func() time.Time
}

// NewGateway creates a Gateway backed by a session store.
func NewGateway(sessions storage.SessionStore) *Gateway {
	return &Gateway{Sessions: sessions, Now: time.Now}
}

// ParseToken splits a bearer token of the form <session_id>.<secret>.
func ParseToken(token string) (sessionID, secret string, err error) {
	sessionID, secret, ok := strings.Cut(token, ".")
	if !ok || sessionID == "" || secret == "" {
		return "", "", models.ErrUnauthenticated
	}
	return sessionID, secret, nil
}

// HashSecret returns the bcrypt hash stored for a session secret.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash session secret: %w", err)
	}
	return string(hash), nil
}

// Authenticate resolves a session token to an identity.
func (g *Gateway) Authenticate(ctx context.Context, token string) (Identity, error) {
	sessionID, secret, err := ParseToken(token)
	if err != nil {
		return Identity{}, err
	}

	session, err := g.Sessions.GetSession(ctx, sessionID)
	if errors.Is(err, models.ErrNotFound) {
		return Identity{}, models.ErrUnauthenticated
	}
	if err != nil {
		return Identity{}, fmt.Errorf("failed to load session: %w", err)
	}
	if session.Revoked || !g.Now().Before(session.ExpiresAt) {
		return Identity{}, models.ErrUnauthenticated
	}
	if bcrypt.CompareHashAndPassword([]byte(session.SecretHash), []byte(secret)) != nil {
		return Identity{}, models.ErrUnauthenticated
	}

	profile, err := g.Sessions.GetProfile(ctx, session.UserId)
	if errors.Is(err, models.ErrNotFound) {
		return Identity{}, fmt.Errorf("%w: no profile for user %s", models.ErrUnauthenticated, session.UserId)
	}
	if err != nil {
		return Identity{}, fmt.Errorf("failed to load profile: %w", err)
	}

	return Identity{UserID: session.UserId, Role: profile.Role}, nil
}

// Authorize authenticates token and decides the tier for op on target.
func (g *Gateway) Authorize(ctx context.Context, token string, op Operation, target string) (Capability, error) {
	id, err := g.Authenticate(ctx, token)
	if err != nil {
		return Capability{}, err
	}
	return Grant(id, op, target)
}

// Grant applies the policy for op to an authenticated identity.
func Grant(id Identity, op Operation, target string) (Capability, error) {
	policy, ok := Policies[op]
	if !ok {
		return Capability{}, fmt.Errorf("%w: unknown operation %s", models.ErrForbidden, op)
	}

	capability := Capability{
		tier:      Restricted,
		actorID:   id.UserID,
		role:      id.Role,
		subject:   id.UserID,
		operation: op,
		mutating:  policy.Mutating,
	}

	if policy.Public {
		return capability, nil
	}

	if policy.Elevates(id.Role) {
		capability.tier = Elevated
		capability.subject = target
		log.WithFields(log.Fields{
			"actor_id":  id.UserID,
			"role":      id.Role,
			"operation": op,
			"subject":   target,
			"tier":      Elevated,
		}).Info("elevated access granted")
		return capability, nil
	}

	if target == id.UserID {
		if policy.Mutating && !policy.SelfService {
			return Capability{}, fmt.Errorf("%w: %s on own subject", models.ErrForbidden, op)
		}
		return capability, nil
	}

	if policy.Mutating {
		return Capability{}, fmt.Errorf("%w: %s on subject %s", models.ErrForbidden, op, target)
	}

	capability.degraded = true
	log.WithFields(log.Fields{
		"actor_id":  id.UserID,
		"role":      id.Role,
		"operation": op,
		"requested": target,
	}).Debug("read degraded to own subject")
	return capability, nil
}
