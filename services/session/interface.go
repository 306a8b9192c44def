package session

import (
	"context"

	"ruma/models"
)

// Store persists one conversation session per LINE user. Get never returns a
// nil session without an error: an absent or expired entry yields a fresh
// idle session for userID.
type Store interface {
	Get(ctx context.Context, userID string) (*models.Session, error)
	Put(ctx context.Context, userID string, s *models.Session) error
	Delete(ctx context.Context, userID string) error
}
