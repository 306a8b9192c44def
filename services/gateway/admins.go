package gateway

import (
	"context"
	"errors"
	"fmt"

	"ruma/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (g *DefaultGateway) hashCost() int {
	if g.HashCost == 0 {
		return bcrypt.DefaultCost
	}
	return g.HashCost
}

// InsertAdmin stores a new admin with a bcrypt hash of password.
func (g *DefaultGateway) InsertAdmin(ctx context.Context, username, password, email string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), g.hashCost())
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &models.Admin{Username: username, PasswordHash: string(hash), Email: email}
	if err := g.Admins.Create(ctx, admin); err != nil {
		g.logger().Error("InsertAdmin: failed", zap.String("username", username), zap.Error(err))
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (g *DefaultGateway) Authenticate(ctx context.Context, username, password string) (*models.Admin, error) {
	admin, err := g.Admins.GetByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate admin: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// EnsureAdmin creates the given admin only when no admin exists yet, and
// reports whether it did.
func (g *DefaultGateway) EnsureAdmin(ctx context.Context, username, password, email string) (bool, error) {
	n, err := g.Admins.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := g.InsertAdmin(ctx, username, password, email); err != nil {
		return false, err
	}
	return true, nil
}
