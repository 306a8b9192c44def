package adminRepo

import (
	"context"

	"ruma/models"
)

// AdminRepository defines methods for admin account access.
type AdminRepository interface {
	// Create inserts an admin; a taken username yields database.ErrDuplicate.
	Create(ctx context.Context, admin *models.Admin) error
	// GetByUsername returns database.ErrNotFound for unknown usernames.
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	// Count returns the number of admin accounts.
	Count(ctx context.Context) (int64, error)
}
