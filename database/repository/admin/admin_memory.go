package adminRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ruma/database"
	"ruma/models"
)

// MemoryAdminRepo keeps admin accounts in process memory.
type MemoryAdminRepo struct {
	mu     sync.RWMutex
	admins map[string]models.Admin
}

func NewMemoryAdminRepo() *MemoryAdminRepo {
	return &MemoryAdminRepo{admins: make(map[string]models.Admin)}
}

func (r *MemoryAdminRepo) Create(_ context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.admins[admin.Username]; exists {
		return fmt.Errorf("admin %s: %w", admin.Username, database.ErrDuplicate)
	}
	admin.CreatedAt = time.Now()
	r.admins[admin.Username] = *admin
	return nil
}

func (r *MemoryAdminRepo) GetByUsername(_ context.Context, username string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	admin, ok := r.admins[username]
	if !ok {
		return nil, fmt.Errorf("admin %s: %w", username, database.ErrNotFound)
	}
	return &admin, nil
}

func (r *MemoryAdminRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.admins)), nil
}
