package repository

import (
	"context"
	"sync"

	"github.com/noah-isme/hostel-desk-api/internal/models"
	appErrors "github.com/noah-isme/hostel-desk-api/pkg/errors"
)

// UserRepository keeps the demo accounts in memory. Only the active role
// of a user is mutable.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
	order []string
}

// NewUserRepository builds the repository from seed.
func NewUserRepository(seed []models.User) *UserRepository {
	r := &UserRepository{users: make(map[string]models.User, len(seed))}
	for _, u := range seed {
		if _, exists := r.users[u.ID]; !exists {
			r.order = append(r.order, u.ID)
		}
		r.users[u.ID] = u
	}
	return r
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return &user, nil
}

// List returns every user in seed order.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id])
	}
	return out, nil
}

// UpdateRole sets the active role and returns the previous one.
func (r *UserRepository) UpdateRole(ctx context.Context, id string, role models.UserRole) (models.UserRole, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return "", appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	previous := user.Role
	user.Role = role
	r.users[id] = user
	return previous, nil
}
