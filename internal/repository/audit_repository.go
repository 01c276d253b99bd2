package repository

import (
	"context"
	"sync"

	"github.com/noah-isme/hostel-desk-api/internal/models"
)

// AuditRepository is an append-only in-memory audit trail.
type AuditRepository struct {
	mu      sync.RWMutex
	entries []models.AuditLog
}

// NewAuditRepository constructs an empty trail.
func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

// Create appends an entry.
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.entries = append(r.entries, *entry)
	r.mu.Unlock()
	return nil
}

// List returns entries for action, newest first. An empty action returns all.
func (r *AuditRepository) List(ctx context.Context, action string) ([]models.AuditLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.AuditLog, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		if action == "" || r.entries[i].Action == action {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}
