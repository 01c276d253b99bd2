package repository

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/hostel-desk-api/internal/models"
	appErrors "github.com/noah-isme/hostel-desk-api/pkg/errors"
)

// ComplaintRepository is the in-memory owner of the complaint collection.
// It is the only writer of complaint state: it assigns ids and stamps
// timestamps. Items are kept newest first.
type ComplaintRepository struct {
	mu      sync.RWMutex
	items   []models.Complaint
	seq     int
	version uint64
	now     func() time.Time
}

// ComplaintRepositoryOption customises the repository.
type ComplaintRepositoryOption func(*ComplaintRepository)

// WithComplaintClock overrides the timestamp source.
func WithComplaintClock(now func() time.Time) ComplaintRepositoryOption {
	return func(r *ComplaintRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// NewComplaintRepository builds a store holding seed in the given order.
// The id sequence starts after the highest c<n> id in seed.
func NewComplaintRepository(seed []models.Complaint, opts ...ComplaintRepositoryOption) *ComplaintRepository {
	r := &ComplaintRepository{
		items: make([]models.Complaint, 0, len(seed)),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, c := range seed {
		r.items = append(r.items, cloneComplaint(c))
		if n, ok := sequenceOf(c.ID); ok && n > r.seq {
			r.seq = n
		}
	}
	return r
}

func sequenceOf(id string) (int, bool) {
	if !strings.HasPrefix(id, "c") {
		return 0, false
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Lodge stores a new complaint at the head of the collection. The id and
// both timestamps are assigned here; status defaults to PENDING and
// priority to MEDIUM when left empty.
func (r *ComplaintRepository) Lodge(ctx context.Context, c models.Complaint) (*models.Complaint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	now := r.now().UTC()
	c.ID = "c" + strconv.Itoa(r.seq)
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = models.ComplaintPending
	}
	if c.Priority == "" {
		c.Priority = models.PriorityMedium
	}

	r.items = append([]models.Complaint{cloneComplaint(c)}, r.items...)
	r.version++

	stored := cloneComplaint(c)
	return &stored, nil
}

// AdvanceStatus replaces the status of id and refreshes UpdatedAt so that
// it is strictly after the previous value. The transition itself is not
// checked here.
func (r *ComplaintRepository) AdvanceStatus(ctx context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error) {
	return r.advance(ctx, id, nil, status)
}

// CompareAndAdvance is AdvanceStatus guarded by the expected current status.
// It fails with ErrInvalidTransition if another writer moved the complaint
// first.
func (r *ComplaintRepository) CompareAndAdvance(ctx context.Context, id string, from, to models.ComplaintStatus) (*models.Complaint, error) {
	return r.advance(ctx, id, &from, to)
}

func (r *ComplaintRepository) advance(ctx context.Context, id string, expect *models.ComplaintStatus, status models.ComplaintStatus) (*models.Complaint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "complaint not found")
	}

	current := &r.items[idx]
	if expect != nil && current.Status != *expect {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "complaint is now "+string(current.Status))
	}
	updated := r.now().UTC()
	if !updated.After(current.UpdatedAt) {
		updated = current.UpdatedAt.Add(time.Millisecond)
	}
	current.Status = status
	current.UpdatedAt = updated
	r.version++

	out := cloneComplaint(*current)
	return &out, nil
}

// Get returns a copy of the complaint with id.
func (r *ComplaintRepository) Get(ctx context.Context, id string) (*models.Complaint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "complaint not found")
	}
	out := cloneComplaint(r.items[idx])
	return &out, nil
}

// All returns a newest-first copy of the collection.
func (r *ComplaintRepository) All(ctx context.Context) ([]models.Complaint, error) {
	items, _, err := r.Snapshot(ctx)
	return items, err
}

// Snapshot returns the collection together with the version it reflects.
func (r *ComplaintRepository) Snapshot(ctx context.Context) ([]models.Complaint, uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Complaint, len(r.items))
	for i, c := range r.items {
		out[i] = cloneComplaint(c)
	}
	return out, r.version, nil
}

// Version counts successful mutations since start-up.
func (r *ComplaintRepository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

func (r *ComplaintRepository) indexOf(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneComplaint(c models.Complaint) models.Complaint {
	if c.Feedback != nil {
		c.Feedback = strPtr(*c.Feedback)
	}
	if c.Rating != nil {
		c.Rating = intPtr(*c.Rating)
	}
	return c
}
