package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/noah-isme/hostel-desk-api/internal/models"
	appErrors "github.com/noah-isme/hostel-desk-api/pkg/errors"
	"github.com/noah-isme/hostel-desk-api/pkg/genai"
)

type generatorFunc func(ctx context.Context, req genai.Request) (string, error)

func (f generatorFunc) Generate(ctx context.Context, req genai.Request) (string, error) {
	return f(ctx, req)
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
	sets  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = raw
	m.sets++
	return nil
}

type stubUsers struct {
	users map[string]models.User
}

func newStubUsers(users ...models.User) *stubUsers {
	s := &stubUsers{users: map[string]models.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return &u, nil
}

type recordingRefresher struct {
	mu       sync.Mutex
	versions []uint64
	sizes    []int
}

func (r *recordingRefresher) Refresh(version uint64, complaints []models.Complaint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.versions = append(r.versions, version)
	r.sizes = append(r.sizes, len(complaints))
}

func strPtr(s string) *string { return &s }
