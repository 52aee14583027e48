package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ideagauge/ideagauge/internal/cache"
	"github.com/ideagauge/ideagauge/internal/store"
	"github.com/ideagauge/ideagauge/pkg/models"
)

// memCache is an in-memory cache.Cache with TTL support for tests.
type memCache struct {
	mu      sync.Mutex
	entries map[string]memEntry
	counts  map[string]int64
}

type memEntry struct {
	value     []byte
	expiresAt time.Time
}

func newMemCache() *memCache {
	return &memCache{
		entries: map[string]memEntry{},
		counts:  map[string]int64{},
	}
}

func (c *memCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *memCache) GetDel(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	delete(c.entries, key)
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memCache) Ping(context.Context) error { return nil }

func (c *memCache) IncrWithExpiry(_ context.Context, key string, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}

var _ cache.Cache = (*memCache)(nil)

// memStore is an in-memory store.Store for tests.
type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemStore() *memStore {
	return &memStore{users: map[uuid.UUID]*models.User{}}
}

func (m *memStore) Ping(context.Context) error { return nil }

func (m *memStore) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return store.ErrDuplicateKey
		}
	}
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memStore) MarkUserVerified(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u.IsVerified = true
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memStore) UpdateUserPassword(_ context.Context, id uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.PasswordHash = &hash
	return nil
}

func (m *memStore) UpdateUserProfile(_ context.Context, id uuid.UUID, name, avatar string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return store.ErrNotFound
	}
	if name != "" {
		u.Name = name
	}
	if avatar != "" {
		u.Avatar = avatar
	}
	return nil
}

func (m *memStore) CreateFeasibilityResult(context.Context, *models.FeasibilityResult) error {
	return nil
}

func (m *memStore) GetFeasibilityResult(context.Context, uuid.UUID) (*models.FeasibilityResult, error) {
	return nil, store.ErrNotFound
}

var _ store.Store = (*memStore)(nil)

// googleUser builds a verified Google-provider user with no password hash.
func googleUser(email string) *models.User {
	now := time.Now().UTC()
	return &models.User{
		ID:         uuid.New(),
		Name:       "Google User",
		Email:      email,
		Provider:   models.ProviderGoogle,
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// captureMailer records sent OTPs instead of talking to an SMTP server.
type captureMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func newCaptureMailer() *captureMailer {
	return &captureMailer{codes: map[string]string{}}
}

func (m *captureMailer) SendOTP(_ context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[to] = code
	return nil
}

func (m *captureMailer) lastCode(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[to]
}
