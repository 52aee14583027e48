package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ideagauge/ideagauge/internal/cache"
)

// SessionTTL is how long a login session stays valid.
const SessionTTL = 7 * 24 * time.Hour

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "ideagauge_session"

// SessionManager maps opaque tokens to user ids in Redis.
type SessionManager struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewSessionManager(c cache.Cache) *SessionManager {
	return &SessionManager{cache: c, ttl: SessionTTL}
}

// Create mints a random 256-bit token for userID.
func (m *SessionManager) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := m.cache.Set(ctx, cache.SessionKey(token), []byte(userID.String()), m.ttl); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return token, nil
}

// Resolve returns the user id a token belongs to, or ErrInvalidSession.
func (m *SessionManager) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrInvalidSession
	}
	val, found, err := m.cache.Get(ctx, cache.SessionKey(token))
	if err != nil {
		return uuid.Nil, fmt.Errorf("reading session: %w", err)
	}
	if !found {
		return uuid.Nil, ErrInvalidSession
	}
	id, err := uuid.Parse(string(val))
	if err != nil {
		return uuid.Nil, ErrInvalidSession
	}
	return id, nil
}

// Destroy removes a session token. Destroying a token that is already gone
// is not an error.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.cache.Delete(ctx, cache.SessionKey(token))
}
