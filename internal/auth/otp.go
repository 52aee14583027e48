package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/ideagauge/ideagauge/internal/cache"
)

// OTPTTL is the validity window of an issued code.
const OTPTTL = 10 * time.Minute

// OTPManager issues and verifies single-use codes. Codes live in an
// externally-owned key-value store with per-key expiry, so they survive
// process restarts and are shared across instances.
type OTPManager struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewOTPManager(c cache.Cache) *OTPManager {
	return &OTPManager{cache: c, ttl: OTPTTL}
}

// Issue generates a 6-digit code for (purpose, email) and stores it under a
// fresh key, replacing any previous unconsumed code for the same pair.
func (m *OTPManager) Issue(ctx context.Context, purpose, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generating otp: %w", err)
	}
	if err := m.cache.Set(ctx, cache.OTPKey(purpose, email), []byte(code), m.ttl); err != nil {
		return "", fmt.Errorf("storing otp: %w", err)
	}
	return code, nil
}

// Verify consumes the stored code for (purpose, email). The read is an
// atomic get-and-delete: a correct code verifies exactly once, and a second
// attempt with the same code fails even inside the expiry window. A wrong
// code also consumes the stored one, forcing a re-issue.
func (m *OTPManager) Verify(ctx context.Context, purpose, email, code string) error {
	stored, found, err := m.cache.GetDel(ctx, cache.OTPKey(purpose, email))
	if err != nil {
		return fmt.Errorf("reading otp: %w", err)
	}
	if !found {
		return ErrInvalidOTP
	}
	if subtle.ConstantTimeCompare(stored, []byte(code)) != 1 {
		return ErrInvalidOTP
	}
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
