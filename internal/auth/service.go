// Package auth implements account management: OTP-gated signup, login
// sessions, password reset, and Google OAuth.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ideagauge/ideagauge/internal/cache"
	"github.com/ideagauge/ideagauge/internal/mail"
	"github.com/ideagauge/ideagauge/internal/store"
	"github.com/ideagauge/ideagauge/pkg/models"
)

const bcryptCost = 12

// Service wires the user store, OTP manager, session manager, and mailer
// into the account flows.
type Service struct {
	store    store.Store
	otp      *OTPManager
	sessions *SessionManager
	mailer   mail.Mailer
}

func NewService(st store.Store, otp *OTPManager, sessions *SessionManager, mailer mail.Mailer) *Service {
	return &Service{
		store:    st,
		otp:      otp,
		sessions: sessions,
		mailer:   mailer,
	}
}

// Signup creates an unverified account and emails a signup OTP. The pending
// account moves to verified only through VerifyOTP.
func (s *Service) Signup(ctx context.Context, name, email, password string) error {
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return fmt.Errorf("%w: name, email and password are required", ErrInvalidCredentials)
	}
	if !strongPassword(password) {
		return ErrWeakPassword
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	hashStr := string(hash)

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: &hashStr,
		Provider:     models.ProviderEmail,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("creating user: %w", err)
	}

	code, err := s.otp.Issue(ctx, cache.OTPPurposeSignup, email)
	if err != nil {
		return err
	}
	if err := s.mailer.SendOTP(ctx, email, code); err != nil {
		return fmt.Errorf("sending otp: %w", err)
	}
	return nil
}

// VerifyOTP consumes a signup OTP and marks the account verified.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	if email == "" || code == "" {
		return ErrInvalidOTP
	}
	if err := s.otp.Verify(ctx, cache.OTPPurposeSignup, email, code); err != nil {
		return err
	}
	if err := s.store.MarkUserVerified(ctx, email); err != nil {
		return fmt.Errorf("marking verified: %w", err)
	}
	return nil
}

// Login checks credentials and mints a session token for verified accounts.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = normalizeEmail(email)
	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("looking up user: %w", err)
	}

	if user.PasswordHash == nil {
		return "", nil, ErrUseGoogleLogin
	}
	if !user.IsVerified {
		return "", nil, ErrNotVerified
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout destroys the session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// ResolveSession maps a session token to its user.
func (s *Service) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, fmt.Errorf("looking up session user: %w", err)
	}
	return user, nil
}

// ForgotPassword issues a reset OTP for a known account.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if _, err := s.store.GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound
		}
		return fmt.Errorf("looking up user: %w", err)
	}

	code, err := s.otp.Issue(ctx, cache.OTPPurposeReset, email)
	if err != nil {
		return err
	}
	if err := s.mailer.SendOTP(ctx, email, code); err != nil {
		return fmt.Errorf("sending otp: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset OTP and replaces the account password.
// Reusing the current password is rejected before the OTP is consumed so a
// correctable mistake does not burn the code.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)
	if email == "" || code == "" || newPassword == "" {
		return fmt.Errorf("%w: email, OTP and new password are required", ErrInvalidCredentials)
	}
	if !strongPassword(newPassword) {
		return ErrWeakPassword
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}

	if user.PasswordHash != nil &&
		bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(newPassword)) == nil {
		return ErrSamePassword
	}

	if err := s.otp.Verify(ctx, cache.OTPPurposeReset, email, code); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.store.UpdateUserPassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	slog.Info("password reset", "user_id", user.ID)
	return nil
}

// UpdateProfile updates name and/or avatar path; empty values keep the
// current ones.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, name, avatar string) (*models.User, error) {
	if err := s.store.UpdateUserProfile(ctx, userID, strings.TrimSpace(name), avatar); err != nil {
		return nil, err
	}
	return s.store.GetUserByID(ctx, userID)
}

// strongPassword requires 8+ chars with at least one lowercase, uppercase,
// digit, and special character.
func strongPassword(p string) bool {
	if len(p) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range p {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return lower && upper && digit && special
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
