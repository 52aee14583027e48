package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideagauge/ideagauge/internal/auth"
	"github.com/ideagauge/ideagauge/internal/store"
)

const testPassword = "Sup3r$ecret"

type fixture struct {
	svc    *auth.Service
	store  *memStore
	mailer *captureMailer
}

func newFixture() *fixture {
	c := newMemCache()
	st := newMemStore()
	mailer := newCaptureMailer()
	svc := auth.NewService(st, auth.NewOTPManager(c), auth.NewSessionManager(c), mailer)
	return &fixture{svc: svc, store: st, mailer: mailer}
}

// signupVerified walks an account through signup and OTP verification.
func (f *fixture) signupVerified(t *testing.T, email string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.svc.Signup(ctx, "Test User", email, testPassword))
	require.NoError(t, f.svc.VerifyOTP(ctx, email, f.mailer.lastCode(email)))
}

// --- Signup ---

func TestSignupFlow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.Signup(ctx, "Test User", "a@example.com", testPassword))

	user, err := f.store.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, user.IsVerified)
	assert.NotNil(t, user.PasswordHash)
	assert.NotEqual(t, testPassword, *user.PasswordHash)

	code := f.mailer.lastCode("a@example.com")
	require.Len(t, code, 6)

	require.NoError(t, f.svc.VerifyOTP(ctx, "a@example.com", code))

	user, err = f.store.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.Signup(ctx, "First", "a@example.com", testPassword))
	assert.ErrorIs(t,
		f.svc.Signup(ctx, "Second", "a@example.com", testPassword),
		auth.ErrEmailTaken)
}

func TestSignupNormalizesEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.Signup(ctx, "Test", "  A@Example.COM ", testPassword))

	_, err := f.store.GetUserByEmail(ctx, "a@example.com")
	assert.NoError(t, err)
}

func TestSignupWeakPasswords(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	weak := []string{
		"short1$A",  // meets the rules, sanity-check below
		"alllowercase1$",
		"ALLUPPERCASE1$",
		"NoDigitsHere$",
		"NoSpecials123A",
		"Ab1$xyz", // 7 chars
	}

	assert.NoError(t, f.svc.Signup(ctx, "T", "ok@example.com", weak[0]))
	for _, p := range weak[1:] {
		assert.ErrorIs(t, f.svc.Signup(ctx, "T", "weak@example.com", p),
			auth.ErrWeakPassword, "password %q should be rejected", p)
	}
}

// --- VerifyOTP ---

func TestVerifyOTPWrongCode(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.Signup(ctx, "T", "a@example.com", testPassword))
	code := f.mailer.lastCode("a@example.com")
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	assert.ErrorIs(t, f.svc.VerifyOTP(ctx, "a@example.com", wrong), auth.ErrInvalidOTP)

	user, err := f.store.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, user.IsVerified)
}

// --- Login ---

func TestLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.signupVerified(t, "a@example.com")

	token, user, err := f.svc.Login(ctx, "a@example.com", testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "a@example.com", user.Email)

	resolved, err := f.svc.ResolveSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture()
	f.signupVerified(t, "a@example.com")

	_, _, err := f.svc.Login(context.Background(), "a@example.com", "Wr0ng$Pass")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newFixture()

	_, _, err := f.svc.Login(context.Background(), "nobody@example.com", testPassword)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnverified(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.svc.Signup(ctx, "T", "a@example.com", testPassword))

	_, _, err := f.svc.Login(ctx, "a@example.com", testPassword)
	assert.ErrorIs(t, err, auth.ErrNotVerified)
}

func TestLoginGoogleOnlyAccount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.store.CreateUser(ctx, googleUser("g@example.com")))

	_, _, err := f.svc.Login(ctx, "g@example.com", testPassword)
	assert.ErrorIs(t, err, auth.ErrUseGoogleLogin)
}

// --- Logout ---

func TestLogout(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.signupVerified(t, "a@example.com")

	token, _, err := f.svc.Login(ctx, "a@example.com", testPassword)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, token))

	_, err = f.svc.ResolveSession(ctx, token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

// --- Password reset ---

func TestForgotAndResetPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.signupVerified(t, "a@example.com")

	require.NoError(t, f.svc.ForgotPassword(ctx, "a@example.com"))
	code := f.mailer.lastCode("a@example.com")
	require.Len(t, code, 6)

	const newPassword = "N3w$ecret!"
	require.NoError(t, f.svc.ResetPassword(ctx, "a@example.com", code, newPassword))

	_, _, err := f.svc.Login(ctx, "a@example.com", testPassword)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, _, err = f.svc.Login(ctx, "a@example.com", newPassword)
	assert.NoError(t, err)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newFixture()

	err := f.svc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestResetPasswordSameAsCurrent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.signupVerified(t, "a@example.com")

	require.NoError(t, f.svc.ForgotPassword(ctx, "a@example.com"))
	code := f.mailer.lastCode("a@example.com")

	// Reusing the current password fails without consuming the OTP.
	assert.ErrorIs(t,
		f.svc.ResetPassword(ctx, "a@example.com", code, testPassword),
		auth.ErrSamePassword)

	// The code still works with a genuinely new password.
	assert.NoError(t,
		f.svc.ResetPassword(ctx, "a@example.com", code, "N3w$ecret!"))
}

func TestResetPasswordCodeSingleUse(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.signupVerified(t, "a@example.com")

	require.NoError(t, f.svc.ForgotPassword(ctx, "a@example.com"))
	code := f.mailer.lastCode("a@example.com")

	require.NoError(t, f.svc.ResetPassword(ctx, "a@example.com", code, "N3w$ecret!"))
	assert.ErrorIs(t,
		f.svc.ResetPassword(ctx, "a@example.com", code, "An0ther$one"),
		auth.ErrInvalidOTP)
}

// --- Profile ---

func TestUpdateProfile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.signupVerified(t, "a@example.com")

	user, err := f.store.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)

	updated, err := f.svc.UpdateProfile(ctx, user.ID, "New Name", "/uploads/avatar.png")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "/uploads/avatar.png", updated.Avatar)

	// Empty fields keep current values.
	updated, err = f.svc.UpdateProfile(ctx, user.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "/uploads/avatar.png", updated.Avatar)
}
