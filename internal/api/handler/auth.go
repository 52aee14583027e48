package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ideagauge/ideagauge/internal/api/response"
	"github.com/ideagauge/ideagauge/internal/auth"
	"github.com/ideagauge/ideagauge/internal/store"
	"github.com/ideagauge/ideagauge/pkg/models"
)

const oauthStateCookie = "ideagauge_oauth_state"

// AuthService defines the account operations the auth handlers depend on.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) error
	VerifyOTP(ctx context.Context, email, code string) error
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// GoogleFlow defines the OAuth operations the Google handlers depend on.
type GoogleFlow interface {
	AuthURL(state string) string
	HandleCallback(ctx context.Context, code string) (string, *models.User, error)
}

func setSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// NewSignupHandler returns an http.HandlerFunc for POST /api/v1/auth/signup.
func NewSignupHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Name == "" || req.Email == "" || req.Password == "" {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR",
				"name, email, and password are required", nil)
			return
		}

		if err := svc.Signup(r.Context(), req.Name, req.Email, req.Password); err != nil {
			switch {
			case errors.Is(err, auth.ErrWeakPassword):
				response.Error(w, http.StatusBadRequest, "WEAK_PASSWORD",
					"Password must be at least 8 characters with upper, lower, digit, and special characters", nil)
			case errors.Is(err, auth.ErrEmailTaken):
				response.Error(w, http.StatusConflict, "EMAIL_TAKEN",
					"An account with that email already exists", nil)
			default:
				response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
					"An unexpected error occurred", nil)
			}
			return
		}

		response.Created(w, map[string]string{
			"message": "Verification code sent to your email",
		})
	}
}

// NewVerifyOTPHandler returns an http.HandlerFunc for POST /api/v1/auth/verify-otp.
func NewVerifyOTPHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
			Code  string `json:"code"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if err := svc.VerifyOTP(r.Context(), req.Email, req.Code); err != nil {
			if errors.Is(err, auth.ErrInvalidOTP) {
				response.Error(w, http.StatusUnauthorized, "INVALID_OTP",
					"The code is invalid or has expired", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.JSON(w, map[string]string{"message": "Email verified"})
	}
}

// NewLoginHandler returns an http.HandlerFunc for POST /api/v1/auth/login.
func NewLoginHandler(svc AuthService, secureCookies bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		token, user, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidCredentials):
				response.Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS",
					"Incorrect email or password", nil)
			case errors.Is(err, auth.ErrNotVerified):
				response.Error(w, http.StatusForbidden, "EMAIL_NOT_VERIFIED",
					"Verify your email before logging in", nil)
			case errors.Is(err, auth.ErrUseGoogleLogin):
				response.Error(w, http.StatusConflict, "USE_GOOGLE_LOGIN",
					"This account uses Google sign-in", nil)
			default:
				response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
					"An unexpected error occurred", nil)
			}
			return
		}

		setSessionCookie(w, token, secureCookies)
		response.JSON(w, user)
	}
}

// NewLogoutHandler returns an http.HandlerFunc for POST /api/v1/auth/logout.
func NewLogoutHandler(svc AuthService, secureCookies bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
			_ = svc.Logout(r.Context(), cookie.Value)
		}
		clearSessionCookie(w, secureCookies)
		response.JSON(w, map[string]string{"message": "Logged out"})
	}
}

// NewForgotPasswordHandler returns an http.HandlerFunc for
// POST /api/v1/auth/forgot-password. It responds identically whether or not
// the email belongs to an account.
func NewForgotPasswordHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Email == "" {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "email is required", nil)
			return
		}

		// An unknown email gets the same response as a known one so the
		// endpoint cannot be used to enumerate accounts.
		if err := svc.ForgotPassword(r.Context(), req.Email); err != nil && !errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.JSON(w, map[string]string{
			"message": "If that email has an account, a reset code was sent",
		})
	}
}

// NewResetPasswordHandler returns an http.HandlerFunc for POST /api/v1/auth/reset-password.
func NewResetPasswordHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email       string `json:"email"`
			Code        string `json:"code"`
			NewPassword string `json:"newPassword"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if err := svc.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
			switch {
			case errors.Is(err, auth.ErrWeakPassword):
				response.Error(w, http.StatusBadRequest, "WEAK_PASSWORD",
					"Password must be at least 8 characters with upper, lower, digit, and special characters", nil)
			case errors.Is(err, auth.ErrSamePassword):
				response.Error(w, http.StatusBadRequest, "SAME_PASSWORD",
					"New password must differ from the current one", nil)
			case errors.Is(err, auth.ErrInvalidOTP), errors.Is(err, store.ErrNotFound):
				// Unknown emails get the invalid-code response so the
				// endpoint cannot be used to enumerate accounts.
				response.Error(w, http.StatusUnauthorized, "INVALID_OTP",
					"The code is invalid or has expired", nil)
			default:
				response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
					"An unexpected error occurred", nil)
			}
			return
		}

		response.JSON(w, map[string]string{"message": "Password updated"})
	}
}

// NewGoogleLoginHandler returns an http.HandlerFunc for GET /api/v1/auth/google.
// It sets a state cookie and redirects to Google's consent screen.
func NewGoogleLoginHandler(flow GoogleFlow, secureCookies bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 16)
		if _, err := rand.Read(buf); err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}
		state := hex.EncodeToString(buf)

		http.SetCookie(w, &http.Cookie{
			Name:     oauthStateCookie,
			Value:    state,
			Path:     "/",
			MaxAge:   600,
			HttpOnly: true,
			Secure:   secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, flow.AuthURL(state), http.StatusTemporaryRedirect)
	}
}

// NewGoogleCallbackHandler returns an http.HandlerFunc for
// GET /api/v1/auth/google/callback. On success it sets the session cookie
// and redirects back to the client app.
func NewGoogleCallbackHandler(flow GoogleFlow, clientURL string, secureCookies bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stateCookie, err := r.Cookie(oauthStateCookie)
		if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
			response.Error(w, http.StatusUnauthorized, "INVALID_OAUTH_STATE",
				"OAuth state mismatch", nil)
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"Missing authorization code", nil)
			return
		}

		token, _, err := flow.HandleCallback(r.Context(), code)
		if err != nil {
			response.Error(w, http.StatusBadGateway, "OAUTH_FAILED",
				"Google sign-in could not be completed", nil)
			return
		}

		setSessionCookie(w, token, secureCookies)
		http.Redirect(w, r, clientURL, http.StatusTemporaryRedirect)
	}
}
