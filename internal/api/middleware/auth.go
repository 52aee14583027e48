package middleware

import (
	"net/http"

	"github.com/ideagauge/ideagauge/internal/api/response"
	"github.com/ideagauge/ideagauge/internal/auth"
)

// Auth authenticates requests via the session cookie and puts the user id
// into the request context.
type Auth struct {
	sessions *auth.SessionManager
}

// NewAuth creates the session-cookie auth middleware.
func NewAuth(sessions *auth.SessionManager) *Auth {
	return &Auth{sessions: sessions}
}

// Authenticate resolves the session cookie to a user id. Requests without a
// valid session get 401.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.SessionCookieName)
		if err != nil {
			response.Error(w, http.StatusUnauthorized,
				"UNAUTHORIZED", "Not authenticated", nil)
			return
		}

		userID, err := a.sessions.Resolve(r.Context(), cookie.Value)
		if err != nil {
			response.Error(w, http.StatusUnauthorized,
				"UNAUTHORIZED", "Invalid or expired session", nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(SetUserID(r.Context(), userID)))
	})
}
