package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/ideagauge/ideagauge/internal/api/middleware"
	"github.com/ideagauge/ideagauge/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Auth      *mw.Auth
	RateLimit *mw.RateLimit

	UploadDir string

	HealthHandler http.HandlerFunc

	SignupHandler         http.HandlerFunc
	VerifyOTPHandler      http.HandlerFunc
	LoginHandler          http.HandlerFunc
	LogoutHandler         http.HandlerFunc
	ForgotPasswordHandler http.HandlerFunc
	ResetPasswordHandler  http.HandlerFunc
	GoogleLoginHandler    http.HandlerFunc
	GoogleCallbackHandler http.HandlerFunc
	MeHandler             http.HandlerFunc
	UpdateProfileHandler  http.HandlerFunc

	AnalyzeHandler         http.HandlerFunc
	AnalyzeDocumentHandler http.HandlerFunc
	SaveResultHandler      http.HandlerFunc
	GetResultHandler       http.HandlerFunc
	ResultPDFHandler       http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	// Public routes
	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))

	r.Post("/api/v1/auth/signup", orNotImplemented(deps.SignupHandler))
	r.Post("/api/v1/auth/verify-otp", orNotImplemented(deps.VerifyOTPHandler))
	r.Post("/api/v1/auth/login", orNotImplemented(deps.LoginHandler))
	r.Post("/api/v1/auth/forgot-password", orNotImplemented(deps.ForgotPasswordHandler))
	r.Post("/api/v1/auth/reset-password", orNotImplemented(deps.ResetPasswordHandler))
	r.Get("/api/v1/auth/google", orNotImplemented(deps.GoogleLoginHandler))
	r.Get("/api/v1/auth/google/callback", orNotImplemented(deps.GoogleCallbackHandler))

	// Uploaded avatars
	if deps.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.Authenticate)
		r.Use(deps.RateLimit.Limit)

		r.Post("/api/v1/auth/logout", orNotImplemented(deps.LogoutHandler))
		r.Get("/api/v1/auth/me", orNotImplemented(deps.MeHandler))
		r.Put("/api/v1/auth/profile", orNotImplemented(deps.UpdateProfileHandler))

		r.Post("/api/v1/feasibility/analyze", orNotImplemented(deps.AnalyzeHandler))
		r.Post("/api/v1/feasibility/analyze-document", orNotImplemented(deps.AnalyzeDocumentHandler))
		r.Post("/api/v1/feasibility", orNotImplemented(deps.SaveResultHandler))
		r.Get("/api/v1/feasibility/{id}", orNotImplemented(deps.GetResultHandler))
		r.Get("/api/v1/feasibility/{id}/pdf", orNotImplemented(deps.ResultPDFHandler))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
