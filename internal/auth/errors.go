package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be 8+ chars and include uppercase, lowercase, number and special char")
	ErrNotVerified        = errors.New("email not verified")
	ErrUseGoogleLogin     = errors.New("account has no password, use Google login")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrSamePassword       = errors.New("new password cannot be the same as the old password")
	ErrInvalidSession     = errors.New("invalid or expired session")
)
