package cache

import (
	"fmt"

	"github.com/google/uuid"
)

// OTP purposes. Signup verification and password reset codes live in
// separate key namespaces so one can never be replayed as the other.
const (
	OTPPurposeSignup = "signup"
	OTPPurposeReset  = "reset"
)

func OTPKey(purpose, email string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, email)
}

func SessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func RateLimitKey(userID uuid.UUID) string {
	return fmt.Sprintf("ratelimit:%s", userID)
}
