package models

import (
	"time"

	"github.com/google/uuid"
)

// Auth providers a user account can originate from.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

// User is an account record. PasswordHash is nil for Google-only accounts.
type User struct {
	ID           uuid.UUID `db:"id"            json:"id"`
	Name         string    `db:"name"          json:"name"`
	Email        string    `db:"email"         json:"email"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	Provider     string    `db:"provider"      json:"provider"`
	IsVerified   bool      `db:"is_verified"   json:"isVerified"`
	Avatar       string    `db:"avatar"        json:"avatar"`
	CreatedAt    time.Time `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updatedAt"`
}
