package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ideagauge/ideagauge/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	MarkUserVerified(ctx context.Context, email string) error
	UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateUserProfile(ctx context.Context, id uuid.UUID, name, avatar string) error

	CreateFeasibilityResult(ctx context.Context, result *models.FeasibilityResult) error
	GetFeasibilityResult(ctx context.Context, id uuid.UUID) (*models.FeasibilityResult, error)
}
