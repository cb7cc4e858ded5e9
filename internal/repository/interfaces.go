package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mvracar/scribe/internal/domain"
)

// Uniqueness violations surfaced by the storage constraint. The service
// maps them to the same field errors a pre-insert probe would produce,
// so a lost probe-then-insert race never becomes a server fault.
var (
	ErrEmailTaken    = errors.New("email already taken")
	ErrUsernameTaken = errors.New("username already taken")
)

// UserRepository owns persisted users. Lookups return (nil, nil) when no
// row matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// GetByEmailOrUsername is the combined uniqueness probe used at
	// registration time.
	GetByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error)
	// Update overwrites only the fields set in patch.
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) error
}
