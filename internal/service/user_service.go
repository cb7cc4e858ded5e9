package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mvracar/scribe/internal/apperr"
	"github.com/mvracar/scribe/internal/auth"
	"github.com/mvracar/scribe/internal/domain"
	"github.com/mvracar/scribe/internal/repository"
)

// UserService runs the identity workflows: register, login, fetch and
// update. It holds no state of its own; expected domain failures come
// back as *apperr.Error values, anything else is an infrastructure
// fault for the transport layer to surface as a server error.
type UserService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenService) *UserService {
	return &UserService{users: users, tokens: tokens}
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.AuthenticatedUser, error) {
	email := strings.ToLower(input.Email)
	username := strings.ToLower(input.Username)

	// Probe first for a friendly field-level error. The storage
	// constraint stays authoritative for the race the probe cannot see.
	existing, err := s.users.GetByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}
	if existing != nil {
		fields := apperr.Fields{}
		if existing.Email == email {
			fields["email"] = []string{"must be unique"}
		}
		if existing.Username == username {
			fields["username"] = []string{"must be unique"}
		}
		return nil, apperr.NewUnprocessable(fields)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if fields := uniquenessFields(err); fields != nil {
			return nil, apperr.NewUnprocessable(fields)
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.authenticated(user)
}

func (s *UserService) Login(ctx context.Context, input LoginInput) (*domain.AuthenticatedUser, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, apperr.NewUnprocessable(apperr.Fields{"email": {"not found"}})
	}

	if !auth.VerifyPassword(input.Password, user.PasswordHash) {
		return nil, apperr.NewUnprocessable(apperr.Fields{
			"email":    {"not correct"},
			"password": {"not correct"},
		})
	}

	return s.authenticated(user)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.AuthenticatedUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, apperr.NewUnprocessable(apperr.Fields{"user": {"can not be found"}})
	}

	return s.authenticated(user)
}

// UpdateByID applies a partial update. Existence is checked with a fetch
// up front rather than inferred from the write's row count.
func (s *UserService) UpdateByID(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.AuthenticatedUser, error) {
	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if existing == nil {
		return nil, apperr.NewUnprocessable(apperr.Fields{"user": {"can not be found"}})
	}

	patch := domain.UserPatch{
		Email:    input.Email,
		Username: input.Username,
		Bio:      input.Bio,
		Image:    input.Image,
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	if err := s.users.Update(ctx, id, patch); err != nil {
		if fields := uniquenessFields(err); fields != nil {
			return nil, apperr.NewUnprocessable(fields)
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	// Re-fetch so store-side defaults and timestamps land in the view.
	updated, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reloading user: %w", err)
	}
	if updated == nil {
		return nil, apperr.NewUnprocessable(apperr.Fields{"user": {"can not be found"}})
	}

	return s.authenticated(updated)
}

// authenticated projects a user into the response view with a freshly
// signed token.
func (s *UserService) authenticated(user *domain.User) (*domain.AuthenticatedUser, error) {
	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &domain.AuthenticatedUser{
		Email:    user.Email,
		Username: user.Username,
		Bio:      user.Bio,
		Image:    user.Image,
		Token:    token,
	}, nil
}

func uniquenessFields(err error) apperr.Fields {
	switch {
	case errors.Is(err, repository.ErrEmailTaken):
		return apperr.Fields{"email": {"must be unique"}}
	case errors.Is(err, repository.ErrUsernameTaken):
		return apperr.Fields{"username": {"must be unique"}}
	}
	return nil
}
