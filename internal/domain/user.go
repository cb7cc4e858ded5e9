package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthenticatedUser is the outward projection of a User, paired with a
// freshly signed token. The password hash never crosses this boundary.
type AuthenticatedUser struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
	Token    string `json:"token"`
}

// UserPatch carries a partial update. Nil fields keep their stored value.
type UserPatch struct {
	Email        *string
	Username     *string
	PasswordHash *string
	Bio          *string
	Image        *string
}
