package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mvracar/scribe/internal/domain"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildUserUpdate_AllFields(t *testing.T) {
	id := uuid.New()
	now := time.Now()
	patch := domain.UserPatch{
		Email:        strPtr("new@example.com"),
		Username:     strPtr("newname"),
		PasswordHash: strPtr("hash"),
		Bio:          strPtr("bio"),
		Image:        strPtr("img"),
	}

	query, args := buildUserUpdate(id, patch, now)

	require.Equal(t,
		"UPDATE users SET email = $1, username = $2, password_hash = $3, bio = $4, image = $5, updated_at = $6 WHERE id = $7",
		query,
	)
	require.Equal(t, []any{"new@example.com", "newname", "hash", "bio", "img", now, id}, args)
}

func TestBuildUserUpdate_PartialPatch(t *testing.T) {
	id := uuid.New()
	now := time.Now()

	query, args := buildUserUpdate(id, domain.UserPatch{Bio: strPtr("only bio")}, now)

	require.Equal(t, "UPDATE users SET bio = $1, updated_at = $2 WHERE id = $3", query)
	require.Equal(t, []any{"only bio", now, id}, args)
}

func TestBuildUserUpdate_EmptyPatchStillBumpsTimestamp(t *testing.T) {
	id := uuid.New()
	now := time.Now()

	query, args := buildUserUpdate(id, domain.UserPatch{}, now)

	require.Equal(t, "UPDATE users SET updated_at = $1 WHERE id = $2", query)
	require.Equal(t, []any{now, id}, args)
}
