package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvracar/scribe/internal/domain"
	"github.com/mvracar/scribe/internal/repository"
)

const userColumns = "id, email, username, password_hash, bio, image, created_at, updated_at"

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash, bio, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash,
		user.Bio, user.Image, user.CreatedAt, user.UpdatedAt,
	)
	return mapConstraintErr(err)
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

func (r *UserRepo) GetByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1 OR username = $2 LIMIT 1", email, username)
}

func (r *UserRepo) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) error {
	query, args := buildUserUpdate(id, patch, time.Now())

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapConstraintErr(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update user %s: no rows affected", id)
	}
	return nil
}

// buildUserUpdate renders the partial UPDATE for the fields set in patch.
// updated_at is always bumped.
func buildUserUpdate(id uuid.UUID, patch domain.UserPatch, now time.Time) (string, []any) {
	var sets []string
	var args []any

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Email != nil {
		set("email", *patch.Email)
	}
	if patch.Username != nil {
		set("username", *patch.Username)
	}
	if patch.PasswordHash != nil {
		set("password_hash", *patch.PasswordHash)
	}
	if patch.Bio != nil {
		set("bio", *patch.Bio)
	}
	if patch.Image != nil {
		set("image", *patch.Image)
	}
	set("updated_at", now)

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	return query, args
}

func (r *UserRepo) scanUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&u.Bio, &u.Image, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// mapConstraintErr turns a unique-constraint violation into the matching
// sentinel so the service layer can name the colliding field.
func mapConstraintErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return repository.ErrEmailTaken
		case strings.Contains(pgErr.ConstraintName, "username"):
			return repository.ErrUsernameTaken
		}
	}
	return err
}
