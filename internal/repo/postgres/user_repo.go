package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joaobatista235/know-your-fan/internal/domain/model"
	authsvc "github.com/joaobatista235/know-your-fan/internal/services/auth"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user model.User, passwordHash string) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" || strings.TrimSpace(passwordHash) == "" {
		return model.User{}, fmt.Errorf("invalid user create payload")
	}

	_, err := r.pool.Exec(ctx, `
INSERT INTO users (id, email, password_hash, display_name, email_verified, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, user.ID, user.Email, passwordHash, user.DisplayName, user.EmailVerified, user.CreatedAt.UTC(), user.UpdatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return model.User{}, authsvc.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (authsvc.Credentials, error) {
	if r.pool == nil {
		return authsvc.Credentials{}, fmt.Errorf("postgres pool is nil")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return authsvc.Credentials{}, fmt.Errorf("email is required")
	}

	var creds authsvc.Credentials
	err := r.pool.QueryRow(ctx, `
SELECT id, email, password_hash, display_name, email_verified, created_at, updated_at
FROM users
WHERE email = $1
LIMIT 1
`, email).Scan(
		&creds.User.ID,
		&creds.User.Email,
		&creds.PasswordHash,
		&creds.User.DisplayName,
		&creds.User.EmailVerified,
		&creds.User.CreatedAt,
		&creds.User.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authsvc.Credentials{}, authsvc.ErrUserNotFound
		}
		return authsvc.Credentials{}, fmt.Errorf("find user by email: %w", err)
	}

	return creds, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(id) == "" {
		return model.User{}, fmt.Errorf("user id is required")
	}

	var user model.User
	err := r.pool.QueryRow(ctx, `
SELECT id, email, display_name, email_verified, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1
`, id).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.EmailVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, authsvc.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}

	return user, nil
}
