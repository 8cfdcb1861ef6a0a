package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/roktodan/roktodan/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
)

// GetOrCreateUser registers an identity if its email is unseen and returns
// the stored record. Registering an existing email is a no-op success: the
// existing record is returned untouched, including its role.
func (r *Repository) GetOrCreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := `
		INSERT INTO users (email, name, role, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
	`

	role := user.Role
	if role == "" {
		role = model.RoleUser
	}

	_, err := r.pool.Exec(ctx, query, user.Email, user.Name, role, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return r.getUserByEmail(ctx, user.Email)
}

// GetUserByEmail retrieves a user by their email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	return r.getUserByEmail(ctx, email)
}

func (r *Repository) getUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT email, name, role, created_at
		FROM users
		WHERE email = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.Email,
		&user.Name,
		&user.Role,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// ListUsers returns every registered identity, newest first.
func (r *Repository) ListUsers(ctx context.Context) ([]*model.User, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := `
		SELECT email, name, role, created_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.Email, &user.Name, &user.Role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// UpdateUserRole changes a user's role. Returns ErrUserNotFound if no record
// exists for the email.
func (r *Repository) UpdateUserRole(ctx context.Context, email, role string) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := `
		UPDATE users
		SET role = $2
		WHERE email = $1
	`

	tag, err := r.pool.Exec(ctx, query, email, role)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
