package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/roktodan/roktodan/internal/model"
	"github.com/roktodan/roktodan/internal/repository"
)

// UserGetter loads an identity record by email.
// *repository.Repository satisfies it.
type UserGetter interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// RoleCache caches role lookups. *cache.Cache satisfies it.
type RoleCache interface {
	GetRole(ctx context.Context, email string) (string, error)
	SetRole(ctx context.Context, email, role string) error
}

// RoleResolver resolves an identity's stored role, consulting the cache
// before the store.
type RoleResolver struct {
	users UserGetter
	cache RoleCache
}

// NewRoleResolver creates a RoleResolver. The cache may be nil.
func NewRoleResolver(users UserGetter, cache RoleCache) *RoleResolver {
	return &RoleResolver{users: users, cache: cache}
}

// LookupRole returns the stored role for email, or empty string when no
// identity record exists. A missing record is a normal outcome, not an
// error; callers treat it as "not authorized".
func (r *RoleResolver) LookupRole(ctx context.Context, email string) (string, error) {
	if r.cache != nil {
		if role, _ := r.cache.GetRole(ctx, email); role != "" {
			return role, nil
		}
	}

	user, err := r.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up role: %w", err)
	}

	if r.cache != nil {
		_ = r.cache.SetRole(ctx, email, user.Role)
	}
	return user.Role, nil
}
