// Package auth provides request-scoped identity plumbing.
package auth

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// identityKey is the context key for the authenticated email.
	identityKey contextKey = "identity_email"
)

// ContextWithIdentity attaches the authenticated email to the context.
func ContextWithIdentity(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, identityKey, email)
}

// IdentityFromContext retrieves the authenticated email from the context.
// Returns empty string if the request was not authenticated.
func IdentityFromContext(ctx context.Context) string {
	email, ok := ctx.Value(identityKey).(string)
	if !ok {
		return ""
	}
	return email
}

// MustIdentityFromContext retrieves the authenticated email from the context.
// Panics if not present (use only when auth middleware has run).
func MustIdentityFromContext(ctx context.Context) string {
	email := IdentityFromContext(ctx)
	if email == "" {
		panic("identity not found in context - ensure auth middleware is applied")
	}
	return email
}
