package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/roktodan/roktodan/internal/auth"
	"github.com/roktodan/roktodan/internal/metrics"
	"github.com/roktodan/roktodan/internal/model"
)

// RoleLookup resolves an identity's stored role. Empty string means no
// identity record exists. *auth.RoleResolver satisfies it.
type RoleLookup interface {
	LookupRole(ctx context.Context, email string) (string, error)
}

// AdminConfig holds configuration for the admin authorization middleware.
type AdminConfig struct {
	Logger  *slog.Logger
	Roles   RoleLookup
	Metrics metrics.Recorder
}

// RequireAdmin returns middleware that restricts a route to identities whose
// stored role is admin. Must be applied after Authenticate. An identity with
// no stored record fails with 403 rather than being dereferenced.
func RequireAdmin(cfg AdminConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := auth.IdentityFromContext(r.Context())
			if email == "" {
				writeAuthError(w)
				return
			}

			role, err := cfg.Roles.LookupRole(r.Context(), email)
			if err != nil {
				cfg.Logger.Error("role lookup failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeForbiddenError(w)
				return
			}

			if role != model.RoleAdmin {
				cfg.Logger.Warn("authorization failed",
					slog.String("reason", "not_admin"),
					slog.String("email", email),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncAuthFailure("forbidden")
				writeForbiddenError(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeForbiddenError writes a 403 Forbidden response.
func writeForbiddenError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":{"code":"FORBIDDEN","message":"Admin role required"}}`))
}
