package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/roktodan/roktodan/internal/auth"
	"github.com/roktodan/roktodan/internal/metrics"
	"github.com/roktodan/roktodan/internal/token"
)

// TokenVerifier verifies a bearer credential and resolves it to an email.
// *token.Service satisfies it.
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger  *slog.Logger
	Tokens  TokenVerifier
	Metrics metrics.Recorder
}

// Authenticate returns a middleware that authenticates requests. It requires
// an "Authorization: Bearer <token>" header, verifies the token, and injects
// the resolved email as the current identity. An absent or malformed header
// is a 401, never a panic.
func Authenticate(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearer := extractBearerToken(r)
			if bearer == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_credential"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncAuthFailure("missing")
				writeAuthError(w)
				return
			}

			email, err := cfg.Tokens.Verify(bearer)
			if err != nil {
				reason := "invalid_signature"
				if errors.Is(err, token.ErrMalformed) {
					reason = "malformed_token"
				} else if errors.Is(err, token.ErrExpired) {
					reason = "expired_token"
				}
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncAuthFailure("invalid")
				writeAuthError(w)
				return
			}

			ctx := auth.ContextWithIdentity(r.Context(), email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken returns the token from the Authorization header, or
// empty string when the header is absent or not a Bearer credential.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"Invalid or missing credential"}}`))
}
