package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roktodan/roktodan/internal/handler/dto"
	"github.com/roktodan/roktodan/internal/metrics"
	"github.com/roktodan/roktodan/internal/model"
	"github.com/roktodan/roktodan/internal/repository"
)

// AdminStore is the store surface the admin endpoints need.
// *repository.Repository satisfies it.
type AdminStore interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUserRole(ctx context.Context, email, role string) error
}

// RoleInvalidator drops a cached role after it changes.
// *cache.Cache satisfies it.
type RoleInvalidator interface {
	DeleteRole(ctx context.Context, email string) error
}

// AdminHandler handles the admin-gated management endpoints.
type AdminHandler struct {
	store    AdminStore
	roles    RoleInvalidator
	snapshot metrics.Snapshotter
	logger   *slog.Logger
}

// NewAdminHandler creates a new AdminHandler. snapshot may be nil when no
// in-memory recorder is wired.
func NewAdminHandler(store AdminStore, roles RoleInvalidator, snapshot metrics.Snapshotter, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		store:    store,
		roles:    roles,
		snapshot: snapshot,
		logger:   logger,
	}
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("user list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.UserResponse{
			Email:     u.Email,
			Name:      u.Name,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, responses)
}

// UpdateRole handles PATCH /admin/users/{email}/role. The cached role is
// invalidated so the change takes effect on the next request.
func (h *AdminHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Email is required")
		return
	}

	var req dto.RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request body")
		return
	}

	if req.Role != model.RoleUser && req.Role != model.RoleAdmin {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Role must be 'user' or 'admin'")
		return
	}

	if err := h.store.UpdateUserRole(r.Context(), email, req.Role); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		h.logger.Error("role update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	if h.roles != nil {
		_ = h.roles.DeleteRole(r.Context(), email)
	}

	h.logger.Info("role_updated", "email", email, "role", req.Role)

	writeJSON(w, http.StatusOK, map[string]string{
		"email": email,
		"role":  req.Role,
	})
}

// Metrics handles GET /admin/metrics.
func (h *AdminHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshot == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Metrics are not enabled")
		return
	}

	writeJSON(w, http.StatusOK, h.snapshot.Snapshot())
}
