package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/roktodan/roktodan/internal/handler/dto"
	"github.com/roktodan/roktodan/internal/metrics"
	"github.com/roktodan/roktodan/internal/model"
)

// UserRegistry registers identities idempotently.
// *repository.Repository satisfies it.
type UserRegistry interface {
	GetOrCreateUser(ctx context.Context, user *model.User) (*model.User, error)
}

// UserHandler handles identity registration.
type UserHandler struct {
	users   UserRegistry
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserRegistry, logger *slog.Logger, recorder metrics.Recorder) *UserHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserHandler{
		users:   users,
		logger:  logger,
		metrics: recorder,
	}
}

// Register handles POST /users. Registration is idempotent: posting an
// already-registered email returns the stored record untouched.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "A valid email is required")
		return
	}

	user, err := h.users.GetOrCreateUser(r.Context(), &model.User{
		Email: email,
		Name:  req.Name,
		Role:  model.RoleUser,
	})
	if err != nil {
		h.logger.Error("registration failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	h.metrics.IncUserRegistered()
	h.logger.Info("user_registered", "email", user.Email)

	writeJSON(w, http.StatusOK, dto.UserResponse{
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}
