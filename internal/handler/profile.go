package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/roktodan/roktodan/internal/auth"
	"github.com/roktodan/roktodan/internal/handler/dto"
	"github.com/roktodan/roktodan/internal/service"
)

// ProfileHandler handles the caller's donation profile.
type ProfileHandler struct {
	svc    *service.ProfileService
	logger *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		svc:    svc,
		logger: logger,
	}
}

// Get handles GET /donation-profile. A caller without a profile gets an
// empty object, not an error.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	email := auth.MustIdentityFromContext(r.Context())

	profile, err := h.svc.Get(r.Context(), email)
	if err != nil {
		h.logger.Error("profile load failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProfileResponse(profile))
}

// Patch handles PATCH /donation-profile. The body is decoded against the
// allow-list of profile fields; unknown fields are rejected. The owning
// email always comes from the authenticated identity.
func (h *ProfileHandler) Patch(w http.ResponseWriter, r *http.Request) {
	email := auth.MustIdentityFromContext(r.Context())

	var req dto.ProfilePatchRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid or unknown profile field")
		return
	}

	if err := h.svc.Upsert(r.Context(), email, req.ToPatch()); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("profile_upserted", "email", email)

	profile, err := h.svc.Get(r.Context(), email)
	if err != nil {
		h.logger.Error("profile reload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProfileResponse(profile))
}

// PatchActive handles PATCH /donation-profile/active. It toggles only the
// active flag, through the same upsert path as Patch.
func (h *ProfileHandler) PatchActive(w http.ResponseWriter, r *http.Request) {
	email := auth.MustIdentityFromContext(r.Context())

	var req dto.ActiveRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil || req.Active == nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Field 'active' is required")
		return
	}

	if err := h.svc.SetActive(r.Context(), email, *req.Active); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("profile_active_set", "email", email, "active", *req.Active)

	profile, err := h.svc.Get(r.Context(), email)
	if err != nil {
		h.logger.Error("profile reload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProfileResponse(profile))
}

// handleServiceError maps profile service errors to HTTP responses.
func (h *ProfileHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyPatch):
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Update contains no fields")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
