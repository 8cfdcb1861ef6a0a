package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roktodan/roktodan/internal/auth"
	"github.com/roktodan/roktodan/internal/handler/dto"
	"github.com/roktodan/roktodan/internal/model"
	"github.com/roktodan/roktodan/internal/service"
)

// RequestHandler handles the blood-request ledger endpoints.
type RequestHandler struct {
	svc    *service.RequestService
	logger *slog.Logger
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(svc *service.RequestService, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /blood-request/new. Whatever email the payload may
// carry is discarded; the owner is the authenticated identity.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	email := auth.MustIdentityFromContext(r.Context())

	var req dto.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), email, service.CreateRequestInput{
		PatientName: req.PatientName,
		BloodGroup:  req.BloodGroup,
		Units:       req.Units,
		Hospital:    req.Hospital,
		Location:    req.Location,
		NeededBy:    req.NeededBy,
		Message:     req.Message,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("blood_request_created",
		"request_id", created.ID,
		"email", created.Email,
		"blood_group", created.BloodGroup,
	)

	writeJSON(w, http.StatusCreated, created)
}

// ListAll handles GET /requests. Public: every request, regardless of owner.
func (h *RequestHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.ListAll(r.Context())
	if err != nil {
		h.logger.Error("request list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, nonNil(requests))
}

// ListMine handles GET /requests/my, filtered to the caller.
func (h *RequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	email := auth.MustIdentityFromContext(r.Context())

	requests, err := h.svc.ListMine(r.Context(), email)
	if err != nil {
		h.logger.Error("request list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, nonNil(requests))
}

// Delete handles DELETE /requests/{id}. The delete only takes effect when
// both the id and the owning email match; a miss is a zero-effect success.
func (h *RequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email := auth.MustIdentityFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Request ID is required")
		return
	}

	deleted, err := h.svc.Delete(r.Context(), email, id)
	if err != nil {
		h.logger.Error("request delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	if deleted {
		h.logger.Info("blood_request_deleted", "request_id", id, "email", email)
	}

	writeJSON(w, http.StatusOK, dto.DeleteResponse{Deleted: deleted})
}

// handleServiceError maps request service errors to HTTP responses.
func (h *RequestHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingBloodGroup):
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Blood group is required")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// nonNil keeps empty lists serializing as [] instead of null.
func nonNil(requests []*model.BloodRequest) []*model.BloodRequest {
	if requests == nil {
		return []*model.BloodRequest{}
	}
	return requests
}
