package handler

import (
	"log/slog"
	"net/http"

	"github.com/roktodan/roktodan/internal/handler/dto"
	"github.com/roktodan/roktodan/internal/service"
)

// DonorHandler handles the public donor search.
type DonorHandler struct {
	svc    *service.DonorService
	logger *slog.Logger
}

// NewDonorHandler creates a new DonorHandler.
func NewDonorHandler(svc *service.DonorService, logger *slog.Logger) *DonorHandler {
	return &DonorHandler{
		svc:    svc,
		logger: logger,
	}
}

// Search handles GET /donars. Absent query parameters act as wildcards: an
// empty fragment substring-matches every record.
func (h *DonorHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	matches, total, err := h.svc.Search(r.Context(), query.Get("bloodGroup"), query.Get("location"))
	if err != nil {
		h.logger.Error("donor search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToDonorsResponse(matches, total))
}
