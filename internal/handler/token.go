package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/roktodan/roktodan/internal/handler/dto"
	"github.com/roktodan/roktodan/internal/metrics"
)

// TokenIssuer mints a signed identity token. *token.Service satisfies it.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

// TokenHandler handles identity-token minting.
type TokenHandler struct {
	tokens  TokenIssuer
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(tokens TokenIssuer, logger *slog.Logger, recorder metrics.Recorder) *TokenHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TokenHandler{
		tokens:  tokens,
		logger:  logger,
		metrics: recorder,
	}
}

// Issue handles POST /jwt.
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "A valid email is required")
		return
	}

	tok, err := h.tokens.Issue(email)
	if err != nil {
		h.logger.Error("token issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	h.metrics.IncTokenIssued()
	h.logger.Info("token_issued", "email", email)

	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: tok})
}
