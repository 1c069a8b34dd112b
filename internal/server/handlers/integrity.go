package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/roach88/nysm/internal/models"
	"github.com/roach88/nysm/pkg/api"
)

// IntegrityService defines the baseline operations the HTTP layer exposes.
type IntegrityService interface {
	Check(ctx context.Context) bool
	RestoreBaseline(ctx context.Context) []models.Feeling
	ResetUserOverrides(ctx context.Context) error
}

// IntegrityHandler serves the baseline integrity endpoints.
type IntegrityHandler struct {
	logger    *slog.Logger
	integrity IntegrityService
}

// NewIntegrityHandler creates an integrity handler.
func NewIntegrityHandler(logger *slog.Logger, integrity IntegrityService) *IntegrityHandler {
	return &IntegrityHandler{
		logger:    logger,
		integrity: integrity,
	}
}

// CheckIntegrity handles GET /api/check-integrity
func (h *IntegrityHandler) CheckIntegrity(w http.ResponseWriter, r *http.Request) {
	status := api.IntegrityStatus{Intact: h.integrity.Check(r.Context())}

	message := "baseline integrity verified"
	if !status.Intact {
		message = "baseline integrity check failed"
	}
	sendSuccess(h.logger, w, status, message)
}

// RestoreFeelings handles POST /api/restore-feelings. It returns the
// shipped baseline document; an empty list means the baseline could not be
// validated.
func (h *IntegrityHandler) RestoreFeelings(w http.ResponseWriter, r *http.Request) {
	baseline := h.integrity.RestoreBaseline(r.Context())
	sendSuccess(h.logger, w, feelingsToAPI(baseline), "baseline feelings restored")
}

// ResetFeelings handles POST /api/reset-feelings, dropping the locally
// stored user overrides of the baseline.
func (h *IntegrityHandler) ResetFeelings(w http.ResponseWriter, r *http.Request) {
	if err := h.integrity.ResetUserOverrides(r.Context()); err != nil {
		sendServiceError(h.logger, w, r, err, "reset feelings")
		return
	}

	sendSuccess(h.logger, w, nil, "user feelings reset")
}
