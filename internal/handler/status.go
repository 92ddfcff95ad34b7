package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/staynest/staynest/internal/handler/dto"
	"github.com/staynest/staynest/internal/model"
)

// StatusCheckStore defines the persistence operations for status checks.
type StatusCheckStore interface {
	InsertStatusCheck(ctx context.Context, check *model.StatusCheck) error
	ListStatusChecks(ctx context.Context) ([]*model.StatusCheck, error)
}

// StatusHandler handles the protected status-check endpoints.
type StatusHandler struct {
	logger *slog.Logger
	store  StatusCheckStore
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(logger *slog.Logger, store StatusCheckStore) *StatusHandler {
	return &StatusHandler{
		logger: logger,
		store:  store,
	}
}

// statusCheckRequest is the request body for creating a status check.
type statusCheckRequest struct {
	ClientName string `json:"client_name"`
}

// Create handles POST /api/status
func (h *StatusHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req statusCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Detail: "Invalid request body"})
		return
	}
	if req.ClientName == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Detail: "client_name is required"})
		return
	}

	check := &model.StatusCheck{
		ID:         ulid.Make().String(),
		ClientName: req.ClientName,
		Timestamp:  time.Now().UTC(),
	}

	if err := h.store.InsertStatusCheck(r.Context(), check); err != nil {
		h.logger.Error("failed to insert status check",
			slog.String("error", err.Error()),
			slog.String("request_id", requestIDFrom(r)),
		)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Detail: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, check)
}

// List handles GET /api/status
func (h *StatusHandler) List(w http.ResponseWriter, r *http.Request) {
	checks, err := h.store.ListStatusChecks(r.Context())
	if err != nil {
		h.logger.Error("failed to list status checks",
			slog.String("error", err.Error()),
			slog.String("request_id", requestIDFrom(r)),
		)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Detail: "Internal server error"})
		return
	}

	if checks == nil {
		checks = []*model.StatusCheck{}
	}
	writeJSON(w, http.StatusOK, checks)
}
