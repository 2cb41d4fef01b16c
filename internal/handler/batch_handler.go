// internal/handler/batch_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	appErrors "github.com/unclebandit/campaign-studio-backend/internal/errors"
	"github.com/unclebandit/campaign-studio-backend/internal/service"
)

// BatchHandler serves previously generated batches back to the calendar UI
type BatchHandler struct {
	Service *service.CardService
	Logger  *zap.Logger
}

// NewBatchHandler creates a new BatchHandler with the given service
func NewBatchHandler(svc *service.CardService, logger *zap.Logger) *BatchHandler {
	return &BatchHandler{
		Service: svc,
		Logger:  logger,
	}
}

// GetBatchHandler returns a batch with every card's status recomputed against the current time
func (h *BatchHandler) GetBatchHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "invalid batch id", http.StatusBadRequest)
		return
	}

	details, err := h.Service.GetBatchDetails(r.Context(), id)
	if err != nil {
		var notFound *appErrors.ErrBatchNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.Logger.Error("failed to fetch batch", zap.String("batch_id", id), zap.Error(err))
		http.Error(w, "failed to fetch batch: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}

// HealthHandler reports liveness
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
