package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unclebandit/campaign-studio-backend/internal/handler"
	"github.com/unclebandit/campaign-studio-backend/internal/model"
	"github.com/unclebandit/campaign-studio-backend/internal/repository"
	"github.com/unclebandit/campaign-studio-backend/internal/service"
)

type brokenRepo struct{}

func (brokenRepo) Save(context.Context, *model.Batch) error { return nil }
func (brokenRepo) GetByID(context.Context, string) (*model.Batch, error) {
	return nil, errors.New("connection refused")
}

func newRouter(h *handler.BatchHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/batches/{id}", h.GetBatchHandler)
	return r
}

func TestGetBatchHandler_RecomputesStatus(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryBatchRepository(30 * 24 * time.Hour)
	repo.Now = func() time.Time { return now }

	svc := &service.CardService{BatchRepo: repo, Now: func() time.Time { return now }}
	result := svc.Generate(context.Background(),
		model.Product{Name: "Galaxy S24"},
		model.CampaignStrategy{Description: "d"},
		[]model.ScheduleSlot{{Day: "Wednesday", Type: model.CampaignTypePrimary, Audience: "All", Theme: "Launch"}})
	require.Equal(t, model.StatusScheduled, result.Cards[0].Status)

	// Four days later Wednesday has passed.
	now = now.Add(4 * 24 * time.Hour)

	h := handler.NewBatchHandler(svc, zap.NewNop())
	w := httptest.NewRecorder()
	newRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/batches/"+result.BatchID, nil))

	require.Equal(t, http.StatusOK, w.Code)

	var details service.BatchDetails
	require.NoError(t, json.NewDecoder(w.Body).Decode(&details))
	assert.Equal(t, result.BatchID, details.ID)
	assert.Equal(t, "Samsung", details.Brand)
	require.Len(t, details.Cards, 1)
	assert.Equal(t, model.StatusActive, details.Cards[0].Status)
	assert.Equal(t, 1, details.Stats["active"])
	assert.Equal(t, 1, details.Stats["fallback"])
}

func TestGetBatchHandler_NotFound(t *testing.T) {
	svc := &service.CardService{BatchRepo: repository.NewMemoryBatchRepository(time.Hour)}
	h := handler.NewBatchHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	newRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/batches/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBatchHandler_StoreFailure(t *testing.T) {
	svc := &service.CardService{BatchRepo: brokenRepo{}}
	h := handler.NewBatchHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	newRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/batches/b-1", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	handler.HealthHandler(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
