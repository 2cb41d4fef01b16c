package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/campaign-studio-backend/internal/errors"
	"github.com/unclebandit/campaign-studio-backend/internal/model"
	"github.com/unclebandit/campaign-studio-backend/internal/service"
)

type CampaignCardController struct {
	CardService *service.CardService
	Logger      *zap.Logger
}

type generateRequest struct {
	Product        *model.Product          `json:"product"`
	Strategy       *model.CampaignStrategy `json:"strategy"`
	WeeklySchedule []model.ScheduleSlot    `json:"weeklySchedule"`
}

func (req *generateRequest) validate() error {
	if req.Product == nil {
		return appErrors.NewInvalidRequest("product", "is required")
	}
	if strings.TrimSpace(req.Product.Name) == "" {
		return appErrors.NewInvalidRequest("product.name", "is required")
	}
	if req.Strategy == nil {
		return appErrors.NewInvalidRequest("strategy", "is required")
	}
	if strings.TrimSpace(req.Strategy.Description) == "" {
		return appErrors.NewInvalidRequest("strategy.description", "is required")
	}
	if req.WeeklySchedule == nil {
		return appErrors.NewInvalidRequest("weeklySchedule", "is required")
	}
	return nil
}

// GenerateCampaignCards always answers 200 with one card per slot once the body is valid,
// whether the content was generated or came from the templates.
func (c *CampaignCardController) GenerateCampaignCards(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := body.validate(); err != nil {
		var invalid *appErrors.ErrInvalidRequest
		if errors.As(err, &invalid) && c.Logger != nil {
			c.Logger.Info("rejected generate request", zap.String("field", invalid.Field))
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := c.CardService.Generate(r.Context(), *body.Product, *body.Strategy, body.WeeklySchedule)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Batch-Id", result.BatchID)
	json.NewEncoder(w).Encode(result.Cards)
}

func (c *CampaignCardController) ResolveBrand(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductNames []string `json:"productNames"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"brand": service.ResolveBrand(body.ProductNames),
	})
}

func (c *CampaignCardController) ClassifyStatus(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	status, err := c.CardService.StatusForDate(date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"date":   date,
		"status": status,
	})
}

func (c *CampaignCardController) ResolveDate(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	index := 0
	if raw := r.URL.Query().Get("index"); raw != "" {
		i, err := strconv.Atoi(raw)
		if err != nil || i < 0 {
			http.Error(w, "invalid index", http.StatusBadRequest)
			return
		}
		index = i
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"day":   day,
		"index": index,
		"date":  c.CardService.DateForLabel(day, index),
	})
}
