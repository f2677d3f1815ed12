// backend/src/handlers/stats_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/username/tradejournal/backend/src/logger"
	"github.com/username/tradejournal/backend/src/models"
	"github.com/username/tradejournal/backend/src/services"
	"github.com/username/tradejournal/backend/src/utils"
)

type StatsHandler struct {
	importService   services.ImportService
	drawdownDefault models.DrawdownConfig
}

func NewStatsHandler(service services.ImportService, drawdownDefault models.DrawdownConfig) *StatsHandler {
	return &StatsHandler{
		importService:   service,
		drawdownDefault: drawdownDefault,
	}
}

func (h *StatsHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "user ID not found in request", http.StatusUnauthorized)
		return
	}
	log := logger.FromContext(r.Context())
	account := strings.TrimSpace(r.URL.Query().Get("account"))
	log.Debug("Handling GetStats request with ETag support", "userID", userID, "account", account)

	stats, err := h.importService.GetStats(r.Context(), userID, account)
	if err != nil {
		log.Error("Error retrieving stats from service", "userID", userID, "error", err)
		utils.SendJSONError(w, "Error retrieving statistics. Please try again.", http.StatusInternalServerError)
		return
	}

	currentETag, etagErr := utils.GenerateETag(stats)
	if etagErr != nil {
		log.Error("Failed to generate ETag for stats", "userID", userID, "error", etagErr)
	}

	w.Header().Set("Cache-Control", "no-cache, private")

	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		clientETag := r.Header.Get("If-None-Match")
		for _, cETag := range strings.Split(clientETag, ",") {
			if strings.TrimSpace(cETag) == quotedETag {
				log.Info("ETag match for stats", "userID", userID, "etag", currentETag)
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		if clientETag != "" {
			log.Debug("ETag mismatch", "userID", userID, "clientETags", clientETag, "serverETag", quotedETag)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		log.Error("Error generating JSON response for stats", "userID", userID, "error", err)
	}
}

func (h *StatsHandler) HandleGetDrawdown(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "user ID not found in request", http.StatusUnauthorized)
		return
	}
	q := r.URL.Query()

	cfg := h.drawdownDefault
	params := []struct {
		name   string
		target *float64
	}{
		{"account_size", &cfg.AccountSize},
		{"daily_loss_pct", &cfg.DailyLossPercent},
		{"max_dd_pct", &cfg.MaxDrawdownPercent},
	}
	for _, p := range params {
		raw := strings.TrimSpace(q.Get(p.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.SendJSONError(w, fmt.Sprintf("Query parameter '%s' must be a number.", p.name), http.StatusBadRequest)
			return
		}
		*p.target = v
	}

	report, err := h.importService.GetDrawdown(r.Context(), userID, strings.TrimSpace(q.Get("account")), cfg)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRequest) {
			utils.SendJSONError(w, "Account size and loss percentages must be positive.", http.StatusBadRequest)
			return
		}
		logger.FromContext(r.Context()).Error("Error computing drawdown", "userID", userID, "error", err)
		utils.SendJSONError(w, "Error computing drawdown. Please try again.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logger.FromContext(r.Context()).Error("Error generating JSON response for drawdown", "userID", userID, "error", err)
	}
}
