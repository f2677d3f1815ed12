package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/username/tradejournal/backend/src/logger"
	"github.com/username/tradejournal/backend/src/services"
	"github.com/username/tradejournal/backend/src/utils"
)

type TradeHandler struct {
	importService services.ImportService
}

func NewTradeHandler(service services.ImportService) *TradeHandler {
	return &TradeHandler{importService: service}
}

func (h *TradeHandler) HandleGetTrades(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "user ID not found in request", http.StatusUnauthorized)
		return
	}
	account := strings.TrimSpace(r.URL.Query().Get("account"))
	logger.FromContext(r.Context()).Info("Handling GetTrades", "userID", userID, "account", account)

	trades, err := h.importService.GetTrades(r.Context(), userID, account)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error retrieving trades", "userID", userID, "error", err)
		utils.SendJSONError(w, "Error retrieving trades. Please try again.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(trades); err != nil {
		logger.FromContext(r.Context()).Error("Error generating JSON response for trades", "userID", userID, "error", err)
	}
}

func (h *TradeHandler) HandleDeleteAllTrades(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "user ID not found in request", http.StatusUnauthorized)
		return
	}

	deleted, err := h.importService.DeleteAllTrades(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error deleting trades", "userID", userID, "error", err)
		utils.SendJSONError(w, "Your trades could not be deleted. Please try again.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"deleted": deleted})
}
