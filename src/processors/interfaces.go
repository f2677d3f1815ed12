package processors

import (
	"github.com/username/tradejournal/backend/src/models"
)

// StatsProcessor computes summary KPIs for a trade history.
type StatsProcessor interface {
	Calculate(trades []models.Trade) models.TradeStats
}

// DrawdownProcessor checks a trade history against prop-firm loss limits.
type DrawdownProcessor interface {
	Evaluate(trades []models.Trade, cfg models.DrawdownConfig) models.DrawdownReport
}
