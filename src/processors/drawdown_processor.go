// backend/src/processors/drawdown_processor.go
package processors

import (
	"sort"

	"github.com/username/tradejournal/backend/src/models"
	"github.com/username/tradejournal/backend/src/utils"
)

type drawdownProcessorImpl struct{}

func NewDrawdownProcessor() DrawdownProcessor {
	return &drawdownProcessorImpl{}
}

// Evaluate replays trades in close order against prop-firm loss rules.
// Days are UTC calendar days of the close time.
func (p *drawdownProcessorImpl) Evaluate(trades []models.Trade, cfg models.DrawdownConfig) models.DrawdownReport {
	report := models.DrawdownReport{
		Config:           cfg,
		Days:             []models.DrawdownDay{},
		DailyLimit:       utils.RoundFloat(cfg.DailyLimit(), 2),
		MaxDrawdownLimit: utils.RoundFloat(cfg.MaxDrawdownLimit(), 2),
		LowestBalance:    cfg.AccountSize,
	}

	sorted := make([]models.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CloseDate.Before(sorted[j].CloseDate)
	})

	balance := cfg.AccountSize
	var current *models.DrawdownDay
	closeDay := func() {
		if current == nil {
			return
		}
		if current.NetPnL < 0 {
			current.DayLoss = -current.NetPnL
		}
		current.Breached = current.DayLoss > cfg.DailyLimit()
		if current.Breached {
			report.DailyLimitBreached = true
		}
		current.NetPnL = utils.RoundFloat(current.NetPnL, 2)
		current.DayLoss = utils.RoundFloat(current.DayLoss, 2)
		current.EndBalance = utils.RoundFloat(balance, 2)
		report.Days = append(report.Days, *current)
	}

	for _, t := range sorted {
		day := t.CloseDate.UTC().Format("2006-01-02")
		if current == nil || current.Date != day {
			closeDay()
			current = &models.DrawdownDay{Date: day}
		}
		net := t.NetPnL()
		current.Trades++
		current.NetPnL += net
		balance += net
		if balance < report.LowestBalance {
			report.LowestBalance = balance
		}
	}
	closeDay()

	report.MaxDrawdownUsed = utils.RoundFloat(cfg.AccountSize-report.LowestBalance, 2)
	report.LowestBalance = utils.RoundFloat(report.LowestBalance, 2)
	report.MaxDrawdownBreached = report.MaxDrawdownUsed > cfg.MaxDrawdownLimit()
	report.Violation = report.DailyLimitBreached || report.MaxDrawdownBreached
	return report
}
