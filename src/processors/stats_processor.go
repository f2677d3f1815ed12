// backend/src/processors/stats_processor.go
package processors

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/username/tradejournal/backend/src/models"
	"github.com/username/tradejournal/backend/src/utils"
)

type statsProcessorImpl struct{}

func NewStatsProcessor() StatsProcessor {
	return &statsProcessorImpl{}
}

// Calculate derives journal KPIs from net P&L (PnL minus commission).
func (p *statsProcessorImpl) Calculate(trades []models.Trade) models.TradeStats {
	var s models.TradeStats
	if len(trades) == 0 {
		return s
	}

	nets := make([]float64, 0, len(trades))
	var held float64
	for _, t := range trades {
		net := t.NetPnL()
		nets = append(nets, net)
		s.TotalCommission += t.Commission
		held += t.TimeInPosition

		if t.Side == models.SideSell {
			s.ShortTrades++
		} else {
			s.LongTrades++
		}

		switch {
		case net > 0:
			s.Wins++
			s.GrossProfit += net
			s.LargestWin = math.Max(s.LargestWin, net)
		case net < 0:
			s.Losses++
			s.GrossLoss += -net
			s.LargestLoss = math.Max(s.LargestLoss, -net)
		default:
			s.BreakEven++
		}
	}

	s.TotalTrades = len(trades)
	s.NetPnL = s.GrossProfit - s.GrossLoss
	s.WinRate = float64(s.Wins) / float64(s.TotalTrades) * 100
	if s.Wins > 0 {
		s.AverageWin = s.GrossProfit / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AverageLoss = s.GrossLoss / float64(s.Losses)
	}
	if s.GrossLoss > 0 {
		s.ProfitFactor = s.GrossProfit / s.GrossLoss
	}
	s.Expectancy = s.NetPnL / float64(s.TotalTrades)
	if len(nets) > 1 {
		s.PnLStdDev = stat.StdDev(nets, nil)
	}
	s.AvgTimeInPosition = held / float64(s.TotalTrades)

	s.WinRate = utils.RoundFloat(s.WinRate, 2)
	s.GrossProfit = utils.RoundFloat(s.GrossProfit, 2)
	s.GrossLoss = utils.RoundFloat(s.GrossLoss, 2)
	s.NetPnL = utils.RoundFloat(s.NetPnL, 2)
	s.TotalCommission = utils.RoundFloat(s.TotalCommission, 2)
	s.ProfitFactor = utils.RoundFloat(s.ProfitFactor, 2)
	s.AverageWin = utils.RoundFloat(s.AverageWin, 2)
	s.AverageLoss = utils.RoundFloat(s.AverageLoss, 2)
	s.LargestWin = utils.RoundFloat(s.LargestWin, 2)
	s.LargestLoss = utils.RoundFloat(s.LargestLoss, 2)
	s.Expectancy = utils.RoundFloat(s.Expectancy, 2)
	s.PnLStdDev = utils.RoundFloat(s.PnLStdDev, 2)
	s.AvgTimeInPosition = utils.RoundFloat(s.AvgTimeInPosition, 2)
	return s
}
