package models

// TradeStats holds the KPI figures derived from a list of trades.
type TradeStats struct {
	TotalTrades       int     `json:"total_trades"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	BreakEven         int     `json:"break_even"`
	LongTrades        int     `json:"long_trades"`
	ShortTrades       int     `json:"short_trades"`
	WinRate           float64 `json:"win_rate"` // percent
	GrossProfit       float64 `json:"gross_profit"`
	GrossLoss         float64 `json:"gross_loss"` // positive magnitude
	NetPnL            float64 `json:"net_pnl"`
	TotalCommission   float64 `json:"total_commission"`
	ProfitFactor      float64 `json:"profit_factor"`
	AverageWin        float64 `json:"average_win"`
	AverageLoss       float64 `json:"average_loss"` // positive magnitude
	LargestWin        float64 `json:"largest_win"`
	LargestLoss       float64 `json:"largest_loss"` // positive magnitude
	Expectancy        float64 `json:"expectancy"`
	PnLStdDev         float64 `json:"pnl_std_dev"`
	AvgTimeInPosition float64 `json:"avg_time_in_position"` // seconds
}

// DrawdownConfig describes the prop-firm account rules a trade history is checked against.
type DrawdownConfig struct {
	AccountSize        float64 `json:"account_size"`
	DailyLossPercent   float64 `json:"daily_loss_percent"`
	MaxDrawdownPercent float64 `json:"max_drawdown_percent"`
}

// DailyLimit is the allowed loss for a single day.
func (c DrawdownConfig) DailyLimit() float64 {
	return c.AccountSize * c.DailyLossPercent / 100
}

// MaxDrawdownLimit is the allowed distance between the account size and the lowest balance.
func (c DrawdownConfig) MaxDrawdownLimit() float64 {
	return c.AccountSize * c.MaxDrawdownPercent / 100
}

// DrawdownDay is the per-day line of a drawdown report. Date is YYYY-MM-DD (UTC).
type DrawdownDay struct {
	Date       string  `json:"date"`
	Trades     int     `json:"trades"`
	NetPnL     float64 `json:"net_pnl"`
	DayLoss    float64 `json:"day_loss"`
	EndBalance float64 `json:"end_balance"`
	Breached   bool    `json:"breached"`
}

// DrawdownReport is the outcome of checking trades against a DrawdownConfig.
type DrawdownReport struct {
	Config              DrawdownConfig `json:"config"`
	Days                []DrawdownDay  `json:"days"`
	DailyLimit          float64        `json:"daily_limit"`
	DailyLimitBreached  bool           `json:"daily_limit_breached"`
	LowestBalance       float64        `json:"lowest_balance"`
	MaxDrawdownUsed     float64        `json:"max_drawdown_used"`
	MaxDrawdownLimit    float64        `json:"max_drawdown_limit"`
	MaxDrawdownBreached bool           `json:"max_drawdown_breached"`
	Violation           bool           `json:"violation"`
}
