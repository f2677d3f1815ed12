// backend/src/models/canonical.go
package models

import (
	"strings"
	"time"
)

// Side is the normalized trade direction. Vendors that report long/short are
// folded onto BUY/SELL.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Trade is the canonical, vendor-agnostic representation of one round-trip trade.
// Every vendor mapper produces exactly this shape.
type Trade struct {
	// --- Fields populated by the vendor mapper ---
	ID             string    `json:"id"`
	AccountNumber  string    `json:"account_number"`
	Instrument     string    `json:"instrument"`
	Side           Side      `json:"side"`
	Quantity       float64   `json:"quantity"` // always a magnitude
	EntryPrice     float64   `json:"entry_price"`
	ClosePrice     float64   `json:"close_price"`
	EntryDate      time.Time `json:"entry_date"`
	CloseDate      time.Time `json:"close_date"`
	PnL            float64   `json:"pnl"`        // realized, vendor swap folded in where the vendor reports it apart
	Commission     float64   `json:"commission"` // magnitude of the cost
	StopLoss       *float64  `json:"stop_loss,omitempty"`
	TakeProfit     *float64  `json:"take_profit,omitempty"`
	CloseReason    string    `json:"close_reason,omitempty"`
	UserID         string    `json:"user_id"`
	TimeInPosition float64   `json:"time_in_position"` // seconds
	Source         string    `json:"source"`
	VendorTradeID  string    `json:"vendor_trade_id,omitempty"`

	// --- Filled by the TradeProcessor ---
	HashID string `json:"hash_id"`
}

// NetPnL is the realized P&L after commission.
func (t Trade) NetPnL() float64 {
	return t.PnL - t.Commission
}

// Table is one already-read spreadsheet: a header row plus data rows aligned by position.
// Rows may be shorter or longer than Headers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the trimmed value at col, or "" when the row does not reach it.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
