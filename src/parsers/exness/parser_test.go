package exness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/tradejournal/backend/src/models"
)

func TestProfile_Valid(t *testing.T) {
	assert.NoError(t, Profile().Validate())
}

func TestParse_ReportExport(t *testing.T) {
	table := models.Table{
		Headers: []string{"ticket", "opening_time_utc", "closing_time_utc", "type", "lots", "original_position_size", "symbol", "opening_price", "closing_price", "stop_loss", "take_profit", "commission_usd", "swap_usd", "profit_usd", "equity_usd", "margin_level", "close_reason", "account"},
		Rows: [][]string{
			{"1234567", "2025-03-03T08:15:00.123", "2025-03-03T09:45:30.5", "sell", "0.1", "0.1", "XAUUSDm", "2890.50", "2885.25", "0", "2880", "-0.70", "-1.10", "52.50", "10052.50", "", "tp", "81234567"},
		},
	}

	res, err := NewParser().Parse(table, "", "user-1")
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)

	tr := res.Trades[0]
	assert.Equal(t, "81234567", tr.AccountNumber)
	assert.Equal(t, "1234567", tr.VendorTradeID)
	assert.Equal(t, models.SideSell, tr.Side)
	assert.Equal(t, 0.1, tr.Quantity)
	assert.InDelta(t, 51.4, tr.PnL, 1e-9)
	assert.InDelta(t, 0.7, tr.Commission, 1e-9)
	assert.Nil(t, tr.StopLoss)
	require.NotNil(t, tr.TakeProfit)
	assert.Equal(t, 2880.0, *tr.TakeProfit)
	assert.Equal(t, "tp", tr.CloseReason)
	assert.True(t, time.Date(2025, 3, 3, 8, 15, 0, 123000000, time.UTC).Equal(tr.EntryDate))
}
