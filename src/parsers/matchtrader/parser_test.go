package matchtrader

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

func TestParse_ClosedPositionsExport(t *testing.T) {
	table := models.Table{
		Headers: []string{"ID", "Symbol", "Volume", "Side", "Open time", "Open price", "Close time", "Close price", "Stop loss", "Take profit", "Swap", "Commission", "Profit", "Reason"},
		Rows: [][]string{
			{"77001", "EURUSD", "0.50", "BUY", "2025-11-05T14:59:06.38", "1.08512", "2025-11-05T16:00:00", "1.08712", "0.00", "1.2345", "-5.00", "-2.00", "100.00", "TP"},
			{"77002", "US30", "1", "SELL", "05/11/2025 14:59:06", "44000", "05/11/2025 15:29:06", "43950", "44100", "0", "0", "0", "50", "SL"},
			{"Total", "", "", "", "", "", "", "", "", "", "-5.00", "-2.00", "150.00", ""},
		},
	}

	res, err := NewParser().Parse(table, "MT-1", "user-1")
	require.NoError(t, err)
	require.Len(t, res.Trades, 2)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "summary row", res.Skipped[0].Reason)

	first := res.Trades[0]
	assert.Equal(t, Source, first.Source)
	assert.Equal(t, 95.0, first.PnL)
	assert.Equal(t, 2.0, first.Commission)
	assert.Nil(t, first.StopLoss)
	require.NotNil(t, first.TakeProfit)
	assert.True(t, time.Date(2025, 11, 5, 14, 59, 6, 380000000, time.UTC).Equal(first.EntryDate))

	second := res.Trades[1]
	assert.Equal(t, models.SideSell, second.Side)
	assert.True(t, time.Date(2025, 11, 5, 14, 59, 6, 0, time.UTC).Equal(second.EntryDate))
	assert.Equal(t, 1800.0, second.TimeInPosition)
	assert.Equal(t, "MT-1", second.AccountNumber)
}
