package topstep

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

func TestParse_OffsetTimestamps(t *testing.T) {
	table := models.Table{
		Headers: []string{"Id", "ContractName", "EnteredAt", "ExitedAt", "EntryPrice", "ExitPrice", "Fees", "PnL", "Size", "Type", "TradeDay", "TradeDuration"},
		Rows: [][]string{
			{"955112", "ESZ5", "11/05/2025 09:30:00 -05:00", "11/05/2025 09:31:30 -05:00", "6010.25", "6008.00", "2.80", "-112.50", "1", "Long", "11/05/2025 00:00:00 -06:00", "00:01:30"},
		},
	}

	res, err := NewParser().Parse(table, "TS-50K", "user-1")
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)

	tr := res.Trades[0]
	assert.Equal(t, "TS-50K", tr.AccountNumber)
	assert.Equal(t, "ESZ5", tr.Instrument)
	assert.Equal(t, models.SideBuy, tr.Side)
	assert.Equal(t, -112.5, tr.PnL)
	assert.Equal(t, 2.8, tr.Commission)
	assert.InDelta(t, -115.3, tr.NetPnL(), 1e-9)
	assert.True(t, time.Date(2025, 11, 5, 14, 30, 0, 0, time.UTC).Equal(tr.EntryDate))
	assert.Equal(t, 90.0, tr.TimeInPosition)
}
