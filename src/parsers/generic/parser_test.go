package generic

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/tradejournal/backend/src/models"
	"github.com/username/tradejournal/backend/src/parsers/mapping"
)

func validColumns() map[string]string {
	return map[string]string{
		"instrument":  "Ticker",
		"quantity":    "Qty",
		"entry_time":  "Opened",
		"close_time":  "Closed",
		"pnl":         "Result",
		"entry_price": "In",
		"close_price": "Out",
	}
}

func TestProfile_Validation(t *testing.T) {
	_, err := Profile(validColumns(), "")
	assert.NoError(t, err)

	cols := validColumns()
	delete(cols, "close_time")
	_, err = Profile(cols, "")
	assert.True(t, errors.Is(err, ErrInvalidMapping))

	cols = validColumns()
	cols["volume"] = "Vol"
	_, err = Profile(cols, "")
	assert.True(t, errors.Is(err, ErrInvalidMapping))

	_, err = Profile(validColumns(), "year_first")
	assert.True(t, errors.Is(err, ErrInvalidMapping))
}

func TestProfile_SwapColumnSwitchesPolicy(t *testing.T) {
	cols := validColumns()
	cols["swap"] = "Rollover"

	p, err := Profile(cols, "")
	require.NoError(t, err)
	assert.Equal(t, mapping.PnLAddSwap, p.PnL)
}

func TestParse_DateOrderHint(t *testing.T) {
	table := models.Table{
		Headers: []string{"Ticker", "Qty", "Opened", "Closed", "Result", "In", "Out"},
		Rows: [][]string{
			{"AAPL", "10", "05/11/2025 14:00", "05/11/2025 15:00", "12.5", "190", "191.25"},
		},
	}

	p, err := NewParser(validColumns(), DateOrderDayFirst)
	require.NoError(t, err)
	res, err := p.Parse(table, "ACC", "user-1")
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)
	assert.True(t, time.Date(2025, 11, 5, 14, 0, 0, 0, time.UTC).Equal(res.Trades[0].EntryDate))
	assert.Equal(t, Source, res.Trades[0].Source)

	p, err = NewParser(validColumns(), DateOrderMonthFirst)
	require.NoError(t, err)
	res, err = p.Parse(table, "ACC", "user-1")
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 5, 11, 14, 0, 0, 0, time.UTC).Equal(res.Trades[0].EntryDate))

	p, err = NewParser(validColumns(), "")
	require.NoError(t, err)
	res, err = p.Parse(table, "ACC", "user-1")
	require.NoError(t, err)
	assert.Empty(t, res.Trades)
	assert.Equal(t, "missing entry time", res.Skipped[0].Reason)
}
