package processors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/tradejournal/backend/src/models"
)

func sampleTrade() models.Trade {
	return models.Trade{
		ID:            "a",
		UserID:        "user-1",
		AccountNumber: "ACC",
		Instrument:    "EURUSD",
		Side:          models.SideBuy,
		Quantity:      1.5,
		EntryPrice:    1.1,
		ClosePrice:    1.105,
		EntryDate:     time.Date(2025, 11, 5, 14, 59, 6, 0, time.UTC),
		CloseDate:     time.Date(2025, 11, 5, 15, 10, 0, 0, time.UTC),
		PnL:           95,
		Source:        "matchtrader",
		VendorTradeID: "1001",
	}
}

func TestTradeProcessor_HashIgnoresID(t *testing.T) {
	a := sampleTrade()
	b := sampleTrade()
	b.ID = "b"
	b.Commission = 3

	out := NewTradeProcessor().Process([]models.Trade{a, b})
	require.Len(t, out, 2)
	assert.Len(t, out[0].HashID, 64)
	assert.Equal(t, out[0].HashID, out[1].HashID)
	assert.Equal(t, "a", out[0].ID)
}

func TestTradeProcessor_HashDistinguishesTrades(t *testing.T) {
	base := sampleTrade()
	variants := []func(*models.Trade){
		func(t *models.Trade) { t.UserID = "user-2" },
		func(t *models.Trade) { t.AccountNumber = "OTHER" },
		func(t *models.Trade) { t.Side = models.SideSell },
		func(t *models.Trade) { t.Quantity = 2 },
		func(t *models.Trade) { t.CloseDate = t.CloseDate.Add(time.Second) },
		func(t *models.Trade) { t.PnL = 94.99 },
		func(t *models.Trade) { t.VendorTradeID = "1002" },
		func(t *models.Trade) { t.Source = "exness" },
	}

	want := generateHash(base)
	for i, mutate := range variants {
		v := base
		mutate(&v)
		assert.NotEqual(t, want, generateHash(v), "variant %d", i)
	}
}

func TestTradeProcessor_HashUsesUTC(t *testing.T) {
	a := sampleTrade()
	b := sampleTrade()
	loc := time.FixedZone("EST", -5*3600)
	b.EntryDate = b.EntryDate.In(loc)
	b.CloseDate = b.CloseDate.In(loc)

	assert.Equal(t, generateHash(a), generateHash(b))
}
