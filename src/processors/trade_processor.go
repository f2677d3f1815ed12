// backend/src/processors/trade_processor.go
package processors

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/username/tradejournal/backend/src/models"
)

type TradeProcessor struct{}

func NewTradeProcessor() *TradeProcessor { return &TradeProcessor{} }

// Process fingerprints each mapped trade so that re-importing the same export
// can be recognised by the UNIQUE(user_id, hash_id) constraint.
func (p *TradeProcessor) Process(trades []models.Trade) []models.Trade {
	processed := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		t.HashID = generateHash(t)
		processed = append(processed, t)
	}
	return processed
}

// generateHash covers only fields taken from the source row, never the random ID.
// The vendor trade id keeps separate fills with otherwise equal fields apart.
func generateHash(t models.Trade) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%s|%s|%s|%s|%s",
		t.Source,
		t.VendorTradeID,
		t.UserID,
		t.AccountNumber,
		t.Instrument,
		t.Side,
		t.EntryDate.UTC().Format(time.RFC3339Nano),
		t.CloseDate.UTC().Format(time.RFC3339Nano),
		formatFloat(t.Quantity),
		formatFloat(t.EntryPrice),
		formatFloat(t.ClosePrice),
		formatFloat(t.PnL),
	)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
