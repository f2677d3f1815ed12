package exness

import (
	"github.com/username/tradejournal/backend/src/parsers/mapping"
)

const Source = "exness"

// Profile describes the Exness personal-area trade history CSV.
// All times are UTC without a marker; swap and commission are separate USD columns.
func Profile() mapping.Profile {
	return mapping.Profile{
		Source:      Source,
		DisplayName: "Exness",
		Fields: []mapping.FieldSpec{
			{Field: mapping.FieldVendorTradeID, Aliases: []string{"ticket", "order"}},
			{Field: mapping.FieldAccount, Aliases: []string{"account", "account_number"}},
			{Field: mapping.FieldInstrument, Aliases: []string{"symbol"}},
			{Field: mapping.FieldSide, Aliases: []string{"type"}},
			{Field: mapping.FieldQuantity, Aliases: []string{"lots", "volume"}},
			{Field: mapping.FieldEntryPrice, Aliases: []string{"opening_price", "open_price"}},
			{Field: mapping.FieldClosePrice, Aliases: []string{"closing_price", "close_price"}},
			{Field: mapping.FieldEntryTime, Aliases: []string{"opening_time_utc", "open_time"}},
			{Field: mapping.FieldCloseTime, Aliases: []string{"closing_time_utc", "close_time"}},
			{Field: mapping.FieldPnL, Aliases: []string{"profit_usd", "profit"}},
			{Field: mapping.FieldSwap, Aliases: []string{"swap_usd", "swap"}},
			{Field: mapping.FieldCommission, Aliases: []string{"commission_usd", "commission"}},
			{Field: mapping.FieldStopLoss, Aliases: []string{"stop_loss", "sl"}},
			{Field: mapping.FieldTakeProfit, Aliases: []string{"take_profit", "tp"}},
			{Field: mapping.FieldCloseReason, Aliases: []string{"close_reason", "reason"}},
		},
		Dates: []mapping.DateConvention{mapping.ConventionISOUTC},
		PnL:   mapping.PnLAddSwap,
	}
}

func NewParser() *mapping.Parser {
	return mapping.NewParser(Profile())
}
