// backend/src/parsers/matchtrader/parser.go
package matchtrader

import (
	"github.com/username/tradejournal/backend/src/parsers/mapping"
)

const Source = "matchtrader"

// Profile describes the Match Trader closed-positions export.
// Times come either as ISO without a zone (server UTC) or as DD/MM/YYYY HH:MM:SS,
// profit excludes swap, and the export ends with a "Total" row.
func Profile() mapping.Profile {
	return mapping.Profile{
		Source:      Source,
		DisplayName: "Match Trader",
		Fields: []mapping.FieldSpec{
			{Field: mapping.FieldVendorTradeID, Aliases: []string{"ID", "Position ID", "Ticket"}},
			{Field: mapping.FieldInstrument, Aliases: []string{"Symbol", "Instrument"}},
			{Field: mapping.FieldSide, Aliases: []string{"Side", "Type", "Direction"}},
			{Field: mapping.FieldQuantity, Aliases: []string{"Volume", "Lots", "Size"}},
			{Field: mapping.FieldEntryPrice, Aliases: []string{"Open price", "Opening price"}},
			{Field: mapping.FieldClosePrice, Aliases: []string{"Close price", "Closing price"}},
			{Field: mapping.FieldEntryTime, Aliases: []string{"Open time", "Opening time", "Open Date"}},
			{Field: mapping.FieldCloseTime, Aliases: []string{"Close time", "Closing time", "Close Date"}},
			{Field: mapping.FieldPnL, Aliases: []string{"Profit", "Net profit"}},
			{Field: mapping.FieldSwap, Aliases: []string{"Swap", "Swaps"}},
			{Field: mapping.FieldCommission, Aliases: []string{"Commission", "Commissions"}},
			{Field: mapping.FieldStopLoss, Aliases: []string{"Stop loss", "SL"}},
			{Field: mapping.FieldTakeProfit, Aliases: []string{"Take profit", "TP"}},
			{Field: mapping.FieldCloseReason, Aliases: []string{"Reason", "Close reason"}},
		},
		Dates:          []mapping.DateConvention{mapping.ConventionISOUTC, mapping.ConventionDayFirst},
		PnL:            mapping.PnLAddSwap,
		SummaryMarkers: []string{"Total"},
	}
}

func NewParser() *mapping.Parser {
	return mapping.NewParser(Profile())
}
