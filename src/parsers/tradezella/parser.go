package tradezella

import (
	"github.com/username/tradejournal/backend/src/parsers/mapping"
)

const Source = "tradezella"

// Profile describes a Tradezella trade export. Dates and times sit in separate
// columns, dates are US ordered, and Net P&L already includes fees.
func Profile() mapping.Profile {
	return mapping.Profile{
		Source:      Source,
		DisplayName: "Tradezella",
		Fields: []mapping.FieldSpec{
			{Field: mapping.FieldVendorTradeID, Aliases: []string{"Trade ID", "Id"}},
			{Field: mapping.FieldAccount, Aliases: []string{"Account Name", "Account"}},
			{Field: mapping.FieldInstrument, Aliases: []string{"Symbol", "Instrument"}},
			{Field: mapping.FieldSide, Aliases: []string{"Side", "Direction"}},
			{Field: mapping.FieldQuantity, Aliases: []string{"Quantity", "Qty", "Shares"}},
			{Field: mapping.FieldEntryPrice, Aliases: []string{"Entry Price", "Avg Entry Price"}},
			{Field: mapping.FieldClosePrice, Aliases: []string{"Exit Price", "Avg Exit Price"}},
			{Field: mapping.FieldEntryTime, Aliases: []string{"Open Date", "Entry Date"}},
			{Field: mapping.FieldEntryClock, Aliases: []string{"Open Time", "Entry Time"}},
			{Field: mapping.FieldCloseTime, Aliases: []string{"Close Date", "Exit Date"}},
			{Field: mapping.FieldCloseClock, Aliases: []string{"Close Time", "Exit Time"}},
			{Field: mapping.FieldPnL, Aliases: []string{"Net P&L", "Net PnL", "Gross P&L"}},
			{Field: mapping.FieldCommission, Aliases: []string{"Commissions", "Commission", "Fees"}},
			{Field: mapping.FieldStopLoss, Aliases: []string{"Stop Loss", "Initial Stop"}},
			{Field: mapping.FieldTakeProfit, Aliases: []string{"Profit Target", "Take Profit"}},
		},
		Dates: []mapping.DateConvention{mapping.ConventionMonthFirst, mapping.ConventionISOUTC},
		PnL:   mapping.PnLAsReported,
	}
}

func NewParser() *mapping.Parser {
	return mapping.NewParser(Profile())
}
