package topstep

import (
	"github.com/username/tradejournal/backend/src/parsers/mapping"
)

const Source = "topstep"

// Profile describes the TopstepX trades export: US ordered timestamps carrying
// a UTC offset, Long/Short sides, and PnL reported before fees.
func Profile() mapping.Profile {
	return mapping.Profile{
		Source:      Source,
		DisplayName: "Topstep",
		Fields: []mapping.FieldSpec{
			{Field: mapping.FieldVendorTradeID, Aliases: []string{"Id", "TradeId"}},
			{Field: mapping.FieldInstrument, Aliases: []string{"ContractName", "Contract", "Symbol"}},
			{Field: mapping.FieldSide, Aliases: []string{"Type", "Side"}},
			{Field: mapping.FieldQuantity, Aliases: []string{"Size", "Quantity"}},
			{Field: mapping.FieldEntryPrice, Aliases: []string{"EntryPrice", "Entry Price"}},
			{Field: mapping.FieldClosePrice, Aliases: []string{"ExitPrice", "Exit Price"}},
			{Field: mapping.FieldEntryTime, Aliases: []string{"EnteredAt", "Entered At"}},
			{Field: mapping.FieldCloseTime, Aliases: []string{"ExitedAt", "Exited At"}},
			{Field: mapping.FieldPnL, Aliases: []string{"PnL", "P&L"}},
			{Field: mapping.FieldCommission, Aliases: []string{"Fees", "Commissions"}},
		},
		Dates: []mapping.DateConvention{mapping.ConventionMonthFirst, mapping.ConventionISOUTC},
		PnL:   mapping.PnLAsReported,
	}
}

func NewParser() *mapping.Parser {
	return mapping.NewParser(Profile())
}
