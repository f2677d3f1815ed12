package mapping

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/username/tradejournal/backend/src/models"
)

// ErrUnknownFormat means the headers do not match the selected vendor at all.
// It is the only mapping failure that rejects a whole file.
var ErrUnknownFormat = errors.New("unrecognized file format")

// MissingColumn is a required field with no matching header.
type MissingColumn struct {
	Field    string   `json:"field"`
	Accepted []string `json:"accepted"`
}

// FormatError lists the required columns a file lacks for a given profile.
type FormatError struct {
	Source  string
	Missing []MissingColumn
}

func (e *FormatError) Error() string {
	parts := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		parts = append(parts, fmt.Sprintf("%s (one of %q)", m.Field, m.Accepted))
	}
	return fmt.Sprintf("%s: %s export must contain columns for %s", ErrUnknownFormat, e.Source, strings.Join(parts, ", "))
}

func (e *FormatError) Unwrap() error { return ErrUnknownFormat }

// SkippedRow records why a data row produced no trade. Row is 1-based, header excluded.
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Result is the output of one mapping pass over a file.
type Result struct {
	Trades  []models.Trade
	Skipped []SkippedRow
}

// columns holds the resolved header position of every canonical field, -1 when absent.
type columns [fieldCount]int

func resolveColumns(p Profile, headers []string) (columns, error) {
	var cols columns
	idx := NewHeaderIndex(headers)
	for f := Field(0); f < fieldCount; f++ {
		cols[f] = -1
		if aliases := p.Aliases(f); len(aliases) > 0 {
			cols[f] = idx.Resolve(aliases...)
		}
	}

	var missing []MissingColumn
	for f := Field(0); f < fieldCount; f++ {
		if cols[f] < 0 && p.isRequired(f) {
			missing = append(missing, MissingColumn{Field: f.String(), Accepted: p.Aliases(f)})
		}
	}
	if len(missing) > 0 {
		return cols, &FormatError{Source: p.Source, Missing: missing}
	}
	return cols, nil
}

// Map runs the profile over a whole table. Rows failing validation are dropped
// and reported in Result.Skipped. Headers are resolved once, before the row loop.
func Map(p Profile, table models.Table, accountID, userID string) (Result, error) {
	cols, err := resolveColumns(p, table.Headers)
	if err != nil {
		return Result{}, err
	}

	res := Result{Trades: make([]models.Trade, 0, len(table.Rows))}
	for i, row := range table.Rows {
		trade, reason := assemble(p, cols, row, accountID, userID)
		if reason != "" {
			res.Skipped = append(res.Skipped, SkippedRow{Row: i + 1, Reason: reason})
			continue
		}
		res.Trades = append(res.Trades, trade)
	}
	return res, nil
}

// assemble builds one trade, or returns the reason the row is not a trade.
func assemble(p Profile, cols columns, row []string, accountID, userID string) (models.Trade, string) {
	cell := func(f Field) string { return models.Cell(row, cols[f]) }

	if isBlank(row) {
		return models.Trade{}, "empty row"
	}
	vendorID := cell(FieldVendorTradeID)
	if vendorID != "" && p.isSummary(vendorID) {
		return models.Trade{}, "summary row"
	}

	instrument := cell(FieldInstrument)
	if instrument == "" {
		return models.Trade{}, "missing instrument"
	}
	qty, ok := ParseDecimal(cell(FieldQuantity))
	if !ok {
		return models.Trade{}, "missing quantity"
	}
	entry, ok := ParseTimestamp(joinClock(cell(FieldEntryTime), cell(FieldEntryClock)), p.Dates...)
	if !ok {
		return models.Trade{}, "missing entry time"
	}
	closed, ok := ParseTimestamp(joinClock(cell(FieldCloseTime), cell(FieldCloseClock)), p.Dates...)
	if !ok {
		return models.Trade{}, "missing close time"
	}

	side, ok := NormalizeSide(cell(FieldSide))
	if !ok {
		side = models.SideBuy
		if qty.IsNegative() {
			side = models.SideSell
		}
	}

	pnl := decimalOrZero(cell(FieldPnL))
	if p.PnL == PnLAddSwap {
		pnl = pnl.Add(decimalOrZero(cell(FieldSwap)))
	}

	account := strings.TrimSpace(accountID)
	if account == "" {
		account = cell(FieldAccount)
	}

	held := closed.Sub(entry).Seconds()
	if held < 0 {
		held = 0
	}

	return models.Trade{
		ID:             uuid.NewString(),
		AccountNumber:  account,
		Instrument:     instrument,
		Side:           side,
		Quantity:       qty.Abs().InexactFloat64(),
		EntryPrice:     ParseNumber(cell(FieldEntryPrice)),
		ClosePrice:     ParseNumber(cell(FieldClosePrice)),
		EntryDate:      entry,
		CloseDate:      closed,
		PnL:            pnl.InexactFloat64(),
		Commission:     decimalOrZero(cell(FieldCommission)).Abs().InexactFloat64(),
		StopLoss:       OptionalPrice(cell(FieldStopLoss)),
		TakeProfit:     OptionalPrice(cell(FieldTakeProfit)),
		CloseReason:    cell(FieldCloseReason),
		UserID:         userID,
		TimeInPosition: held,
		Source:         p.Source,
		VendorTradeID:  vendorID,
	}, ""
}

func (p Profile) isSummary(vendorID string) bool {
	for _, marker := range p.SummaryMarkers {
		if strings.EqualFold(vendorID, marker) {
			return true
		}
	}
	return false
}

func joinClock(date, clock string) string {
	if date == "" || clock == "" {
		return date
	}
	return date + " " + clock
}

func decimalOrZero(value string) decimal.Decimal {
	d, _ := ParseDecimal(value)
	return d
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Parser binds a profile to the mapping pass.
type Parser struct {
	profile Profile
}

func NewParser(p Profile) *Parser {
	return &Parser{profile: p}
}

func (p *Parser) Profile() Profile { return p.profile }

func (p *Parser) Parse(table models.Table, accountID, userID string) (Result, error) {
	return Map(p.profile, table, accountID, userID)
}
