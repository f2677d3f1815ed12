package mapping

import (
	"errors"
	"fmt"
	"strings"
)

// Field is a canonical trade field a vendor column can map onto.
type Field int

const (
	FieldAccount Field = iota
	FieldVendorTradeID
	FieldInstrument
	FieldSide
	FieldQuantity
	FieldEntryPrice
	FieldClosePrice
	FieldEntryTime
	FieldEntryClock // time-of-day column completing FieldEntryTime
	FieldCloseTime
	FieldCloseClock // time-of-day column completing FieldCloseTime
	FieldPnL
	FieldSwap
	FieldCommission
	FieldStopLoss
	FieldTakeProfit
	FieldCloseReason

	fieldCount
)

var fieldNames = [fieldCount]string{
	FieldAccount:       "account",
	FieldVendorTradeID: "trade_id",
	FieldInstrument:    "instrument",
	FieldSide:          "side",
	FieldQuantity:      "quantity",
	FieldEntryPrice:    "entry_price",
	FieldClosePrice:    "close_price",
	FieldEntryTime:     "entry_time",
	FieldEntryClock:    "entry_clock",
	FieldCloseTime:     "close_time",
	FieldCloseClock:    "close_clock",
	FieldPnL:           "pnl",
	FieldSwap:          "swap",
	FieldCommission:    "commission",
	FieldStopLoss:      "stop_loss",
	FieldTakeProfit:    "take_profit",
	FieldCloseReason:   "close_reason",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField maps a field name (as used in column mappings and override files) to a Field.
func ParseField(name string) (Field, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range fieldNames {
		if n == name {
			return Field(f), true
		}
	}
	return 0, false
}

// RequiredFields must each have a column in the file, and a usable value in a row,
// for that row to produce a trade.
var RequiredFields = []Field{FieldInstrument, FieldQuantity, FieldEntryTime, FieldCloseTime}

// PnLPolicy says how the vendor's reported profit relates to realized P&L.
type PnLPolicy int

const (
	// PnLAsReported means the vendor's P&L column is already the realized figure.
	PnLAsReported PnLPolicy = iota
	// PnLAddSwap folds a separately reported swap into the reported profit.
	PnLAddSwap
)

// FieldSpec lists the header spellings accepted for one canonical field.
type FieldSpec struct {
	Field    Field
	Aliases  []string
	Required bool
}

// Profile is everything vendor-specific about one export format.
type Profile struct {
	Source      string
	DisplayName string
	Fields      []FieldSpec
	Dates       []DateConvention
	PnL         PnLPolicy
	// SummaryMarkers are trade-id cell values that mark a totals row rather than a trade.
	SummaryMarkers []string
}

var ErrInvalidProfile = errors.New("invalid vendor profile")

// Validate checks that every required canonical field has at least one alias.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Source) == "" {
		return fmt.Errorf("%w: empty source name", ErrInvalidProfile)
	}
	for _, req := range RequiredFields {
		spec, ok := p.spec(req)
		if !ok || len(nonEmpty(spec.Aliases)) == 0 {
			return fmt.Errorf("%w: %s has no alias for required field %s", ErrInvalidProfile, p.Source, req)
		}
	}
	return nil
}

// Aliases returns the accepted headers for f, or nil when the profile does not map it.
func (p Profile) Aliases(f Field) []string {
	spec, ok := p.spec(f)
	if !ok {
		return nil
	}
	return spec.Aliases
}

// ExpectedColumns lists, per required field, the header names the profile accepts.
func (p Profile) ExpectedColumns() map[string][]string {
	out := make(map[string][]string, len(p.Fields))
	for _, spec := range p.Fields {
		out[spec.Field.String()] = append([]string(nil), spec.Aliases...)
	}
	return out
}

// WithAliases returns a copy of p with extra aliases appended per field.
// Fields the profile did not map yet are added as optional.
func (p Profile) WithAliases(extra map[Field][]string) Profile {
	out := p
	out.Fields = make([]FieldSpec, len(p.Fields))
	for i, spec := range p.Fields {
		spec.Aliases = append(append([]string(nil), spec.Aliases...), extra[spec.Field]...)
		out.Fields[i] = spec
	}
	for f := Field(0); f < fieldCount; f++ {
		aliases := extra[f]
		if _, ok := p.spec(f); ok || len(aliases) == 0 {
			continue
		}
		out.Fields = append(out.Fields, FieldSpec{Field: f, Aliases: append([]string(nil), aliases...)})
	}
	return out
}

func (p Profile) spec(f Field) (FieldSpec, bool) {
	for _, spec := range p.Fields {
		if spec.Field == f {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

func (p Profile) isRequired(f Field) bool {
	for _, req := range RequiredFields {
		if req == f {
			return true
		}
	}
	spec, ok := p.spec(f)
	return ok && spec.Required
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
