package generic

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/username/tradejournal/backend/src/parsers/mapping"
)

const Source = "generic"

var ErrInvalidMapping = errors.New("invalid column mapping")

// DateOrder hints how slash dates in a user's file are ordered.
const (
	DateOrderDayFirst   = "day_first"
	DateOrderMonthFirst = "month_first"
)

// Profile builds a profile from a user column mapping of canonical field name to header.
// With no date order hint only unambiguous (ISO) dates are accepted.
func Profile(columns map[string]string, dateOrder string) (mapping.Profile, error) {
	p := mapping.Profile{
		Source:      Source,
		DisplayName: "Generic CSV",
		Dates:       []mapping.DateConvention{mapping.ConventionISOUTC},
		PnL:         mapping.PnLAsReported,
	}

	switch strings.ToLower(strings.TrimSpace(dateOrder)) {
	case "":
	case DateOrderDayFirst:
		p.Dates = append(p.Dates, mapping.ConventionDayFirst)
	case DateOrderMonthFirst:
		p.Dates = append(p.Dates, mapping.ConventionMonthFirst)
	default:
		return mapping.Profile{}, fmt.Errorf("%w: unknown date order %q", ErrInvalidMapping, dateOrder)
	}

	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		header := strings.TrimSpace(columns[name])
		if header == "" {
			continue
		}
		field, ok := mapping.ParseField(name)
		if !ok {
			return mapping.Profile{}, fmt.Errorf("%w: unknown field %q", ErrInvalidMapping, name)
		}
		p.Fields = append(p.Fields, mapping.FieldSpec{Field: field, Aliases: []string{header}})
		if field == mapping.FieldSwap {
			p.PnL = mapping.PnLAddSwap
		}
	}

	if err := p.Validate(); err != nil {
		return mapping.Profile{}, fmt.Errorf("%w: %v", ErrInvalidMapping, err)
	}
	return p, nil
}

func NewParser(columns map[string]string, dateOrder string) (*mapping.Parser, error) {
	p, err := Profile(columns, dateOrder)
	if err != nil {
		return nil, err
	}
	return mapping.NewParser(p), nil
}
