package mapping

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/tradejournal/backend/src/models"
)

// DateConvention names one way a vendor writes timestamps.
type DateConvention int

const (
	// ConventionISOUTC is ISO-8601 without a zone marker, documented by the vendor as UTC.
	ConventionISOUTC DateConvention = iota
	// ConventionDayFirst is DD/MM/YYYY HH:MM[:SS].
	ConventionDayFirst
	// ConventionMonthFirst is MM/DD/YYYY HH:MM[:SS] with an optional trailing ±HH:MM offset.
	ConventionMonthFirst
)

func (c DateConvention) String() string {
	switch c {
	case ConventionISOUTC:
		return "iso_utc"
	case ConventionDayFirst:
		return "day_first"
	case ConventionMonthFirst:
		return "month_first"
	default:
		return "unknown"
	}
}

var (
	isoNoZoneRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}(:\d{2}(\.\d+)?)?$`)
	slashDateRe    = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})(?:[ T]+(\d{1,2}):(\d{2})(?::(\d{2})(?:\.(\d+))?)?)?(?:\s*([+-]\d{2}):?(\d{2}))?$`)
	numberStripper = strings.NewReplacer("$", "", "€", "", "£", "", " ", "", "\u00a0", "")
)

// fallbackLayouts never contain a slash layout: a day/month order cannot be guessed safely.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp tries each convention in order, then a fixed list of unambiguous layouts.
// The result is always in UTC. ok is false when nothing matched.
func ParseTimestamp(value string, conventions ...DateConvention) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, c := range conventions {
		var (
			t  time.Time
			ok bool
		)
		switch c {
		case ConventionISOUTC:
			t, ok = parseISOUTC(value)
		case ConventionDayFirst:
			t, ok = parseSlashDate(value, true)
		case ConventionMonthFirst:
			t, ok = parseSlashDate(value, false)
		}
		if ok {
			return t, true
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseISOUTC(value string) (time.Time, bool) {
	if isoNoZoneRe.MatchString(value) {
		value = strings.Replace(value, " ", "T", 1)
		if strings.Count(value, ":") == 1 {
			value += ":00"
		}
		value += "Z"
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// parseSlashDate extracts the components explicitly instead of relying on a layout guess.
func parseSlashDate(value string, dayFirst bool) (time.Time, bool) {
	m := slashDateRe.FindStringSubmatch(value)
	if m == nil {
		return time.Time{}, false
	}
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	day, month := first, second
	if !dayFirst {
		day, month = second, first
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	var hour, minute, sec, nsec int
	if m[4] != "" {
		hour, _ = strconv.Atoi(m[4])
		minute, _ = strconv.Atoi(m[5])
		if m[6] != "" {
			sec, _ = strconv.Atoi(m[6])
		}
		if m[7] != "" {
			frac := (m[7] + "000000000")[:9]
			nsec, _ = strconv.Atoi(frac)
		}
	}
	if hour > 23 || minute > 59 || sec > 59 {
		return time.Time{}, false
	}

	loc := time.UTC
	if m[8] != "" {
		offH, _ := strconv.Atoi(m[8])
		offM, _ := strconv.Atoi(m[9])
		offset := offH*3600 + sign(offH, m[8])*offM*60
		loc = time.FixedZone("", offset)
	}

	t := time.Date(year, time.Month(month), day, hour, minute, sec, nsec, loc)
	// time.Date normalizes 31/02 into March; reject instead of shifting the date.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func sign(hours int, raw string) int {
	if hours < 0 || strings.HasPrefix(raw, "-") {
		return -1
	}
	return 1
}

// ParseDecimal parses a vendor number. Currency symbols and spaces are ignored, both
// decimal-point and decimal-comma notation are accepted and an accounting-style
// "(12.50)" is negative.
func ParseDecimal(value string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return decimal.Zero, false
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = normalizeSeparators(numberStripper.Replace(s))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// normalizeSeparators rewrites grouping and decimal marks into plain "1234.5" form.
// A comma after the last dot, or a single comma with no dot, is a decimal comma
// ("1,5", "1.234,56"). Otherwise commas are thousands separators ("1,234.50", "1,234,567").
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	if lastComma < 0 {
		return s
	}
	lastDot := strings.LastIndex(s, ".")
	decimalComma := lastComma > lastDot
	if lastDot < 0 && strings.Count(s, ",") > 1 {
		decimalComma = false
	}
	if !decimalComma {
		return strings.ReplaceAll(s, ",", "")
	}
	s = strings.ReplaceAll(s, ".", "")
	return strings.Replace(s, ",", ".", 1)
}

// ParseNumber is ParseDecimal defaulting to 0.
func ParseNumber(value string) float64 {
	d, ok := ParseDecimal(value)
	if !ok {
		return 0
	}
	return d.InexactFloat64()
}

// OptionalPrice treats empty, malformed and zero cells as "not set".
// Vendors export "0.00" for a stop loss or take profit that was never placed.
func OptionalPrice(value string) *float64 {
	d, ok := ParseDecimal(value)
	if !ok || d.IsZero() {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

// NormalizeSide maps the vendor spellings onto the canonical sides.
func NormalizeSide(value string) (models.Side, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "buy", "long", "b", "bot", "buy market", "buy limit", "buy stop":
		return models.SideBuy, true
	case "sell", "short", "s", "sld", "sell market", "sell limit", "sell stop":
		return models.SideSell, true
	default:
		return "", false
	}
}
