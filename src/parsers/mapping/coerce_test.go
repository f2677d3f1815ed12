package mapping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/tradejournal/backend/src/models"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		conventions []DateConvention
		want        time.Time
		wantOK      bool
	}{
		{
			name:        "iso without zone is utc",
			value:       "2025-11-05T14:59:06.38",
			conventions: []DateConvention{ConventionISOUTC},
			want:        time.Date(2025, 11, 5, 14, 59, 6, 380000000, time.UTC),
			wantOK:      true,
		},
		{
			name:        "iso with space and minutes only",
			value:       "2025-11-05 14:59",
			conventions: []DateConvention{ConventionISOUTC},
			want:        time.Date(2025, 11, 5, 14, 59, 0, 0, time.UTC),
			wantOK:      true,
		},
		{
			name:        "iso with offset converted to utc",
			value:       "2025-11-05T16:59:06+02:00",
			conventions: []DateConvention{ConventionISOUTC},
			want:        time.Date(2025, 11, 5, 14, 59, 6, 0, time.UTC),
			wantOK:      true,
		},
		{
			name:        "day first",
			value:       "05/11/2025 14:59:06",
			conventions: []DateConvention{ConventionISOUTC, ConventionDayFirst},
			want:        time.Date(2025, 11, 5, 14, 59, 6, 0, time.UTC),
			wantOK:      true,
		},
		{
			name:        "month first with negative offset",
			value:       "11/05/2025 09:30:00 -05:00",
			conventions: []DateConvention{ConventionMonthFirst},
			want:        time.Date(2025, 11, 5, 14, 30, 0, 0, time.UTC),
			wantOK:      true,
		},
		{
			name:        "month first date only",
			value:       "11/05/2025",
			conventions: []DateConvention{ConventionMonthFirst},
			want:        time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
			wantOK:      true,
		},
		{
			name:        "half hour offset",
			value:       "05/11/2025 20:29:06 +05:30",
			conventions: []DateConvention{ConventionDayFirst},
			want:        time.Date(2025, 11, 5, 14, 59, 6, 0, time.UTC),
			wantOK:      true,
		},
		{
			name:        "impossible day rejected",
			value:       "31/02/2025 10:00:00",
			conventions: []DateConvention{ConventionDayFirst},
			wantOK:      false,
		},
		{
			name:        "month out of range for convention",
			value:       "05/13/2025",
			conventions: []DateConvention{ConventionDayFirst},
			wantOK:      false,
		},
		{
			name:   "slash date never guessed without convention",
			value:  "05/11/2025 14:59:06",
			wantOK: false,
		},
		{
			name:   "fallback iso date",
			value:  "2025-11-05",
			want:   time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:        "empty",
			value:       "  ",
			conventions: []DateConvention{ConventionISOUTC},
			wantOK:      false,
		},
		{
			name:        "garbage",
			value:       "yesterday",
			conventions: []DateConvention{ConventionISOUTC, ConventionDayFirst},
			wantOK:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.value, tt.conventions...)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
				assert.Equal(t, time.UTC, got.Location())
			}
		})
	}
}

func TestParseTimestamp_DayFirstIsNotMonthFirst(t *testing.T) {
	got, ok := ParseTimestamp("05/11/2025 14:59:06", ConventionDayFirst)
	require.True(t, ok)
	assert.Equal(t, time.November, got.Month())
	assert.Equal(t, 5, got.Day())
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		value  string
		want   string
		wantOK bool
	}{
		{"100.00", "100", true},
		{"-5.00", "-5", true},
		{"$1,234.50", "1234.5", true},
		{"(12.50)", "-12.5", true},
		{" 1 000 ", "1000", true},
		{"€ 42", "42", true},
		{"1,5", "1.5", true},
		{"0,01", "0.01", true},
		{"-40,25", "-40.25", true},
		{"1.234,56", "1234.56", true},
		{"1 234,56", "1234.56", true},
		{"1,234,567", "1234567", true},
		{"1,2,3.4", "123.4", true},
		{"", "0", false},
		{"n/a", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := ParseDecimal(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestParseNumber_DefaultsToZero(t *testing.T) {
	assert.Equal(t, 0.0, ParseNumber(""))
	assert.Equal(t, 0.0, ParseNumber("abc"))
	assert.Equal(t, 1.105, ParseNumber("1.105"))
}

func TestOptionalPrice(t *testing.T) {
	assert.Nil(t, OptionalPrice("0.00"))
	assert.Nil(t, OptionalPrice("0"))
	assert.Nil(t, OptionalPrice(""))
	assert.Nil(t, OptionalPrice("-"))

	got := OptionalPrice("1.2345")
	require.NotNil(t, got)
	assert.InDelta(t, 1.2345, *got, 1e-12)
}

func TestNormalizeSide(t *testing.T) {
	for _, v := range []string{"buy", "Buy", "BUY", " long ", "Buy Limit"} {
		side, ok := NormalizeSide(v)
		assert.True(t, ok, v)
		assert.Equal(t, models.SideBuy, side, v)
	}
	for _, v := range []string{"sell", "Sell", "SELL", "Short", "sell stop"} {
		side, ok := NormalizeSide(v)
		assert.True(t, ok, v)
		assert.Equal(t, models.SideSell, side, v)
	}
	_, ok := NormalizeSide("balance")
	assert.False(t, ok)
}
