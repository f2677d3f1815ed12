package mapping

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_Validate(t *testing.T) {
	assert.NoError(t, testProfile().Validate())

	p := testProfile()
	p.Source = " "
	assert.True(t, errors.Is(p.Validate(), ErrInvalidProfile))

	p = testProfile()
	p.Fields = p.Fields[:3]
	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidProfile))

	p = testProfile()
	for i := range p.Fields {
		if p.Fields[i].Field == FieldInstrument {
			p.Fields[i].Aliases = []string{" "}
		}
	}
	assert.Error(t, p.Validate())
}

func TestProfile_WithAliasesCopies(t *testing.T) {
	base := testProfile()
	extended := base.WithAliases(map[Field][]string{
		FieldInstrument: {"Instrument name"},
		FieldEntryClock: {"Open clock"},
	})

	assert.Equal(t, []string{"Symbol"}, base.Aliases(FieldInstrument))
	assert.Equal(t, []string{"Symbol", "Instrument name"}, extended.Aliases(FieldInstrument))
	assert.Nil(t, base.Aliases(FieldEntryClock))
	assert.Equal(t, []string{"Open clock"}, extended.Aliases(FieldEntryClock))
	assert.NoError(t, extended.Validate())
}

func TestProfile_ExpectedColumns(t *testing.T) {
	cols := testProfile().ExpectedColumns()
	assert.Equal(t, []string{"Close time"}, cols["close_time"])
	assert.Equal(t, []string{"Profit"}, cols["pnl"])
}

func TestParseField(t *testing.T) {
	for f := Field(0); f < fieldCount; f++ {
		got, ok := ParseField(f.String())
		require.True(t, ok, f.String())
		assert.Equal(t, f, got)
	}
	got, ok := ParseField(" Close_Time ")
	assert.True(t, ok)
	assert.Equal(t, FieldCloseTime, got)

	_, ok = ParseField("volume")
	assert.False(t, ok)
	assert.Equal(t, "field(99)", Field(99).String())
}
