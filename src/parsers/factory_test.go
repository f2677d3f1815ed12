package parsers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/tradejournal/backend/src/models"
	"github.com/username/tradejournal/backend/src/parsers/mapping"
)

func TestGetParser_KnownSources(t *testing.T) {
	for _, source := range []string{"matchtrader", "Match Trader", "match-trader", "tradezella", "TOPSTEP", "exness"} {
		p, err := GetParser(source)
		require.NoError(t, err, source)
		assert.NotEmpty(t, p.Profile().Source)
	}
}

func TestGetParser_UnknownAndGeneric(t *testing.T) {
	_, err := GetParser("mt5")
	assert.True(t, errors.Is(err, ErrUnknownSource))

	_, err = GetParser("generic")
	assert.True(t, errors.Is(err, ErrMappingRequired))
}

func TestRegistry_GenericParser(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)

	_, err = r.GenericParser(nil, "")
	assert.True(t, errors.Is(err, ErrMappingRequired))

	p, err := r.GenericParser(map[string]string{
		"instrument": "Sym",
		"quantity":   "Q",
		"entry_time": "A",
		"close_time": "B",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "generic", p.Profile().Source)
}

func TestRegistry_Sources(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)

	sources := r.Sources()
	require.Len(t, sources, 5)
	assert.Equal(t, "matchtrader", sources[0].Source)
	assert.Equal(t, "generic", sources[len(sources)-1].Source)
	for _, s := range sources {
		assert.Equal(t, []string{"instrument", "quantity", "entry_time", "close_time"}, s.RequiredFields)
	}
	assert.Contains(t, sources[0].ExpectedColumns["close_time"], "Close time")
}

func TestRegistry_OverridesExtendAliases(t *testing.T) {
	r, err := NewRegistry(Overrides{
		"topstep": {mapping.FieldInstrument: {"Contract Symbol"}},
	})
	require.NoError(t, err)

	p, err := r.GetParser("topstep")
	require.NoError(t, err)
	table := models.Table{
		Headers: []string{"Contract Symbol", "Size", "EnteredAt", "ExitedAt"},
		Rows:    [][]string{{"NQZ5", "1", "2025-11-05 14:30:00", "2025-11-05 14:35:00"}},
	}
	res, err := p.Parse(table, "", "u")
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)
	assert.Equal(t, "NQZ5", res.Trades[0].Instrument)

	// default registry is untouched
	def, err := GetParser("topstep")
	require.NoError(t, err)
	_, err = def.Parse(table, "", "u")
	assert.True(t, errors.Is(err, mapping.ErrUnknownFormat))
}

func TestRegistry_OverrideForUnknownSource(t *testing.T) {
	_, err := NewRegistry(Overrides{"ninjatrader": {mapping.FieldInstrument: {"Instrument"}}})
	assert.True(t, errors.Is(err, ErrUnknownSource))
}

func TestMustRegistry(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)
	assert.Same(t, r, mustRegistry(r, nil))
	assert.NotNil(t, defaultRegistry)

	assert.Panics(t, func() {
		mustRegistry(nil, errors.New("matchtrader has no alias for required field quantity"))
	})
}
