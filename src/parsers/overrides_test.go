package parsers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/tradejournal/backend/src/parsers/mapping"
)

func TestParseOverrides(t *testing.T) {
	data := []byte(`
Match Trader:
  instrument: ["Instrument name"]
  close_time: ["Closed at", ""]
exness:
  commission: [fee_usd]
`)
	o, err := ParseOverrides(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Instrument name"}, o["matchtrader"][mapping.FieldInstrument])
	assert.Equal(t, []string{"Closed at"}, o["matchtrader"][mapping.FieldCloseTime])
	assert.Equal(t, []string{"fee_usd"}, o["exness"][mapping.FieldCommission])
}

func TestParseOverrides_Errors(t *testing.T) {
	_, err := ParseOverrides([]byte("exness:\n  lots: [size]\n"))
	assert.ErrorContains(t, err, "unknown field")

	_, err = ParseOverrides([]byte("exness: [1, 2"))
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	o, err := LoadOverrides("")
	require.NoError(t, err)
	assert.Nil(t, o)

	path := filepath.Join(t.TempDir(), "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tradezella:\n  pnl: [Realized P&L]\n"), 0o600))
	o, err = LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Realized P&L"}, o["tradezella"][mapping.FieldPnL])

	_, err = LoadOverrides(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
