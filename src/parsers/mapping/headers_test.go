package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderIndex_Resolve(t *testing.T) {
	idx := NewHeaderIndex([]string{"\ufeffID", " Open\u00a0Time ", "SYMBOL", "Profit"})

	assert.Equal(t, 4, idx.Len())
	assert.Equal(t, 0, idx.Resolve("id"))
	assert.Equal(t, 1, idx.Resolve("Opening time", "Open time"))
	assert.Equal(t, 2, idx.Resolve("Symbol"))
	assert.Equal(t, -1, idx.Resolve("Close time", "Closing time"))
	assert.Equal(t, -1, idx.Resolve())
}

func TestHeaderIndex_ResolvePrefersEarlierAlias(t *testing.T) {
	idx := NewHeaderIndex([]string{"Gross P&L", "Net P&L"})

	assert.Equal(t, 1, idx.Resolve("Net P&L", "Gross P&L"))
	assert.Equal(t, 0, idx.Resolve("Gross P&L", "Net P&L"))
}
