package search_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foliogate/internal/search"
)

const testCatalog = `
symbols:
  - ticker: aapl
    name: Apple Inc.
    exchange: NASDAQ
    currency: USD
  - ticker: MSFT
    name: Microsoft Corporation
brokers:
  - name: Interactive Brokers
    aliases: [IBKR]
  - name: Fidelity
`

func TestParseCatalog(t *testing.T) {
	c, err := search.ParseCatalog(strings.NewReader(testCatalog))
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "MSFT"}, c.Tickers())
	require.Len(t, c.Brokers, 2)
	assert.Equal(t, []string{"IBKR"}, c.Brokers[0].Aliases)
}

func TestParseCatalog_Invalid(t *testing.T) {
	_, err := search.ParseCatalog(strings.NewReader("symbols:\n  - name: No Ticker\n"))
	assert.ErrorContains(t, err, "no ticker")

	_, err = search.ParseCatalog(strings.NewReader("stocks: []\n"))
	assert.Error(t, err)

	c, err := search.ParseCatalog(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, c.Symbols)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))

	c, err := search.LoadCatalog(path)
	require.NoError(t, err)
	assert.Len(t, c.Symbols, 2)

	_, err = search.LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	def, err := search.LoadCatalog("")
	require.NoError(t, err)
	assert.Contains(t, def.Tickers(), "AAPL")
	assert.NotEmpty(t, def.Brokers)
}

func TestCatalog_SearchSymbolsMatchesNames(t *testing.T) {
	c, err := search.ParseCatalog(strings.NewReader(testCatalog))
	require.NoError(t, err)

	got := c.SearchSymbols("micro")
	require.Len(t, got, 1)
	assert.Equal(t, "MSFT", got[0].Item.Ticker)
	assert.Equal(t, search.ScorePrefix, got[0].Score)

	got = c.SearchSymbols("aapl")
	require.Len(t, got, 1)
	assert.Equal(t, search.ScoreExact, got[0].Score)
}

func TestCatalog_SearchBrokersMatchesAliases(t *testing.T) {
	c, err := search.ParseCatalog(strings.NewReader(testCatalog))
	require.NoError(t, err)

	got := c.SearchBrokers("ibkr")
	require.Len(t, got, 1)
	assert.Equal(t, "Interactive Brokers", got[0].Item.Name)
	assert.Equal(t, search.ScoreExact, got[0].Score)
}
