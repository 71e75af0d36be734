package watchlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWatchlist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watchlist.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSymbols(t *testing.T) {
	t.Run("normalizes and dedupes", func(t *testing.T) {
		path := writeWatchlist(t, "symbol,company,sector\n aapl ,Apple Inc.,Information Technology\nMSFT,Microsoft,Information Technology\nAAPL,Duplicate,X\n,Blank,Y\nxom,Exxon Mobil,Energy\n")
		svc := NewService(path)

		symbols, err := svc.LoadSymbols()
		require.NoError(t, err)
		require.Len(t, symbols, 3)
		assert.Equal(t, "AAPL", symbols[0].Symbol)
		assert.Equal(t, "Apple Inc.", symbols[0].Company)

		tickers, err := svc.GetSymbolsAsStrings()
		require.NoError(t, err)
		assert.Equal(t, []string{"AAPL", "MSFT", "XOM"}, tickers)
	})

	t.Run("missing file is empty", func(t *testing.T) {
		svc := NewService(filepath.Join(t.TempDir(), "nope.csv"))
		symbols, err := svc.LoadSymbols()
		require.NoError(t, err)
		assert.Empty(t, symbols)
	})

	t.Run("no file configured", func(t *testing.T) {
		tickers, err := NewService("").GetSymbolsAsStrings()
		require.NoError(t, err)
		assert.Empty(t, tickers)
	})
}

func TestCompanyAndInfo(t *testing.T) {
	path := writeWatchlist(t, "symbol,company,sector\nAAPL,Apple Inc.,Information Technology\nMSFT,Microsoft,Information Technology\nXOM,Exxon Mobil,\n")
	svc := NewService(path)

	assert.Equal(t, "Microsoft", svc.Company(" msft"))
	assert.Equal(t, "", svc.Company("TSLA"))

	info, err := svc.GetSymbolsInfo()
	require.NoError(t, err)
	assert.Equal(t, 3, info.Count)
	assert.Equal(t, 2, info.Sectors["Information Technology"])
	assert.Equal(t, 1, info.Sectors["Unknown"])
}

func TestReload(t *testing.T) {
	path := writeWatchlist(t, "symbol,company,sector\nAAPL,Apple Inc.,Tech\n")
	svc := NewService(path)

	tickers, err := svc.GetSymbolsAsStrings()
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, tickers)

	require.NoError(t, os.WriteFile(path, []byte("symbol,company,sector\nAAPL,Apple Inc.,Tech\nNVDA,NVIDIA,Tech\n"), 0644))

	// cached until reloaded
	tickers, _ = svc.GetSymbolsAsStrings()
	assert.Len(t, tickers, 1)

	symbols, err := svc.Reload()
	require.NoError(t, err)
	assert.Len(t, symbols, 2)
}
