package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"StockSignal/internal/watchlist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := "watchlist:\n  file: " + filepath.Join(dir, "watchlist.json") + "\nlogger:\n  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	return path
}

func TestReportCmd_MockWithCharts(t *testing.T) {
	cfgPath = writeConfig(t)
	chartDir := filepath.Join(t.TempDir(), "charts")

	var out bytes.Buffer
	cmd := reportCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--mock", "--chart-dir", chartDir, "aapl", "msft"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "AAPL")
	assert.Contains(t, out.String(), "MSFT")
	assert.Less(t, strings.Index(out.String(), "AAPL"), strings.Index(out.String(), "MSFT"))

	data, err := os.ReadFile(filepath.Join(chartDir, "AAPL.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "date,close,ema20,ema50\n"))
}

func TestReportCmd_RejectsPathLikeSymbols(t *testing.T) {
	cfgPath = writeConfig(t)
	base := t.TempDir()
	chartDir := filepath.Join(base, "charts")

	for _, arg := range []string{"../x", `..\x`, "a/b"} {
		cmd := reportCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"--mock", "--chart-dir", chartDir, arg})
		err := cmd.Execute()
		require.ErrorIs(t, err, watchlist.ErrInvalidSymbol, arg)
	}
	_, err := os.Stat(filepath.Join(base, "X.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestWatchCmd_AddListRemove(t *testing.T) {
	cfgPath = writeConfig(t)

	run := func(args ...string) string {
		var out bytes.Buffer
		cmd := watchCmd()
		cmd.SetOut(&out)
		cmd.SetArgs(args)
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	assert.Equal(t, "AAPL\nMSFT\n", run("list"))
	assert.Equal(t, "added nvda\n", run("add", "nvda"))
	assert.Equal(t, "removed AAPL\n", run("remove", "AAPL"))
	assert.Equal(t, "MSFT\nNVDA\n", run("list"))
}
