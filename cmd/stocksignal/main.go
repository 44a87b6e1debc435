// stocksignal computes technical indicators and trading signals for a
// watchlist of stock tickers.
package main

import (
	"fmt"
	"os"
	_ "time/tzdata" // exchange time zones for Yahoo bars

	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "stocksignal",
		Short: "Technical-analysis signals for a stock watchlist",
		Long: `stocksignal fetches six months of daily prices for every ticker of a
watchlist, computes EMA20/EMA50/SMA200, RSI14 and the MACD histogram, and
classifies each day as Buy, Sell, Long-term strong or Watch.`,
		SilenceUsage: true,
	}

	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultCfg, "Path to the YAML config file")

	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
