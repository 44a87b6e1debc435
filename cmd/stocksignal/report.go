package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"StockSignal/internal/report"
	"StockSignal/internal/watchlist"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func reportCmd() *cobra.Command {
	var (
		chartDir string
		mock     bool
	)
	cmd := &cobra.Command{
		Use:   "report [SYMBOL...]",
		Short: "Print the latest readings for the given symbols or the watchlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(mock)
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()

			symbols := make([]string, 0, len(args))
			for _, s := range args {
				sym, err := watchlist.Normalize(s)
				if err != nil {
					return err
				}
				symbols = append(symbols, sym)
			}
			if len(symbols) == 0 {
				wl, err := a.watchlist()
				if err != nil {
					return err
				}
				symbols = wl.List()
			}
			if len(symbols) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Watchlist is empty. Use 'stocksignal watch add SYMBOL'.")
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reports := a.assembler().Run(ctx, symbols)
			if err := report.WriteText(cmd.OutOrStdout(), reports, a.cfg.Indicators.TableRows); err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			if chartDir == "" {
				chartDir = a.cfg.Report.ChartDir
			}
			if chartDir != "" {
				if err := writeCharts(chartDir, reports); err != nil {
					return err
				}
				a.log.Info("charts written", zap.String("dir", chartDir))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&chartDir, "chart-dir", "", "Write <SYMBOL>.csv chart data (close, EMA20, EMA50) into this directory")
	cmd.Flags().BoolVar(&mock, "mock", false, "Use generated prices instead of a remote provider")
	return cmd
}

func writeCharts(dir string, reports []report.SymbolReport) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	for i := range reports {
		an := reports[i].Analysis
		if an == nil {
			continue
		}
		var buf bytes.Buffer
		if err := report.WriteChartCSV(&buf, an); err != nil {
			return fmt.Errorf("chart %s: %w", reports[i].Symbol, err)
		}
		path := filepath.Join(dir, reports[i].Symbol+".csv")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write chart %s: %w", path, err)
		}
	}
	return nil
}
