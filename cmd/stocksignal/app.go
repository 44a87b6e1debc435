package main

import (
	"fmt"
	"time"

	"StockSignal/internal/calculator"
	"StockSignal/internal/collector"
	"StockSignal/internal/config"
	"StockSignal/internal/logger"
	"StockSignal/internal/metrics"
	"StockSignal/internal/report"
	"StockSignal/internal/watchlist"

	"go.uber.org/zap"
)

// app holds the components shared by the subcommands.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Metrics
}

func newApp(mock bool) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if mock {
		cfg.DataSource.Provider = "mock"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	log, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return &app{cfg: cfg, log: log, metrics: metrics.New()}, nil
}

// fetcher builds provider -> retry -> cache.
func (a *app) fetcher() collector.Fetcher {
	ds := a.cfg.DataSource
	var f collector.Fetcher
	switch ds.Provider {
	case "rest":
		f = collector.NewRESTFetcher(ds.BaseURL, ds.APIKey, a.cfg.Proxy, ds.RequestsPerSecond)
	case "mock":
		f = &collector.MockFetcher{}
	default:
		f = collector.NewYahooFetcher(a.cfg.Proxy, ds.RequestsPerSecond)
	}
	a.log.Info("data source", zap.String("provider", f.Name()))
	f = collector.NewRetryFetcher(f, ds.Retries, time.Second, a.log)
	return collector.NewCachedFetcher(f, ds.CacheTTL)
}

func (a *app) assembler() *report.Assembler {
	q := collector.Query{Range: a.cfg.DataSource.Lookback, Interval: a.cfg.DataSource.Interval}
	engine := calculator.NewEngine(a.cfg.Indicators.Params)
	an := collector.NewAnalyzer(a.fetcher(), engine, q, a.cfg.DataSource.Timeout, a.log, a.metrics)
	return report.NewAssembler(an, a.cfg.Report.Concurrency, a.log, a.metrics)
}

func (a *app) watchlist() (*watchlist.Manager, error) {
	wl, err := watchlist.NewManager(watchlist.NewFileStore(a.cfg.Watchlist.File))
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	return wl, nil
}
