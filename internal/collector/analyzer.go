// Package collector retrieves price history and runs the indicator pipeline
// for one symbol at a time.
package collector

import (
	"context"
	"fmt"
	"time"

	"StockSignal/internal/calculator"
	"StockSignal/internal/metrics"
	"StockSignal/internal/model"
	"StockSignal/internal/series"
	"StockSignal/internal/strategy"

	"go.uber.org/zap"
)

// Analyzer orchestrates fetching and indicator computation for a symbol.
type Analyzer struct {
	Fetcher Fetcher
	Engine  *calculator.Engine
	Query   Query
	Timeout time.Duration
	Log     *zap.Logger
	Metrics *metrics.Metrics
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(fetcher Fetcher, engine *calculator.Engine, q Query, timeout time.Duration, log *zap.Logger, m *metrics.Metrics) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{Fetcher: fetcher, Engine: engine, Query: q, Timeout: timeout, Log: log, Metrics: m}
}

// Analyze fetches the history of symbol and derives indicators, per-row
// signals and the forecast. Missing history for the latest signal or forecast
// is recorded on the analysis; only retrieval failures and empty series are
// returned as errors.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (*model.Analysis, error) {
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	start := time.Now()
	bars, err := a.Fetcher.FetchDailyBars(ctx, symbol, a.Query)
	a.Metrics.ObserveFetch(time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("fetch %s from %s: %w", symbol, a.Fetcher.Name(), err)
	}

	s, dropped, err := series.Build(symbol, bars)
	for _, d := range dropped {
		a.Log.Debug("dropped observation", zap.String("symbol", symbol), zap.Error(d))
	}
	if err != nil {
		return nil, err
	}

	rows, err := a.Engine.Compute(s)
	if err != nil {
		return nil, fmt.Errorf("compute indicators for %s: %w", symbol, err)
	}

	an := &model.Analysis{
		Series:      s,
		Rows:        rows,
		Signals:     strategy.ClassifyAll(s, rows),
		GeneratedAt: time.Now(),
	}
	latest, _ := s.Latest()
	an.Signal, an.SignalErr = strategy.Classify(latest, rows[len(rows)-1])
	an.Forecast, an.ForecastErr = strategy.LatestForecast(rows)

	a.Log.Debug("symbol analysed",
		zap.String("symbol", symbol),
		zap.Int("observations", s.Len()),
		zap.Int("dropped", len(dropped)),
		zap.String("signal", string(an.Signal)))
	return an, nil
}
