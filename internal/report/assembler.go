// Package report runs the analysis over a watchlist and renders the results.
package report

import (
	"context"
	"errors"
	"fmt"

	"StockSignal/internal/metrics"
	"StockSignal/internal/model"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Analyzer produces the analysis of one symbol.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.Analysis, error)
}

// SymbolReport is the outcome for one symbol. Err is set when no analysis
// could be produced; Warnings carry the non-fatal gaps of a produced one.
type SymbolReport struct {
	Symbol   string
	Analysis *model.Analysis
	Err      error
	Warnings []error
}

// OK reports whether the symbol produced a full reading.
func (r *SymbolReport) OK() bool {
	return r.Err == nil && len(r.Warnings) == 0
}

// Assembler fans the analysis out over symbols.
type Assembler struct {
	Analyzer    Analyzer
	Concurrency int
	Log         *zap.Logger
	Metrics     *metrics.Metrics
}

// NewAssembler creates an Assembler. concurrency <= 0 means one symbol at a time.
func NewAssembler(a Analyzer, concurrency int, log *zap.Logger, m *metrics.Metrics) *Assembler {
	if concurrency <= 0 {
		concurrency = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{Analyzer: a, Concurrency: concurrency, Log: log, Metrics: m}
}

// Run analyses every symbol and returns one report per symbol in input order.
// A failing symbol never stops the others.
func (a *Assembler) Run(ctx context.Context, symbols []string) []SymbolReport {
	reports := make([]SymbolReport, len(symbols))
	var g errgroup.Group
	g.SetLimit(a.Concurrency)
	for i, sym := range symbols {
		g.Go(func() error {
			reports[i] = a.one(ctx, sym)
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

func (a *Assembler) one(ctx context.Context, symbol string) (rep SymbolReport) {
	rep.Symbol = symbol
	defer func() {
		if r := recover(); r != nil {
			rep = SymbolReport{Symbol: symbol, Err: fmt.Errorf("analysis panicked: %v", r)}
			a.warn(symbol, rep.Err)
		}
		a.Metrics.Analysis(rep.OK())
	}()

	an, err := a.Analyzer.Analyze(ctx, symbol)
	if err != nil {
		rep.Err = err
		a.warn(symbol, err)
		return rep
	}
	rep.Analysis = an
	if an.SignalErr != nil {
		rep.Warnings = append(rep.Warnings, fmt.Errorf("latest signal: %w", an.SignalErr))
	} else {
		a.Metrics.Signal(string(an.Signal))
	}
	if an.ForecastErr != nil {
		rep.Warnings = append(rep.Warnings, fmt.Errorf("forecast: %w", an.ForecastErr))
	}
	for _, w := range rep.Warnings {
		a.warn(symbol, w)
	}
	return rep
}

func (a *Assembler) warn(symbol string, err error) {
	kind := WarningKind(err)
	a.Metrics.Warning(kind)
	a.Log.Warn("symbol warning", zap.String("symbol", symbol), zap.String("kind", kind), zap.Error(err))
}

// WarningKind buckets an error for metrics and storage.
func WarningKind(err error) string {
	switch {
	case errors.Is(err, model.ErrEmptySeries):
		return "empty_series"
	case errors.Is(err, model.ErrInsufficientHistory):
		return "insufficient_history"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "fetch"
	}
}
