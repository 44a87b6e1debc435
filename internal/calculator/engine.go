// Package calculator computes indicator series from close prices. Every
// function is causal: the value at index i depends only on prices[0..i].
package calculator

import (
	"fmt"

	"StockSignal/internal/model"
)

// Params holds the indicator windows.
type Params struct {
	EMAFast int        `yaml:"ema_fast"`
	EMASlow int        `yaml:"ema_slow"`
	SMALong int        `yaml:"sma_long"`
	RSI     int        `yaml:"rsi"`
	MACD    MACDParams `yaml:"macd"`
}

// DefaultParams returns EMA 20/50, SMA 200, RSI 14 and MACD 12/26/9.
func DefaultParams() Params {
	return Params{EMAFast: 20, EMASlow: 50, SMALong: 200, RSI: 14, MACD: DefaultMACD}
}

// Validate checks that every window is usable.
func (p Params) Validate() error {
	for name, w := range map[string]int{"ema_fast": p.EMAFast, "ema_slow": p.EMASlow, "sma_long": p.SMALong, "rsi": p.RSI} {
		if w <= 0 {
			return fmt.Errorf("indicators.%s must be positive, got %d", name, w)
		}
	}
	return p.MACD.Validate()
}

// Engine computes indicator rows for a series.
type Engine struct {
	Params Params
}

// NewEngine creates an Engine.
func NewEngine(p Params) *Engine {
	return &Engine{Params: p}
}

// Compute returns one IndicatorRow per observation of s.
func (e *Engine) Compute(s *model.Series) ([]model.IndicatorRow, error) {
	if s == nil || s.Len() == 0 {
		return nil, model.ErrEmptySeries
	}
	if err := e.Params.Validate(); err != nil {
		return nil, err
	}
	closes := s.Closes()

	emaFast, err := EMA(closes, e.Params.EMAFast)
	if err != nil {
		return nil, fmt.Errorf("ema fast: %w", err)
	}
	emaSlow, err := EMA(closes, e.Params.EMASlow)
	if err != nil {
		return nil, fmt.Errorf("ema slow: %w", err)
	}
	smaLong, err := SMA(closes, e.Params.SMALong)
	if err != nil {
		return nil, fmt.Errorf("sma long: %w", err)
	}
	rsi, err := RSI(closes, e.Params.RSI)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}
	hist, err := MACDHistogram(closes, e.Params.MACD)
	if err != nil {
		return nil, fmt.Errorf("macd: %w", err)
	}

	rows := make([]model.IndicatorRow, len(closes))
	for i := range rows {
		rows[i] = model.IndicatorRow{
			EMA20:    emaFast[i],
			EMA50:    emaSlow[i],
			SMA200:   smaLong[i],
			RSI:      rsi[i],
			MACDHist: hist[i],
		}
	}
	return rows, nil
}
