// Package strategy maps indicator rows to signals and the latest RSI to a
// forecast hint.
package strategy

import (
	"fmt"

	"StockSignal/internal/model"
)

// RSI bands used by the classifier.
const (
	BuyRSICeiling = 70.0
	SellRSIFloor  = 30.0
)

// Classify maps one observation and its indicator row to a signal. The first
// matching rule wins:
//
//	EMA20 > EMA50 and RSI < 70  -> Buy
//	EMA20 < EMA50 and RSI > 30  -> Sell
//	Close > SMA200              -> LongTermStrong
//	otherwise                   -> Watch
//
// EMA20, EMA50 and RSI must be defined. SMA200 is only needed when the third
// rule is reached.
func Classify(obs model.Observation, row model.IndicatorRow) (model.Signal, error) {
	if !row.EMA20.Valid || !row.EMA50.Valid || !row.RSI.Valid {
		return "", fmt.Errorf("ema20/ema50/rsi undefined on %s: %w", obs.Date.Format("2006-01-02"), model.ErrInsufficientHistory)
	}
	fast, slow, rsi := row.EMA20.Float64, row.EMA50.Float64, row.RSI.Float64

	switch {
	case fast > slow && rsi < BuyRSICeiling:
		return model.SignalBuy, nil
	case fast < slow && rsi > SellRSIFloor:
		return model.SignalSell, nil
	}

	if !row.SMA200.Valid {
		return "", fmt.Errorf("sma200 undefined on %s: %w", obs.Date.Format("2006-01-02"), model.ErrInsufficientHistory)
	}
	if obs.Close > row.SMA200.Float64 {
		return model.SignalLongTermStrong, nil
	}
	return model.SignalWatch, nil
}

// ClassifyAll applies Classify to every aligned row. Rows that cannot be
// classified come back with Ready set to false.
func ClassifyAll(s *model.Series, rows []model.IndicatorRow) []model.RowSignal {
	out := make([]model.RowSignal, len(rows))
	for i := range rows {
		if i >= len(s.Observations) {
			break
		}
		if sig, err := Classify(s.Observations[i], rows[i]); err == nil {
			out[i] = model.RowSignal{Signal: sig, Ready: true}
		}
	}
	return out
}
