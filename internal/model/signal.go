package model

import (
	"time"

	"github.com/guregu/null/v6"
)

// Signal is the discrete reading derived from one indicator row.
type Signal string

const (
	SignalBuy            Signal = "BUY"
	SignalSell           Signal = "SELL"
	SignalLongTermStrong Signal = "LONG_TERM_STRONG"
	SignalWatch          Signal = "WATCH"
)

// Label returns the human readable name of the signal.
func (s Signal) Label() string {
	switch s {
	case SignalBuy:
		return "Buy"
	case SignalSell:
		return "Sell"
	case SignalLongTermStrong:
		return "Long-term strong"
	case SignalWatch:
		return "Watch"
	default:
		return string(s)
	}
}

// RowSignal is the classification of one row. Ready is false when the row
// could not be classified for lack of history.
type RowSignal struct {
	Signal Signal
	Ready  bool
}

// Forecast is the short advisory derived from the latest RSI.
type Forecast string

const (
	ForecastNearOversold       Forecast = "NEAR_OVERSOLD"
	ForecastAboveSellThreshold Forecast = "ABOVE_SELL_THRESHOLD"
	ForecastNoExtreme          Forecast = "NO_EXTREME"
)

// Message returns the advisory text shown next to the report.
func (f Forecast) Message() string {
	switch f {
	case ForecastNearOversold:
		return "Possible buy soon: RSI is approaching the oversold zone"
	case ForecastAboveSellThreshold:
		return "Possible sell soon: RSI above 65"
	case ForecastNoExtreme:
		return "No extreme zone in sight"
	default:
		return string(f)
	}
}

// Analysis is the transient result of analysing one symbol. It is rebuilt on
// every fetch and never mutated afterwards.
type Analysis struct {
	Series  *Series
	Rows    []IndicatorRow
	Signals []RowSignal

	// Latest signal and forecast; the Err fields are set instead when the
	// latest row lacks history.
	Signal      Signal
	SignalErr   error
	Forecast    Forecast
	ForecastErr error

	GeneratedAt time.Time
}

// TableRow is one line of the recent-readings table.
type TableRow struct {
	Date     time.Time
	Close    float64
	RSI      null.Float
	MACDHist null.Float
	Signal   RowSignal
}

// Tail returns the last n rows for tabular display, oldest first.
func (a *Analysis) Tail(n int) []TableRow {
	total := len(a.Series.Observations)
	start := total - n
	if start < 0 {
		start = 0
	}
	out := make([]TableRow, 0, total-start)
	for i := start; i < total; i++ {
		out = append(out, TableRow{
			Date:     a.Series.Observations[i].Date,
			Close:    a.Series.Observations[i].Close,
			RSI:      a.Rows[i].RSI,
			MACDHist: a.Rows[i].MACDHist,
			Signal:   a.Signals[i],
		})
	}
	return out
}

// ChartPoint is one sample of the price/trend chart.
type ChartPoint struct {
	Date  time.Time
	Close float64
	EMA20 null.Float
	EMA50 null.Float
}

// Chart returns close, EMA20 and EMA50 over the full window.
func (a *Analysis) Chart() []ChartPoint {
	out := make([]ChartPoint, len(a.Series.Observations))
	for i, o := range a.Series.Observations {
		out[i] = ChartPoint{Date: o.Date, Close: o.Close, EMA20: a.Rows[i].EMA20, EMA50: a.Rows[i].EMA50}
	}
	return out
}
