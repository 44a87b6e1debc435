package model

import "github.com/guregu/null/v6"

// IndicatorRow holds the derived values aligned with one observation.
// A field is invalid (not Valid) when the history up to that index is too
// short for its window.
type IndicatorRow struct {
	EMA20    null.Float
	EMA50    null.Float
	SMA200   null.Float
	RSI      null.Float
	MACDHist null.Float
}
