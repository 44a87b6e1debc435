package strategy

import (
	"fmt"

	"StockSignal/internal/model"

	"github.com/guregu/null/v6"
)

// Forecast thresholds; both comparisons are strict.
const (
	OversoldApproach = 35.0
	SellApproach     = 65.0
)

// ForecastFromRSI turns an RSI reading into an advisory.
func ForecastFromRSI(rsi null.Float) (model.Forecast, error) {
	if !rsi.Valid {
		return "", fmt.Errorf("latest rsi undefined: %w", model.ErrInsufficientHistory)
	}
	switch {
	case rsi.Float64 < OversoldApproach:
		return model.ForecastNearOversold, nil
	case rsi.Float64 > SellApproach:
		return model.ForecastAboveSellThreshold, nil
	default:
		return model.ForecastNoExtreme, nil
	}
}

// LatestForecast uses the RSI of the last row only.
func LatestForecast(rows []model.IndicatorRow) (model.Forecast, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("no rows: %w", model.ErrInsufficientHistory)
	}
	return ForecastFromRSI(rows[len(rows)-1].RSI)
}
