package strategy

import (
	"testing"
	"time"

	"StockSignal/internal/calculator"
	"StockSignal/internal/model"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obs(close float64) model.Observation {
	return model.Observation{Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Close: close}
}

func row(ema20, ema50, sma200, rsi float64) model.IndicatorRow {
	return model.IndicatorRow{
		EMA20:  null.FloatFrom(ema20),
		EMA50:  null.FloatFrom(ema50),
		SMA200: null.FloatFrom(sma200),
		RSI:    null.FloatFrom(rsi),
	}
}

func TestClassify_Rules(t *testing.T) {
	tests := []struct {
		name  string
		close float64
		row   model.IndicatorRow
		want  model.Signal
	}{
		{"uptrend not overbought", 110, row(105, 100, 90, 55), model.SignalBuy},
		{"uptrend overbought falls through to long-term", 110, row(105, 100, 90, 75), model.SignalLongTermStrong},
		{"downtrend not oversold", 90, row(95, 100, 120, 45), model.SignalSell},
		{"downtrend oversold below sma200", 90, row(95, 100, 120, 25), model.SignalWatch},
		{"downtrend oversold above sma200", 130, row(95, 100, 120, 25), model.SignalLongTermStrong},
		{"flat emas above sma200", 130, row(100, 100, 120, 50), model.SignalLongTermStrong},
		{"flat emas below sma200", 110, row(100, 100, 120, 50), model.SignalWatch},
		{"rsi exactly 70 is not buy", 110, row(105, 100, 120, 70), model.SignalWatch},
		{"rsi exactly 30 is not sell", 90, row(95, 100, 120, 30), model.SignalWatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(obs(tt.close), tt.row)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// satisfies both the buy rule and close > sma200
	got, err := Classify(obs(200), row(150, 140, 100, 60))
	require.NoError(t, err)
	assert.Equal(t, model.SignalBuy, got)
}

func TestClassify_InsufficientHistory(t *testing.T) {
	missing := []model.IndicatorRow{
		{EMA50: null.FloatFrom(1), RSI: null.FloatFrom(50)},
		{EMA20: null.FloatFrom(1), RSI: null.FloatFrom(50)},
		{EMA20: null.FloatFrom(1), EMA50: null.FloatFrom(1)},
	}
	for _, r := range missing {
		_, err := Classify(obs(100), r)
		assert.ErrorIs(t, err, model.ErrInsufficientHistory)
	}

	// buy decided without sma200
	r := row(105, 100, 0, 50)
	r.SMA200 = null.Float{}
	got, err := Classify(obs(100), r)
	require.NoError(t, err)
	assert.Equal(t, model.SignalBuy, got)

	// third rule reached without sma200
	r = row(100, 100, 0, 50)
	r.SMA200 = null.Float{}
	_, err = Classify(obs(100), r)
	assert.ErrorIs(t, err, model.ErrInsufficientHistory)
}

func TestForecastBoundaries(t *testing.T) {
	tests := []struct {
		rsi  float64
		want model.Forecast
	}{
		{34.99, model.ForecastNearOversold},
		{35.0, model.ForecastNoExtreme},
		{50, model.ForecastNoExtreme},
		{65.0, model.ForecastNoExtreme},
		{65.01, model.ForecastAboveSellThreshold},
		{0, model.ForecastNearOversold},
		{100, model.ForecastAboveSellThreshold},
	}
	for _, tt := range tests {
		got, err := ForecastFromRSI(null.FloatFrom(tt.rsi))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "rsi %.2f", tt.rsi)
	}

	_, err := ForecastFromRSI(null.Float{})
	assert.ErrorIs(t, err, model.ErrInsufficientHistory)
	_, err = LatestForecast(nil)
	assert.ErrorIs(t, err, model.ErrInsufficientHistory)
}

func TestEndToEnd_LinearRise(t *testing.T) {
	s := &model.Series{Symbol: "LIN"}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 210; i++ {
		c := 100 + float64(i)
		s.Observations = append(s.Observations, model.Observation{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c})
	}
	rows, err := calculator.NewEngine(calculator.DefaultParams()).Compute(s)
	require.NoError(t, err)

	signals := ClassifyAll(s, rows)
	for i := 0; i < 49; i++ {
		assert.False(t, signals[i].Ready, "index %d", i)
	}
	// RSI is pinned at 100, so the buy rule never fires and neither does sell;
	// the long-term rule needs sma200, which starts at index 199.
	for i := 49; i < 199; i++ {
		assert.False(t, signals[i].Ready, "index %d", i)
	}
	last := signals[len(signals)-1]
	require.True(t, last.Ready)
	assert.Equal(t, model.SignalLongTermStrong, last.Signal)

	f, err := LatestForecast(rows)
	require.NoError(t, err)
	assert.Equal(t, model.ForecastAboveSellThreshold, f)
}
