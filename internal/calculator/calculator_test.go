package calculator

import (
	"math"
	"testing"
	"time"

	"StockSignal/internal/model"

	"github.com/guregu/null/v6"
	talib "github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linear(from float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)
	}
	return out
}

// wavy is a deterministic series with both gains and losses on every window.
func wavy(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + 10*math.Sin(float64(i)/3) + 0.3*float64(i) + 2*math.Cos(float64(i)*1.7)
	}
	return out
}

func firstValid(vs []null.Float) int {
	for i, v := range vs {
		if v.Valid {
			return i
		}
	}
	return -1
}

func TestWindowsLongerThanSeriesAreUndefined(t *testing.T) {
	prices := linear(10, 9)
	for _, w := range []int{10, 14, 50} {
		sma, err := SMA(prices, w)
		require.NoError(t, err)
		ema, err := EMA(prices, w)
		require.NoError(t, err)
		rsi, err := RSI(prices, w)
		require.NoError(t, err)
		for i := range prices {
			assert.False(t, sma[i].Valid, "sma w=%d i=%d", w, i)
			assert.False(t, ema[i].Valid, "ema w=%d i=%d", w, i)
			assert.False(t, rsi[i].Valid, "rsi w=%d i=%d", w, i)
		}
	}
	hist, err := MACDHistogram(prices, DefaultMACD)
	require.NoError(t, err)
	assert.Equal(t, -1, firstValid(hist))
}

func TestInvalidPeriod(t *testing.T) {
	_, err := SMA([]float64{1}, 0)
	assert.Error(t, err)
	_, err = EMA([]float64{1}, -1)
	assert.Error(t, err)
	_, err = RSI([]float64{1}, 0)
	assert.Error(t, err)
	_, err = MACDHistogram([]float64{1}, MACDParams{Fast: 26, Slow: 12, Signal: 9})
	assert.Error(t, err)
}

func TestSMA_HandComputed(t *testing.T) {
	got, err := SMA([]float64{100, 102, 104, 103, 105}, 3)
	require.NoError(t, err)
	assert.False(t, got[0].Valid)
	assert.False(t, got[1].Valid)
	assert.InDelta(t, 102.0, got[2].Float64, 1e-9)
	assert.InDelta(t, 103.0, got[3].Float64, 1e-9)
	assert.InDelta(t, 104.0, got[4].Float64, 1e-9)
}

func TestEMA_ReferenceSequence(t *testing.T) {
	// closes 10..30, window 5: seed (10+11+12+13+14)/5 = 12 at index 4,
	// alpha = 1/3, so EMA[5] = 15/3 + 12*2/3 = 13 and the EMA trails a unit
	// slope by exactly (1-alpha)/alpha = 2 from then on.
	prices := linear(10, 21)
	got, err := EMA(prices, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, firstValid(got))
	want := map[int]float64{4: 12, 5: 13, 6: 14, 10: 18, 20: 28}
	for i, w := range want {
		assert.InDelta(t, w, got[i].Float64, 1e-9, "index %d", i)
	}
}

func TestRSI_AllGainsIs100(t *testing.T) {
	prices := []float64{10, 11, 11, 12, 13, 13, 14, 15, 16, 16, 17, 18, 19, 20, 21, 22}
	got, err := RSI(prices, 14)
	require.NoError(t, err)
	assert.Equal(t, 14, firstValid(got))
	for i := 14; i < len(prices); i++ {
		assert.Equal(t, 100.0, got[i].Float64)
	}
}

func TestRSI_Bounded(t *testing.T) {
	prices := wavy(300)
	got, err := RSI(prices, 14)
	require.NoError(t, err)
	for i, v := range got {
		if !v.Valid {
			continue
		}
		assert.GreaterOrEqual(t, v.Float64, 0.0, "index %d", i)
		assert.LessOrEqual(t, v.Float64, 100.0, "index %d", i)
	}
	falling := linear(300, 40)
	for i, j := 0, len(falling)-1; i < j; i, j = i+1, j-1 {
		falling[i], falling[j] = falling[j], falling[i]
	}
	down, err := RSI(falling, 14)
	require.NoError(t, err)
	assert.Equal(t, 0.0, down[len(down)-1].Float64)
}

func TestAgreesWithTalib(t *testing.T) {
	prices := wavy(260)

	sma, err := SMA(prices, 20)
	require.NoError(t, err)
	refSMA := talib.Sma(prices, 20)
	for i := 19; i < len(prices); i++ {
		assert.InDelta(t, refSMA[i], sma[i].Float64, 1e-9, "sma index %d", i)
	}

	ema, err := EMA(prices, 20)
	require.NoError(t, err)
	refEMA := talib.Ema(prices, 20)
	for i := 19; i < len(prices); i++ {
		assert.InDelta(t, refEMA[i], ema[i].Float64, 1e-9, "ema index %d", i)
	}

	rsi, err := RSI(prices, 14)
	require.NoError(t, err)
	refRSI := talib.Rsi(prices, 14)
	for i := 14; i < len(prices); i++ {
		assert.InDelta(t, refRSI[i], rsi[i].Float64, 1e-9, "rsi index %d", i)
	}
}

func TestMACDHistogram(t *testing.T) {
	prices := wavy(120)
	hist, err := MACDHistogram(prices, DefaultMACD)
	require.NoError(t, err)
	assert.Equal(t, 33, firstValid(hist))

	fast, _ := EMA(prices, 12)
	slow, _ := EMA(prices, 26)
	line := make([]float64, 0, len(prices))
	for i := 25; i < len(prices); i++ {
		line = append(line, fast[i].Float64-slow[i].Float64)
	}
	signal, _ := EMA(line, 9)
	for i := 33; i < len(prices); i++ {
		want := line[i-25] - signal[i-25].Float64
		assert.InDelta(t, want, hist[i].Float64, 1e-9, "index %d", i)
	}

	flat := make([]float64, 60)
	for i := range flat {
		flat[i] = 42
	}
	flatHist, err := MACDHistogram(flat, DefaultMACD)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, flatHist[59].Float64, 1e-12)
}

func TestEngine_Compute(t *testing.T) {
	closes := linear(100, 210)
	s := &model.Series{Symbol: "TEST"}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		s.Observations = append(s.Observations, model.Observation{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c})
	}

	rows, err := NewEngine(DefaultParams()).Compute(s)
	require.NoError(t, err)
	require.Len(t, rows, 210)

	col := func(f func(model.IndicatorRow) null.Float) []null.Float {
		out := make([]null.Float, len(rows))
		for i, r := range rows {
			out[i] = f(r)
		}
		return out
	}
	assert.Equal(t, 19, firstValid(col(func(r model.IndicatorRow) null.Float { return r.EMA20 })))
	assert.Equal(t, 49, firstValid(col(func(r model.IndicatorRow) null.Float { return r.EMA50 })))
	assert.Equal(t, 199, firstValid(col(func(r model.IndicatorRow) null.Float { return r.SMA200 })))
	assert.Equal(t, 14, firstValid(col(func(r model.IndicatorRow) null.Float { return r.RSI })))
	assert.Equal(t, 33, firstValid(col(func(r model.IndicatorRow) null.Float { return r.MACDHist })))

	last := rows[209]
	assert.InDelta(t, 209.5, last.SMA200.Float64, 1e-9)
	assert.Greater(t, last.EMA20.Float64, last.EMA50.Float64)
	assert.Equal(t, 100.0, last.RSI.Float64)

	// input untouched
	assert.Equal(t, 100.0, s.Observations[0].Close)
	assert.Equal(t, 309.0, s.Observations[209].Close)
}

func TestEngine_ComputeEmpty(t *testing.T) {
	_, err := NewEngine(DefaultParams()).Compute(&model.Series{Symbol: "X"})
	assert.ErrorIs(t, err, model.ErrEmptySeries)
}
