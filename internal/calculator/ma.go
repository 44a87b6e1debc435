package calculator

import (
	"errors"

	"github.com/guregu/null/v6"
)

var errPeriod = errors.New("period must be positive")

// SMA computes the simple moving average of prices over the trailing period.
// Values before index period-1 are invalid.
func SMA(prices []float64, period int) ([]null.Float, error) {
	if period <= 0 {
		return nil, errPeriod
	}
	out := make([]null.Float, len(prices))
	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= period {
			sum -= prices[i-period]
		}
		if i >= period-1 {
			out[i] = null.FloatFrom(sum / float64(period))
		}
	}
	return out, nil
}

// EMA computes the exponential moving average seeded with the simple average
// of the first period prices, smoothing factor 2/(period+1).
func EMA(prices []float64, period int) ([]null.Float, error) {
	if period <= 0 {
		return nil, errPeriod
	}
	out := make([]null.Float, len(prices))
	if len(prices) < period {
		return out, nil
	}
	alpha := 2.0 / float64(period+1)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	ema := sum / float64(period)
	out[period-1] = null.FloatFrom(ema)

	for i := period; i < len(prices); i++ {
		ema = alpha*prices[i] + (1-alpha)*ema
		out[i] = null.FloatFrom(ema)
	}
	return out, nil
}

// emaOfDefined applies EMA to the valid tail of values. Values must be
// invalid only as a prefix, which holds for every series this package emits.
func emaOfDefined(values []null.Float, period int) ([]null.Float, error) {
	start := len(values)
	for i, v := range values {
		if v.Valid {
			start = i
			break
		}
	}
	tail := make([]float64, len(values)-start)
	for i := range tail {
		tail[i] = values[start+i].Float64
	}
	ema, err := EMA(tail, period)
	if err != nil {
		return nil, err
	}
	out := make([]null.Float, len(values))
	copy(out[start:], ema)
	return out, nil
}
