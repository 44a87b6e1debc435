package calculator

import (
	"fmt"

	"github.com/guregu/null/v6"
)

// MACDParams are the three MACD windows.
type MACDParams struct {
	Fast   int `yaml:"fast"`
	Slow   int `yaml:"slow"`
	Signal int `yaml:"signal"`
}

// DefaultMACD is the conventional 12/26/9 setup.
var DefaultMACD = MACDParams{Fast: 12, Slow: 26, Signal: 9}

// Validate checks the windows.
func (p MACDParams) Validate() error {
	if p.Fast <= 0 || p.Slow <= 0 || p.Signal <= 0 {
		return fmt.Errorf("macd windows must be positive, got %d/%d/%d", p.Fast, p.Slow, p.Signal)
	}
	if p.Fast >= p.Slow {
		return fmt.Errorf("macd fast window %d must be shorter than slow window %d", p.Fast, p.Slow)
	}
	return nil
}

// MACDHistogram returns MACD line minus its signal line. The line is
// EMA(fast)-EMA(slow) and the signal line is an EMA of the defined part of
// the line, so the first value lands at index slow+signal-2.
func MACDHistogram(prices []float64, p MACDParams) ([]null.Float, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	fast, err := EMA(prices, p.Fast)
	if err != nil {
		return nil, err
	}
	slow, err := EMA(prices, p.Slow)
	if err != nil {
		return nil, err
	}

	line := make([]null.Float, len(prices))
	for i := range prices {
		if fast[i].Valid && slow[i].Valid {
			line[i] = null.FloatFrom(fast[i].Float64 - slow[i].Float64)
		}
	}

	signal, err := emaOfDefined(line, p.Signal)
	if err != nil {
		return nil, err
	}

	hist := make([]null.Float, len(prices))
	for i := range prices {
		if line[i].Valid && signal[i].Valid {
			hist[i] = null.FloatFrom(line[i].Float64 - signal[i].Float64)
		}
	}
	return hist, nil
}
