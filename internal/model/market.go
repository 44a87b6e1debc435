package model

import (
	"time"

	"github.com/guregu/null/v6"
)

// RawBar is one row as delivered by a price-history provider. Any price may be
// missing; the series store decides what is usable. Time is in the exchange's
// location, so its calendar date is the trading day.
type RawBar struct {
	Time   time.Time
	Open   null.Float
	High   null.Float
	Low    null.Float
	Close  null.Float
	Volume null.Int
}

// Observation is a single validated daily bar.
type Observation struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Series holds the ordered observations of one symbol, oldest first, one per
// calendar date.
type Series struct {
	Symbol       string
	Observations []Observation
	FetchedAt    time.Time
}

// Len returns the number of observations.
func (s *Series) Len() int { return len(s.Observations) }

// Closes returns a copy of the close prices in series order.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		closes[i] = o.Close
	}
	return closes
}

// Latest returns the most recent observation.
func (s *Series) Latest() (Observation, bool) {
	if len(s.Observations) == 0 {
		return Observation{}, false
	}
	return s.Observations[len(s.Observations)-1], true
}
