// Package series turns raw provider rows into a validated, date-ordered Series.
package series

import (
	"fmt"
	"math"
	"sort"
	"time"

	"StockSignal/internal/model"

	"github.com/guregu/null/v6"
)

// MalformedObservationError describes a provider row that was dropped.
type MalformedObservationError struct {
	Index  int
	Time   time.Time
	Reason string
}

func (e *MalformedObservationError) Error() string {
	return fmt.Sprintf("row %d (%s): %s", e.Index, e.Time.Format("2006-01-02"), e.Reason)
}

func (e *MalformedObservationError) Unwrap() error { return model.ErrMalformedObservation }

// Build validates bars and returns the resulting series. Rows without a usable
// close are dropped and reported in dropped; they only fail the build when no
// row survives, in which case the error wraps model.ErrEmptySeries.
func Build(symbol string, bars []model.RawBar) (s *model.Series, dropped []error, err error) {
	if len(bars) == 0 {
		return nil, nil, fmt.Errorf("%s: no rows returned: %w", symbol, model.ErrEmptySeries)
	}

	byDate := make(map[time.Time]model.Observation, len(bars))
	for i, b := range bars {
		c, ok := usable(b.Close)
		if !ok {
			dropped = append(dropped, &MalformedObservationError{Index: i, Time: b.Time, Reason: "missing or invalid close"})
			continue
		}
		date := calendarDate(b.Time)
		// later rows for the same date replace earlier ones
		byDate[date] = model.Observation{
			Date:   date,
			Open:   orClose(b.Open, c),
			High:   orClose(b.High, c),
			Low:    orClose(b.Low, c),
			Close:  c,
			Volume: volume(b.Volume),
		}
	}
	if len(byDate) == 0 {
		return nil, dropped, fmt.Errorf("%s: all %d rows dropped: %w", symbol, len(bars), model.ErrEmptySeries)
	}

	obs := make([]model.Observation, 0, len(byDate))
	for _, o := range byDate {
		obs = append(obs, o)
	}
	sort.Slice(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })

	return &model.Series{Symbol: symbol, Observations: obs, FetchedAt: time.Now()}, dropped, nil
}

func usable(v null.Float) (float64, bool) {
	if !v.Valid || math.IsNaN(v.Float64) || math.IsInf(v.Float64, 0) || v.Float64 <= 0 {
		return 0, false
	}
	return v.Float64, true
}

func orClose(v null.Float, c float64) float64 {
	if p, ok := usable(v); ok {
		return p
	}
	return c
}

func volume(v null.Int) int64 {
	if !v.Valid || v.Int64 < 0 {
		return 0
	}
	return v.Int64
}

// calendarDate takes the date in t's own location; providers deliver bars in
// exchange time.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
