package collector

import (
	"context"

	"StockSignal/internal/model"
)

// Query selects the history window and sampling interval, in Yahoo notation
// ("6mo", "1d").
type Query struct {
	Range    string
	Interval string
}

// DefaultQuery is six months of daily bars.
var DefaultQuery = Query{Range: "6mo", Interval: "1d"}

// Fetcher defines the interface for fetching price history.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, q Query) ([]model.RawBar, error)
	Name() string
}
