package collector

import (
	"context"
	"math"
	"strings"
	"time"

	"StockSignal/internal/model"

	"github.com/guregu/null/v6"
)

// MockFetcher returns controllable fixed data for development and testing.
// Symbols without an entry in Bars or Errs get a generated series.
type MockFetcher struct {
	Price float64
	Days  int
	Bars  map[string][]model.RawBar
	Errs  map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(ctx context.Context, symbol string, _ Query) ([]model.RawBar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	days := m.Days
	if days == 0 {
		days = 126
	}
	price := m.Price
	if price == 0 {
		price = 100
	}
	return GenerateMockBars(symbol, price, days, time.Now()), nil
}

// GenerateMockBars builds count daily bars ending at end. The path is a
// deterministic function of the symbol so different tickers diverge.
func GenerateMockBars(symbol string, basePrice float64, count int, end time.Time) []model.RawBar {
	seed := 0.0
	for _, r := range strings.ToUpper(symbol) {
		seed += float64(r)
	}
	bars := make([]model.RawBar, count)
	for i := 0; i < count; i++ {
		x := float64(i)
		p := basePrice * (1 + 0.08*math.Sin(x/9+seed) + 0.0015*x*math.Cos(seed))
		bars[i] = model.RawBar{
			Time:   end.AddDate(0, 0, -(count - i)),
			Open:   null.FloatFrom(p * 0.999),
			High:   null.FloatFrom(p * 1.005),
			Low:    null.FloatFrom(p * 0.995),
			Close:  null.FloatFrom(p),
			Volume: null.IntFrom(1000000),
		}
	}
	return bars
}
