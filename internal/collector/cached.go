package collector

import (
	"context"
	"time"

	"StockSignal/internal/model"

	"github.com/patrickmn/go-cache"
)

// CachedFetcher keeps recent responses of the wrapped fetcher for a short
// TTL, so repeated reports in quick succession do not hit the provider.
type CachedFetcher struct {
	Next  Fetcher
	cache *cache.Cache
}

// NewCachedFetcher wraps next. A ttl <= 0 returns next unchanged.
func NewCachedFetcher(next Fetcher, ttl time.Duration) Fetcher {
	if ttl <= 0 {
		return next
	}
	return &CachedFetcher{Next: next, cache: cache.New(ttl, 2*ttl)}
}

func (c *CachedFetcher) Name() string { return c.Next.Name() + "+cache" }

func (c *CachedFetcher) FetchDailyBars(ctx context.Context, symbol string, q Query) ([]model.RawBar, error) {
	key := symbol + "|" + q.Range + "|" + q.Interval
	if v, ok := c.cache.Get(key); ok {
		return clone(v.([]model.RawBar)), nil
	}
	bars, err := c.Next.FetchDailyBars(ctx, symbol, q)
	if err != nil {
		return nil, err
	}
	if len(bars) > 0 {
		c.cache.SetDefault(key, clone(bars))
	}
	return bars, nil
}

func clone(bars []model.RawBar) []model.RawBar {
	out := make([]model.RawBar, len(bars))
	copy(out, bars)
	return out
}
