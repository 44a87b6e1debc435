package collector

import (
	"context"
	"fmt"
	"time"

	"StockSignal/internal/model"

	"go.uber.org/zap"
)

// RetryFetcher retries failed fetches with exponential backoff.
type RetryFetcher struct {
	Next       Fetcher
	MaxRetries int
	Backoff    time.Duration
	Log        *zap.Logger
}

// NewRetryFetcher wraps next. maxRetries <= 0 returns next unchanged.
func NewRetryFetcher(next Fetcher, maxRetries int, backoff time.Duration, log *zap.Logger) Fetcher {
	if maxRetries <= 0 {
		return next
	}
	if backoff <= 0 {
		backoff = time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RetryFetcher{Next: next, MaxRetries: maxRetries, Backoff: backoff, Log: log}
}

func (r *RetryFetcher) Name() string { return r.Next.Name() }

func (r *RetryFetcher) FetchDailyBars(ctx context.Context, symbol string, q Query) ([]model.RawBar, error) {
	var lastErr error
	for i := 0; i <= r.MaxRetries; i++ {
		bars, err := r.Next.FetchDailyBars(ctx, symbol, q)
		if err == nil {
			return bars, nil
		}
		lastErr = err
		if ctx.Err() != nil || i == r.MaxRetries {
			break
		}
		backoff := r.Backoff * time.Duration(1<<uint(i))
		r.Log.Warn("fetch failed, retrying",
			zap.String("symbol", symbol),
			zap.Int("attempt", i+1),
			zap.Duration("backoff", backoff),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w (last error: %v)", ctx.Err(), lastErr)
		case <-time.After(backoff):
		}
	}
	return nil, fmt.Errorf("all %d attempts failed: %w", r.MaxRetries+1, lastErr)
}
