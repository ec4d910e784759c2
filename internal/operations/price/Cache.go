package price

import (
	"context"
	"sync"
	"time"

	"CryptoMarketAnalyzer/internal/models"
)

// CachedProvider memoizes fetch results per (symbol, interval) for a
// configurable duration to bound call volume when the detector polls faster
// than candles close. Entries expire independently.
type CachedProvider struct {
	inner Provider
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
}

type cacheKey struct {
	Symbol   string
	Interval string
}

type cacheEntry struct {
	candles   []models.Candle
	start     time.Time
	end       time.Time
	fetchedAt time.Time
}

func NewCachedProvider(inner Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[cacheKey]cacheEntry),
	}
}

func (c *CachedProvider) Fetch(ctx context.Context, symbol, interval string, start, end time.Time) ([]models.Candle, error) {
	key := cacheKey{Symbol: symbol, Interval: interval}
	now := c.now()

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok && entry.start.Equal(start) && entry.end.Equal(end) &&
		now.Sub(entry.fetchedAt) < c.ttl {
		return entry.candles, nil
	}

	candles, err := c.inner.Fetch(ctx, symbol, interval, start, end)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{
		candles:   candles,
		start:     start,
		end:       end,
		fetchedAt: now,
	}
	c.mu.Unlock()

	return candles, nil
}
