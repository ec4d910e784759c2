package price

import (
	"context"
	"testing"
	"time"

	"CryptoMarketAnalyzer/internal/models"
)

type countingProvider struct {
	calls   int
	candles []models.Candle
	err     error
}

func (p *countingProvider) Fetch(ctx context.Context, symbol, interval string, start, end time.Time) ([]models.Candle, error) {
	p.calls++
	return p.candles, p.err
}

func testCandles() []models.Candle {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return []models.Candle{
		{Symbol: "BTCUSDT", Interval: models.Interval1h, OpenTime: base, Close: 100, Volume: 10},
		{Symbol: "BTCUSDT", Interval: models.Interval1h, OpenTime: base.Add(time.Hour), Close: 101, Volume: 12},
	}
}

func TestCachedProviderServesFromCache(t *testing.T) {
	inner := &countingProvider{candles: testCandles()}
	cached := NewCachedProvider(inner, time.Minute)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		candles, err := cached.Fetch(ctx, "BTCUSDT", models.Interval1h, time.Time{}, time.Time{})
		if err != nil {
			t.Fatal(err)
		}
		if len(candles) != 2 {
			t.Fatalf("got %d candles", len(candles))
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner fetched %d times, want 1", inner.calls)
	}
}

func TestCachedProviderExpires(t *testing.T) {
	inner := &countingProvider{candles: testCandles()}
	cached := NewCachedProvider(inner, time.Minute)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cached.now = func() time.Time { return now }

	ctx := context.Background()
	cached.Fetch(ctx, "BTCUSDT", models.Interval1h, time.Time{}, time.Time{})
	cached.Fetch(ctx, "BTCUSDT", models.Interval1h, time.Time{}, time.Time{})
	if inner.calls != 1 {
		t.Fatalf("inner fetched %d times before expiry, want 1", inner.calls)
	}

	now = now.Add(2 * time.Minute)
	cached.Fetch(ctx, "BTCUSDT", models.Interval1h, time.Time{}, time.Time{})
	if inner.calls != 2 {
		t.Errorf("inner fetched %d times after expiry, want 2", inner.calls)
	}
}

func TestCachedProviderKeysIndependently(t *testing.T) {
	inner := &countingProvider{candles: testCandles()}
	cached := NewCachedProvider(inner, time.Minute)

	ctx := context.Background()
	cached.Fetch(ctx, "BTCUSDT", models.Interval1h, time.Time{}, time.Time{})
	cached.Fetch(ctx, "BTCUSDT", models.Interval5m, time.Time{}, time.Time{})
	cached.Fetch(ctx, "ETHUSDT", models.Interval1h, time.Time{}, time.Time{})

	if inner.calls != 3 {
		t.Errorf("inner fetched %d times, want 3 distinct keys", inner.calls)
	}
}

func TestCachedProviderDistinctRanges(t *testing.T) {
	inner := &countingProvider{candles: testCandles()}
	cached := NewCachedProvider(inner, time.Minute)

	ctx := context.Background()
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	cached.Fetch(ctx, "BTCUSDT", models.Interval1h, time.Time{}, time.Time{})
	// A range fetch must not be answered from the latest-candles entry
	cached.Fetch(ctx, "BTCUSDT", models.Interval1h, start, start.AddDate(0, 0, 7))

	if inner.calls != 2 {
		t.Errorf("inner fetched %d times, want 2 for distinct ranges", inner.calls)
	}
}
