package price

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"CryptoMarketAnalyzer/internal/models"

	"github.com/adshao/go-binance/v2/futures"
	"golang.org/x/time/rate"
)

const (
	fetchLimit   = 500
	fetchRetries = 3
	fetchBackoff = 2 * time.Second
)

// Provider supplies an ordered candle series for a (symbol, interval).
// Zero start/end requests the most recent candles. Implementations return
// candles sorted ascending by open time; gaps are tolerated, never invented.
type Provider interface {
	Fetch(ctx context.Context, symbol, interval string, start, end time.Time) ([]models.Candle, error)
}

// BinanceFetcher loads klines from Binance futures, rate limited so that
// polling many symbols stays inside the exchange request budget.
type BinanceFetcher struct {
	client      *futures.Client
	rateLimiter *rate.Limiter
}

// NewFuturesClient builds a futures client with bounded connection reuse
func NewFuturesClient(apiKey, secretKey string) *futures.Client {
	httpClient := &http.Client{
		Timeout: time.Second * 10,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	client := futures.NewClient(apiKey, secretKey)
	client.HTTPClient = httpClient
	return client
}

func NewBinanceFetcher(client *futures.Client) *BinanceFetcher {
	return &BinanceFetcher{
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

func (f *BinanceFetcher) Fetch(ctx context.Context, symbol, interval string, start, end time.Time) ([]models.Candle, error) {
	svc := f.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(fetchLimit)
	if !start.IsZero() {
		svc.StartTime(start.UnixNano() / int64(time.Millisecond))
	}
	if !end.IsZero() {
		svc.EndTime(end.UnixNano() / int64(time.Millisecond))
	}

	// Transient exchange errors get a bounded retry with backoff; past that
	// the failure surfaces to the caller.
	var klines []*futures.Kline
	var err error
	for attempt := 1; attempt <= fetchRetries; attempt++ {
		if err = f.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		klines, err = svc.Do(ctx)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("[price] fetch %s %s attempt %d/%d failed: %v",
			symbol, interval, attempt, fetchRetries, err)
		if attempt < fetchRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(fetchBackoff * time.Duration(attempt)):
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("fetching %s %s klines: %w", symbol, interval, err)
	}

	candles := make([]models.Candle, 0, len(klines))
	for _, k := range klines {
		candles = append(candles, models.Candle{
			Symbol:   symbol,
			Interval: interval,
			OpenTime: time.Unix(k.OpenTime/1000, 0),
			Open:     parseFloat(k.Open),
			High:     parseFloat(k.High),
			Low:      parseFloat(k.Low),
			Close:    parseFloat(k.Close),
			Volume:   parseFloat(k.Volume),
		})
	}

	if err := models.ValidateSeries(candles); err != nil {
		return nil, fmt.Errorf("%s %s: %w", symbol, interval, err)
	}
	return candles, nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
