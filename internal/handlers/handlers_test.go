package handlers

import (
	"context"
	"math"
	"testing"
	"time"

	"CryptoMarketAnalyzer/internal/models"
	"CryptoMarketAnalyzer/internal/services/detector"
)

type fakeProvider struct {
	candles []models.Candle
	err     error
}

func (p *fakeProvider) Fetch(ctx context.Context, symbol, interval string, start, end time.Time) ([]models.Candle, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := make([]models.Candle, len(p.candles))
	for i, c := range p.candles {
		c.Symbol = symbol
		c.Interval = interval
		out[i] = c
	}
	return out, nil
}

func series(closes, volumes []float64) []models.Candle {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, len(closes))
	for i := range closes {
		candles[i] = models.Candle{
			OpenTime: base.Add(time.Duration(i) * time.Hour),
			Open:     closes[i],
			High:     closes[i],
			Low:      closes[i],
			Close:    closes[i],
			Volume:   volumes[i],
		}
	}
	return candles
}

func dumpDetector(t *testing.T) *detector.Detector {
	t.Helper()
	d, err := detector.NewDetector(detector.Config{
		VolumeThreshold: 3.0,
		PriceThreshold:  0.02,
		RSIOverbought:   70,
		RSIOversold:     30,
		RSIPeriod:       14,
		LookbackPeriod:  3,
		MinScore:        70,
		AlertCooldown:   time.Hour,
		Intervals:       []string{models.Interval1h},
	})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestEvaluateDetectorsFiresAndTagsEvents(t *testing.T) {
	provider := &fakeProvider{candles: series(
		[]float64{100, 100, 100, 100, 95},
		[]float64{100, 100, 100, 100, 400},
	)}
	handler := NewDetectorHandler(dumpDetector(t), provider, nil, []string{"DOGEUSDT"}, time.Minute)

	events, err := handler.EvaluateDetectors(context.Background(), []string{"DOGEUSDT"})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if events[0].Symbol != "DOGEUSDT" || events[0].Interval != models.Interval1h {
		t.Errorf("event keyed %s/%s", events[0].Symbol, events[0].Interval)
	}
	if events[0].Kind != models.DetectionKindDump {
		t.Errorf("kind = %s, want DUMP", events[0].Kind)
	}
}

func TestEvaluateDetectorsQuietMarket(t *testing.T) {
	provider := &fakeProvider{candles: series(
		[]float64{100, 100, 100, 100, 100},
		[]float64{100, 100, 100, 100, 100},
	)}
	handler := NewDetectorHandler(dumpDetector(t), provider, nil, []string{"DOGEUSDT"}, time.Minute)

	events, err := handler.EvaluateDetectors(context.Background(), []string{"DOGEUSDT"})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestEvaluateDetectorsStopsOnCancel(t *testing.T) {
	provider := &fakeProvider{candles: series(
		[]float64{100, 100, 100, 100, 95},
		[]float64{100, 100, 100, 100, 400},
	)}
	handler := NewDetectorHandler(dumpDetector(t), provider, nil, []string{"A", "B"}, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := handler.EvaluateDetectors(ctx, []string{"A", "B"}); err == nil {
		t.Error("expected context error")
	}
}

func TestAnalyzeSnapshot(t *testing.T) {
	closes := make([]float64, 60)
	volumes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
		volumes[i] = 100
	}
	handler := NewAnalysisHandler(&fakeProvider{candles: series(closes, volumes)})

	snapshot, err := handler.Analyze(context.Background(), "BTCUSDT", models.Interval1h)
	if err != nil {
		t.Fatal(err)
	}
	if snapshot.Close != 159 {
		t.Errorf("close = %v, want 159", snapshot.Close)
	}
	// Trailing 20-bar mean of a unit ramp ends 9.5 below the last close
	if math.Abs(snapshot.SMA20-149.5) > 1e-9 {
		t.Errorf("sma = %v, want 149.5", snapshot.SMA20)
	}
	if snapshot.RSI14 != 100 {
		t.Errorf("rsi = %v, want 100 on monotone gains", snapshot.RSI14)
	}
	if math.IsNaN(snapshot.MACD) || math.IsNaN(snapshot.BBUpper) {
		t.Error("expected defined MACD and Bollinger values on a 60 bar series")
	}
}

func TestAnalyzeShortSeriesHasNaNIndicators(t *testing.T) {
	handler := NewAnalysisHandler(&fakeProvider{candles: series(
		[]float64{100, 101, 102},
		[]float64{1, 1, 1},
	)})

	snapshot, err := handler.Analyze(context.Background(), "BTCUSDT", models.Interval1h)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(snapshot.SMA20) || !math.IsNaN(snapshot.RSI14) || !math.IsNaN(snapshot.MACD) {
		t.Errorf("expected NaN indicators inside warmup, got %+v", snapshot)
	}
}

func TestAnalyzeEmptySeries(t *testing.T) {
	handler := NewAnalysisHandler(&fakeProvider{})
	if _, err := handler.Analyze(context.Background(), "BTCUSDT", models.Interval1h); err == nil {
		t.Error("expected error for empty series")
	}
}
