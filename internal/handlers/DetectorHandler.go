package handlers

import (
	"context"
	"log"
	"time"

	"CryptoMarketAnalyzer/internal/models"
	"CryptoMarketAnalyzer/internal/operations/price"
	"CryptoMarketAnalyzer/internal/repositories"
	"CryptoMarketAnalyzer/internal/services/detector"
)

// DetectorHandler polls the exchange for fresh candles and feeds them through
// the pump/dump detector, persisting any events it raises.
type DetectorHandler struct {
	detector     *detector.Detector
	provider     price.Provider
	alertRepo    *repositories.AlertRepository
	symbols      []string
	pollInterval time.Duration
}

func NewDetectorHandler(
	d *detector.Detector,
	provider price.Provider,
	alertRepo *repositories.AlertRepository,
	symbols []string,
	pollInterval time.Duration,
) *DetectorHandler {
	return &DetectorHandler{
		detector:     d,
		provider:     provider,
		alertRepo:    alertRepo,
		symbols:      symbols,
		pollInterval: pollInterval,
	}
}

// Start blocks, evaluating all symbols every poll interval until the context
// is cancelled. Evaluation failures are logged and do not stop the loop.
func (h *DetectorHandler) Start(ctx context.Context) {
	log.Printf("[detector] monitoring %d symbols every %s", len(h.symbols), h.pollInterval)

	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	h.runCycle(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Println("[detector] stopping")
			return
		case <-ticker.C:
			h.runCycle(ctx)
		}
	}
}

func (h *DetectorHandler) runCycle(ctx context.Context) {
	events, err := h.EvaluateDetectors(ctx, h.symbols)
	if err != nil {
		log.Printf("[detector] cycle error: %v", err)
	}
	for _, e := range events {
		log.Printf("[detector] %s %s %s score=%.1f volRatio=%.2f priceChange=%.2f%% rsi=%.1f",
			e.Kind, e.Symbol, e.Interval, e.Score,
			e.VolumeRatio, e.PriceChange*100, e.RSI)
	}
}

// EvaluateDetectors runs one detection pass over every (symbol, interval)
// pair and returns the events that fired. A fetch failure for one pair is
// logged and skipped so the rest of the pass still runs.
func (h *DetectorHandler) EvaluateDetectors(ctx context.Context, symbols []string) ([]models.DetectionEvent, error) {
	var fired []models.DetectionEvent
	now := time.Now()

	for _, symbol := range symbols {
		for _, interval := range h.detector.Intervals() {
			if ctx.Err() != nil {
				return fired, ctx.Err()
			}

			candles, err := h.provider.Fetch(ctx, symbol, interval, time.Time{}, time.Time{})
			if err != nil {
				log.Printf("[detector] fetch %s %s: %v", symbol, interval, err)
				continue
			}

			events := h.detector.Evaluate(symbol, interval, candles, now)
			for i := range events {
				if h.alertRepo != nil {
					if err := h.alertRepo.Create(&events[i]); err != nil {
						log.Printf("[detector] saving event: %v", err)
					}
				}
			}
			fired = append(fired, events...)
		}
	}
	return fired, nil
}
