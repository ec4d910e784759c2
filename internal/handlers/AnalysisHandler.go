package handlers

import (
	"context"
	"fmt"
	"math"
	"time"

	"CryptoMarketAnalyzer/internal/models"
	"CryptoMarketAnalyzer/internal/operations/price"
	"CryptoMarketAnalyzer/internal/services/indicators"
)

// Snapshot is the latest indicator readout for one (symbol, interval).
type Snapshot struct {
	Symbol    string    `json:"symbol"`
	Interval  string    `json:"interval"`
	Timestamp time.Time `json:"timestamp"`
	Close     float64   `json:"close"`
	SMA20     float64   `json:"sma_20"`
	EMA20     float64   `json:"ema_20"`
	RSI14     float64   `json:"rsi_14"`
	MACD      float64   `json:"macd"`
	Signal    float64   `json:"macd_signal"`
	Histogram float64   `json:"macd_histogram"`
	BBUpper   float64   `json:"bb_upper"`
	BBMiddle  float64   `json:"bb_middle"`
	BBLower   float64   `json:"bb_lower"`
}

// AnalysisHandler computes an indicator snapshot over fresh candles.
type AnalysisHandler struct {
	provider price.Provider
	sma      *indicators.SMAService
	ema      *indicators.EMAService
	rsi      *indicators.RSIService
	macd     *indicators.MACDService
	bbands   *indicators.BBandsService
}

func NewAnalysisHandler(provider price.Provider) *AnalysisHandler {
	return &AnalysisHandler{
		provider: provider,
		sma:      indicators.NewSMAService(),
		ema:      indicators.NewEMAService(),
		rsi:      indicators.NewRSIService(),
		macd:     indicators.NewMACDService(),
		bbands:   indicators.NewBBandsService(),
	}
}

// Analyze fetches the latest candles and returns the indicator values at the
// most recent bar. Values still inside an indicator warmup are NaN.
func (h *AnalysisHandler) Analyze(ctx context.Context, symbol, interval string) (*Snapshot, error) {
	candles, err := h.provider.Fetch(ctx, symbol, interval, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("no candles for %s %s", symbol, interval)
	}

	closes := models.Closes(candles)
	last := len(closes) - 1

	snapshot := &Snapshot{
		Symbol:    symbol,
		Interval:  interval,
		Timestamp: candles[last].OpenTime,
		Close:     closes[last],
		SMA20:     h.sma.CalculateOne(closes, 20),
		EMA20:     lastOf(h.ema.Calculate(closes, 20)),
		RSI14:     lastOf(h.rsi.Calculate(closes, 14)),
	}

	snapshot.MACD = math.NaN()
	snapshot.Signal = math.NaN()
	snapshot.Histogram = math.NaN()
	snapshot.BBUpper = math.NaN()
	snapshot.BBMiddle = math.NaN()
	snapshot.BBLower = math.NaN()

	if macdRes := h.macd.Calculate(closes, 12, 26, 9); macdRes != nil {
		snapshot.MACD = macdRes.MACD[last]
		snapshot.Signal = macdRes.Signal[last]
		snapshot.Histogram = macdRes.Histogram[last]
	}
	if bb := h.bbands.Calculate(closes, 20, 2.0); bb != nil {
		snapshot.BBUpper = bb.Upper[last]
		snapshot.BBMiddle = bb.Middle[last]
		snapshot.BBLower = bb.Lower[last]
	}

	return snapshot, nil
}

func lastOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[len(values)-1]
}
