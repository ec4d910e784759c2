package detector

import (
	"math"
	"time"

	"CryptoMarketAnalyzer/internal/models"
	"CryptoMarketAnalyzer/internal/services/indicators"
)

// Detector scores candle series for pump and dump anomalies. Each
// (symbol, interval, kind) key runs an independent IDLE/SUPPRESSED state
// machine: once an event fires, the key stays suppressed for the configured
// cooldown and returns to IDLE lazily on the next evaluation past it.
//
// State lives on the instance and dies with it; callers evaluate from a
// single goroutine per the batch model.
type Detector struct {
	config    Config
	sma       *indicators.SMAService
	rsi       *indicators.RSIService
	lastAlert map[alertKey]time.Time
}

func NewDetector(config Config) (*Detector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Detector{
		config:    config,
		sma:       indicators.NewSMAService(),
		rsi:       indicators.NewRSIService(),
		lastAlert: make(map[alertKey]time.Time),
	}, nil
}

// Intervals returns the intervals the detector evaluates per symbol
func (d *Detector) Intervals() []string {
	return d.config.Intervals
}

// Evaluate scores the latest bar of one (symbol, interval) series for both
// pump and dump conditions and returns the events that fire, zero, one or
// two. The series must already be validated and sorted ascending.
func (d *Detector) Evaluate(symbol, interval string, candles []models.Candle, now time.Time) []models.DetectionEvent {
	lookback := d.config.LookbackPeriod
	if len(candles) <= lookback {
		return nil
	}

	last := candles[len(candles)-1]
	if last.Volume < d.config.MinVolume {
		return nil
	}

	// Baseline volume excludes the bar under test so a spike cannot dilute
	// its own reference average.
	volumeMA := d.sma.CalculateOne(models.Volumes(candles[:len(candles)-1]), lookback)
	if math.IsNaN(volumeMA) || volumeMA == 0 {
		return nil
	}
	volumeRatio := last.Volume / volumeMA

	base := candles[len(candles)-1-lookback].Close
	if base == 0 {
		return nil
	}
	priceChange := (last.Close - base) / base

	currentRSI := math.NaN()
	if rsi := d.rsi.Calculate(models.Closes(candles), d.config.RSIPeriod); rsi != nil {
		currentRSI = rsi[len(rsi)-1]
	}

	var events []models.DetectionEvent
	for _, kind := range []string{models.DetectionKindPump, models.DetectionKindDump} {
		score := d.score(kind, volumeRatio, priceChange, currentRSI)
		if score < d.config.MinScore {
			continue
		}

		key := alertKey{Symbol: symbol, Interval: interval, Kind: kind}
		if !d.idle(key, now) {
			continue
		}
		d.lastAlert[key] = now

		events = append(events, models.DetectionEvent{
			Symbol:          symbol,
			Interval:        interval,
			Kind:            kind,
			Score:           score,
			VolumeRatio:     volumeRatio,
			PriceChange:     priceChange,
			RSI:             currentRSI,
			TriggeredAt:     now,
			SuppressedUntil: now.Add(d.config.AlertCooldown),
		})
	}
	return events
}

// idle reports whether the key is outside its cooldown window
func (d *Detector) idle(key alertKey, now time.Time) bool {
	last, fired := d.lastAlert[key]
	if !fired {
		return true
	}
	return !now.Before(last.Add(d.config.AlertCooldown))
}

// score combines volume spike, price move and RSI extremity into a 0-100
// composite. Each term is a gated linear ramp, so the score is monotonically
// non-decreasing in the volume ratio, the price change magnitude, and the RSI
// distance past its gate.
func (d *Detector) score(kind string, volumeRatio, priceChange, rsi float64) float64 {
	score := 0.0

	// Volume spike: 30 points at the threshold, up to 40 at double it
	if volumeRatio >= d.config.VolumeThreshold {
		score += 30 + 10*clamp01(volumeRatio/d.config.VolumeThreshold-1)
	}

	// Directional price move: 30 points at the threshold magnitude, up to 40
	// at double it
	directional := priceChange
	if kind == models.DetectionKindDump {
		directional = -priceChange
	}
	threshold := math.Abs(d.config.PriceThreshold)
	if directional >= threshold {
		score += 30 + 10*clamp01(directional/threshold-1)
	}

	// RSI extremity: up to 20 points past the gate in the move's direction
	if !math.IsNaN(rsi) {
		if kind == models.DetectionKindPump && rsi > d.config.RSIOverbought {
			score += 20 * clamp01((rsi-d.config.RSIOverbought)/(100-d.config.RSIOverbought))
		}
		if kind == models.DetectionKindDump && rsi < d.config.RSIOversold {
			score += 20 * clamp01((d.config.RSIOversold-rsi)/d.config.RSIOversold)
		}
	}

	return math.Min(score, 100)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}
