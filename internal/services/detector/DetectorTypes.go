package detector

import (
	"fmt"
	"time"
)

// Config holds the pump/dump detector thresholds. Loaded once at
// construction; out-of-range values are rejected, never clamped.
type Config struct {
	VolumeThreshold float64       // volume ratio that earns full base credit, e.g. 3.0
	PriceThreshold  float64       // price change magnitude over the lookback, e.g. 0.02
	RSIOverbought   float64       // pump-direction RSI gate, typically 70
	RSIOversold     float64       // dump-direction RSI gate, typically 30
	RSIPeriod       int
	LookbackPeriod  int           // bars for average volume and price change
	MinScore        float64       // minimum composite score to fire, 0-100
	MinVolume       float64       // minimum bar volume to consider at all
	AlertCooldown   time.Duration // suppression window per (symbol, interval, kind)
	Intervals       []string      // intervals evaluated independently per symbol
}

func (c Config) Validate() error {
	if c.VolumeThreshold <= 1 {
		return fmt.Errorf("detector: volume threshold must exceed 1, got %.2f", c.VolumeThreshold)
	}
	if c.PriceThreshold == 0 {
		return fmt.Errorf("detector: price threshold cannot be zero")
	}
	if c.RSIOversold <= 0 || c.RSIOverbought >= 100 || c.RSIOversold >= c.RSIOverbought {
		return fmt.Errorf("detector: RSI gates must satisfy 0 < oversold < overbought < 100, got %.1f/%.1f",
			c.RSIOversold, c.RSIOverbought)
	}
	if c.RSIPeriod <= 0 {
		return fmt.Errorf("detector: RSI period must be positive, got %d", c.RSIPeriod)
	}
	if c.LookbackPeriod <= 0 {
		return fmt.Errorf("detector: lookback period must be positive, got %d", c.LookbackPeriod)
	}
	if c.MinScore < 0 || c.MinScore > 100 {
		return fmt.Errorf("detector: min score must be in [0,100], got %.1f", c.MinScore)
	}
	if c.MinVolume < 0 {
		return fmt.Errorf("detector: min volume cannot be negative, got %.1f", c.MinVolume)
	}
	if c.AlertCooldown <= 0 {
		return fmt.Errorf("detector: alert cooldown must be positive, got %s", c.AlertCooldown)
	}
	if len(c.Intervals) == 0 {
		return fmt.Errorf("detector: at least one interval required")
	}
	return nil
}

// alertKey identifies an independent cooldown state machine
type alertKey struct {
	Symbol   string
	Interval string
	Kind     string
}
