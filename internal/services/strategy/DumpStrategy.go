package strategy

import (
	"fmt"

	"CryptoMarketAnalyzer/internal/models"
	"CryptoMarketAnalyzer/internal/services/indicators"
)

// DumpConfig holds the dump strategy parameters
type DumpConfig struct {
	VolumeThreshold    float64 // multiple of average volume
	PriceDropThreshold float64 // maximum drop over the lookback, negative, e.g. -0.03
	LookbackPeriod     int
	RecoveryThreshold  float64 // recovery return to take profit on, e.g. 0.02
}

func (c DumpConfig) Validate() error {
	if c.VolumeThreshold <= 1 {
		return fmt.Errorf("dump: volume threshold must exceed 1, got %.2f", c.VolumeThreshold)
	}
	if c.PriceDropThreshold >= 0 {
		return fmt.Errorf("dump: price drop threshold must be negative, got %.4f", c.PriceDropThreshold)
	}
	if c.LookbackPeriod <= 0 {
		return fmt.Errorf("dump: lookback period must be positive, got %d", c.LookbackPeriod)
	}
	if c.RecoveryThreshold <= 0 {
		return fmt.Errorf("dump: recovery threshold must be positive, got %.4f", c.RecoveryThreshold)
	}
	return nil
}

// DumpStrategy buys into a high-volume sell-off to capture the recovery,
// exiting at the recovery target or bailing out if the price keeps falling
// past the drop threshold.
type DumpStrategy struct {
	config DumpConfig
	sma    *indicators.SMAService
}

func NewDumpStrategy(config DumpConfig) (*DumpStrategy, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &DumpStrategy{
		config: config,
		sma:    indicators.NewSMAService(),
	}, nil
}

func (s *DumpStrategy) Name() string {
	return NameDump
}

func (s *DumpStrategy) GenerateSignals(candles []models.Candle) ([]models.TradingSignal, error) {
	signals := holdSeries(len(candles))
	lookback := s.config.LookbackPeriod
	if len(candles) <= lookback {
		return signals, nil
	}

	volumeMA := s.sma.Calculate(models.Volumes(candles), lookback)

	inPosition := false
	entryPrice := 0.0

	for i := lookback; i < len(candles); i++ {
		current := candles[i].Close

		if inPosition {
			ret := (current - entryPrice) / entryPrice
			if ret >= s.config.RecoveryThreshold || ret <= s.config.PriceDropThreshold {
				signals[i] = models.SignalSell
				inPosition = false
			}
			continue
		}

		if anyNaN(volumeMA[i]) || volumeMA[i] == 0 {
			continue
		}
		base := candles[i-lookback].Close
		if base == 0 {
			continue
		}

		volumeRatio := candles[i].Volume / volumeMA[i]
		priceDrop := (current - base) / base

		if volumeRatio > s.config.VolumeThreshold && priceDrop < s.config.PriceDropThreshold {
			signals[i] = models.SignalBuy
			inPosition = true
			entryPrice = current
		}
	}

	return signals, nil
}
