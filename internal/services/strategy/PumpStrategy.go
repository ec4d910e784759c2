package strategy

import (
	"fmt"

	"CryptoMarketAnalyzer/internal/models"
	"CryptoMarketAnalyzer/internal/services/indicators"
)

// PumpConfig holds the pump strategy parameters
type PumpConfig struct {
	VolumeThreshold    float64 // multiple of average volume
	PricePumpThreshold float64 // minimum rise over the lookback, e.g. 0.03
	LookbackPeriod     int
	ProfitTarget       float64 // take-profit return, e.g. 0.02
	StopLoss           float64 // stop return, negative, e.g. -0.02
}

func (c PumpConfig) Validate() error {
	if c.VolumeThreshold <= 1 {
		return fmt.Errorf("pump: volume threshold must exceed 1, got %.2f", c.VolumeThreshold)
	}
	if c.PricePumpThreshold <= 0 {
		return fmt.Errorf("pump: price pump threshold must be positive, got %.4f", c.PricePumpThreshold)
	}
	if c.LookbackPeriod <= 0 {
		return fmt.Errorf("pump: lookback period must be positive, got %d", c.LookbackPeriod)
	}
	if c.ProfitTarget <= 0 {
		return fmt.Errorf("pump: profit target must be positive, got %.4f", c.ProfitTarget)
	}
	if c.StopLoss >= 0 {
		return fmt.Errorf("pump: stop loss must be negative, got %.4f", c.StopLoss)
	}
	return nil
}

// PumpStrategy enters long when volume spikes above its trailing average and
// price has risen sharply over the lookback. The position exits at the profit
// target or the stop loss, whichever is hit first scanning forward.
type PumpStrategy struct {
	config PumpConfig
	sma    *indicators.SMAService
}

func NewPumpStrategy(config PumpConfig) (*PumpStrategy, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &PumpStrategy{
		config: config,
		sma:    indicators.NewSMAService(),
	}, nil
}

func (s *PumpStrategy) Name() string {
	return NamePump
}

func (s *PumpStrategy) GenerateSignals(candles []models.Candle) ([]models.TradingSignal, error) {
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

		// Exit takes priority over a new entry on the same bar
		if inPosition {
			ret := (current - entryPrice) / entryPrice
			if ret >= s.config.ProfitTarget || ret <= s.config.StopLoss {
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
		priceRise := (current - base) / base

		if volumeRatio > s.config.VolumeThreshold && priceRise > s.config.PricePumpThreshold {
			signals[i] = models.SignalBuy
			inPosition = true
			entryPrice = current
		}
	}

	return signals, nil
}
