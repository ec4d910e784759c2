package strategy

import (
	"fmt"

	"CryptoMarketAnalyzer/internal/models"
	"CryptoMarketAnalyzer/internal/services/indicators"
)

// SMAConfig holds the SMA crossover strategy parameters
type SMAConfig struct {
	ShortWindow int
	LongWindow  int
}

func (c SMAConfig) Validate() error {
	if c.ShortWindow <= 0 {
		return fmt.Errorf("sma: short window must be positive, got %d", c.ShortWindow)
	}
	if c.LongWindow <= c.ShortWindow {
		return fmt.Errorf("sma: long window (%d) must exceed short window (%d)",
			c.LongWindow, c.ShortWindow)
	}
	return nil
}

// SMAStrategy signals on SMA crossovers: BUY on the bar where the short SMA
// crosses above the long SMA (golden cross), SELL on the death cross.
// Tied values count as no-cross.
type SMAStrategy struct {
	config SMAConfig
	sma    *indicators.SMAService
}

func NewSMAStrategy(config SMAConfig) (*SMAStrategy, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &SMAStrategy{
		config: config,
		sma:    indicators.NewSMAService(),
	}, nil
}

func (s *SMAStrategy) Name() string {
	return NameSMACrossover
}

func (s *SMAStrategy) GenerateSignals(candles []models.Candle) ([]models.TradingSignal, error) {
	signals := holdSeries(len(candles))
	if len(candles) <= s.config.LongWindow {
		return signals, nil
	}

	closes := models.Closes(candles)
	short := s.sma.Calculate(closes, s.config.ShortWindow)
	long := s.sma.Calculate(closes, s.config.LongWindow)

	for i := 1; i < len(candles); i++ {
		if anyNaN(short[i-1], long[i-1], short[i], long[i]) {
			continue
		}

		// Golden cross: short crosses above long
		if short[i-1] <= long[i-1] && short[i] > long[i] {
			signals[i] = models.SignalBuy
			continue
		}

		// Death cross: short crosses below long
		if short[i-1] >= long[i-1] && short[i] < long[i] {
			signals[i] = models.SignalSell
		}
	}

	return signals, nil
}
