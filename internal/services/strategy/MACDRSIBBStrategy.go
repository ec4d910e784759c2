package strategy

import (
	"fmt"

	"CryptoMarketAnalyzer/internal/models"
	"CryptoMarketAnalyzer/internal/services/indicators"
)

// MACDRSIBBConfig holds the confluence strategy parameters
type MACDRSIBBConfig struct {
	MACDFast      int
	MACDSlow      int
	MACDSignal    int
	RSIPeriod     int
	RSIOverbought float64
	RSIOversold   float64
	BBPeriod      int
	BBStdDev      float64
}

func (c MACDRSIBBConfig) Validate() error {
	if c.MACDFast <= 0 || c.MACDSignal <= 0 {
		return fmt.Errorf("macd_rsi_bb: MACD periods must be positive")
	}
	if c.MACDSlow <= c.MACDFast {
		return fmt.Errorf("macd_rsi_bb: MACD slow period (%d) must exceed fast period (%d)",
			c.MACDSlow, c.MACDFast)
	}
	if c.RSIPeriod <= 0 {
		return fmt.Errorf("macd_rsi_bb: RSI period must be positive, got %d", c.RSIPeriod)
	}
	if c.RSIOversold <= 0 || c.RSIOverbought >= 100 || c.RSIOversold >= c.RSIOverbought {
		return fmt.Errorf("macd_rsi_bb: RSI thresholds must satisfy 0 < oversold < overbought < 100, got %.1f/%.1f",
			c.RSIOversold, c.RSIOverbought)
	}
	if c.BBPeriod < 2 {
		return fmt.Errorf("macd_rsi_bb: Bollinger period must be at least 2, got %d", c.BBPeriod)
	}
	if c.BBStdDev <= 0 {
		return fmt.Errorf("macd_rsi_bb: Bollinger deviation must be positive, got %.2f", c.BBStdDev)
	}
	return nil
}

// MACDRSIBBStrategy requires all three confirmations on the same bar:
// BUY when the MACD histogram flips from <=0 to >0, RSI is oversold, and the
// close is at or below the lower Bollinger band. SELL on the full mirror.
type MACDRSIBBStrategy struct {
	config MACDRSIBBConfig
	macd   *indicators.MACDService
	rsi    *indicators.RSIService
	bbands *indicators.BBandsService
}

func NewMACDRSIBBStrategy(config MACDRSIBBConfig) (*MACDRSIBBStrategy, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &MACDRSIBBStrategy{
		config: config,
		macd:   indicators.NewMACDService(),
		rsi:    indicators.NewRSIService(),
		bbands: indicators.NewBBandsService(),
	}, nil
}

func (s *MACDRSIBBStrategy) Name() string {
	return NameMACDRSIBB
}

func (s *MACDRSIBBStrategy) GenerateSignals(candles []models.Candle) ([]models.TradingSignal, error) {
	signals := holdSeries(len(candles))

	closes := models.Closes(candles)
	macd := s.macd.Calculate(closes, s.config.MACDFast, s.config.MACDSlow, s.config.MACDSignal)
	rsi := s.rsi.Calculate(closes, s.config.RSIPeriod)
	bbands := s.bbands.Calculate(closes, s.config.BBPeriod, s.config.BBStdDev)
	if macd == nil || rsi == nil || bbands == nil {
		return signals, nil
	}

	for i := 1; i < len(candles); i++ {
		if anyNaN(macd.Histogram[i-1], macd.Histogram[i], rsi[i], bbands.Upper[i], bbands.Lower[i]) {
			continue
		}

		histFlipUp := macd.Histogram[i-1] <= 0 && macd.Histogram[i] > 0
		histFlipDown := macd.Histogram[i-1] >= 0 && macd.Histogram[i] < 0

		if histFlipUp && rsi[i] < s.config.RSIOversold && closes[i] <= bbands.Lower[i] {
			signals[i] = models.SignalBuy
			continue
		}

		if histFlipDown && rsi[i] > s.config.RSIOverbought && closes[i] >= bbands.Upper[i] {
			signals[i] = models.SignalSell
		}
	}

	return signals, nil
}
