package strategy

import (
	"math"

	"CryptoMarketAnalyzer/internal/models"
)

// Strategy generates one trading signal per candle from a candle series and
// its indicator frames. Implementations must not mutate their inputs and must
// not read candles beyond the index of the signal being produced.
type Strategy interface {
	Name() string
	GenerateSignals(candles []models.Candle) ([]models.TradingSignal, error)
}

// Registered strategy identifiers
const (
	NameSMACrossover = "sma"
	NameMACDRSIBB    = "macd_rsi_bb"
	NamePump         = "pump"
	NameDump         = "dump"
)

// holdSeries allocates an all-HOLD signal slice
func holdSeries(n int) []models.TradingSignal {
	signals := make([]models.TradingSignal, n)
	for i := range signals {
		signals[i] = models.SignalHold
	}
	return signals
}

// anyNaN reports whether any of the values is undefined. Strategies treat
// undefined indicator inputs as HOLD, never as an error.
func anyNaN(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
