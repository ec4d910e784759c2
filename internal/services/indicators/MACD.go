package indicators

import "math"

type MACDService struct {
	ema *EMAService
}

type MACDResult struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

func NewMACDService() *MACDService {
	return &MACDService{
		ema: NewEMAService(),
	}
}

// Calculate returns MACD line, signal line, and histogram.
// Default periods: fast=12, slow=26, signal=9.
// The MACD line is defined from index slowPeriod-1, the signal line and
// histogram from index slowPeriod+signalPeriod-2; NaN before that.
func (s *MACDService) Calculate(prices []float64, fastPeriod, slowPeriod, signalPeriod int) *MACDResult {
	if !s.ValidatePeriods(prices, fastPeriod, slowPeriod, signalPeriod) {
		return nil
	}

	fastEMA := s.ema.Calculate(prices, fastPeriod)
	slowEMA := s.ema.Calculate(prices, slowPeriod)

	macdLine := make([]float64, len(prices))
	for i := range macdLine {
		macdLine[i] = math.NaN()
	}
	for i := slowPeriod - 1; i < len(prices); i++ {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}

	// Signal line: EMA over the defined part of the MACD line, shifted back
	// into series coordinates
	signalLine := make([]float64, len(prices))
	histogram := make([]float64, len(prices))
	for i := range signalLine {
		signalLine[i] = math.NaN()
		histogram[i] = math.NaN()
	}

	defined := macdLine[slowPeriod-1:]
	signalDefined := s.ema.Calculate(defined, signalPeriod)
	for i := range signalDefined {
		if !math.IsNaN(signalDefined[i]) {
			signalLine[slowPeriod-1+i] = signalDefined[i]
			histogram[slowPeriod-1+i] = defined[i] - signalDefined[i]
		}
	}

	return &MACDResult{
		MACD:      macdLine,
		Signal:    signalLine,
		Histogram: histogram,
	}
}

func (s *MACDService) ValidatePeriods(prices []float64, fastPeriod, slowPeriod, signalPeriod int) bool {
	minLength := slowPeriod + signalPeriod - 1
	return len(prices) >= minLength &&
		fastPeriod > 0 &&
		slowPeriod > fastPeriod &&
		signalPeriod > 0
}
