package indicators

import "math"

// EMAService provides Exponential Moving Average calculations
type EMAService struct{}

// NewEMAService creates a new EMA service instance
func NewEMAService() *EMAService {
	return &EMAService{}
}

// Calculate computes EMA for the entire price series, seeded by the SMA of
// the first period values. Values before index period-1 are NaN.
func (s *EMAService) Calculate(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period {
		return nil
	}

	ema := make([]float64, len(prices))
	for i := 0; i < period-1; i++ {
		ema[i] = math.NaN()
	}

	multiplier := s.getMultiplier(period)

	// Seed with the initial SMA
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	ema[period-1] = sum / float64(period)

	for i := period; i < len(prices); i++ {
		ema[i] = s.calculatePoint(prices[i], ema[i-1], multiplier)
	}

	return ema
}

// CalculatePoint advances a single EMA value by one price
func (s *EMAService) CalculatePoint(currentPrice, prevEMA float64, period int) float64 {
	if period <= 0 {
		return math.NaN()
	}
	return s.calculatePoint(currentPrice, prevEMA, s.getMultiplier(period))
}

func (s *EMAService) getMultiplier(period int) float64 {
	return 2.0 / float64(period+1)
}

func (s *EMAService) calculatePoint(price, prevEMA, multiplier float64) float64 {
	return (price-prevEMA)*multiplier + prevEMA
}
