package indicators

import "math"

// RSIService provides Relative Strength Index calculations using Wilder's
// smoothing of average gains and losses.
type RSIService struct{}

func NewRSIService() *RSIService {
	return &RSIService{}
}

// Calculate computes RSI over the whole series. The first valid value is at
// index period (one delta per bar, period deltas to seed); earlier values are
// NaN. Results are clamped to [0, 100]; zero average loss yields 100.
func (s *RSIService) Calculate(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period+1 {
		return nil
	}

	rsi := make([]float64, len(prices))
	for i := 0; i < period; i++ {
		rsi[i] = math.NaN()
	}

	// Seed averages with the simple mean of the first period deltas
	avgGain := 0.0
	avgLoss := 0.0
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	rsi[period] = s.value(avgGain, avgLoss)

	// Wilder's smoothing for the rest of the series
	p := float64(period)
	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain := 0.0
		loss := 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		rsi[i] = s.value(avgGain, avgLoss)
	}

	return rsi
}

func (s *RSIService) value(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	rsi := 100 - (100 / (1 + rs))
	return math.Max(0, math.Min(rsi, 100))
}
