package indicators

import "math"

type BBandsService struct{}

type BBandsResult struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
	Width  []float64 // Volatility indicator
}

func NewBBandsService() *BBandsService {
	return &BBandsService{}
}

// Calculate computes Bollinger Bands over the whole series. The middle band
// is the SMA; the envelope uses the sample standard deviation of the same
// window. Values before index period-1 are NaN.
func (s *BBandsService) Calculate(prices []float64, period int, deviations float64) *BBandsResult {
	if period < 2 || len(prices) < period {
		return nil
	}

	upper := make([]float64, len(prices))
	middle := make([]float64, len(prices))
	lower := make([]float64, len(prices))
	width := make([]float64, len(prices))
	for i := 0; i < period-1; i++ {
		upper[i] = math.NaN()
		middle[i] = math.NaN()
		lower[i] = math.NaN()
		width[i] = math.NaN()
	}

	for i := period - 1; i < len(prices); i++ {
		subset := prices[i-period+1 : i+1]

		sum := 0.0
		for _, price := range subset {
			sum += price
		}
		sma := sum / float64(period)
		middle[i] = sma

		// Sample standard deviation
		squareSum := 0.0
		for _, price := range subset {
			diff := price - sma
			squareSum += diff * diff
		}
		stdDev := math.Sqrt(squareSum / float64(period-1))

		upper[i] = sma + (deviations * stdDev)
		lower[i] = sma - (deviations * stdDev)
		width[i] = (upper[i] - lower[i]) / sma
	}

	return &BBandsResult{
		Upper:  upper,
		Middle: middle,
		Lower:  lower,
		Width:  width,
	}
}

// ValidatePeriod checks if we have enough data
func (s *BBandsService) ValidatePeriod(prices []float64, period int) bool {
	return len(prices) >= period && period >= 2
}
