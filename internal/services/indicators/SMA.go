package indicators

import "math"

// SMAService provides Simple Moving Average calculations
type SMAService struct{}

func NewSMAService() *SMAService {
	return &SMAService{}
}

// Calculate computes the trailing SMA over the whole series. Values before
// index window-1 are NaN (not yet computable).
func (s *SMAService) Calculate(prices []float64, window int) []float64 {
	if window <= 0 || len(prices) < window {
		return nil
	}

	sma := make([]float64, len(prices))
	for i := 0; i < window-1; i++ {
		sma[i] = math.NaN()
	}

	// Rolling sum, subtract the value leaving the window
	sum := 0.0
	for i, price := range prices {
		sum += price
		if i >= window {
			sum -= prices[i-window]
		}
		if i >= window-1 {
			sma[i] = sum / float64(window)
		}
	}

	return sma
}

// CalculateOne computes the SMA of the trailing window only
func (s *SMAService) CalculateOne(prices []float64, window int) float64 {
	if window <= 0 || len(prices) < window {
		return math.NaN()
	}

	sum := 0.0
	for _, price := range prices[len(prices)-window:] {
		sum += price
	}
	return sum / float64(window)
}
