package backtest

import (
	"math"
	"time"
)

// PerformanceAnalyzer reduces a trade ledger and equity curve to summary
// statistics. Every metric degrades to zero on empty input rather than
// failing.
type PerformanceAnalyzer struct{}

func NewPerformanceAnalyzer() *PerformanceAnalyzer {
	return &PerformanceAnalyzer{}
}

func (a *PerformanceAnalyzer) Analyze(trades []Trade, equityCurve []EquityPoint, initialCapital float64) Metrics {
	metrics := Metrics{TotalTrades: len(trades)}

	winSum := 0.0
	lossSum := 0.0
	for _, trade := range trades {
		if trade.PnL > 0 {
			metrics.WinningTrades++
			winSum += trade.PnL
		} else {
			metrics.LosingTrades++
			lossSum += trade.PnL
		}
	}
	if metrics.TotalTrades > 0 {
		metrics.WinRate = float64(metrics.WinningTrades) / float64(metrics.TotalTrades)
	}
	if metrics.WinningTrades > 0 {
		metrics.AverageWin = winSum / float64(metrics.WinningTrades)
	}
	if metrics.LosingTrades > 0 {
		metrics.AverageLoss = lossSum / float64(metrics.LosingTrades)
	}

	if len(equityCurve) > 0 && initialCapital > 0 {
		final := equityCurve[len(equityCurve)-1].Balance
		metrics.TotalReturn = (final - initialCapital) / initialCapital
	}

	metrics.MaxDrawdown = a.maxDrawdown(equityCurve)
	metrics.SharpeRatio = a.sharpeRatio(equityCurve)

	return metrics
}

// maxDrawdown finds the largest peak-to-trough equity decline as a fraction
// of the peak
func (a *PerformanceAnalyzer) maxDrawdown(equityCurve []EquityPoint) float64 {
	maxDrawdown := 0.0
	peak := 0.0
	for _, point := range equityCurve {
		if point.Balance > peak {
			peak = point.Balance
		}
		if peak > 0 {
			drawdown := (peak - point.Balance) / peak
			if drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}
	return maxDrawdown
}

// sharpeRatio annualizes the mean/stddev of per-bar equity returns. The bar
// spacing is inferred from the curve's timestamps; crypto trades around the
// clock, so a 365-day year is used.
func (a *PerformanceAnalyzer) sharpeRatio(equityCurve []EquityPoint) float64 {
	if len(equityCurve) < 3 {
		return 0
	}

	returns := make([]float64, 0, len(equityCurve)-1)
	for i := 1; i < len(equityCurve); i++ {
		prev := equityCurve[i-1].Balance
		if prev == 0 {
			return 0
		}
		returns = append(returns, equityCurve[i].Balance/prev-1)
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		diff := r - mean
		variance += diff * diff
	}
	variance /= float64(len(returns) - 1)
	if variance == 0 {
		return 0
	}

	barSpacing := equityCurve[1].Timestamp.Sub(equityCurve[0].Timestamp)
	if barSpacing <= 0 {
		return 0
	}
	barsPerYear := float64(365*24*time.Hour) / float64(barSpacing)

	return math.Sqrt(barsPerYear) * mean / math.Sqrt(variance)
}
