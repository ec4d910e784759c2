package backtest

import (
	"fmt"
	"time"
)

// Position is the single open-position state of one engine run.
// Long-only: FLAT -> LONG via BUY, LONG -> FLAT via SELL/stop/target.
type Position struct {
	EntryFill  float64
	Size       float64
	EntryTime  time.Time
	StopLoss   float64 // price level, 0 = disabled
	TakeProfit float64 // price level, 0 = disabled
	Commission float64
	Slippage   float64
}

// Trade is a closed round trip
type Trade struct {
	EntryTime      time.Time `json:"entry_time"`
	ExitTime       time.Time `json:"exit_time"`
	EntryPrice     float64   `json:"entry_price"` // fill, slippage included
	ExitPrice      float64   `json:"exit_price"`  // fill, slippage included
	Size           float64   `json:"size"`
	CommissionPaid float64   `json:"commission_paid"`
	SlippagePaid   float64   `json:"slippage_paid"`
	PnL            float64   `json:"pnl"`
	ExitReason     string    `json:"exit_reason"`
}

// EquityPoint marks portfolio value at one bar
type EquityPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Balance   float64   `json:"balance"`
}

// Metrics are the summary statistics of a run. All fields are well-defined
// for an empty trade ledger (zero values, never a failure).
type Metrics struct {
	TotalReturn   float64 `json:"total_return"`
	MaxDrawdown   float64 `json:"max_drawdown"`
	WinRate       float64 `json:"win_rate"`
	AverageWin    float64 `json:"average_win"`
	AverageLoss   float64 `json:"average_loss"`
	SharpeRatio   float64 `json:"sharpe_ratio"`
	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
}

// Results bundles the realized ledger, the equity curve and the metrics
type Results struct {
	Trades      []Trade       `json:"trades"`
	EquityCurve []EquityPoint `json:"equity_curve"`
	Metrics     Metrics       `json:"metrics"`
	FinalEquity float64       `json:"final_equity"`
}

// Config holds the simulation cost model and sizing
type Config struct {
	InitialCapital float64
	Commission     float64 // proportional fee per fill, e.g. 0.001
	Slippage       float64 // adverse fill drift per side, e.g. 0.001
	PositionSize   float64 // units of the asset per trade
	StopLossPct    float64 // distance below entry fill, e.g. 0.02; 0 disables
	TakeProfitPct  float64 // distance above entry fill, e.g. 0.04; 0 disables
}

func (c Config) Validate() error {
	if c.InitialCapital <= 0 {
		return fmt.Errorf("backtest: initial capital must be positive, got %.2f", c.InitialCapital)
	}
	if c.Commission < 0 || c.Commission >= 1 {
		return fmt.Errorf("backtest: commission must be in [0,1), got %.4f", c.Commission)
	}
	if c.Slippage < 0 || c.Slippage >= 1 {
		return fmt.Errorf("backtest: slippage must be in [0,1), got %.4f", c.Slippage)
	}
	if c.PositionSize <= 0 {
		return fmt.Errorf("backtest: position size must be positive, got %.4f", c.PositionSize)
	}
	if c.StopLossPct < 0 || c.StopLossPct >= 1 {
		return fmt.Errorf("backtest: stop loss pct must be in [0,1), got %.4f", c.StopLossPct)
	}
	if c.TakeProfitPct < 0 {
		return fmt.Errorf("backtest: take profit pct cannot be negative, got %.4f", c.TakeProfitPct)
	}
	return nil
}
