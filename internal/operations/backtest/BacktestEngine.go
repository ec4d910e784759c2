package backtest

import (
	"fmt"
	"log"

	"CryptoMarketAnalyzer/internal/models"
)

// Engine replays one candle series plus its signal series through a
// FLAT/LONG position state machine with commission and slippage. Each run
// owns its state exclusively; runs for different symbols or strategies can go
// in parallel as long as each gets its own Engine.
type Engine struct {
	config Config

	cash        float64
	position    *Position
	trades      []Trade
	equityCurve []EquityPoint
}

func NewEngine(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Engine{config: config}, nil
}

// Run executes the backtest. The signal series must align 1:1 with the
// candle series; a mismatch is a fatal configuration error.
func (e *Engine) Run(candles []models.Candle, signals []models.TradingSignal) (*Results, error) {
	if len(signals) != len(candles) {
		return nil, fmt.Errorf("signal series length %d does not match candle series length %d",
			len(signals), len(candles))
	}
	if err := models.ValidateSeries(candles); err != nil {
		return nil, err
	}

	e.cash = e.config.InitialCapital
	e.position = nil
	e.trades = nil
	e.equityCurve = make([]EquityPoint, 0, len(candles))

	for i, candle := range candles {
		if e.position != nil {
			if reason, exited := e.exitReason(candle, signals[i]); exited {
				e.closePosition(candle, reason)
			}
		} else if signals[i] == models.SignalBuy {
			e.openPosition(candle)
		}

		e.equityCurve = append(e.equityCurve, EquityPoint{
			Timestamp: candle.OpenTime,
			Balance:   e.markToMarket(candle.Close),
		})
	}

	// Force-close any open position on the final bar so the ledger is fully
	// realized
	if e.position != nil && len(candles) > 0 {
		e.closePosition(candles[len(candles)-1], models.ExitReasonEndOfData)
		e.equityCurve[len(e.equityCurve)-1].Balance = e.cash
	}

	analyzer := NewPerformanceAnalyzer()
	return &Results{
		Trades:      e.trades,
		EquityCurve: e.equityCurve,
		Metrics:     analyzer.Analyze(e.trades, e.equityCurve, e.config.InitialCapital),
		FinalEquity: e.cash,
	}, nil
}

// exitReason applies the exit priority: stop loss, then take profit, then
// the strategy's SELL signal. Capital protection first.
func (e *Engine) exitReason(candle models.Candle, signal models.TradingSignal) (string, bool) {
	if e.position.StopLoss > 0 && candle.Low <= e.position.StopLoss {
		return models.ExitReasonStopLoss, true
	}
	if e.position.TakeProfit > 0 && candle.High >= e.position.TakeProfit {
		return models.ExitReasonTakeProfit, true
	}
	if signal == models.SignalSell {
		return models.ExitReasonSignal, true
	}
	return "", false
}

func (e *Engine) openPosition(candle models.Candle) {
	fill := candle.Close * (1 + e.config.Slippage)
	size := e.config.PositionSize
	commission := fill * size * e.config.Commission
	cost := fill*size + commission
	if cost > e.cash {
		log.Printf("[backtest] skipping BUY at %s: cost %.2f exceeds cash %.2f",
			candle.OpenTime.Format("2006-01-02 15:04:05"), cost, e.cash)
		return
	}

	e.cash -= cost
	pos := &Position{
		EntryFill:  fill,
		Size:       size,
		EntryTime:  candle.OpenTime,
		Commission: commission,
		Slippage:   (fill - candle.Close) * size,
	}
	if e.config.StopLossPct > 0 {
		pos.StopLoss = fill * (1 - e.config.StopLossPct)
	}
	if e.config.TakeProfitPct > 0 {
		pos.TakeProfit = fill * (1 + e.config.TakeProfitPct)
	}
	e.position = pos
}

func (e *Engine) closePosition(candle models.Candle, reason string) {
	pos := e.position
	fill := candle.Close * (1 - e.config.Slippage)
	commission := fill * pos.Size * e.config.Commission
	e.cash += fill*pos.Size - commission

	totalCommission := pos.Commission + commission
	e.trades = append(e.trades, Trade{
		EntryTime:      pos.EntryTime,
		ExitTime:       candle.OpenTime,
		EntryPrice:     pos.EntryFill,
		ExitPrice:      fill,
		Size:           pos.Size,
		CommissionPaid: totalCommission,
		SlippagePaid:   pos.Slippage + (candle.Close-fill)*pos.Size,
		PnL:            (fill-pos.EntryFill)*pos.Size - totalCommission,
		ExitReason:     reason,
	})
	e.position = nil
}

// markToMarket values the portfolio at the given close price
func (e *Engine) markToMarket(close float64) float64 {
	equity := e.cash
	if e.position != nil {
		equity += e.position.Size * close
	}
	return equity
}
