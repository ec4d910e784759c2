package models

// TradingSignal is a per-candle strategy decision
type TradingSignal string

const (
	SignalBuy  TradingSignal = "BUY"
	SignalSell TradingSignal = "SELL"
	SignalHold TradingSignal = "HOLD"
)

// Exit reasons for closed trades
const (
	ExitReasonStopLoss   = "stop_loss"
	ExitReasonTakeProfit = "take_profit"
	ExitReasonSignal     = "signal"
	ExitReasonEndOfData  = "end_of_data"
)
