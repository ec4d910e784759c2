package backtest

import (
	"math"
	"testing"
	"time"

	"CryptoMarketAnalyzer/internal/models"
)

func testConfig() Config {
	return Config{
		InitialCapital: 10000,
		Commission:     0.001,
		Slippage:       0.001,
		PositionSize:   1,
	}
}

func flatCandles(closes []float64) []models.Candle {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, len(closes))
	for i, c := range closes {
		candles[i] = models.Candle{
			Symbol:   "BTCUSDT",
			Interval: models.Interval1h,
			OpenTime: base.Add(time.Duration(i) * time.Hour),
			Open:     c,
			High:     c,
			Low:      c,
			Close:    c,
			Volume:   100,
		}
	}
	return candles
}

func signalSeries(signals ...models.TradingSignal) []models.TradingSignal {
	return signals
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero capital", func(c *Config) { c.InitialCapital = 0 }},
		{"negative commission", func(c *Config) { c.Commission = -0.1 }},
		{"commission at 1", func(c *Config) { c.Commission = 1 }},
		{"negative slippage", func(c *Config) { c.Slippage = -0.1 }},
		{"zero size", func(c *Config) { c.PositionSize = 0 }},
		{"stop loss at 1", func(c *Config) { c.StopLossPct = 1 }},
		{"negative take profit", func(c *Config) { c.TakeProfitPct = -0.1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := testConfig()
			tc.mutate(&config)
			if _, err := NewEngine(config); err == nil {
				t.Error("expected config rejection")
			}
		})
	}
}

func TestRunRejectsMismatchedSeries(t *testing.T) {
	engine, _ := NewEngine(testConfig())
	_, err := engine.Run(flatCandles([]float64{100, 101}), signalSeries(models.SignalHold))
	if err == nil {
		t.Error("expected error for mismatched series lengths")
	}
}

func TestRunRejectsUnorderedSeries(t *testing.T) {
	engine, _ := NewEngine(testConfig())
	candles := flatCandles([]float64{100, 101})
	candles[1].OpenTime = candles[0].OpenTime

	_, err := engine.Run(candles, signalSeries(models.SignalHold, models.SignalHold))
	if err == nil {
		t.Error("expected error for non-increasing timestamps")
	}
}

func TestRunAllHoldKeepsCapital(t *testing.T) {
	engine, _ := NewEngine(testConfig())
	candles := flatCandles([]float64{100, 105, 95, 120})
	signals := signalSeries(models.SignalHold, models.SignalHold, models.SignalHold, models.SignalHold)

	results, err := engine.Run(candles, signals)
	if err != nil {
		t.Fatal(err)
	}
	if len(results.Trades) != 0 {
		t.Errorf("expected no trades, got %d", len(results.Trades))
	}
	if results.FinalEquity != 10000 {
		t.Errorf("final equity = %v, want untouched capital", results.FinalEquity)
	}
	for i, p := range results.EquityCurve {
		if p.Balance != 10000 {
			t.Errorf("equity[%d] = %v, want 10000", i, p.Balance)
		}
	}
	if results.Metrics.TotalReturn != 0 || results.Metrics.MaxDrawdown != 0 {
		t.Errorf("expected zero metrics, got %+v", results.Metrics)
	}
}

func TestRunRoundTripCostModel(t *testing.T) {
	engine, _ := NewEngine(testConfig())
	candles := flatCandles([]float64{100, 105, 110, 110})
	signals := signalSeries(models.SignalBuy, models.SignalHold, models.SignalSell, models.SignalHold)

	results, err := engine.Run(candles, signals)
	if err != nil {
		t.Fatal(err)
	}
	if len(results.Trades) != 1 {
		t.Fatalf("expected one trade, got %d", len(results.Trades))
	}

	trade := results.Trades[0]
	if math.Abs(trade.EntryPrice-100.1) > 1e-9 {
		t.Errorf("entry fill = %v, want 100.1", trade.EntryPrice)
	}
	if math.Abs(trade.ExitPrice-109.89) > 1e-9 {
		t.Errorf("exit fill = %v, want 109.89", trade.ExitPrice)
	}
	if math.Abs(trade.PnL-9.58001) > 1e-9 {
		t.Errorf("pnl = %v, want 9.58001", trade.PnL)
	}
	if trade.ExitReason != models.ExitReasonSignal {
		t.Errorf("exit reason = %s, want signal", trade.ExitReason)
	}
	if math.Abs(results.FinalEquity-10009.58001) > 1e-9 {
		t.Errorf("final equity = %v, want 10009.58001", results.FinalEquity)
	}

	// Mark-to-market along the way: bar after entry values the open unit at
	// its close
	if math.Abs(results.EquityCurve[1].Balance-(10000-100.2001+105)) > 1e-9 {
		t.Errorf("equity[1] = %v", results.EquityCurve[1].Balance)
	}
}

func TestRunFlatRoundTripLosesCosts(t *testing.T) {
	engine, _ := NewEngine(testConfig())
	candles := flatCandles([]float64{100, 100})
	signals := signalSeries(models.SignalBuy, models.SignalSell)

	results, err := engine.Run(candles, signals)
	if err != nil {
		t.Fatal(err)
	}
	if len(results.Trades) != 1 {
		t.Fatalf("expected one trade, got %d", len(results.Trades))
	}
	if results.Trades[0].PnL >= 0 {
		t.Errorf("flat round trip must lose commission and slippage, pnl = %v", results.Trades[0].PnL)
	}
	if results.FinalEquity >= 10000 {
		t.Errorf("final equity = %v, want below starting capital", results.FinalEquity)
	}
}

func TestCostsStrictlyReduceProfit(t *testing.T) {
	candles := flatCandles([]float64{100, 105, 110, 110})
	signals := signalSeries(models.SignalBuy, models.SignalHold, models.SignalSell, models.SignalHold)

	frictionless := testConfig()
	frictionless.Commission = 0
	frictionless.Slippage = 0

	run := func(config Config) *Results {
		engine, err := NewEngine(config)
		if err != nil {
			t.Fatal(err)
		}
		results, err := engine.Run(candles, signals)
		if err != nil {
			t.Fatal(err)
		}
		if len(results.Trades) != 1 {
			t.Fatalf("expected one trade, got %d", len(results.Trades))
		}
		return results
	}

	free := run(frictionless)
	costed := run(testConfig())

	if free.Trades[0].PnL != 10 {
		t.Errorf("frictionless pnl = %v, want the raw 10 point move", free.Trades[0].PnL)
	}
	if costed.Trades[0].PnL >= free.Trades[0].PnL {
		t.Errorf("costed pnl %v not below frictionless pnl %v", costed.Trades[0].PnL, free.Trades[0].PnL)
	}
	if costed.FinalEquity >= free.FinalEquity {
		t.Errorf("costed equity %v not below frictionless equity %v", costed.FinalEquity, free.FinalEquity)
	}
}

func TestRunNoSameBarExit(t *testing.T) {
	engine, _ := NewEngine(testConfig())
	// SELL on the entry bar itself must not close anything; the position
	// opened this bar is only eligible to exit from the next bar on.
	candles := flatCandles([]float64{100, 100, 100})
	signals := signalSeries(models.SignalBuy, models.SignalSell, models.SignalHold)

	results, err := engine.Run(candles, signals)
	if err != nil {
		t.Fatal(err)
	}
	if len(results.Trades) != 1 {
		t.Fatalf("expected one trade, got %d", len(results.Trades))
	}
	if !results.Trades[0].ExitTime.Equal(candles[1].OpenTime) {
		t.Errorf("exit at %v, want the bar after entry", results.Trades[0].ExitTime)
	}
}

func TestStopLossBeatsTakeProfitAndSignal(t *testing.T) {
	config := testConfig()
	config.StopLossPct = 0.02
	config.TakeProfitPct = 0.03
	engine, _ := NewEngine(config)

	candles := flatCandles([]float64{100, 100, 100})
	// Second bar pierces both levels and carries a SELL; stop loss wins
	candles[1].Low = 95
	candles[1].High = 106
	signals := signalSeries(models.SignalBuy, models.SignalSell, models.SignalHold)

	results, err := engine.Run(candles, signals)
	if err != nil {
		t.Fatal(err)
	}
	if len(results.Trades) != 1 {
		t.Fatalf("expected one trade, got %d", len(results.Trades))
	}
	if results.Trades[0].ExitReason != models.ExitReasonStopLoss {
		t.Errorf("exit reason = %s, want stop_loss", results.Trades[0].ExitReason)
	}
}

func TestTakeProfitBeatsSignal(t *testing.T) {
	config := testConfig()
	config.StopLossPct = 0.02
	config.TakeProfitPct = 0.03
	engine, _ := NewEngine(config)

	candles := flatCandles([]float64{100, 104, 104})
	candles[1].Low = 100
	candles[1].High = 104
	signals := signalSeries(models.SignalBuy, models.SignalSell, models.SignalHold)

	results, err := engine.Run(candles, signals)
	if err != nil {
		t.Fatal(err)
	}
	if len(results.Trades) != 1 {
		t.Fatalf("expected one trade, got %d", len(results.Trades))
	}
	if results.Trades[0].ExitReason != models.ExitReasonTakeProfit {
		t.Errorf("exit reason = %s, want take_profit", results.Trades[0].ExitReason)
	}
}

func TestEndOfDataForceClose(t *testing.T) {
	engine, _ := NewEngine(testConfig())
	candles := flatCandles([]float64{100, 102, 104})
	signals := signalSeries(models.SignalBuy, models.SignalHold, models.SignalHold)

	results, err := engine.Run(candles, signals)
	if err != nil {
		t.Fatal(err)
	}
	if len(results.Trades) != 1 {
		t.Fatalf("expected one forced trade, got %d", len(results.Trades))
	}
	if results.Trades[0].ExitReason != models.ExitReasonEndOfData {
		t.Errorf("exit reason = %s, want end_of_data", results.Trades[0].ExitReason)
	}

	last := results.EquityCurve[len(results.EquityCurve)-1]
	if math.Abs(last.Balance-results.FinalEquity) > 1e-9 {
		t.Errorf("last equity point %v does not match realized cash %v", last.Balance, results.FinalEquity)
	}
}

func TestUnaffordableBuyIsSkipped(t *testing.T) {
	config := testConfig()
	config.InitialCapital = 50
	engine, _ := NewEngine(config)

	candles := flatCandles([]float64{100, 100})
	signals := signalSeries(models.SignalBuy, models.SignalHold)

	results, err := engine.Run(candles, signals)
	if err != nil {
		t.Fatal(err)
	}
	if len(results.Trades) != 0 {
		t.Errorf("expected no trades, got %d", len(results.Trades))
	}
	if results.FinalEquity != 50 {
		t.Errorf("final equity = %v, want untouched 50", results.FinalEquity)
	}
}

func TestAnalyzerEmptyInputs(t *testing.T) {
	analyzer := NewPerformanceAnalyzer()
	metrics := analyzer.Analyze(nil, nil, 10000)

	if metrics.TotalTrades != 0 || metrics.WinRate != 0 || metrics.TotalReturn != 0 ||
		metrics.MaxDrawdown != 0 || metrics.SharpeRatio != 0 {
		t.Errorf("expected zero metrics for empty inputs, got %+v", metrics)
	}
}

func TestAnalyzerWinLossTally(t *testing.T) {
	analyzer := NewPerformanceAnalyzer()
	trades := []Trade{
		{PnL: 10},
		{PnL: 30},
		{PnL: -20},
		{PnL: 0}, // break-even counts against the win rate
	}

	metrics := analyzer.Analyze(trades, nil, 10000)
	if metrics.TotalTrades != 4 || metrics.WinningTrades != 2 || metrics.LosingTrades != 2 {
		t.Errorf("tally = %d/%d/%d", metrics.TotalTrades, metrics.WinningTrades, metrics.LosingTrades)
	}
	if metrics.WinRate != 0.5 {
		t.Errorf("win rate = %v, want 0.5", metrics.WinRate)
	}
	if metrics.AverageWin != 20 {
		t.Errorf("average win = %v, want 20", metrics.AverageWin)
	}
	if metrics.AverageLoss != -10 {
		t.Errorf("average loss = %v, want -10", metrics.AverageLoss)
	}
}

func TestAnalyzerMaxDrawdown(t *testing.T) {
	analyzer := NewPerformanceAnalyzer()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	curve := []EquityPoint{
		{Timestamp: base, Balance: 100},
		{Timestamp: base.Add(time.Hour), Balance: 120},
		{Timestamp: base.Add(2 * time.Hour), Balance: 90},
		{Timestamp: base.Add(3 * time.Hour), Balance: 110},
	}

	metrics := analyzer.Analyze(nil, curve, 100)
	if math.Abs(metrics.MaxDrawdown-0.25) > 1e-9 {
		t.Errorf("max drawdown = %v, want 0.25 (120 down to 90)", metrics.MaxDrawdown)
	}
	if math.Abs(metrics.TotalReturn-0.1) > 1e-9 {
		t.Errorf("total return = %v, want 0.1", metrics.TotalReturn)
	}
}

func TestAnalyzerSharpeDegenerateCurves(t *testing.T) {
	analyzer := NewPerformanceAnalyzer()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// Too short
	short := []EquityPoint{
		{Timestamp: base, Balance: 100},
		{Timestamp: base.Add(time.Hour), Balance: 101},
	}
	if got := analyzer.Analyze(nil, short, 100).SharpeRatio; got != 0 {
		t.Errorf("sharpe on two points = %v, want 0", got)
	}

	// Zero variance
	flat := []EquityPoint{
		{Timestamp: base, Balance: 100},
		{Timestamp: base.Add(time.Hour), Balance: 100},
		{Timestamp: base.Add(2 * time.Hour), Balance: 100},
	}
	if got := analyzer.Analyze(nil, flat, 100).SharpeRatio; got != 0 {
		t.Errorf("sharpe on flat curve = %v, want 0", got)
	}
}

func TestAnalyzerSharpeSign(t *testing.T) {
	analyzer := NewPerformanceAnalyzer()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	curve := make([]EquityPoint, 10)
	balance := 100.0
	for i := range curve {
		curve[i] = EquityPoint{Timestamp: base.Add(time.Duration(i) * time.Hour), Balance: balance}
		if i%2 == 0 {
			balance *= 1.03
		} else {
			balance *= 1.01
		}
	}

	if got := analyzer.Analyze(nil, curve, 100).SharpeRatio; got <= 0 {
		t.Errorf("sharpe on a rising curve = %v, want positive", got)
	}
}
