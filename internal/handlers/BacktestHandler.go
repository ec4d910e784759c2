package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"CryptoMarketAnalyzer/internal/models"
	"CryptoMarketAnalyzer/internal/operations/backtest"
	"CryptoMarketAnalyzer/internal/operations/price"
	"CryptoMarketAnalyzer/internal/repositories"
	"CryptoMarketAnalyzer/internal/services/strategy"
)

// BacktestHandler runs a registered strategy over a historical candle series
// and persists the resulting trade ledger, equity curve and metrics.
type BacktestHandler struct {
	registry   *strategy.Registry
	provider   price.Provider
	candleRepo *repositories.CandleRepository
	resultRepo *repositories.ResultRepository
	config     backtest.Config
}

func NewBacktestHandler(
	registry *strategy.Registry,
	provider price.Provider,
	candleRepo *repositories.CandleRepository,
	resultRepo *repositories.ResultRepository,
	config backtest.Config,
) *BacktestHandler {
	return &BacktestHandler{
		registry:   registry,
		provider:   provider,
		candleRepo: candleRepo,
		resultRepo: resultRepo,
		config:     config,
	}
}

// RunBacktest fetches the candle series, generates signals with the named
// strategy, simulates execution and stores the persisted result.
func (h *BacktestHandler) RunBacktest(ctx context.Context, symbol, strategyName, interval string, start, end time.Time) (*models.BacktestResult, error) {
	strat, err := h.registry.Get(strategyName)
	if err != nil {
		return nil, err
	}

	candles, err := h.provider.Fetch(ctx, symbol, interval, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading candles for backtest: %w", err)
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("no candles for %s %s in range", symbol, interval)
	}

	if h.candleRepo != nil {
		if err := h.candleRepo.SaveBatch(candles); err != nil {
			log.Printf("[backtest] persisting candles failed: %v", err)
		}
	}

	signals, err := strat.GenerateSignals(candles)
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", strategyName, err)
	}

	engine, err := backtest.NewEngine(h.config)
	if err != nil {
		return nil, err
	}
	results, err := engine.Run(candles, signals)
	if err != nil {
		return nil, err
	}

	record, err := h.buildRecord(symbol, strategyName, interval, candles, results)
	if err != nil {
		return nil, err
	}

	if h.resultRepo != nil {
		if err := h.resultRepo.Create(record); err != nil {
			return nil, fmt.Errorf("saving backtest result: %w", err)
		}
	}

	log.Printf("[backtest] %s %s %s: %d trades, return %.2f%%, final equity %.2f",
		symbol, strategyName, interval,
		results.Metrics.TotalTrades,
		results.Metrics.TotalReturn*100,
		results.FinalEquity)

	return record, nil
}

func (h *BacktestHandler) buildRecord(symbol, strategyName, interval string, candles []models.Candle, results *backtest.Results) (*models.BacktestResult, error) {
	trades, err := json.Marshal(results.Trades)
	if err != nil {
		return nil, fmt.Errorf("encoding trades: %w", err)
	}
	curve, err := json.Marshal(results.EquityCurve)
	if err != nil {
		return nil, fmt.Errorf("encoding equity curve: %w", err)
	}
	metrics, err := json.Marshal(results.Metrics)
	if err != nil {
		return nil, fmt.Errorf("encoding metrics: %w", err)
	}

	return &models.BacktestResult{
		Symbol:      symbol,
		Strategy:    strategyName,
		Interval:    interval,
		StartTime:   candles[0].OpenTime,
		EndTime:     candles[len(candles)-1].OpenTime,
		Trades:      string(trades),
		EquityCurve: string(curve),
		Metrics:     string(metrics),
	}, nil
}
