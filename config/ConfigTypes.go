package config

import (
	"time"

	"CryptoMarketAnalyzer/internal/operations/backtest"
	"CryptoMarketAnalyzer/internal/services/detector"
	"CryptoMarketAnalyzer/internal/services/strategy"
)

type config struct {
	Exchange  ExchangeConfig
	Database  DatabaseConfig
	Detector  detector.Config
	Strategy  StrategyConfig
	Backtest  backtest.Config
	Provider  ProviderConfig
	Symbols   []string
	Intervals []string
}

type ExchangeConfig struct {
	APIKey    string
	SecretKey string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// StrategyConfig bundles the tunable parameters of every registered strategy
type StrategyConfig struct {
	SMA       strategy.SMAConfig
	MACDRSIBB strategy.MACDRSIBBConfig
	Pump      strategy.PumpConfig
	Dump      strategy.DumpConfig
}

// ProviderConfig controls candle fetching
type ProviderConfig struct {
	CacheDuration time.Duration
	PollInterval  time.Duration
}
