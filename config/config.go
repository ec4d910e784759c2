package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"CryptoMarketAnalyzer/internal/operations/backtest"
	"CryptoMarketAnalyzer/internal/services/detector"
	"CryptoMarketAnalyzer/internal/services/strategy"

	"github.com/joho/godotenv"
)

func Load() (*config, error) {
	if err := godotenv.Load(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := &config{
		Exchange: ExchangeConfig{
			APIKey:    os.Getenv("BINANCE_API_KEY"),
			SecretKey: os.Getenv("BINANCE_SECRET_KEY"),
		},
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     EnvtoInt(os.Getenv("DB_PORT")),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
		},
		Detector: detector.Config{
			VolumeThreshold: envFloat("DETECTOR_VOLUME_THRESHOLD", 3.0),
			PriceThreshold:  envFloat("DETECTOR_PRICE_THRESHOLD", 0.02),
			RSIOverbought:   envFloat("DETECTOR_RSI_OVERBOUGHT", 70),
			RSIOversold:     envFloat("DETECTOR_RSI_OVERSOLD", 30),
			RSIPeriod:       envInt("DETECTOR_RSI_PERIOD", 14),
			LookbackPeriod:  envInt("DETECTOR_LOOKBACK", 24),
			MinScore:        envFloat("DETECTOR_MIN_SCORE", 70),
			MinVolume:       envFloat("DETECTOR_MIN_VOLUME", 1000000),
			AlertCooldown:   envDuration("DETECTOR_ALERT_COOLDOWN", time.Hour),
			Intervals:       envList("DETECTOR_INTERVALS", []string{"5m", "15m", "1h"}),
		},
		Strategy: StrategyConfig{
			SMA: strategy.SMAConfig{
				ShortWindow: envInt("SMA_SHORT_WINDOW", 20),
				LongWindow:  envInt("SMA_LONG_WINDOW", 50),
			},
			MACDRSIBB: strategy.MACDRSIBBConfig{
				MACDFast:      envInt("MACD_FAST", 12),
				MACDSlow:      envInt("MACD_SLOW", 26),
				MACDSignal:    envInt("MACD_SIGNAL", 9),
				RSIPeriod:     envInt("RSI_PERIOD", 14),
				RSIOverbought: envFloat("RSI_OVERBOUGHT", 70),
				RSIOversold:   envFloat("RSI_OVERSOLD", 30),
				BBPeriod:      envInt("BB_PERIOD", 20),
				BBStdDev:      envFloat("BB_STD_DEV", 2.0),
			},
			Pump: strategy.PumpConfig{
				VolumeThreshold:    envFloat("PUMP_VOLUME_THRESHOLD", 2.0),
				PricePumpThreshold: envFloat("PUMP_PRICE_THRESHOLD", 0.03),
				LookbackPeriod:     envInt("PUMP_LOOKBACK", 24),
				ProfitTarget:       envFloat("PUMP_PROFIT_TARGET", 0.02),
				StopLoss:           envFloat("PUMP_STOP_LOSS", -0.02),
			},
			Dump: strategy.DumpConfig{
				VolumeThreshold:    envFloat("DUMP_VOLUME_THRESHOLD", 2.0),
				PriceDropThreshold: envFloat("DUMP_PRICE_THRESHOLD", -0.03),
				LookbackPeriod:     envInt("DUMP_LOOKBACK", 24),
				RecoveryThreshold:  envFloat("DUMP_RECOVERY_THRESHOLD", 0.02),
			},
		},
		Backtest: backtest.Config{
			InitialCapital: envFloat("BACKTEST_INITIAL_CAPITAL", 10000),
			Commission:     envFloat("BACKTEST_COMMISSION", 0.001),
			Slippage:       envFloat("BACKTEST_SLIPPAGE", 0.001),
			PositionSize:   envFloat("BACKTEST_POSITION_SIZE", 1.0),
			StopLossPct:    envFloat("BACKTEST_STOP_LOSS_PCT", 0),
			TakeProfitPct:  envFloat("BACKTEST_TAKE_PROFIT_PCT", 0),
		},
		Provider: ProviderConfig{
			CacheDuration: envDuration("PROVIDER_CACHE_DURATION", time.Minute),
			PollInterval:  envDuration("PROVIDER_POLL_INTERVAL", time.Minute),
		},
		Symbols:   envList("TRADING_SYMBOLS", []string{"BTCUSDT", "ETHUSDT"}),
		Intervals: envList("TRADING_INTERVALS", []string{"1h"}),
	}

	if err := cfg.Detector.Validate(); err != nil {
		return nil, fmt.Errorf("detector config: %w", err)
	}
	if err := cfg.Backtest.Validate(); err != nil {
		return nil, fmt.Errorf("backtest config: %w", err)
	}
	if err := cfg.Strategy.SMA.Validate(); err != nil {
		return nil, fmt.Errorf("sma config: %w", err)
	}
	if err := cfg.Strategy.MACDRSIBB.Validate(); err != nil {
		return nil, fmt.Errorf("macd_rsi_bb config: %w", err)
	}
	if err := cfg.Strategy.Pump.Validate(); err != nil {
		return nil, fmt.Errorf("pump config: %w", err)
	}
	if err := cfg.Strategy.Dump.Validate(); err != nil {
		return nil, fmt.Errorf("dump config: %w", err)
	}

	return cfg, nil
}

// helper env(string) to int
func EnvtoInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

func envInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return i
}

func envFloat(key string, fallback float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string, fallback []string) []string {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	return strings.Split(s, ",")
}
