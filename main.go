package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CryptoMarketAnalyzer/config"
	"CryptoMarketAnalyzer/internal/handlers"
	"CryptoMarketAnalyzer/internal/models"
	"CryptoMarketAnalyzer/internal/operations/price"
	"CryptoMarketAnalyzer/internal/repositories"
	"CryptoMarketAnalyzer/internal/services/detector"
	"CryptoMarketAnalyzer/internal/services/strategy"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Setup database
	db := setupDatabase(cfg.Database)

	// Initialize repositories
	candleRepo := repositories.NewCandleRepository(db)
	alertRepo := repositories.NewAlertRepository(db)
	resultRepo := repositories.NewResultRepository(db)

	// Initialize candle provider
	futuresClient := price.NewFuturesClient(cfg.Exchange.APIKey, cfg.Exchange.SecretKey)
	provider := price.NewCachedProvider(
		price.NewBinanceFetcher(futuresClient),
		cfg.Provider.CacheDuration,
	)

	// Register strategies
	registry, err := buildRegistry(cfg.Strategy)
	if err != nil {
		log.Fatal("Failed to build strategy registry:", err)
	}
	log.Printf("Registered strategies: %v", registry.List())

	// Initialize detector
	pumpDumpDetector, err := detector.NewDetector(cfg.Detector)
	if err != nil {
		log.Fatal("Failed to build detector:", err)
	}

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run backtests for every symbol, interval and strategy combination
	backtestHandler := handlers.NewBacktestHandler(registry, provider, candleRepo, resultRepo, cfg.Backtest)
	end := time.Now()
	start := end.AddDate(0, 0, -20)
	for _, symbol := range cfg.Symbols {
		for _, interval := range cfg.Intervals {
			for _, name := range registry.List() {
				result, err := backtestHandler.RunBacktest(ctx, symbol, name, interval, start, end)
				if err != nil {
					log.Printf("Backtest %s %s %s failed: %v", symbol, name, interval, err)
					continue
				}
				fmt.Printf("\n=== Backtest %s %s %s ===\n", result.Symbol, result.Strategy, result.Interval)
				fmt.Printf("Metrics: %s\n", result.Metrics)
			}
		}
	}

	// Start pump/dump monitoring
	detectorHandler := handlers.NewDetectorHandler(
		pumpDumpDetector, provider, alertRepo, cfg.Symbols, cfg.Provider.PollInterval)
	go detectorHandler.Start(ctx)

	log.Println("Market monitoring started...")

	// Handle shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Shutting down...")
	cancel()
	time.Sleep(time.Second * 2) // Give time for cleanup
	log.Println("Shutdown complete")
}

func buildRegistry(cfg config.StrategyConfig) (*strategy.Registry, error) {
	registry := strategy.NewRegistry()

	sma, err := strategy.NewSMAStrategy(cfg.SMA)
	if err != nil {
		return nil, err
	}
	confluence, err := strategy.NewMACDRSIBBStrategy(cfg.MACDRSIBB)
	if err != nil {
		return nil, err
	}
	pump, err := strategy.NewPumpStrategy(cfg.Pump)
	if err != nil {
		return nil, err
	}
	dump, err := strategy.NewDumpStrategy(cfg.Dump)
	if err != nil {
		return nil, err
	}

	for _, s := range []strategy.Strategy{sma, confluence, pump, dump} {
		if err := registry.Register(s); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func setupDatabase(dbConfig config.DatabaseConfig) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto migrate database schemas
	err = db.AutoMigrate(&models.Candle{}, &models.DetectionEvent{}, &models.BacktestResult{})
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	return db
}
