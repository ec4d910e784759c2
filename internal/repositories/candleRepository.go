package repositories

import (
	"errors"
	"time"

	"CryptoMarketAnalyzer/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CandleRepository struct {
	db *gorm.DB
}

// NewCandleRepository creates a new instance of CandleRepository
func NewCandleRepository(db *gorm.DB) *CandleRepository {
	return &CandleRepository{db: db}
}

// SaveBatch upserts a fetched candle series, keyed on (symbol, interval, open_time)
func (r *CandleRepository) SaveBatch(candles []models.Candle) error {
	if len(candles) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "symbol"}, {Name: "interval"}, {Name: "open_time"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"open", "high", "low", "close", "volume",
		}),
	}).Create(&candles).Error
}

// GetSeries retrieves the candle series for a symbol and interval within a time range
func (r *CandleRepository) GetSeries(symbol, interval string, start, end time.Time) ([]models.Candle, error) {
	if symbol == "" || interval == "" {
		return nil, errors.New("invalid symbol or interval")
	}

	var candles []models.Candle
	err := r.db.Where("symbol = ? AND interval = ? AND open_time BETWEEN ? AND ?",
		symbol, interval, start, end).
		Order("open_time ASC").
		Find(&candles).Error
	return candles, err
}

// GetLatest gets the most recent candle for a symbol and interval
func (r *CandleRepository) GetLatest(symbol, interval string) (*models.Candle, error) {
	if symbol == "" || interval == "" {
		return nil, errors.New("invalid symbol or interval")
	}

	var candle models.Candle
	err := r.db.Where("symbol = ? AND interval = ?", symbol, interval).
		Order("open_time DESC").
		First(&candle).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	return &candle, err
}
