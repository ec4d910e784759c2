package repositories

import (
	"errors"

	"CryptoMarketAnalyzer/internal/models"

	"gorm.io/gorm"
)

type ResultRepository struct {
	db *gorm.DB
}

// NewResultRepository creates a new instance of ResultRepository
func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Create adds a new BacktestResult record to the database
func (r *ResultRepository) Create(result *models.BacktestResult) error {
	if result == nil {
		return errors.New("result cannot be nil")
	}
	return r.db.Create(result).Error
}

// FindByID retrieves a BacktestResult record by its ID
func (r *ResultRepository) FindByID(id uint) (*models.BacktestResult, error) {
	if id == 0 {
		return nil, errors.New("invalid id")
	}
	var result models.BacktestResult
	err := r.db.First(&result, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	return &result, err
}

// FindByStrategy retrieves backtest results for a strategy, newest first
func (r *ResultRepository) FindByStrategy(strategy string) ([]models.BacktestResult, error) {
	if strategy == "" {
		return nil, errors.New("invalid strategy")
	}

	var results []models.BacktestResult
	err := r.db.Where("strategy = ?", strategy).
		Order("created_at DESC").
		Find(&results).Error
	return results, err
}
