package repositories

import (
	"errors"
	"time"

	"CryptoMarketAnalyzer/internal/models"

	"gorm.io/gorm"
)

type AlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new instance of AlertRepository
func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Create adds a new DetectionEvent record to the database
func (r *AlertRepository) Create(event *models.DetectionEvent) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}
	return r.db.Create(event).Error
}

// FindBySymbol retrieves detection events for a symbol within a time range
func (r *AlertRepository) FindBySymbol(symbol string, start, end time.Time) ([]models.DetectionEvent, error) {
	if symbol == "" {
		return nil, errors.New("invalid symbol")
	}

	var events []models.DetectionEvent
	err := r.db.Where("symbol = ? AND triggered_at BETWEEN ? AND ?",
		symbol, start, end).
		Order("triggered_at ASC").
		Find(&events).Error
	return events, err
}

// FindRecent retrieves the most recent detection events across all symbols
func (r *AlertRepository) FindRecent(limit int) ([]models.DetectionEvent, error) {
	if limit <= 0 {
		return nil, errors.New("invalid limit")
	}

	var events []models.DetectionEvent
	err := r.db.Order("triggered_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
