package models

import (
	"fmt"
	"time"
)

// Candle is a single OHLCV bar for a (symbol, interval) series.
type Candle struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	Symbol   string    `gorm:"index;not null" json:"symbol"`
	Interval string    `gorm:"index;not null" json:"interval"`
	OpenTime time.Time `gorm:"index;not null" json:"open_time"`
	Open     float64   `gorm:"type:decimal(20,8)" json:"open"`
	High     float64   `gorm:"type:decimal(20,8)" json:"high"`
	Low      float64   `gorm:"type:decimal(20,8)" json:"low"`
	Close    float64   `gorm:"type:decimal(20,8)" json:"close"`
	Volume   float64   `gorm:"type:decimal(20,8)" json:"volume"`
}

const (
	Interval5m  = "5m"
	Interval15m = "15m"
	Interval1h  = "1h"
	Interval4h  = "4h"
)

// TableName sets the table name for Candle model
func (Candle) TableName() string {
	return "candles"
}

// ValidateSeries checks that a candle series has strictly increasing
// timestamps. Called before any computation; a bad series is a fatal
// input error, not something to repair.
func ValidateSeries(candles []Candle) error {
	for i := 1; i < len(candles); i++ {
		if !candles[i].OpenTime.After(candles[i-1].OpenTime) {
			return fmt.Errorf("candle series not strictly increasing at index %d (%s vs %s)",
				i,
				candles[i-1].OpenTime.Format("2006-01-02 15:04:05"),
				candles[i].OpenTime.Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}

// Closes extracts the close price series
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i := range candles {
		closes[i] = candles[i].Close
	}
	return closes
}

// Volumes extracts the volume series
func Volumes(candles []Candle) []float64 {
	volumes := make([]float64, len(candles))
	for i := range candles {
		volumes[i] = candles[i].Volume
	}
	return volumes
}
