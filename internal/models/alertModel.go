package models

import "time"

// DetectionEvent is a pump or dump alert raised by the detector for one
// (symbol, interval, kind) key, subject to cooldown suppression.
type DetectionEvent struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	Symbol          string    `gorm:"index;not null" json:"symbol"`
	Interval        string    `gorm:"not null" json:"interval"`
	Kind            string    `gorm:"not null" json:"kind"`
	Score           float64   `gorm:"type:decimal(20,8)" json:"score"`
	VolumeRatio     float64   `gorm:"type:decimal(20,8)" json:"volume_ratio"`
	PriceChange     float64   `gorm:"type:decimal(20,8)" json:"price_change"`
	RSI             float64   `gorm:"type:decimal(20,8)" json:"rsi"`
	TriggeredAt     time.Time `gorm:"index;not null" json:"triggered_at"`
	SuppressedUntil time.Time `gorm:"not null" json:"suppressed_until"`
}

const (
	DetectionKindPump = "PUMP"
	DetectionKindDump = "DUMP"
)

// TableName sets the table name for DetectionEvent model
func (DetectionEvent) TableName() string {
	return "detection_events"
}
