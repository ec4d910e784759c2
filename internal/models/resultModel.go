package models

import "time"

// BacktestResult is the serializable artifact of a backtest run: the trade
// ledger, equity curve and summary metrics, stored as JSON columns so an
// external reporting layer can consume them as-is.
type BacktestResult struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Symbol      string    `gorm:"index;not null" json:"symbol"`
	Strategy    string    `gorm:"index;not null" json:"strategy"`
	Interval    string    `gorm:"not null" json:"interval"`
	StartTime   time.Time `gorm:"not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	Trades      string    `gorm:"type:jsonb" json:"trades"`
	EquityCurve string    `gorm:"type:jsonb" json:"equity_curve"`
	Metrics     string    `gorm:"type:jsonb" json:"metrics"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for BacktestResult model
func (BacktestResult) TableName() string {
	return "backtest_results"
}
