package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoundStatusOpen    = "open"
	RoundStatusSettled = "settled"
)

const (
	ColorRed    = "red"
	ColorGreen  = "green"
	ColorViolet = "violet"
)

// Round is one timed betting window. The result columns stay empty until the
// round is settled; the open -> settled transition happens exactly once.
type Round struct {
	gorm.Model

	Period    int64     `gorm:"uniqueIndex" json:"period"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `gorm:"size:16;index" json:"status"`

	ResultColor  string `gorm:"size:8" json:"result_color"`
	ResultNumber *int   `json:"result_number"`

	TotalBets   int64   `json:"total_bets"`
	TotalAmount float64 `json:"total_amount"`
}
