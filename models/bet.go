package models

import "gorm.io/gorm"

const (
	BetTypeColor  = "color"
	BetTypeNumber = "number"
)

const (
	BetResultPending = "pending"
	BetResultWin     = "win"
	BetResultLoss    = "loss"
)

// Bet freezes its payout multiplier at placement time; settlement only ever
// flips Result away from pending and fills WinAmount.
type Bet struct {
	gorm.Model

	UserID   uint   `gorm:"index"`
	UserCode string `gorm:"size:32;index"`
	RoundID  uint   `gorm:"index"`
	Period   int64  `gorm:"index"`

	BetType    string  `gorm:"size:8" json:"bet_type"`
	BetValue   string  `gorm:"size:8" json:"bet_value"`
	Amount     float64 `json:"amount"`
	Multiplier float64 `json:"multiplier"`

	Result    string  `gorm:"size:8;index" json:"result"`
	WinAmount float64 `json:"win_amount"`
}
