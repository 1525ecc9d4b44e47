package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TrxTypeDeposit    = "deposit"
	TrxTypeWithdrawal = "withdrawal"
	TrxTypeBet        = "bet"
	TrxTypeWin        = "win"
	TrxTypeReferral   = "referral"
)

const (
	TrxStatusPending   = "pending"
	TrxStatusCompleted = "completed"
	TrxStatusFailed    = "failed"
	TrxStatusRejected  = "rejected"
)

// Transaction is the append-only ledger. Amount and type are immutable once
// written; only the status of a pending entry may move, during the
// deposit/withdrawal approval flow.
type Transaction struct {
	gorm.Model

	UserID   uint   `gorm:"index"`
	UserCode string `gorm:"size:32;index"`

	TrxType string  `gorm:"size:16;index" json:"trx_type"`
	Amount  float64 `json:"amount"`
	Status  string  `gorm:"size:16;index" json:"status"`

	// RefID carries the payment gateway order id for deposits and
	// withdrawals, a generated reference everywhere else.
	RefID       string `gorm:"size:64;uniqueIndex" json:"ref_id"`
	Description string `gorm:"size:255" json:"description"`

	BalanceBefore float64 `json:"balance_before"`
	BalanceAfter  float64 `json:"balance_after"`

	Detail datatypes.JSON `gorm:"type:jsonb" json:"detail"`
}
