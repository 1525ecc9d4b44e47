package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	UserCode     string `gorm:"uniqueIndex;size:32" json:"user_code"`
	ReferralCode string `gorm:"uniqueIndex;size:16" json:"referral_code"`
	ReferredBy   string `gorm:"size:16" json:"referred_by"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	Balance         float64 `json:"balance"`
	TotalDeposit    float64 `json:"total_deposit"`
	TotalWithdrawal float64 `json:"total_withdrawal"`
	TotalBets       int64   `json:"total_bets"`
	TotalWins       int64   `json:"total_wins"`

	Bets         []Bet         `gorm:"foreignKey:UserID"`
	Transactions []Transaction `gorm:"foreignKey:UserID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ReferralCode == "" {
		u.ReferralCode = "REF" + strings.ToUpper(uuid.New().String()[:8])
	}
	return nil
}
