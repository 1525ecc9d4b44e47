package services

import (
	"errors"
	"fmt"
	"time"

	"colorbet/config"
	"colorbet/database"
	"colorbet/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payout multipliers are fixed policy, assigned when the bet is accepted and
// frozen into the bet row. Settlement never recomputes them.
func multiplierFor(betType, betValue string) float64 {
	if betType == models.BetTypeNumber {
		return 9
	}
	if betValue == models.ColorViolet {
		return 4.5
	}
	return 2
}

func validateBetValue(betType, betValue string) error {
	switch betType {
	case models.BetTypeColor:
		switch betValue {
		case models.ColorRed, models.ColorGreen, models.ColorViolet:
			return nil
		}
	case models.BetTypeNumber:
		if len(betValue) == 1 && betValue[0] >= '0' && betValue[0] <= '9' {
			return nil
		}
	}
	return ErrInvalidBetValue
}

// PlaceBet admits a wager against an open round. Balance debit, bet row,
// ledger entry and round aggregates commit as one unit or not at all. The
// debit itself is a guarded update (balance >= stake in the WHERE) so two
// concurrent bets from one account can never both spend the same funds.
func PlaceBet(user *models.User, roundID uint, betType, betValue string, amount float64) (*models.Bet, error) {
	if amount < config.MinBetAmount() {
		return nil, ErrInvalidStake
	}
	if err := validateBetValue(betType, betValue); err != nil {
		return nil, err
	}

	var bet models.Bet
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var round models.Round
		if err := tx.First(&round, roundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		// Time check is independent of status: a round past its end
		// time refuses bets even before the settlement trigger lands.
		if round.Status != models.RoundStatusOpen || time.Now().After(round.EndTime) {
			return ErrRoundClosed
		}

		res := tx.Model(&models.User{}).
			Where("id = ? AND balance >= ?", user.ID, amount).
			Updates(map[string]any{
				"balance":    gorm.Expr("balance - ?", amount),
				"total_bets": gorm.Expr("total_bets + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		// audit balances come from the debited row, not the caller's
		// snapshot, so concurrent admissions keep the ledger chained
		var account models.User
		if err := tx.First(&account, user.ID).Error; err != nil {
			return err
		}

		bet = models.Bet{
			UserID:     user.ID,
			UserCode:   user.UserCode,
			RoundID:    round.ID,
			Period:     round.Period,
			BetType:    betType,
			BetValue:   betValue,
			Amount:     amount,
			Multiplier: multiplierFor(betType, betValue),
			Result:     models.BetResultPending,
		}
		if err := tx.Create(&bet).Error; err != nil {
			return err
		}

		entry := models.Transaction{
			UserID:        user.ID,
			UserCode:      user.UserCode,
			TrxType:       models.TrxTypeBet,
			Amount:        amount,
			Status:        models.TrxStatusCompleted,
			RefID:         uuid.New().String(),
			Description:   fmt.Sprintf("Bet %s %s on period %d", betType, betValue, round.Period),
			BalanceBefore: account.Balance + amount,
			BalanceAfter:  account.Balance,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		return RecordBetAggregate(tx, round.ID, amount)
	})
	if err != nil {
		return nil, err
	}

	return &bet, nil
}

// BetHistory returns a user's most recent bets.
func BetHistory(userID uint, limit int) ([]models.Bet, error) {
	var bets []models.Bet
	err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&bets).Error
	return bets, err
}
