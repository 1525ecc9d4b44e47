package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"colorbet/database"
	"colorbet/models"
	"colorbet/notify"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Notifier receives the settlement-complete event after a round commits.
// Swapped for a webhook sink at startup, for a recorder in tests.
var Notifier notify.Sink = notify.LogSink{}

// SettleRound commits the authoritative outcome for a round and resolves
// every pending bet against it. The outcome write and all resolutions are one
// transaction; the conditional open -> settled flip is the single gate that
// rejects duplicate settlement triggers before any bet is touched.
func SettleRound(roundID uint, color string, number int) (*models.Round, error) {
	if !validColor(color) || number < 0 || number > 9 {
		return nil, ErrInvalidOutcome
	}

	var round models.Round
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&round, roundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		res := tx.Model(&models.Round{}).
			Where("id = ? AND status = ?", round.ID, models.RoundStatusOpen).
			Updates(map[string]any{
				"status":        models.RoundStatusSettled,
				"result_color":  color,
				"result_number": number,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadySettled
		}

		var bets []models.Bet
		if err := tx.
			Where("round_id = ? AND result = ?", round.ID, models.BetResultPending).
			Find(&bets).Error; err != nil {
			return err
		}

		for i := range bets {
			if err := resolveBet(tx, &bets[i], color, number); err != nil {
				return err
			}
		}

		round.Status = models.RoundStatusSettled
		round.ResultColor = color
		round.ResultNumber = &number
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := Notifier.SettlementCompleted(notify.SettlementEvent{
		RoundID: int64(round.ID),
		Period:  round.Period,
		Color:   color,
		Number:  number,
	}); err != nil {
		log.Printf("settlement notify failed for round %d: %v", round.ID, err)
	}

	return &round, nil
}

// isWinningBet applies the outcome predicate. Violet is a side bet: it pays
// when red or green lands and loses when violet itself is the result.
func isWinningBet(bet *models.Bet, color string, number int) bool {
	switch bet.BetType {
	case models.BetTypeColor:
		if bet.BetValue == models.ColorViolet {
			return color == models.ColorRed || color == models.ColorGreen
		}
		return bet.BetValue == color
	case models.BetTypeNumber:
		return bet.BetValue == strconv.Itoa(number)
	}
	return false
}

// resolveBet flips a single bet out of pending. The result guard in each
// update makes a re-run over an already resolved bet a no-op, so a retried
// settlement can never credit a payout twice.
func resolveBet(tx *gorm.DB, bet *models.Bet, color string, number int) error {
	if !isWinningBet(bet, color, number) {
		return tx.Model(&models.Bet{}).
			Where("id = ? AND result = ?", bet.ID, models.BetResultPending).
			Update("result", models.BetResultLoss).Error
	}

	payout, _ := decimal.NewFromFloat(bet.Amount).
		Mul(decimal.NewFromFloat(bet.Multiplier)).
		Round(2).Float64()

	res := tx.Model(&models.Bet{}).
		Where("id = ? AND result = ?", bet.ID, models.BetResultPending).
		Updates(map[string]any{
			"result":     models.BetResultWin,
			"win_amount": payout,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	var user models.User
	if err := tx.First(&user, bet.UserID).Error; err != nil {
		return err
	}

	if err := tx.Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance + ?", payout),
			"total_wins": gorm.Expr("total_wins + 1"),
		}).Error; err != nil {
		return err
	}

	entry := models.Transaction{
		UserID:        bet.UserID,
		UserCode:      bet.UserCode,
		TrxType:       models.TrxTypeWin,
		Amount:        payout,
		Status:        models.TrxStatusCompleted,
		RefID:         uuid.New().String(),
		Description:   fmt.Sprintf("Win from period %d", bet.Period),
		BalanceBefore: user.Balance,
		BalanceAfter:  user.Balance + payout,
	}
	return tx.Create(&entry).Error
}

func validColor(color string) bool {
	switch color {
	case models.ColorRed, models.ColorGreen, models.ColorViolet:
		return true
	}
	return false
}
