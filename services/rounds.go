package services

import (
	"errors"
	"strings"
	"time"

	"colorbet/config"
	"colorbet/database"
	"colorbet/models"

	"gorm.io/gorm"
)

// GetOrOpenCurrentRound returns the single open betting round, creating a
// fresh one when none exists. The partial unique index on rounds.status makes
// the create a conditional insert: concurrent openers race through it, losers
// re-read the winner's row.
func GetOrOpenCurrentRound() (*models.Round, error) {
	var round models.Round
	err := database.DB.
		Where("status = ?", models.RoundStatusOpen).
		Order("created_at DESC").
		First(&round).Error
	if err == nil {
		return &round, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	fresh := models.Round{
		Period:    now.UnixMilli(),
		StartTime: now,
		EndTime:   now.Add(config.RoundDuration()),
		Status:    models.RoundStatusOpen,
	}

	if err := database.DB.Create(&fresh).Error; err != nil {
		if isUniqueViolation(err) {
			if err2 := database.DB.
				Where("status = ?", models.RoundStatusOpen).
				Order("created_at DESC").
				First(&round).Error; err2 == nil {
				return &round, nil
			}
		}
		return nil, err
	}

	return &fresh, nil
}

// RecordBetAggregate bumps a round's bet counters inside the caller's
// transaction. The status guard doubles as the late-admission fence: updating
// the round row contends with the settlement status flip, so an admission
// that loses that race rolls back instead of leaving an orphan bet.
func RecordBetAggregate(tx *gorm.DB, roundID uint, amount float64) error {
	res := tx.Model(&models.Round{}).
		Where("id = ? AND status = ?", roundID, models.RoundStatusOpen).
		Updates(map[string]any{
			"total_bets":   gorm.Expr("total_bets + 1"),
			"total_amount": gorm.Expr("total_amount + ?", amount),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoundClosed
	}
	return nil
}

// ListResults returns recently settled rounds, newest first.
func ListResults(limit int) ([]models.Round, error) {
	var rounds []models.Round
	err := database.DB.
		Where("status = ?", models.RoundStatusSettled).
		Order("created_at DESC").
		Limit(limit).
		Find(&rounds).Error
	return rounds, err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique")
}
