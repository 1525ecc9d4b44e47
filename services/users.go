package services

import (
	"colorbet/database"
	"colorbet/models"
)

// DashboardStats aggregates the platform-wide counters shown on the
// administrative dashboard.
type DashboardStats struct {
	TotalUsers       int64   `json:"total_users"`
	ActiveUsers      int64   `json:"active_users"`
	TotalRounds      int64   `json:"total_rounds"`
	TotalBets        int64   `json:"total_bets"`
	TotalDeposits    float64 `json:"total_deposits"`
	TotalWithdrawals float64 `json:"total_withdrawals"`
}

// GetDashboardStats collects the dashboard counters, failing on the first
// store error instead of reporting partial numbers.
func GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := database.DB.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Model(&models.User{}).
		Where("is_active = ?", true).
		Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Model(&models.Round{}).Count(&stats.TotalRounds).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Model(&models.Bet{}).Count(&stats.TotalBets).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Model(&models.Transaction{}).
		Where("trx_type = ? AND status = ?", models.TrxTypeDeposit, models.TrxStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalDeposits).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Model(&models.Transaction{}).
		Where("trx_type = ? AND status = ?", models.TrxTypeWithdrawal, models.TrxStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalWithdrawals).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// ListUsers returns all registered users, newest first.
func ListUsers() ([]models.User, error) {
	var users []models.User
	err := database.DB.Order("created_at DESC").Find(&users).Error
	return users, err
}
