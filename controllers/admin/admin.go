package admin

import (
	"errors"

	"colorbet/database"
	"colorbet/helpers"
	"colorbet/models"
	"colorbet/services"

	"github.com/gofiber/fiber/v2"
)

type SettleRequest struct {
	RoundID uint   `json:"round_id"`
	Color   string `json:"color"`
	Number  int    `json:"number"`
}

type ProcessWithdrawalRequest struct {
	Status string `json:"status"` // completed or rejected
}

type UserStatusRequest struct {
	IsActive bool `json:"is_active"`
}

// SettleRound feeds the authoritative outcome into the settlement engine.
func SettleRound(c *fiber.Ctx) error {
	var req SettleRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	round, err := services.SettleRound(req.RoundID, req.Color, req.Number)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOutcome):
			return helpers.JSONError(c, "INVALID_OUTCOME")
		case errors.Is(err, services.ErrNotFound):
			return helpers.JSONNotFound(c, "ROUND_NOT_FOUND")
		case errors.Is(err, services.ErrAlreadySettled):
			return helpers.JSONError(c, "ROUND_ALREADY_SETTLED")
		}
		return helpers.JSONServerError(c, "FAILED_TO_SETTLE_ROUND")
	}
	return helpers.JSONSuccess(c, "Round settled", round)
}

func PendingWithdrawals(c *fiber.Ctx) error {
	entries, err := services.PendingWithdrawals()
	if err != nil {
		return helpers.JSONServerError(c, "FAILED_TO_GET_WITHDRAWALS")
	}
	return helpers.JSONSuccess(c, "Pending withdrawals", entries)
}

func ProcessWithdrawal(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helpers.JSONError(c, "INVALID_WITHDRAWAL_ID")
	}

	var req ProcessWithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	var approve bool
	switch req.Status {
	case models.TrxStatusCompleted:
		approve = true
	case models.TrxStatusRejected:
		approve = false
	default:
		return helpers.JSONError(c, "INVALID_STATUS")
	}

	entry, err := services.ResolveWithdrawal(uint(id), approve)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return helpers.JSONNotFound(c, "WITHDRAWAL_NOT_FOUND")
		case errors.Is(err, services.ErrEntryNotPending):
			return helpers.JSONError(c, "WITHDRAWAL_ALREADY_PROCESSED")
		}
		return helpers.JSONServerError(c, "FAILED_TO_PROCESS_WITHDRAWAL")
	}
	return helpers.JSONSuccess(c, "Withdrawal processed", entry)
}

func Stats(c *fiber.Ctx) error {
	stats, err := services.GetDashboardStats()
	if err != nil {
		return helpers.JSONServerError(c, "FAILED_TO_GET_STATS")
	}
	return helpers.JSONSuccess(c, "Dashboard stats", stats)
}

func ListUsers(c *fiber.Ctx) error {
	users, err := services.ListUsers()
	if err != nil {
		return helpers.JSONServerError(c, "FAILED_TO_GET_USERS")
	}
	return helpers.JSONSuccess(c, "Users", users)
}

func ListRounds(c *fiber.Ctx) error {
	var rounds []models.Round
	if err := database.DB.Order("created_at DESC").Limit(100).Find(&rounds).Error; err != nil {
		return helpers.JSONServerError(c, "FAILED_TO_GET_ROUNDS")
	}
	return helpers.JSONSuccess(c, "Rounds", rounds)
}

func SetUserStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helpers.JSONError(c, "INVALID_USER_ID")
	}

	var req UserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	res := database.DB.Model(&models.User{}).
		Where("id = ?", id).
		Update("is_active", req.IsActive)
	if res.Error != nil {
		return helpers.JSONServerError(c, "FAILED_TO_UPDATE_USER")
	}
	if res.RowsAffected == 0 {
		return helpers.JSONNotFound(c, "USER_NOT_FOUND")
	}
	return helpers.JSONSuccess(c, "User status updated", fiber.Map{
		"user_id":   id,
		"is_active": req.IsActive,
	})
}
