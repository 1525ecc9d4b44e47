package game

import (
	"errors"

	"colorbet/database"
	"colorbet/helpers"
	"colorbet/models"
	"colorbet/services"

	"github.com/gofiber/fiber/v2"
)

type PlaceBetRequest struct {
	RoundID  uint    `json:"round_id"`
	BetType  string  `json:"bet_type"`
	BetValue string  `json:"bet_value"`
	Amount   float64 `json:"amount"`
}

// CurrentRound returns the open round, opening a fresh one when none exists.
func CurrentRound(c *fiber.Ctx) error {
	round, err := services.GetOrOpenCurrentRound()
	if err != nil {
		return helpers.JSONServerError(c, "FAILED_TO_GET_CURRENT_ROUND")
	}
	return helpers.JSONSuccess(c, "Current round", round)
}

func PlaceBet(c *fiber.Ctx) error {
	var req PlaceBetRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, "INVALID_USER_SESSION")
	}

	bet, err := services.PlaceBet(&user, req.RoundID, req.BetType, req.BetValue, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStake):
			return helpers.JSONError(c, "BET_BELOW_MINIMUM")
		case errors.Is(err, services.ErrInvalidBetValue):
			return helpers.JSONError(c, "INVALID_BET_VALUE")
		case errors.Is(err, services.ErrInsufficientBalance):
			return helpers.JSONError(c, "INSUFFICIENT_BALANCE")
		case errors.Is(err, services.ErrRoundClosed):
			return helpers.JSONError(c, "ROUND_CLOSED")
		case errors.Is(err, services.ErrNotFound):
			return helpers.JSONNotFound(c, "ROUND_NOT_FOUND")
		}
		return helpers.JSONServerError(c, "FAILED_TO_PLACE_BET")
	}

	// fresh balance for the response
	var fresh models.User
	_ = database.DB.First(&fresh, user.ID).Error

	return helpers.JSONSuccess(c, "Bet placed successfully", fiber.Map{
		"bet":     bet,
		"balance": fresh.Balance,
	})
}

func BetHistory(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, "INVALID_USER_SESSION")
	}

	bets, err := services.BetHistory(user.ID, 50)
	if err != nil {
		return helpers.JSONServerError(c, "FAILED_TO_GET_BET_HISTORY")
	}
	return helpers.JSONSuccess(c, "Bet history", bets)
}

func Results(c *fiber.Ctx) error {
	rounds, err := services.ListResults(20)
	if err != nil {
		return helpers.JSONServerError(c, "FAILED_TO_GET_RESULTS")
	}
	return helpers.JSONSuccess(c, "Round results", rounds)
}
