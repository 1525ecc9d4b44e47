package wallet

import (
	"errors"

	"colorbet/helpers"
	"colorbet/models"
	"colorbet/services"

	"github.com/gofiber/fiber/v2"
)

type DepositRequest struct {
	Amount float64 `json:"amount"`
	// OrderID is the payment gateway order reference, when the gateway
	// created the order first.
	OrderID string `json:"order_id"`
}

type VerifyDepositRequest struct {
	RefID     string `json:"ref_id"`
	PaymentID string `json:"payment_id"`
}

type FailDepositRequest struct {
	RefID  string `json:"ref_id"`
	Reason string `json:"reason"`
}

type WithdrawRequest struct {
	Amount float64 `json:"amount"`
}

func Balance(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, "INVALID_USER_SESSION")
	}
	return helpers.JSONSuccess(c, "Balance", fiber.Map{
		"user_code": user.UserCode,
		"balance":   helpers.FormatFloat(user.Balance, 2),
	})
}

func Deposit(c *fiber.Ctx) error {
	var req DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, "INVALID_USER_SESSION")
	}

	entry, err := services.RequestDeposit(&user, req.Amount, req.OrderID)
	if err != nil {
		if errors.Is(err, services.ErrMinDeposit) {
			return helpers.JSONError(c, "DEPOSIT_BELOW_MINIMUM")
		}
		return helpers.JSONServerError(c, "FAILED_TO_CREATE_DEPOSIT")
	}
	return helpers.JSONSuccess(c, "Deposit order created", entry)
}

// VerifyDeposit is the payment gateway completion callback.
func VerifyDeposit(c *fiber.Ctx) error {
	var req VerifyDepositRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.RefID == "" {
		return helpers.JSONError(c, "REF_ID_REQUIRED")
	}

	entry, err := services.CompleteDeposit(req.RefID, req.PaymentID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return helpers.JSONNotFound(c, "DEPOSIT_NOT_FOUND")
		case errors.Is(err, services.ErrEntryNotPending):
			return helpers.JSONError(c, "DEPOSIT_ALREADY_PROCESSED")
		}
		return helpers.JSONServerError(c, "FAILED_TO_COMPLETE_DEPOSIT")
	}
	return helpers.JSONSuccess(c, "Deposit completed", entry)
}

// FailDeposit is the payment gateway failure callback. The order is closed
// without crediting anything.
func FailDeposit(c *fiber.Ctx) error {
	var req FailDepositRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.RefID == "" {
		return helpers.JSONError(c, "REF_ID_REQUIRED")
	}

	entry, err := services.FailDeposit(req.RefID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return helpers.JSONNotFound(c, "DEPOSIT_NOT_FOUND")
		case errors.Is(err, services.ErrEntryNotPending):
			return helpers.JSONError(c, "DEPOSIT_ALREADY_PROCESSED")
		}
		return helpers.JSONServerError(c, "FAILED_TO_FAIL_DEPOSIT")
	}
	return helpers.JSONSuccess(c, "Deposit marked failed", entry)
}

func Withdraw(c *fiber.Ctx) error {
	var req WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, "INVALID_USER_SESSION")
	}

	entry, err := services.RequestWithdrawal(&user, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMinWithdrawal):
			return helpers.JSONError(c, "WITHDRAWAL_BELOW_MINIMUM")
		case errors.Is(err, services.ErrInsufficientBalance):
			return helpers.JSONError(c, "INSUFFICIENT_BALANCE")
		}
		return helpers.JSONServerError(c, "FAILED_TO_CREATE_WITHDRAWAL")
	}
	return helpers.JSONSuccess(c, "Withdrawal request submitted", entry)
}

func Transactions(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, "INVALID_USER_SESSION")
	}

	entries, err := services.TransactionHistory(user.ID, 50)
	if err != nil {
		return helpers.JSONServerError(c, "FAILED_TO_GET_TRANSACTIONS")
	}
	return helpers.JSONSuccess(c, "Transaction history", entries)
}
