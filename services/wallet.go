package services

import (
	"encoding/json"
	"errors"
	"time"

	"colorbet/config"
	"colorbet/database"
	"colorbet/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RequestDeposit opens a pending ledger entry tied to a payment gateway
// order. No balance moves until the gateway's completion callback lands.
func RequestDeposit(user *models.User, amount float64, gatewayRef string) (*models.Transaction, error) {
	if amount < config.MinDeposit() {
		return nil, ErrMinDeposit
	}

	ref := gatewayRef
	if ref == "" {
		ref = uuid.New().String()
	}

	detail, _ := json.Marshal(map[string]any{
		"gateway":  "razorpay",
		"order_id": ref,
	})

	entry := models.Transaction{
		UserID:        user.ID,
		UserCode:      user.UserCode,
		TrxType:       models.TrxTypeDeposit,
		Amount:        amount,
		Status:        models.TrxStatusPending,
		RefID:         ref,
		Description:   "Deposit order",
		BalanceBefore: user.Balance,
		BalanceAfter:  user.Balance,
		Detail:        datatypes.JSON(detail),
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// CompleteDeposit reacts to the gateway's success callback: the pending entry
// flips to completed and the balance credit happens in the same unit. The
// status guard makes a replayed callback a rejected no-op.
func CompleteDeposit(refID, paymentID string) (*models.Transaction, error) {
	var entry models.Transaction
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("ref_id = ? AND trx_type = ?", refID, models.TrxTypeDeposit).
			First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var detail map[string]any
		_ = json.Unmarshal(entry.Detail, &detail)
		if detail == nil {
			detail = make(map[string]any)
		}
		detail["payment_id"] = paymentID
		detail["completed_at"] = time.Now().Format(time.RFC3339)
		newDetail, _ := json.Marshal(detail)

		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", entry.ID, models.TrxStatusPending).
			Updates(map[string]any{
				"status": models.TrxStatusCompleted,
				"detail": datatypes.JSON(newDetail),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrEntryNotPending
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", entry.UserID).
			Updates(map[string]any{
				"balance":       gorm.Expr("balance + ?", entry.Amount),
				"total_deposit": gorm.Expr("total_deposit + ?", entry.Amount),
			}).Error; err != nil {
			return err
		}

		entry.Status = models.TrxStatusCompleted
		entry.Detail = datatypes.JSON(newDetail)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FailDeposit reacts to the gateway's failure callback: the pending entry
// flips to failed without touching the balance. The status guard rejects
// replays and callbacks arriving after a successful completion.
func FailDeposit(refID, reason string) (*models.Transaction, error) {
	var entry models.Transaction
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("ref_id = ? AND trx_type = ?", refID, models.TrxTypeDeposit).
			First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var detail map[string]any
		_ = json.Unmarshal(entry.Detail, &detail)
		if detail == nil {
			detail = make(map[string]any)
		}
		if reason != "" {
			detail["failure_reason"] = reason
		}
		detail["failed_at"] = time.Now().Format(time.RFC3339)
		newDetail, _ := json.Marshal(detail)

		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", entry.ID, models.TrxStatusPending).
			Updates(map[string]any{
				"status": models.TrxStatusFailed,
				"detail": datatypes.JSON(newDetail),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrEntryNotPending
		}

		entry.Status = models.TrxStatusFailed
		entry.Detail = datatypes.JSON(newDetail)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// RequestWithdrawal holds the amount immediately: guarded debit plus a
// pending ledger entry in one unit. Approval later finalizes the counters,
// rejection reverses the hold.
func RequestWithdrawal(user *models.User, amount float64) (*models.Transaction, error) {
	if amount < config.MinWithdrawal() {
		return nil, ErrMinWithdrawal
	}

	var entry models.Transaction
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND balance >= ?", user.ID, amount).
			Update("balance", gorm.Expr("balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		// audit balances come from the debited row, not the caller's
		// snapshot, so concurrent holds keep the ledger chained
		var account models.User
		if err := tx.First(&account, user.ID).Error; err != nil {
			return err
		}

		entry = models.Transaction{
			UserID:        user.ID,
			UserCode:      user.UserCode,
			TrxType:       models.TrxTypeWithdrawal,
			Amount:        amount,
			Status:        models.TrxStatusPending,
			RefID:         uuid.New().String(),
			Description:   "Withdrawal request",
			BalanceBefore: account.Balance + amount,
			BalanceAfter:  account.Balance,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ResolveWithdrawal is the administrative decision on a pending withdrawal.
// Approve: entry completes and the lifetime counter moves, balance untouched
// (the debit happened at request time). Reject: entry is rejected and the
// held amount returns to balance.
func ResolveWithdrawal(entryID uint, approve bool) (*models.Transaction, error) {
	var entry models.Transaction
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("id = ? AND trx_type = ?", entryID, models.TrxTypeWithdrawal).
			First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		status := models.TrxStatusRejected
		if approve {
			status = models.TrxStatusCompleted
		}

		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", entry.ID, models.TrxStatusPending).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrEntryNotPending
		}

		if approve {
			if err := tx.Model(&models.User{}).
				Where("id = ?", entry.UserID).
				Update("total_withdrawal", gorm.Expr("total_withdrawal + ?", entry.Amount)).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&models.User{}).
				Where("id = ?", entry.UserID).
				Update("balance", gorm.Expr("balance + ?", entry.Amount)).Error; err != nil {
				return err
			}
		}

		entry.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// PendingWithdrawals lists the administrative approval queue, oldest first.
func PendingWithdrawals() ([]models.Transaction, error) {
	var entries []models.Transaction
	err := database.DB.
		Where("trx_type = ? AND status = ?", models.TrxTypeWithdrawal, models.TrxStatusPending).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

// TransactionHistory returns a user's most recent ledger entries.
func TransactionHistory(userID uint, limit int) ([]models.Transaction, error) {
	var entries []models.Transaction
	err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
