package tasks

import (
	"log"
	"time"

	"colorbet/database"
	"colorbet/models"
)

// ExpireAbandonedDeposits fails deposit orders the payment gateway never
// completed. A status transition, not a delete: the ledger stays append-only.
func ExpireAbandonedDeposits() {
	cutoff := time.Now().Add(-24 * time.Hour)
	result := database.DB.Model(&models.Transaction{}).
		Where("trx_type = ? AND status = ? AND created_at < ?",
			models.TrxTypeDeposit, models.TrxStatusPending, cutoff).
		Update("status", models.TrxStatusFailed)

	if result.Error != nil {
		log.Println("Failed to expire abandoned deposits:", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("Expired %d abandoned deposit orders\n", result.RowsAffected)
	}
}
