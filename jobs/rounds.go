package jobs

import (
	"log"
	"time"

	"colorbet/services"
	tasks "colorbet/task"
)

// StartRoundScheduler keeps a betting round open even when no player is
// polling. Round opening is idempotent, so the ticker and concurrent readers
// never produce duplicates.
func StartRoundScheduler() {
	ticker := time.NewTicker(5 * time.Second)
	go func() {
		for {
			<-ticker.C
			if _, err := services.GetOrOpenCurrentRound(); err != nil {
				log.Printf("error keeping round open: %v", err)
			}
		}
	}()
}

func StartMaintenanceScheduler() {
	ticker := time.NewTicker(1 * time.Hour)
	go func() {
		for {
			<-ticker.C
			tasks.ExpireAbandonedDeposits()
		}
	}()
}
