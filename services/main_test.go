package services

import (
	"path/filepath"
	"testing"

	"colorbet/database"
	"colorbet/models"
	"colorbet/notify"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB points the service layer at a throwaway sqlite store built with
// the production migration. A single connection serializes concurrent
// transactions the way the database would.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	database.DB = db
	Notifier = notify.LogSink{}
}

func createTestUser(t *testing.T, code string, balance float64) *models.User {
	t.Helper()

	user := models.User{
		UserCode: code,
		Balance:  balance,
		IsActive: true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", code, err)
	}
	return &user
}

func reloadUser(t *testing.T, id uint) *models.User {
	t.Helper()

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		t.Fatalf("reload user %d: %v", id, err)
	}
	return &user
}

func openTestRound(t *testing.T) *models.Round {
	t.Helper()

	round, err := GetOrOpenCurrentRound()
	if err != nil {
		t.Fatalf("open round: %v", err)
	}
	return round
}

type recordingSink struct {
	events []notify.SettlementEvent
}

func (r *recordingSink) SettlementCompleted(ev notify.SettlementEvent) error {
	r.events = append(r.events, ev)
	return nil
}
