package services

import (
	"encoding/json"
	"errors"
	"testing"

	"colorbet/database"
	"colorbet/models"
)

func TestRequestDepositBelowMinimum(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "alice", 0)
	_, err := RequestDeposit(user, 50, "")
	if !errors.Is(err, ErrMinDeposit) {
		t.Fatalf("err = %v, want ErrMinDeposit", err)
	}
}

func TestDepositFlow(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "alice", 0)

	entry, err := RequestDeposit(user, 500, "order_abc123")
	if err != nil {
		t.Fatalf("request deposit: %v", err)
	}
	if entry.Status != models.TrxStatusPending {
		t.Fatalf("status = %q, want pending", entry.Status)
	}
	if got := reloadUser(t, user.ID).Balance; got != 0 {
		t.Fatalf("balance = %v, want 0 (no credit before gateway callback)", got)
	}

	completed, err := CompleteDeposit("order_abc123", "pay_789")
	if err != nil {
		t.Fatalf("complete deposit: %v", err)
	}
	if completed.Status != models.TrxStatusCompleted {
		t.Fatalf("status = %q, want completed", completed.Status)
	}

	var detail map[string]any
	if err := json.Unmarshal(completed.Detail, &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail["payment_id"] != "pay_789" {
		t.Fatalf("detail payment_id = %v, want pay_789", detail["payment_id"])
	}

	fresh := reloadUser(t, user.ID)
	if fresh.Balance != 500 {
		t.Fatalf("balance = %v, want 500", fresh.Balance)
	}
	if fresh.TotalDeposit != 500 {
		t.Fatalf("total deposit = %v, want 500", fresh.TotalDeposit)
	}
}

func TestCompleteDepositReplayRejected(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "alice", 0)
	if _, err := RequestDeposit(user, 500, "order_abc123"); err != nil {
		t.Fatalf("request deposit: %v", err)
	}
	if _, err := CompleteDeposit("order_abc123", "pay_789"); err != nil {
		t.Fatalf("complete deposit: %v", err)
	}

	_, err := CompleteDeposit("order_abc123", "pay_789")
	if !errors.Is(err, ErrEntryNotPending) {
		t.Fatalf("err = %v, want ErrEntryNotPending", err)
	}
	if got := reloadUser(t, user.ID).Balance; got != 500 {
		t.Fatalf("balance = %v, want 500 (replay must not re-credit)", got)
	}
}

func TestCompleteDepositUnknownRef(t *testing.T) {
	setupTestDB(t)

	_, err := CompleteDeposit("order_missing", "pay_789")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFailDeposit(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "alice", 0)
	if _, err := RequestDeposit(user, 500, "order_abc123"); err != nil {
		t.Fatalf("request deposit: %v", err)
	}

	failed, err := FailDeposit("order_abc123", "card declined")
	if err != nil {
		t.Fatalf("fail deposit: %v", err)
	}
	if failed.Status != models.TrxStatusFailed {
		t.Fatalf("status = %q, want failed", failed.Status)
	}

	var detail map[string]any
	if err := json.Unmarshal(failed.Detail, &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail["failure_reason"] != "card declined" {
		t.Fatalf("detail failure_reason = %v, want card declined", detail["failure_reason"])
	}

	if got := reloadUser(t, user.ID).Balance; got != 0 {
		t.Fatalf("balance = %v, want 0 (failed deposit must not credit)", got)
	}

	// a success callback arriving afterwards must be rejected
	if _, err := CompleteDeposit("order_abc123", "pay_789"); !errors.Is(err, ErrEntryNotPending) {
		t.Fatalf("complete after fail: err = %v, want ErrEntryNotPending", err)
	}
	if got := reloadUser(t, user.ID).Balance; got != 0 {
		t.Fatalf("balance = %v, want 0", got)
	}
}

func TestFailDepositReplayRejected(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "alice", 0)
	if _, err := RequestDeposit(user, 500, "order_abc123"); err != nil {
		t.Fatalf("request deposit: %v", err)
	}
	if _, err := FailDeposit("order_abc123", ""); err != nil {
		t.Fatalf("fail deposit: %v", err)
	}

	_, err := FailDeposit("order_abc123", "")
	if !errors.Is(err, ErrEntryNotPending) {
		t.Fatalf("err = %v, want ErrEntryNotPending", err)
	}
}

func TestFailDepositUnknownRef(t *testing.T) {
	setupTestDB(t)

	_, err := FailDeposit("order_missing", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRequestWithdrawalBelowMinimum(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "alice", 500)
	_, err := RequestWithdrawal(user, 100)
	if !errors.Is(err, ErrMinWithdrawal) {
		t.Fatalf("err = %v, want ErrMinWithdrawal", err)
	}
}

func TestRequestWithdrawalInsufficientBalance(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "alice", 150)
	_, err := RequestWithdrawal(user, 200)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}

	if got := reloadUser(t, user.ID).Balance; got != 150 {
		t.Fatalf("balance = %v, want 150 (no hold on rejected request)", got)
	}
	var entries int64
	database.DB.Model(&models.Transaction{}).Count(&entries)
	if entries != 0 {
		t.Fatalf("ledger entries = %d, want 0", entries)
	}
}

func TestWithdrawalLedgerChainsWithStaleCallerSnapshot(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "alice", 700)

	// second caller still holds the balance from before the first hold
	stale := *user

	if _, err := RequestWithdrawal(user, 200); err != nil {
		t.Fatalf("first withdrawal: %v", err)
	}
	if _, err := RequestWithdrawal(&stale, 200); err != nil {
		t.Fatalf("second withdrawal: %v", err)
	}

	if got := reloadUser(t, user.ID).Balance; got != 300 {
		t.Fatalf("balance = %v, want 300", got)
	}

	var entries []models.Transaction
	if err := database.DB.
		Where("user_id = ? AND trx_type = ?", user.ID, models.TrxTypeWithdrawal).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		t.Fatalf("load entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].BalanceBefore != 700 || entries[0].BalanceAfter != 500 {
		t.Fatalf("first entry balances = %v/%v, want 700/500",
			entries[0].BalanceBefore, entries[0].BalanceAfter)
	}
	if entries[1].BalanceBefore != 500 || entries[1].BalanceAfter != 300 {
		t.Fatalf("second entry balances = %v/%v, want 500/300",
			entries[1].BalanceBefore, entries[1].BalanceAfter)
	}
}

func TestWithdrawalRejectRefundsHold(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "alice", 500)

	entry, err := RequestWithdrawal(user, 200)
	if err != nil {
		t.Fatalf("request withdrawal: %v", err)
	}
	if got := reloadUser(t, user.ID).Balance; got != 300 {
		t.Fatalf("balance after hold = %v, want 300", got)
	}

	resolved, err := ResolveWithdrawal(entry.ID, false)
	if err != nil {
		t.Fatalf("reject withdrawal: %v", err)
	}
	if resolved.Status != models.TrxStatusRejected {
		t.Fatalf("status = %q, want rejected", resolved.Status)
	}

	fresh := reloadUser(t, user.ID)
	if fresh.Balance != 500 {
		t.Fatalf("balance = %v, want 500 (hold refunded)", fresh.Balance)
	}
	if fresh.TotalWithdrawal != 0 {
		t.Fatalf("total withdrawal = %v, want 0", fresh.TotalWithdrawal)
	}
}

func TestWithdrawalApproveKeepsDebit(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "alice", 500)

	entry, err := RequestWithdrawal(user, 200)
	if err != nil {
		t.Fatalf("request withdrawal: %v", err)
	}

	resolved, err := ResolveWithdrawal(entry.ID, true)
	if err != nil {
		t.Fatalf("approve withdrawal: %v", err)
	}
	if resolved.Status != models.TrxStatusCompleted {
		t.Fatalf("status = %q, want completed", resolved.Status)
	}

	fresh := reloadUser(t, user.ID)
	if fresh.Balance != 300 {
		t.Fatalf("balance = %v, want 300 (debit already applied at request)", fresh.Balance)
	}
	if fresh.TotalWithdrawal != 200 {
		t.Fatalf("total withdrawal = %v, want 200", fresh.TotalWithdrawal)
	}
}

func TestResolveWithdrawalReplayRejected(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "alice", 500)
	entry, err := RequestWithdrawal(user, 200)
	if err != nil {
		t.Fatalf("request withdrawal: %v", err)
	}
	if _, err := ResolveWithdrawal(entry.ID, false); err != nil {
		t.Fatalf("reject withdrawal: %v", err)
	}

	_, err = ResolveWithdrawal(entry.ID, false)
	if !errors.Is(err, ErrEntryNotPending) {
		t.Fatalf("err = %v, want ErrEntryNotPending", err)
	}
	if got := reloadUser(t, user.ID).Balance; got != 500 {
		t.Fatalf("balance = %v, want 500 (no double refund)", got)
	}
}

func TestResolveWithdrawalUnknownEntry(t *testing.T) {
	setupTestDB(t)

	_, err := ResolveWithdrawal(77, true)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPendingWithdrawalsQueue(t *testing.T) {
	setupTestDB(t)

	alice := createTestUser(t, "alice", 1000)
	bob := createTestUser(t, "bob", 1000)

	if _, err := RequestWithdrawal(alice, 200); err != nil {
		t.Fatalf("alice withdrawal: %v", err)
	}
	entry, err := RequestWithdrawal(bob, 300)
	if err != nil {
		t.Fatalf("bob withdrawal: %v", err)
	}
	if _, err := ResolveWithdrawal(entry.ID, true); err != nil {
		t.Fatalf("approve: %v", err)
	}

	pending, err := PendingWithdrawals()
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
	if pending[0].UserID != alice.ID {
		t.Fatalf("pending entry belongs to user %d, want %d", pending[0].UserID, alice.ID)
	}
}
