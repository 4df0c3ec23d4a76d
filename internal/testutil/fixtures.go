package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"kakeibo/internal/models"
	"kakeibo/internal/month"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCategory creates a category of the given kind.
func CreateTestCategory(t *testing.T, db *gorm.DB, kind models.CategoryKind) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: fmt.Sprintf("Test Category %d", nextID()),
		Kind: kind,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestArchivedCategory creates an archived expense category.
func CreateTestArchivedCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:     fmt.Sprintf("Archived Category %d", nextID()),
		Kind:     models.CategoryKindExpense,
		Archived: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create archived test category: %v", err)
	}
	return category
}

// CreateTestSavingsGoal creates an active savings goal.
func CreateTestSavingsGoal(t *testing.T, db *gorm.DB) *models.SavingsGoal {
	t.Helper()

	goal := &models.SavingsGoal{
		Name: fmt.Sprintf("Test Goal %d", nextID()),
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test savings goal: %v", err)
	}
	return goal
}

// CreateTestWallet creates a wallet for posting legs to reference.
func CreateTestWallet(t *testing.T, db *gorm.DB) *models.Wallet {
	t.Helper()

	wallet := &models.Wallet{Name: fmt.Sprintf("Test Wallet %d", nextID())}
	if err := db.Create(wallet).Error; err != nil {
		t.Fatalf("failed to create test wallet: %v", err)
	}
	return wallet
}

// CreateTestBudget creates a budget for the given month and target.
func CreateTestBudget(t *testing.T, db *gorm.DB, m month.Month, target models.TargetRef, amount int64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Month:         m.Start(),
		CategoryID:    target.CategoryID(),
		SavingsGoalID: target.SavingsGoalID(),
		Amount:        amount,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// createTestEntry creates a ledger entry with a single target-linked
// posting leg.
func createTestEntry(t *testing.T, db *gorm.DB, entryType models.EntryType, occurredAt time.Time, amount int64, categoryID, goalID *string) *models.Entry {
	t.Helper()

	wallet := CreateTestWallet(t, db)
	entry := &models.Entry{
		Type:       entryType,
		OccurredAt: occurredAt,
		Memo:       fmt.Sprintf("test entry %d", nextID()),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}

	posting := &models.Posting{
		EntryID:       entry.ID,
		WalletID:      wallet.ID,
		Amount:        amount,
		CategoryID:    categoryID,
		SavingsGoalID: goalID,
	}
	if err := db.Create(posting).Error; err != nil {
		t.Fatalf("failed to create test posting: %v", err)
	}
	entry.Postings = []models.Posting{*posting}
	return entry
}

// CreateTestExpense records an expense of the given magnitude against a
// category. The posting leg is negative, as money leaves the wallet.
func CreateTestExpense(t *testing.T, db *gorm.DB, categoryID string, amount int64, occurredAt time.Time) *models.Entry {
	t.Helper()
	return createTestEntry(t, db, models.EntryTypeExpense, occurredAt, -amount, &categoryID, nil)
}

// CreateTestContribution records a savings contribution toward a goal.
func CreateTestContribution(t *testing.T, db *gorm.DB, goalID string, amount int64, occurredAt time.Time) *models.Entry {
	t.Helper()
	return createTestEntry(t, db, models.EntryTypeSavingsContribution, occurredAt, amount, nil, &goalID)
}

// CreateTestWithdrawal records a savings withdrawal from a goal.
func CreateTestWithdrawal(t *testing.T, db *gorm.DB, goalID string, amount int64, occurredAt time.Time) *models.Entry {
	t.Helper()
	return createTestEntry(t, db, models.EntryTypeSavingsWithdrawal, occurredAt, -amount, nil, &goalID)
}

// MustMonth parses a month string, failing the test on error.
func MustMonth(t *testing.T, s string) month.Month {
	t.Helper()

	m, err := month.Parse(s)
	if err != nil {
		t.Fatalf("invalid test month %q: %v", s, err)
	}
	return m
}
