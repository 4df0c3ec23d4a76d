package services

import (
	"testing"

	"gorm.io/gorm"

	"kakeibo/internal/models"
	"kakeibo/internal/testutil"
)

// testServices bundles the full service graph over one test database.
type testServices struct {
	db      *gorm.DB
	targets TargetServicer
	budgets BudgetServicer
	ledger  LedgerServicer
	summary SummaryServicer
	copier  CopyServicer
}

func setupServices(t *testing.T) *testServices {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	targets := NewTargetService(db)
	ledger := NewLedgerService(db)
	return &testServices{
		db:      db,
		targets: targets,
		budgets: NewBudgetService(db, targets),
		ledger:  ledger,
		summary: NewSummaryService(db, ledger),
		copier:  NewCopyService(db),
	}
}

func categoryRef(id string) models.TargetRef {
	return models.TargetRef{Kind: models.TargetKindCategory, ID: id}
}

func goalRef(id string) models.TargetRef {
	return models.TargetRef{Kind: models.TargetKindSavingsGoal, ID: id}
}
