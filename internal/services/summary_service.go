package services

import (
	"math"
	"sort"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/month"
)

// summaryService joins budget rows with ledger spend totals. It is a pure
// read and favors availability over snapshot isolation: the budget and
// posting reads are independent queries, and callers re-request summaries
// rather than caching them.
type summaryService struct {
	db     *gorm.DB
	ledger LedgerServicer
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB, ledger LedgerServicer) SummaryServicer {
	return &summaryService{db: db, ledger: ledger}
}

// Summarize computes the month's spend-vs-budgeted view. A month with no
// budgets or no matching postings is a normal state and yields zeroed
// output, never an error.
func (s *summaryService) Summarize(m month.Month) (*BudgetSummary, error) {
	var budgets []models.Budget
	err := s.db.Preload("Category").Preload("SavingsGoal").
		Where("month = ?", m.Start()).
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &BudgetSummary{Month: m, Items: []SummaryItem{}}
	if len(budgets) == 0 {
		return summary, nil
	}

	totals, err := s.ledger.SpendTotals(m)
	if err != nil {
		return nil, err
	}

	for i := range budgets {
		b := &budgets[i]
		target := b.Target()

		var spent int64
		switch target.Kind {
		case models.TargetKindCategory:
			spent = totals.ByCategory[target.ID]
		case models.TargetKindSavingsGoal:
			spent = totals.ByGoal[target.ID]
		}

		var percentUsed float64
		if b.Amount > 0 {
			percentUsed = round2(float64(spent) / float64(b.Amount) * 100)
		}

		summary.Items = append(summary.Items, SummaryItem{
			BudgetID:    b.ID,
			Target:      target,
			Name:        displayName(b),
			Amount:      b.Amount,
			Spent:       spent,
			Remaining:   b.Amount - spent,
			PercentUsed: percentUsed,
		})
		summary.TotalBudget += b.Amount
		summary.TotalSpent += spent
	}
	summary.Remaining = summary.TotalBudget - summary.TotalSpent

	sort.SliceStable(summary.Items, func(i, j int) bool {
		return summary.Items[i].Name < summary.Items[j].Name
	})
	return summary, nil
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
