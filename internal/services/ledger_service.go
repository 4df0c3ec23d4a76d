package services

import (
	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/month"
	"kakeibo/internal/pagination"
)

// ledgerService is the read-only view over the posting ledger. The ledger
// is produced elsewhere and treated as already consistent; nothing here
// ever writes to it.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

type targetSum struct {
	TargetID string
	Total    int64
}

// SpendTotals computes the month's spend per target:
//   - per category, the absolute sum of postings under "expense" entries;
//   - per savings goal, the sum of postings under "savings-contribution"
//     entries only. Withdrawals reduce the goal balance but are not spend.
//
// Soft-deleted entries drop out of both sums.
func (s *ledgerService) SpendTotals(m month.Month) (*SpendTotals, error) {
	start, end := m.Window()

	var categoryRows []targetSum
	err := s.db.Table("postings").
		Select("postings.category_id AS target_id, SUM(ABS(postings.amount)) AS total").
		Joins("JOIN entries ON entries.id = postings.entry_id").
		Where("entries.deleted_at IS NULL").
		Where("entries.type = ?", models.EntryTypeExpense).
		Where("entries.occurred_at >= ? AND entries.occurred_at < ?", start, end).
		Where("postings.category_id IS NOT NULL").
		Group("postings.category_id").
		Scan(&categoryRows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goalRows []targetSum
	err = s.db.Table("postings").
		Select("postings.savings_goal_id AS target_id, SUM(postings.amount) AS total").
		Joins("JOIN entries ON entries.id = postings.entry_id").
		Where("entries.deleted_at IS NULL").
		Where("entries.type = ?", models.EntryTypeSavingsContribution).
		Where("entries.occurred_at >= ? AND entries.occurred_at < ?", start, end).
		Where("postings.savings_goal_id IS NOT NULL").
		Group("postings.savings_goal_id").
		Scan(&goalRows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := &SpendTotals{
		ByCategory: make(map[string]int64, len(categoryRows)),
		ByGoal:     make(map[string]int64, len(goalRows)),
	}
	for _, row := range categoryRows {
		totals.ByCategory[row.TargetID] = row.Total
	}
	for _, row := range goalRows {
		totals.ByGoal[row.TargetID] = row.Total
	}
	return totals, nil
}

// ListPostings returns the month's postings, newest first, with their
// entry, wallet, and target links preloaded.
func (s *ledgerService) ListPostings(m month.Month, page pagination.PageRequest) (*pagination.PageResponse[models.Posting], error) {
	page.Defaults()
	start, end := m.Window()

	base := s.db.Model(&models.Posting{}).
		Joins("JOIN entries ON entries.id = postings.entry_id").
		Where("entries.deleted_at IS NULL").
		Where("entries.occurred_at >= ? AND entries.occurred_at < ?", start, end)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var postings []models.Posting
	err := base.
		Preload("Entry").Preload("Wallet").Preload("Category").Preload("SavingsGoal").
		Order("entries.occurred_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&postings).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(postings, page.Page, page.PageSize, totalItems)
	return &result, nil
}
