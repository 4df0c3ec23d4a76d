package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/month"
)

// copyService seeds one month's budgets from another. Targets already
// budgeted in the destination are skipped rather than overwritten, so a
// re-run is idempotent and manual overrides in the destination survive.
type copyService struct {
	db *gorm.DB
}

// NewCopyService creates a new CopyServicer.
func NewCopyService(db *gorm.DB) CopyServicer {
	return &copyService{db: db}
}

// Copy duplicates fromMonth's budgets into toMonth. The skip partition is
// read outside the insert transaction; a concurrent create in the
// destination between the read and the write loses to the unique index,
// rolls back the whole batch, and surfaces DUPLICATE_BUDGET. Re-invoking
// after such a failure is safe because the partition is re-read.
func (s *copyService) Copy(from, to month.Month) (*CopyResult, error) {
	if from.IsZero() || to.IsZero() {
		return nil, apperrors.ErrInvalidMonth
	}
	if from.Equal(to) {
		return nil, apperrors.ErrSameMonth
	}

	var source []models.Budget
	err := s.db.Preload("Category").Preload("SavingsGoal").
		Where("month = ?", from.Start()).
		Find(&source).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(source) == 0 {
		return nil, apperrors.ErrEmptySourceMonth
	}

	var destination []models.Budget
	if err := s.db.Where("month = ?", to.Start()).Find(&destination).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	taken := make(map[models.TargetRef]bool, len(destination))
	for i := range destination {
		taken[destination[i].Target()] = true
	}

	// Partition by target identity, not budget id.
	var toCopy []*models.Budget
	result := &CopyResult{Created: []BudgetInfo{}, Skipped: []SkippedBudget{}}
	for i := range source {
		src := &source[i]
		if taken[src.Target()] {
			result.Skipped = append(result.Skipped, SkippedBudget{
				Target: src.Target(),
				Name:   displayName(src),
			})
			continue
		}
		toCopy = append(toCopy, src)
	}

	// Everything already present: a no-op, not an error.
	if len(toCopy) == 0 {
		return result, nil
	}

	// One transaction covers the whole batch; any failed insert rolls back
	// every row attempted.
	created := make([]*models.Budget, 0, len(toCopy))
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, src := range toCopy {
			clone := &models.Budget{
				Month:         to.Start(),
				CategoryID:    copyID(src.CategoryID),
				SavingsGoalID: copyID(src.SavingsGoalID),
				Amount:        src.Amount,
				Note:          copyID(src.Note),
			}
			if err := tx.Create(clone).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return apperrors.Wrap(apperrors.ErrDuplicateBudget, err)
				}
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			// Carry the source's preloaded target over for the name join.
			clone.Category = src.Category
			clone.SavingsGoal = src.SavingsGoal
			created = append(created, clone)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, clone := range created {
		result.Created = append(result.Created, toBudgetInfo(clone))
	}
	return result, nil
}

// copyID clones an optional column value so source and copy never share
// a pointer.
func copyID(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
