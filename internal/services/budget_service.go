package services

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/month"
)

// Display names used when a budget's target row has been deleted since the
// budget was created. The budget itself stays valid.
const (
	unknownCategoryName = "Unknown Category"
	unknownGoalName     = "Unknown Savings Bucket"
)

const maxNoteLength = 500

// budgetService owns budget rows and enforces the one-budget-per-
// (month, target) invariant.
type budgetService struct {
	db      *gorm.DB
	targets TargetServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, targets TargetServicer) BudgetServicer {
	return &budgetService{db: db, targets: targets}
}

// CreateBudget validates the month, amount, note, and target, then persists
// a new budget. Two concurrent creates for the same (month, target) may both
// pass the existence check; the composite unique index decides the winner
// and the loser surfaces DUPLICATE_BUDGET.
func (s *budgetService) CreateBudget(m month.Month, target models.TargetRef, amount int64, note *string) (*BudgetInfo, error) {
	if m.IsZero() {
		return nil, apperrors.ErrInvalidMonth
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if err := validateNote(note); err != nil {
		return nil, err
	}

	resolved, err := s.targets.Resolve(target)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := budgetsForTarget(s.db, m, target).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudget
	}

	budget := &models.Budget{
		Month:         m.Start(),
		CategoryID:    target.CategoryID(),
		SavingsGoalID: target.SavingsGoalID(),
		Amount:        amount,
		Note:          note,
	}

	if err := s.db.Create(budget).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateBudget, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	info := toBudgetInfo(budget)
	info.Name = resolved.Name
	return &info, nil
}

// GetBudget returns the budget with its target name, or nil when absent.
// Absence is not an error for reads.
func (s *budgetService) GetBudget(id string) (*BudgetInfo, error) {
	var budget models.Budget
	err := s.db.Preload("Category").Preload("SavingsGoal").Where("id = ?", id).First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	info := toBudgetInfo(&budget)
	return &info, nil
}

// ListBudgets returns all budgets, optionally restricted to one month, each
// joined with its target's display name. Ordered by target name ascending;
// when no month filter is given, ties break by month descending.
func (s *budgetService) ListBudgets(m *month.Month) ([]BudgetInfo, error) {
	query := s.db.Preload("Category").Preload("SavingsGoal")
	if m != nil {
		query = query.Where("month = ?", m.Start())
	}

	var budgets []models.Budget
	if err := query.Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	infos := make([]BudgetInfo, 0, len(budgets))
	for i := range budgets {
		infos = append(infos, toBudgetInfo(&budgets[i]))
	}

	// The display name spans two tables, so ordering happens after the join.
	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].Name != infos[j].Name {
			return infos[i].Name < infos[j].Name
		}
		return infos[i].Month.Start().After(infos[j].Month.Start())
	})
	return infos, nil
}

// UpdateBudget changes a budget's amount and, when instructed, its note.
// Month and target are immutable.
func (s *budgetService) UpdateBudget(id string, amount int64, note NoteChange) (*BudgetInfo, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if note.Set {
		if err := validateNote(note.Value); err != nil {
			return nil, err
		}
	}

	var budget models.Budget
	if err := s.db.Where("id = ?", id).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{"amount": amount}
	if note.Set {
		updates["note"] = note.Value
	}
	if err := s.db.Model(&budget).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetBudget(id)
}

// DeleteBudget permanently removes a budget row. Budgets are never
// soft-deleted.
func (s *budgetService) DeleteBudget(id string) error {
	var budget models.Budget
	if err := s.db.Where("id = ?", id).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBudgetNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// budgetsForTarget scopes a budget query to one (month, target) pair.
func budgetsForTarget(db *gorm.DB, m month.Month, target models.TargetRef) *gorm.DB {
	query := db.Model(&models.Budget{}).Where("month = ?", m.Start())
	if target.Kind == models.TargetKindCategory {
		return query.Where("category_id = ?", target.ID)
	}
	return query.Where("savings_goal_id = ?", target.ID)
}

func validateAmount(amount int64) error {
	if amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount,
			fmt.Sprintf("amount must be a positive integer, got %d", amount))
	}
	return nil
}

func validateNote(note *string) error {
	if note != nil && len([]rune(*note)) > maxNoteLength {
		return apperrors.ErrInvalidNote
	}
	return nil
}

// displayName resolves a budget's target name from its preloaded relations,
// degrading to the Unknown labels when the target row no longer exists.
func displayName(b *models.Budget) string {
	switch {
	case b.CategoryID != nil:
		if b.Category != nil {
			return b.Category.Name
		}
		return unknownCategoryName
	case b.SavingsGoalID != nil:
		if b.SavingsGoal != nil {
			return b.SavingsGoal.Name
		}
		return unknownGoalName
	}
	return ""
}

// toBudgetInfo maps a budget row (with preloaded relations) to its
// name-joined view.
func toBudgetInfo(b *models.Budget) BudgetInfo {
	return BudgetInfo{
		ID:        b.ID,
		Month:     month.FromTime(b.Month),
		Target:    b.Target(),
		Name:      displayName(b),
		Amount:    b.Amount,
		Note:      b.Note,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
