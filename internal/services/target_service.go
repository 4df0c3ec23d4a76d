package services

import (
	"errors"
	"sort"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

// targetService validates and resolves budget targets.
type targetService struct {
	db *gorm.DB
}

// NewTargetService creates a new TargetServicer.
func NewTargetService(db *gorm.DB) TargetServicer {
	return &targetService{db: db}
}

// Resolve confirms that the referenced target exists, is not archived, and
// may be budgeted, returning its display name. Pure lookup, no side effects.
func (s *targetService) Resolve(target models.TargetRef) (*ResolvedTarget, error) {
	switch target.Kind {
	case models.TargetKindCategory:
		var category models.Category
		if err := s.db.Where("id = ? AND archived = ?", target.ID, false).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrTargetNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if category.Kind != models.CategoryKindExpense {
			return nil, apperrors.ErrTargetNotBudgetable
		}
		return &ResolvedTarget{Target: target, Name: category.Name}, nil

	case models.TargetKindSavingsGoal:
		var goal models.SavingsGoal
		if err := s.db.Where("id = ? AND archived = ?", target.ID, false).First(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrTargetNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &ResolvedTarget{Target: target, Name: goal.Name}, nil

	default:
		return nil, apperrors.ErrInvalidTarget
	}
}

// ListBudgetable returns every target a new budget may reference: active
// expense categories and active savings goals, ordered by name.
func (s *targetService) ListBudgetable() ([]ResolvedTarget, error) {
	var categories []models.Category
	if err := s.db.
		Where("kind = ? AND archived = ?", models.CategoryKindExpense, false).
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.SavingsGoal
	if err := s.db.Where("archived = ?", false).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	targets := make([]ResolvedTarget, 0, len(categories)+len(goals))
	for _, c := range categories {
		targets = append(targets, ResolvedTarget{
			Target: models.TargetRef{Kind: models.TargetKindCategory, ID: c.ID},
			Name:   c.Name,
		})
	}
	for _, g := range goals {
		targets = append(targets, ResolvedTarget{
			Target: models.TargetRef{Kind: models.TargetKindSavingsGoal, ID: g.ID},
			Name:   g.Name,
		})
	}

	sort.Slice(targets, func(i, j int) bool { return targets[i].Name < targets[j].Name })
	return targets, nil
}
