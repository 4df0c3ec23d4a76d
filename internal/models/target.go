package models

import apperrors "kakeibo/internal/errors"

// TargetKind discriminates the two things a budget can limit
type TargetKind string

const (
	TargetKindCategory    TargetKind = "category"
	TargetKindSavingsGoal TargetKind = "savings_goal"
)

// TargetRef is a tagged reference to a budget target. It is the single
// representation of "category XOR savings goal" above the storage layer.
type TargetRef struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id"`
}

// NewTargetRef builds a TargetRef from the two nullable identifiers of the
// wire and storage shapes. Every entry point that accepts a target goes
// through here, so the exactly-one-populated rule lives in one place.
func NewTargetRef(categoryID, savingsGoalID *string) (TargetRef, error) {
	switch {
	case categoryID != nil && savingsGoalID != nil:
		return TargetRef{}, apperrors.WithMessage(apperrors.ErrInvalidTarget,
			"category_id and savings_goal_id are mutually exclusive")
	case categoryID != nil:
		return TargetRef{Kind: TargetKindCategory, ID: *categoryID}, nil
	case savingsGoalID != nil:
		return TargetRef{Kind: TargetKindSavingsGoal, ID: *savingsGoalID}, nil
	default:
		return TargetRef{}, apperrors.WithMessage(apperrors.ErrInvalidTarget,
			"either category_id or savings_goal_id is required")
	}
}

// CategoryID returns the category id column value for this target.
func (t TargetRef) CategoryID() *string {
	if t.Kind == TargetKindCategory {
		id := t.ID
		return &id
	}
	return nil
}

// SavingsGoalID returns the savings goal id column value for this target.
func (t TargetRef) SavingsGoalID() *string {
	if t.Kind == TargetKindSavingsGoal {
		id := t.ID
		return &id
	}
	return nil
}
