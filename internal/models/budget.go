package models

import "time"

// Budget represents one monthly spending-limit allocation, bound to exactly
// one target: an expense category or a savings goal. Month and target are
// immutable after creation; changing the target means delete and recreate.
//
// The composite unique indexes are the uniqueness invariant: at most one
// budget per (month, category) and per (month, savings goal). A row always
// has exactly one of the two target columns populated, and NULLs never
// collide, so two plain composite indexes are sufficient.
type Budget struct {
	Base
	Month         time.Time `gorm:"type:date;not null;uniqueIndex:idx_budgets_month_category;uniqueIndex:idx_budgets_month_goal" json:"month"`
	CategoryID    *string   `gorm:"type:uuid;uniqueIndex:idx_budgets_month_category" json:"category_id,omitempty"`
	SavingsGoalID *string   `gorm:"type:uuid;uniqueIndex:idx_budgets_month_goal" json:"savings_goal_id,omitempty"`
	Amount        int64     `gorm:"type:bigint;not null" json:"amount"`
	Note          *string   `gorm:"size:500" json:"note,omitempty"`

	Category    *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SavingsGoal *SavingsGoal `gorm:"foreignKey:SavingsGoalID" json:"savings_goal,omitempty"`
}

// Target returns the budget's target reference. Persistence uses two
// nullable columns; everything above the model layer works with the
// tagged union.
func (b *Budget) Target() TargetRef {
	if b.CategoryID != nil {
		return TargetRef{Kind: TargetKindCategory, ID: *b.CategoryID}
	}
	if b.SavingsGoalID != nil {
		return TargetRef{Kind: TargetKindSavingsGoal, ID: *b.SavingsGoalID}
	}
	return TargetRef{}
}
