package models

// SavingsGoal represents a savings bucket the household contributes to.
// Any active goal may be budgeted.
type SavingsGoal struct {
	Base
	Name         string `gorm:"not null" json:"name"`
	TargetAmount *int64 `gorm:"type:bigint" json:"target_amount,omitempty"`
	Archived     bool   `gorm:"not null;default:false" json:"archived"`
}
