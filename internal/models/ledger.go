package models

import (
	"time"

	"gorm.io/gorm"
)

// EntryType represents the kind of ledger event a posting belongs to
type EntryType string

const (
	EntryTypeExpense             EntryType = "expense"
	EntryTypeIncome              EntryType = "income"
	EntryTypeSavingsContribution EntryType = "savings-contribution"
	EntryTypeSavingsWithdrawal   EntryType = "savings-withdrawal"
)

// Entry represents one double-entry ledger event. Entries are soft-deleted;
// a deleted entry removes all of its postings from every aggregation.
type Entry struct {
	Base
	Type       EntryType      `gorm:"not null;index" json:"type"`
	OccurredAt time.Time      `gorm:"not null;index" json:"occurred_at"`
	Memo       string         `json:"memo"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Postings []Posting `gorm:"foreignKey:EntryID" json:"postings,omitempty"`
}

// Posting represents one signed leg of a ledger entry. The budget engine
// reads postings but never writes them.
type Posting struct {
	Base
	EntryID       string  `gorm:"type:uuid;not null;index" json:"entry_id"`
	WalletID      string  `gorm:"type:uuid;not null" json:"wallet_id"`
	Amount        int64   `gorm:"type:bigint;not null" json:"amount"`
	CategoryID    *string `gorm:"type:uuid;index" json:"category_id,omitempty"`
	SavingsGoalID *string `gorm:"type:uuid;index" json:"savings_goal_id,omitempty"`

	Entry       Entry        `gorm:"foreignKey:EntryID" json:"entry"`
	Wallet      Wallet       `gorm:"foreignKey:WalletID" json:"wallet"`
	Category    *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SavingsGoal *SavingsGoal `gorm:"foreignKey:SavingsGoalID" json:"savings_goal,omitempty"`
}
