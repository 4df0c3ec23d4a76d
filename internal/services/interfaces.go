package services

import (
	"time"

	"kakeibo/internal/models"
	"kakeibo/internal/month"
	"kakeibo/internal/pagination"
)

// ResolvedTarget pairs a target reference with its display name.
type ResolvedTarget struct {
	Target models.TargetRef `json:"target"`
	Name   string           `json:"name"`
}

// TargetServicer defines the contract for resolving and listing budget targets.
type TargetServicer interface {
	Resolve(target models.TargetRef) (*ResolvedTarget, error)
	ListBudgetable() ([]ResolvedTarget, error)
}

// BudgetInfo is a budget row joined with its target's display name.
type BudgetInfo struct {
	ID        string           `json:"id"`
	Month     month.Month      `json:"month"`
	Target    models.TargetRef `json:"target"`
	Name      string           `json:"name"`
	Amount    int64            `json:"amount"`
	Note      *string          `json:"note,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NoteChange carries the three-state note update instruction: leave
// unchanged (Set false), clear (Set true, Value nil), or replace
// (Set true, Value non-nil).
type NoteChange struct {
	Set   bool
	Value *string
}

// BudgetServicer defines the contract for budget CRUD.
type BudgetServicer interface {
	CreateBudget(m month.Month, target models.TargetRef, amount int64, note *string) (*BudgetInfo, error)
	GetBudget(id string) (*BudgetInfo, error)
	ListBudgets(m *month.Month) ([]BudgetInfo, error)
	UpdateBudget(id string, amount int64, note NoteChange) (*BudgetInfo, error)
	DeleteBudget(id string) error
}

// SpendTotals holds per-target spend sums for one month window.
type SpendTotals struct {
	ByCategory map[string]int64
	ByGoal     map[string]int64
}

// LedgerServicer defines the read-only contract against the posting ledger.
type LedgerServicer interface {
	SpendTotals(m month.Month) (*SpendTotals, error)
	ListPostings(m month.Month, page pagination.PageRequest) (*pagination.PageResponse[models.Posting], error)
}

// SummaryItem is one budget's spend-vs-budgeted line in a month summary.
type SummaryItem struct {
	BudgetID    string           `json:"budget_id"`
	Target      models.TargetRef `json:"target"`
	Name        string           `json:"name"`
	Amount      int64            `json:"budget_amount"`
	Spent       int64            `json:"spent"`
	Remaining   int64            `json:"remaining"`
	PercentUsed float64          `json:"percent_used"`
}

// BudgetSummary is the derived whole-month view. It is recomputed on every
// request and never persisted.
type BudgetSummary struct {
	Month       month.Month   `json:"month"`
	TotalBudget int64         `json:"total_budget"`
	TotalSpent  int64         `json:"total_spent"`
	Remaining   int64         `json:"remaining"`
	Items       []SummaryItem `json:"items"`
}

// SummaryServicer defines the contract for month summaries.
type SummaryServicer interface {
	Summarize(m month.Month) (*BudgetSummary, error)
}

// SkippedBudget identifies a source budget whose target was already
// budgeted in the destination month.
type SkippedBudget struct {
	Target models.TargetRef `json:"target"`
	Name   string           `json:"name"`
}

// CopyResult reports the partial outcome of a month-to-month copy.
type CopyResult struct {
	Created []BudgetInfo    `json:"created"`
	Skipped []SkippedBudget `json:"skipped"`
}

// CopyServicer defines the contract for the month-to-month copy operation.
type CopyServicer interface {
	Copy(from, to month.Month) (*CopyResult, error)
}
