package models

// CategoryKind represents the kind of category
type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "income"
	CategoryKindExpense CategoryKind = "expense"
)

// Category represents a ledger category. Only expense categories may be
// budgeted; income categories exist for ledger classification only.
type Category struct {
	Base
	Name     string       `gorm:"not null" json:"name"`
	Kind     CategoryKind `gorm:"not null" json:"kind"`
	Icon     string       `json:"icon"`
	Archived bool         `gorm:"not null;default:false" json:"archived"`
}
