package models

// Wallet represents a physical or virtual money location postings move
// value between. The budget engine never mutates wallets; they exist so
// ledger postings can reference their legs.
type Wallet struct {
	Base
	Name     string `gorm:"not null" json:"name"`
	Archived bool   `gorm:"not null;default:false" json:"archived"`
}
