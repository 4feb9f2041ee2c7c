package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/aayush-paliwal/finance-sass/internal/util"
)

// Transaction is a single money movement. The amount is stored in cents
// (int64) to avoid float drift; negative amounts are expenses. Every
// transaction belongs to exactly one account and optionally one category,
// both of which must be owned by the same user.
type Transaction struct {
	ID         string  `gorm:"primaryKey;size:36"`
	UserID     string  `gorm:"size:36;index;not null"`
	AccountID  string  `gorm:"size:36;index;not null"`
	CategoryID *string `gorm:"size:36;index"`
	AmountCent int64   `gorm:"not null"`
	Payee      string  `gorm:"size:128"`
	Notes      string  `gorm:"size:255"`
	OccurredAt time.Time `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Account  Account   `gorm:"constraint:OnDelete:CASCADE"`
	Category *Category `gorm:"constraint:OnDelete:SET NULL"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = util.NewID()
	}
	return nil
}
