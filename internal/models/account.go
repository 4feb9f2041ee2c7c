package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/aayush-paliwal/finance-sass/internal/util"
)

// Account is a money account (checking, savings, cash...) owned by one user.
type Account struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"size:36;index;not null"`
	Name      string    `gorm:"size:64;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = util.NewID()
	}
	return nil
}
