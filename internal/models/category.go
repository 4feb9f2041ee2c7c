package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/aayush-paliwal/finance-sass/internal/util"
)

// Category labels transactions (food, rent, salary...). Same shape and
// ownership rules as Account.
type Category struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"size:36;index;not null"`
	Name      string    `gorm:"size:64;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = util.NewID()
	}
	return nil
}
