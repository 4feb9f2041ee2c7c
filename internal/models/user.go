package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/aayush-paliwal/finance-sass/internal/util"
)

// User represents an application user.
type User struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Username     string    `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	DisplayName  string    `gorm:"size:64"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	FailedLoginAttempts int        `gorm:"default:0"`
	LockedUntil         *time.Time `gorm:"index"`
	LastLoginAt         *time.Time
	LastLoginIP         string `gorm:"size:64"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = util.NewID()
	}
	return nil
}
