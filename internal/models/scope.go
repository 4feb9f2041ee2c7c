package models

import "gorm.io/gorm"

// OwnedBy is the owner filter applied to every resource query. Handlers
// never write their own user_id predicate; going through this one scope
// guarantees no query can forget it.
func OwnedBy(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
