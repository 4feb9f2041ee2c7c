package handler

import (
	"net/http"
	"strings"

	"github.com/aayush-paliwal/finance-sass/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type updateProfileReq struct {
	DisplayName string `json:"display_name"`
}

type changePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UpdateProfile changes the current user's display name.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			return
		}

		var req updateProfileReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, "invalid request body")
			return
		}

		req.DisplayName = strings.TrimSpace(req.DisplayName)
		if len(req.DisplayName) > 64 {
			util.Invalid(c, util.FieldErrors{}.Add("display_name", "must be at most 64 characters"))
			return
		}

		if err := db.Model(user).Update("display_name", req.DisplayName).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "failed to update profile")
			return
		}

		user.DisplayName = req.DisplayName

		util.Success(c, gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
		})
	}
}

// ChangePassword verifies the old password and stores a new hash.
func ChangePassword(db *gorm.DB, bcryptCost int) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			return
		}

		var req changePasswordReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
			util.Invalid(c, util.FieldErrors{}.Add("old_password", "is wrong"))
			return
		}
		if !isStrongPassword(req.NewPassword) {
			util.Invalid(c, util.FieldErrors{}.Add("new_password", "must be 8-32 characters with upper, lower and digit"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, "failed to hash password")
			return
		}

		if err := db.Model(user).Update("password_hash", string(hash)).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "failed to update password")
			return
		}

		util.Success(c, gin.H{"message": "password changed, please log in again"})
	}
}
