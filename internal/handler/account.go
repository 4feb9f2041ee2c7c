package handler

import (
	"net/http"
	"strings"

	"github.com/aayush-paliwal/finance-sass/internal/models"
	"github.com/aayush-paliwal/finance-sass/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccountHandler serves the account CRUD contract. Every query is scoped by
// models.OwnedBy, so a row that exists but belongs to someone else is
// indistinguishable from an absent one (404, never 403).
type AccountHandler struct {
	DB *gorm.DB
}

func NewAccountHandler(db *gorm.DB) *AccountHandler {
	return &AccountHandler{DB: db}
}

// accountInput is the whitelisted create/update body. Ids, owner and
// timestamps are server-owned; anything else in the body is dropped.
type accountInput struct {
	Name string `json:"name"`
}

func (in *accountInput) validate() util.FieldErrors {
	var fields util.FieldErrors
	if fe := util.ValidateName(in.Name); fe != nil {
		fields = append(fields, *fe)
	}
	return fields
}

// accountResp is the stable projection returned to clients, never the raw row.
type accountResp struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toAccountResp(a *models.Account) accountResp {
	return accountResp{ID: a.ID, Name: a.Name}
}

// ListAccounts returns all accounts owned by the caller.
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var accounts []models.Account
	if err := h.DB.Scopes(models.OwnedBy(user.ID)).
		Order("created_at ASC, id ASC").
		Find(&accounts).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to list accounts")
		return
	}

	items := make([]accountResp, 0, len(accounts))
	for i := range accounts {
		items = append(items, toAccountResp(&accounts[i]))
	}
	util.Success(c, items)
}

// GetAccount returns a single owned account by id.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		util.Error(c, http.StatusBadRequest, "missing id")
		return
	}

	var account models.Account
	if err := h.DB.Scopes(models.OwnedBy(user.ID)).
		Where("id = ?", id).
		First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "failed to load account")
		}
		return
	}

	util.Success(c, toAccountResp(&account))
}

// CreateAccount inserts a new account for the caller. Id and owner are
// assigned server-side.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req accountInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		util.Invalid(c, fields)
		return
	}

	account := models.Account{
		UserID: user.ID,
		Name:   strings.TrimSpace(req.Name),
	}
	if err := h.DB.Create(&account).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	util.Success(c, toAccountResp(&account))
}

type bulkDeleteReq struct {
	IDs []string `json:"ids"`
}

type deletedID struct {
	ID string `json:"id"`
}

// BulkDeleteAccounts removes every listed account the caller owns and
// returns the ids actually deleted. The delete is owner-filtered, not
// existence-checked: foreign or unknown ids are silently skipped.
func (h *AccountHandler) BulkDeleteAccounts(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req bulkDeleteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var ids []string
	if len(req.IDs) > 0 {
		if err := h.DB.Model(&models.Account{}).
			Scopes(models.OwnedBy(user.ID)).
			Where("id IN ?", req.IDs).
			Pluck("id", &ids).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "failed to delete accounts")
			return
		}
	}
	if len(ids) > 0 {
		if err := h.DB.Scopes(models.OwnedBy(user.ID)).
			Where("id IN ?", ids).
			Delete(&models.Account{}).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "failed to delete accounts")
			return
		}
	}

	deleted := make([]deletedID, 0, len(ids))
	for _, id := range ids {
		deleted = append(deleted, deletedID{ID: id})
	}
	util.Success(c, deleted)
}

// UpdateAccount renames an owned account. The row is loaded first so a miss
// answers 404 without mutating anything.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		util.Error(c, http.StatusBadRequest, "missing id")
		return
	}

	var req accountInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		util.Invalid(c, fields)
		return
	}

	var account models.Account
	if err := h.DB.Scopes(models.OwnedBy(user.ID)).
		Where("id = ?", id).
		First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "failed to load account")
		}
		return
	}

	account.Name = strings.TrimSpace(req.Name)
	if err := h.DB.Save(&account).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to update account")
		return
	}

	util.Success(c, toAccountResp(&account))
}

// DeleteAccount removes a single owned account by id.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		util.Error(c, http.StatusBadRequest, "missing id")
		return
	}

	res := h.DB.Scopes(models.OwnedBy(user.ID)).
		Where("id = ?", id).
		Delete(&models.Account{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, "failed to delete account")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "not found")
		return
	}

	util.Success(c, deletedID{ID: id})
}
