package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/aayush-paliwal/finance-sass/internal/models"
	"github.com/aayush-paliwal/finance-sass/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler serves the transaction CRUD contract. On top of the
// shared ownership rules it verifies that the referenced account (and the
// optional category) resolve under the caller's ownership; a foreign
// reference answers 404 like any other not-owned row.
type TransactionHandler struct {
	DB *gorm.DB
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{DB: db}
}

// transactionInput is the whitelisted create/update body. Amounts arrive as
// int64 cents; decimal display values exist only on the client side.
type transactionInput struct {
	Amount     int64   `json:"amount"`
	Payee      string  `json:"payee"`
	Notes      string  `json:"notes"`
	OccurredAt string  `json:"occurred_at"`
	AccountID  string  `json:"account_id"`
	CategoryID *string `json:"category_id"`
}

func (in *transactionInput) validate() (time.Time, util.FieldErrors) {
	var fields util.FieldErrors
	if fe := util.ValidateAmountCents(in.Amount); fe != nil {
		fields = append(fields, *fe)
	}
	if strings.TrimSpace(in.AccountID) == "" {
		fields = fields.Add("account_id", "is required")
	}
	if len(in.Payee) > 128 {
		fields = fields.Add("payee", "must be at most 128 characters")
	}
	if fe := util.ValidateNotes(in.Notes); fe != nil {
		fields = append(fields, *fe)
	}
	occurredAt, fe := util.ValidateDate("occurred_at", in.OccurredAt)
	if fe != nil {
		fields = append(fields, *fe)
	}
	return occurredAt, fields
}

// categoryID normalizes the optional reference: absent or blank means none.
func (in *transactionInput) categoryID() *string {
	if in.CategoryID == nil {
		return nil
	}
	id := strings.TrimSpace(*in.CategoryID)
	if id == "" {
		return nil
	}
	return &id
}

type transactionResp struct {
	ID         string  `json:"id"`
	Amount     int64   `json:"amount"` // cents
	Payee      string  `json:"payee"`
	Notes      string  `json:"notes"`
	OccurredAt string  `json:"occurred_at"`
	AccountID  string  `json:"account_id"`
	CategoryID *string `json:"category_id"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:         t.ID,
		Amount:     t.AmountCent,
		Payee:      t.Payee,
		Notes:      t.Notes,
		OccurredAt: t.OccurredAt.Format("2006-01-02"),
		AccountID:  t.AccountID,
		CategoryID: t.CategoryID,
	}
}

// resolveRefs checks that the account and optional category referenced by the
// input belong to the caller. Returns false after writing the 404 response.
func (h *TransactionHandler) resolveRefs(c *gin.Context, userID string, in *transactionInput) bool {
	var count int64
	if err := h.DB.Model(&models.Account{}).
		Scopes(models.OwnedBy(userID)).
		Where("id = ?", strings.TrimSpace(in.AccountID)).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to load account")
		return false
	}
	if count == 0 {
		util.Error(c, http.StatusNotFound, "account not found")
		return false
	}

	if catID := in.categoryID(); catID != nil {
		if err := h.DB.Model(&models.Category{}).
			Scopes(models.OwnedBy(userID)).
			Where("id = ?", *catID).
			Count(&count).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "failed to load category")
			return false
		}
		if count == 0 {
			util.Error(c, http.StatusNotFound, "category not found")
			return false
		}
	}
	return true
}

// ListTransactions returns the caller's transactions, optionally filtered by
// date range (?from=&to=, YYYY-MM-DD, to is inclusive) and account.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	q := h.DB.Scopes(models.OwnedBy(user.ID)).Model(&models.Transaction{})

	if fromStr := c.Query("from"); fromStr != "" {
		from, fe := util.ValidateDate("from", fromStr)
		if fe != nil {
			util.Invalid(c, util.FieldErrors{*fe})
			return
		}
		q = q.Where("occurred_at >= ?", from)
	}
	if toStr := c.Query("to"); toStr != "" {
		to, fe := util.ValidateDate("to", toStr)
		if fe != nil {
			util.Invalid(c, util.FieldErrors{*fe})
			return
		}
		// inclusive end of day
		q = q.Where("occurred_at < ?", to.Add(24*time.Hour))
	}
	if accountID := strings.TrimSpace(c.Query("account_id")); accountID != "" {
		q = q.Where("account_id = ?", accountID)
	}

	var transactions []models.Transaction
	if err := q.Order("occurred_at DESC, id DESC").Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	items := make([]transactionResp, 0, len(transactions))
	for i := range transactions {
		items = append(items, toTransactionResp(&transactions[i]))
	}
	util.Success(c, items)
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		util.Error(c, http.StatusBadRequest, "missing id")
		return
	}

	var tx models.Transaction
	if err := h.DB.Scopes(models.OwnedBy(user.ID)).
		Where("id = ?", id).
		First(&tx).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "failed to load transaction")
		}
		return
	}

	util.Success(c, toTransactionResp(&tx))
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req transactionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	occurredAt, fields := req.validate()
	if len(fields) > 0 {
		util.Invalid(c, fields)
		return
	}
	if !h.resolveRefs(c, user.ID, &req) {
		return
	}

	tx := models.Transaction{
		UserID:     user.ID,
		AccountID:  strings.TrimSpace(req.AccountID),
		CategoryID: req.categoryID(),
		AmountCent: req.Amount,
		Payee:      strings.TrimSpace(req.Payee),
		Notes:      req.Notes,
		OccurredAt: occurredAt,
	}
	if err := h.DB.Create(&tx).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to create transaction")
		return
	}

	util.Success(c, toTransactionResp(&tx))
}

func (h *TransactionHandler) BulkDeleteTransactions(c *gin.Context) {
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
		if err := h.DB.Model(&models.Transaction{}).
			Scopes(models.OwnedBy(user.ID)).
			Where("id IN ?", req.IDs).
			Pluck("id", &ids).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "failed to delete transactions")
			return
		}
	}
	if len(ids) > 0 {
		if err := h.DB.Scopes(models.OwnedBy(user.ID)).
			Where("id IN ?", ids).
			Delete(&models.Transaction{}).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "failed to delete transactions")
			return
		}
	}

	deleted := make([]deletedID, 0, len(ids))
	for _, id := range ids {
		deleted = append(deleted, deletedID{ID: id})
	}
	util.Success(c, deleted)
}

func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		util.Error(c, http.StatusBadRequest, "missing id")
		return
	}

	var req transactionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	occurredAt, fields := req.validate()
	if len(fields) > 0 {
		util.Invalid(c, fields)
		return
	}

	var tx models.Transaction
	if err := h.DB.Scopes(models.OwnedBy(user.ID)).
		Where("id = ?", id).
		First(&tx).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "failed to load transaction")
		}
		return
	}

	if !h.resolveRefs(c, user.ID, &req) {
		return
	}

	tx.AccountID = strings.TrimSpace(req.AccountID)
	tx.CategoryID = req.categoryID()
	tx.AmountCent = req.Amount
	tx.Payee = strings.TrimSpace(req.Payee)
	tx.Notes = req.Notes
	tx.OccurredAt = occurredAt

	if err := h.DB.Save(&tx).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to update transaction")
		return
	}

	util.Success(c, toTransactionResp(&tx))
}

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
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
		Delete(&models.Transaction{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "not found")
		return
	}

	util.Success(c, deletedID{ID: id})
}
