package router

import (
	"net/http"
	"testing"
	"time"

	"github.com/aayush-paliwal/finance-sass/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func today() string {
	return time.Now().Format("2006-01-02")
}

func createTransaction(t *testing.T, r http.Handler, token string, body gin.H) string {
	t.Helper()

	w := doReq(t, r, http.MethodPost, "/api/transactions", token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tx struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &tx)
	require.NotEmpty(t, tx.ID)
	return tx.ID
}

func TestTransactionLifecycle(t *testing.T) {
	r, _ := newTestEnv(t)
	token := signup(t, r, "alice")
	accountID := createAccount(t, r, token, "Checking")
	categoryID := createCategory(t, r, token, "Food")

	id := createTransaction(t, r, token, gin.H{
		"amount":      -4250,
		"payee":       "Grocer",
		"notes":       "weekly shop",
		"occurred_at": today(),
		"account_id":  accountID,
		"category_id": categoryID,
	})

	w := doReq(t, r, http.MethodGet, "/api/transactions/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tx struct {
		ID         string  `json:"id"`
		Amount     int64   `json:"amount"`
		Payee      string  `json:"payee"`
		AccountID  string  `json:"account_id"`
		CategoryID *string `json:"category_id"`
	}
	decodeData(t, w, &tx)
	assert.EqualValues(t, -4250, tx.Amount)
	assert.Equal(t, "Grocer", tx.Payee)
	assert.Equal(t, accountID, tx.AccountID)
	require.NotNil(t, tx.CategoryID)
	assert.Equal(t, categoryID, *tx.CategoryID)

	// patch: change amount, drop the category
	w = doReq(t, r, http.MethodPatch, "/api/transactions/"+id, token, gin.H{
		"amount":      -5000,
		"payee":       "Grocer",
		"occurred_at": today(),
		"account_id":  accountID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &tx)
	assert.EqualValues(t, -5000, tx.Amount)
	assert.Nil(t, tx.CategoryID)

	w = doReq(t, r, http.MethodDelete, "/api/transactions/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doReq(t, r, http.MethodGet, "/api/transactions/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransactionForeignReferences(t *testing.T) {
	r, _ := newTestEnv(t)
	aliceToken := signup(t, r, "alice")
	bobToken := signup(t, r, "bob")

	bobAccount := createAccount(t, r, bobToken, "Bob Checking")
	aliceAccount := createAccount(t, r, aliceToken, "Alice Checking")
	bobCategory := createCategory(t, r, bobToken, "Bob Food")

	// referencing another user's account is indistinguishable from a
	// missing one
	w := doReq(t, r, http.MethodPost, "/api/transactions", aliceToken, gin.H{
		"amount":      -100,
		"occurred_at": today(),
		"account_id":  bobAccount,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doReq(t, r, http.MethodPost, "/api/transactions", aliceToken, gin.H{
		"amount":      -100,
		"occurred_at": today(),
		"account_id":  aliceAccount,
		"category_id": bobCategory,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransactionValidation(t *testing.T) {
	r, _ := newTestEnv(t)
	token := signup(t, r, "alice")

	w := doReq(t, r, http.MethodPost, "/api/transactions", token, gin.H{
		"amount":      0,
		"occurred_at": "12/31/2024",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"amount"`)
	assert.Contains(t, body, `"occurred_at"`)
	assert.Contains(t, body, `"account_id"`)
}

func TestTransactionListFilters(t *testing.T) {
	r, _ := newTestEnv(t)
	token := signup(t, r, "alice")
	checking := createAccount(t, r, token, "Checking")
	savings := createAccount(t, r, token, "Savings")

	createTransaction(t, r, token, gin.H{
		"amount": -100, "occurred_at": "2025-01-10", "account_id": checking,
	})
	createTransaction(t, r, token, gin.H{
		"amount": -200, "occurred_at": "2025-02-10", "account_id": checking,
	})
	createTransaction(t, r, token, gin.H{
		"amount": -300, "occurred_at": "2025-02-15", "account_id": savings,
	})

	var list []struct {
		Amount    int64  `json:"amount"`
		AccountID string `json:"account_id"`
	}

	// date range, "to" inclusive
	w := doReq(t, r, http.MethodGet, "/api/transactions?from=2025-02-01&to=2025-02-15", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &list)
	assert.Len(t, list, 2)

	// account filter
	w = doReq(t, r, http.MethodGet, "/api/transactions?account_id="+savings, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &list)
	require.Len(t, list, 1)
	assert.EqualValues(t, -300, list[0].Amount)

	// bad filter date
	w = doReq(t, r, http.MethodGet, "/api/transactions?from=20250201", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransactionBulkDeleteOwnerFiltered(t *testing.T) {
	r, db := newTestEnv(t)
	aliceToken := signup(t, r, "alice")
	bobToken := signup(t, r, "bob")

	aliceAccount := createAccount(t, r, aliceToken, "Checking")
	bobAccount := createAccount(t, r, bobToken, "Checking")

	ownedID := createTransaction(t, r, aliceToken, gin.H{
		"amount": -100, "occurred_at": today(), "account_id": aliceAccount,
	})
	foreignID := createTransaction(t, r, bobToken, gin.H{
		"amount": -100, "occurred_at": today(), "account_id": bobAccount,
	})

	w := doReq(t, r, http.MethodPost, "/api/transactions/bulk-delete", aliceToken, gin.H{
		"ids": []string{ownedID, foreignID},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var deleted []struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &deleted)
	require.Len(t, deleted, 1)
	assert.Equal(t, ownedID, deleted[0].ID)

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Where("id = ?", foreignID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSummary(t *testing.T) {
	r, _ := newTestEnv(t)
	token := signup(t, r, "alice")
	accountID := createAccount(t, r, token, "Checking")
	food := createCategory(t, r, token, "Food")

	createTransaction(t, r, token, gin.H{
		"amount": 10000, "payee": "Employer", "occurred_at": today(), "account_id": accountID,
	})
	createTransaction(t, r, token, gin.H{
		"amount": -2500, "occurred_at": today(), "account_id": accountID, "category_id": food,
	})
	createTransaction(t, r, token, gin.H{
		"amount": -1500, "occurred_at": today(), "account_id": accountID, "category_id": food,
	})

	w := doReq(t, r, http.MethodGet, "/api/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary struct {
		IncomeCent  int64 `json:"income_cent"`
		ExpenseCent int64 `json:"expense_cent"`
		BalanceCent int64 `json:"balance_cent"`
		ByCategory  []struct {
			Name        string `json:"name"`
			ExpenseCent int64  `json:"expense_cent"`
		} `json:"by_category"`
	}
	decodeData(t, w, &summary)
	assert.EqualValues(t, 10000, summary.IncomeCent)
	assert.EqualValues(t, 4000, summary.ExpenseCent)
	assert.EqualValues(t, 6000, summary.BalanceCent)

	require.NotEmpty(t, summary.ByCategory)
	assert.Equal(t, "Food", summary.ByCategory[0].Name)
	assert.EqualValues(t, 4000, summary.ByCategory[0].ExpenseCent)
}

func TestExportCSV(t *testing.T) {
	r, _ := newTestEnv(t)
	token := signup(t, r, "alice")
	accountID := createAccount(t, r, token, "Checking")

	createTransaction(t, r, token, gin.H{
		"amount": -4250, "payee": "Grocer", "occurred_at": today(), "account_id": accountID,
	})

	// token via query string, the way a download link sends it
	w := doReq(t, r, http.MethodGet, "/api/export/csv?token="+token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "Grocer")
	assert.Contains(t, w.Body.String(), "-42.50")
}
