package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/aayush-paliwal/finance-sass/internal/models"
	"github.com/aayush-paliwal/finance-sass/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SummaryHandler aggregates the caller's transactions over a date range.
// All figures are int64 cents; display formatting is the client's job.
type SummaryHandler struct {
	DB *gorm.DB
}

func NewSummaryHandler(db *gorm.DB) *SummaryHandler {
	return &SummaryHandler{DB: db}
}

type categorySummary struct {
	CategoryID *string `json:"category_id"`
	Name       string  `json:"name"`
	IncomeCent int64   `json:"income_cent"`
	ExpenseCent int64  `json:"expense_cent"`
}

// GetSummary returns income/expense/balance totals plus a per-category
// rollup. Without ?from=&to= it covers the last 30 days including today.
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := today.AddDate(0, 0, -29)
	to := today.AddDate(0, 0, 1)

	if fromStr := c.Query("from"); fromStr != "" {
		t, fe := util.ValidateDate("from", fromStr)
		if fe != nil {
			util.Invalid(c, util.FieldErrors{*fe})
			return
		}
		from = t
	}
	if toStr := c.Query("to"); toStr != "" {
		t, fe := util.ValidateDate("to", toStr)
		if fe != nil {
			util.Invalid(c, util.FieldErrors{*fe})
			return
		}
		to = t.Add(24 * time.Hour)
	}

	var transactions []models.Transaction
	if err := h.DB.Scopes(models.OwnedBy(user.ID)).
		Where("occurred_at >= ? AND occurred_at < ?", from, to).
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	// category names for the rollup
	var categories []models.Category
	if err := h.DB.Scopes(models.OwnedBy(user.ID)).Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to load categories")
		return
	}
	names := make(map[string]string, len(categories))
	for i := range categories {
		names[categories[i].ID] = categories[i].Name
	}

	var incomeCent, expenseCent int64
	byCat := make(map[string]*categorySummary)
	for i := range transactions {
		t := &transactions[i]
		if t.AmountCent >= 0 {
			incomeCent += t.AmountCent
		} else {
			expenseCent += -t.AmountCent
		}

		key := ""
		if t.CategoryID != nil {
			key = *t.CategoryID
		}
		cs, ok := byCat[key]
		if !ok {
			cs = &categorySummary{CategoryID: t.CategoryID, Name: "Uncategorized"}
			if key != "" {
				cs.Name = names[key]
			}
			byCat[key] = cs
		}
		if t.AmountCent >= 0 {
			cs.IncomeCent += t.AmountCent
		} else {
			cs.ExpenseCent += -t.AmountCent
		}
	}

	rollup := make([]categorySummary, 0, len(byCat))
	for _, cs := range byCat {
		rollup = append(rollup, *cs)
	}
	sort.Slice(rollup, func(i, j int) bool {
		return rollup[i].ExpenseCent > rollup[j].ExpenseCent
	})

	util.Success(c, gin.H{
		"from":         from.Format("2006-01-02"),
		"to":           to.Add(-24 * time.Hour).Format("2006-01-02"),
		"income_cent":  incomeCent,
		"expense_cent": expenseCent,
		"balance_cent": incomeCent - expenseCent,
		"by_category":  rollup,
	})
}
