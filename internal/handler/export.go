package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/aayush-paliwal/finance-sass/internal/models"
	"github.com/aayush-paliwal/finance-sass/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler writes the caller's transactions as downloadable files.
// These endpoints accept the session token via ?token= as well, since
// browser download links cannot set headers.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeader = []string{"Date", "Payee", "Amount", "Notes", "Account", "Category"}

// exportRows loads the caller's transactions with resolved account and
// category names, newest first.
func (h *ExportHandler) exportRows(userID string) ([][]string, error) {
	var transactions []models.Transaction
	if err := h.DB.Scopes(models.OwnedBy(userID)).
		Order("occurred_at DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}

	var accounts []models.Account
	if err := h.DB.Scopes(models.OwnedBy(userID)).Find(&accounts).Error; err != nil {
		return nil, err
	}
	accountNames := make(map[string]string, len(accounts))
	for i := range accounts {
		accountNames[accounts[i].ID] = accounts[i].Name
	}

	var categories []models.Category
	if err := h.DB.Scopes(models.OwnedBy(userID)).Find(&categories).Error; err != nil {
		return nil, err
	}
	categoryNames := make(map[string]string, len(categories))
	for i := range categories {
		categoryNames[categories[i].ID] = categories[i].Name
	}

	rows := make([][]string, 0, len(transactions))
	for i := range transactions {
		t := &transactions[i]
		category := ""
		if t.CategoryID != nil {
			category = categoryNames[*t.CategoryID]
		}
		rows = append(rows, []string{
			t.OccurredAt.Format("2006-01-02"),
			t.Payee,
			util.FormatCents(t.AmountCent),
			t.Notes,
			accountNames[t.AccountID],
			category,
		})
	}
	return rows, nil
}

// ExportCSV streams all transactions as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	rows, err := h.exportRows(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to export transactions")
		return
	}

	filename := fmt.Sprintf("transactions-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeader)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
}

// ExportXLSX streams all transactions as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	rows, err := h.exportRows(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to export transactions")
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Transactions"
	_ = f.SetSheetName("Sheet1", sheet)
	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
	}
	for i, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("transactions-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to write workbook")
	}
}
