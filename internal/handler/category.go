package handler

import (
	"net/http"
	"strings"

	"github.com/aayush-paliwal/finance-sass/internal/models"
	"github.com/aayush-paliwal/finance-sass/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler serves the category CRUD contract. Categories follow the
// exact same ownership and validation rules as accounts.
type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

type categoryInput struct {
	Name string `json:"name"`
}

func (in *categoryInput) validate() util.FieldErrors {
	var fields util.FieldErrors
	if fe := util.ValidateName(in.Name); fe != nil {
		fields = append(fields, *fe)
	}
	return fields
}

type categoryResp struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toCategoryResp(cat *models.Category) categoryResp {
	return categoryResp{ID: cat.ID, Name: cat.Name}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var categories []models.Category
	if err := h.DB.Scopes(models.OwnedBy(user.ID)).
		Order("created_at ASC, id ASC").
		Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to list categories")
		return
	}

	items := make([]categoryResp, 0, len(categories))
	for i := range categories {
		items = append(items, toCategoryResp(&categories[i]))
	}
	util.Success(c, items)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		util.Error(c, http.StatusBadRequest, "missing id")
		return
	}

	var category models.Category
	if err := h.DB.Scopes(models.OwnedBy(user.ID)).
		Where("id = ?", id).
		First(&category).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "failed to load category")
		}
		return
	}

	util.Success(c, toCategoryResp(&category))
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req categoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		util.Invalid(c, fields)
		return
	}

	category := models.Category{
		UserID: user.ID,
		Name:   strings.TrimSpace(req.Name),
	}
	if err := h.DB.Create(&category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to create category")
		return
	}

	util.Success(c, toCategoryResp(&category))
}

func (h *CategoryHandler) BulkDeleteCategories(c *gin.Context) {
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
		if err := h.DB.Model(&models.Category{}).
			Scopes(models.OwnedBy(user.ID)).
			Where("id IN ?", req.IDs).
			Pluck("id", &ids).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "failed to delete categories")
			return
		}
	}
	if len(ids) > 0 {
		if err := h.DB.Scopes(models.OwnedBy(user.ID)).
			Where("id IN ?", ids).
			Delete(&models.Category{}).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "failed to delete categories")
			return
		}
	}

	deleted := make([]deletedID, 0, len(ids))
	for _, id := range ids {
		deleted = append(deleted, deletedID{ID: id})
	}
	util.Success(c, deleted)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		util.Error(c, http.StatusBadRequest, "missing id")
		return
	}

	var req categoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		util.Invalid(c, fields)
		return
	}

	var category models.Category
	if err := h.DB.Scopes(models.OwnedBy(user.ID)).
		Where("id = ?", id).
		First(&category).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "failed to load category")
		}
		return
	}

	category.Name = strings.TrimSpace(req.Name)
	if err := h.DB.Save(&category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "failed to update category")
		return
	}

	util.Success(c, toCategoryResp(&category))
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
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
		Delete(&models.Category{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, "failed to delete category")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "not found")
		return
	}

	util.Success(c, deletedID{ID: id})
}
