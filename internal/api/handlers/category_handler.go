package handlers

import (
	"net/http"

	"board-inventory-api-server/internal/api/middleware"
	"board-inventory-api-server/internal/inventory"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	Store   inventory.Store
	Service *inventory.Service
}

type CategoryRequest struct {
	Name                 string `json:"name" binding:"required"`
	Description          string `json:"description"`
	Manufacturer         string `json:"manufacturer"`
	Version              string `json:"version"`
	LeadTimeDays         int    `json:"lead_time_days"`
	MinimumStockQuantity int    `json:"minimum_stock_quantity"`
	PictureURL           string `json:"picture_url"`
}

func (r CategoryRequest) toInput() inventory.CategoryInput {
	return inventory.CategoryInput{
		Name:                 r.Name,
		Description:          r.Description,
		Manufacturer:         r.Manufacturer,
		Version:              r.Version,
		LeadTimeDays:         r.LeadTimeDays,
		MinimumStockQuantity: r.MinimumStockQuantity,
		PictureURL:           r.PictureURL,
	}
}

// CreateCategory adds a new board category.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Service.CreateCategory(c.Request.Context(), middleware.CurrentUser(c), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// GetAllCategories lists every category.
func (h *CategoryHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.Store.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategoryByID returns one category.
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	category, err := h.Store.CategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query category"})
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// UpdateCategory replaces a category's editable attributes.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Service.UpdateCategory(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category that has no boards.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.Service.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
