package handlers

import (
	"net/http"

	"board-inventory-api-server/internal/api/middleware"
	"board-inventory-api-server/internal/inventory"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	Service *inventory.Service
}

type CreateIssueRequestRequest struct {
	CategoryID    string `json:"category_id" binding:"required"`
	SerialNumber  string `json:"serial_number" binding:"required"`
	IssuedTo      string `json:"issued_to" binding:"required"`
	ProjectNumber string `json:"project_number"`
	Comments      string `json:"comments"`
}

// CreateIssueRequest records a pending request for one specific board.
func (h *RequestHandler) CreateIssueRequest(c *gin.Context) {
	var req CreateIssueRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.Service.CreateIssueRequest(c.Request.Context(), middleware.CurrentUser(c), inventory.CreateIssueRequestInput{
		CategoryID:    req.CategoryID,
		SerialNumber:  req.SerialNumber,
		IssuedTo:      req.IssuedTo,
		ProjectNumber: req.ProjectNumber,
		Comments:      req.Comments,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// GetIssueRequests lists single requests visible to the caller, with an
// optional ?status= filter.
func (h *RequestHandler) GetIssueRequests(c *gin.Context) {
	requests, err := h.Service.ListIssueRequests(c.Request.Context(), middleware.CurrentUser(c), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// ApproveIssueRequest moves a pending request to approved.
func (h *RequestHandler) ApproveIssueRequest(c *gin.Context) {
	request, err := h.Service.ApproveIssueRequest(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// RejectIssueRequest moves a pending request to rejected.
func (h *RequestHandler) RejectIssueRequest(c *gin.Context) {
	request, err := h.Service.RejectIssueRequest(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// DeleteIssueRequest removes a request record.
func (h *RequestHandler) DeleteIssueRequest(c *gin.Context) {
	if err := h.Service.DeleteIssueRequest(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request deleted successfully"})
}

type BulkEntryRequest struct {
	CategoryID    string   `json:"category_id" binding:"required"`
	SerialNumbers []string `json:"serial_numbers"`
	Quantity      int      `json:"quantity"`
}

type CreateBulkRequestRequest struct {
	Categories    []BulkEntryRequest `json:"categories" binding:"required"`
	IssuedTo      string             `json:"issued_to" binding:"required"`
	ProjectNumber string             `json:"project_number" binding:"required"`
	Comments      string             `json:"comments"`
}

// CreateBulkRequest records a pending multi-category request.
func (h *RequestHandler) CreateBulkRequest(c *gin.Context) {
	var req CreateBulkRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := inventory.CreateBulkRequestInput{
		IssuedTo:      req.IssuedTo,
		ProjectNumber: req.ProjectNumber,
		Comments:      req.Comments,
	}
	for _, entry := range req.Categories {
		input.Categories = append(input.Categories, inventory.BulkEntryInput{
			CategoryID:    entry.CategoryID,
			SerialNumbers: entry.SerialNumbers,
			Quantity:      entry.Quantity,
		})
	}

	request, err := h.Service.CreateBulkRequest(c.Request.Context(), middleware.CurrentUser(c), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// GetBulkRequests lists bulk requests, with an optional ?status= filter.
func (h *RequestHandler) GetBulkRequests(c *gin.Context) {
	requests, err := h.Service.ListBulkRequests(c.Request.Context(), middleware.CurrentUser(c), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// ApproveBulkRequest approves a pending bulk request and freezes the
// concrete board selection into it.
func (h *RequestHandler) ApproveBulkRequest(c *gin.Context) {
	request, err := h.Service.ApproveBulkRequest(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// RejectBulkRequest moves a pending bulk request to rejected.
func (h *RequestHandler) RejectBulkRequest(c *gin.Context) {
	request, err := h.Service.RejectBulkRequest(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// DeleteBulkRequest removes a bulk request record.
func (h *RequestHandler) DeleteBulkRequest(c *gin.Context) {
	if err := h.Service.DeleteBulkRequest(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bulk request deleted successfully"})
}

type PreviewAutoSelectRequest struct {
	CategoryID string `json:"category_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

// PreviewAutoSelect shows which boards an auto-select entry would take
// right now.
func (h *RequestHandler) PreviewAutoSelect(c *gin.Context) {
	var req PreviewAutoSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	boards, err := h.Service.PreviewAutoSelect(c.Request.Context(), req.CategoryID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category_id": req.CategoryID,
		"quantity":    req.Quantity,
		"boards":      boards,
	})
}
