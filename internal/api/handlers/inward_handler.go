package handlers

import (
	"net/http"

	"board-inventory-api-server/internal/api/middleware"
	"board-inventory-api-server/internal/inventory"

	"github.com/gin-gonic/gin"
)

type InwardHandler struct {
	Service *inventory.Service
}

type InwardBoardRequest struct {
	CategoryID   string `json:"category_id" binding:"required"`
	SerialNumber string `json:"serial_number" binding:"required"`
	Condition    string `json:"condition"`
	QCBy         string `json:"qc_by"`
	Comments     string `json:"comments"`
}

// InwardBoard admits a single new board into stock.
func (h *InwardHandler) InwardBoard(c *gin.Context) {
	var req InwardBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := h.Service.InwardBoard(c.Request.Context(), middleware.CurrentUser(c), inventory.NewBoard{
		CategoryID:   req.CategoryID,
		SerialNumber: req.SerialNumber,
		Condition:    req.Condition,
		QCBy:         req.QCBy,
		Comments:     req.Comments,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

type InwardRangeRequest struct {
	CategoryID  string `json:"category_id" binding:"required"`
	StartSerial string `json:"start_serial" binding:"required"`
	EndSerial   string `json:"end_serial" binding:"required"`
	QCBy        string `json:"qc_by"`
	Comments    string `json:"comments"`
}

// InwardRange admits a contiguous serial range of new boards.
func (h *InwardHandler) InwardRange(c *gin.Context) {
	var req InwardRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	boards, err := h.Service.InwardRange(c.Request.Context(), middleware.CurrentUser(c),
		req.CategoryID, req.StartSerial, req.EndSerial, req.QCBy, req.Comments)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Boards added successfully",
		"count":   len(boards),
		"boards":  boards,
	})
}

type InwardRepairRequest struct {
	CategoryID   string `json:"category_id" binding:"required"`
	SerialNumber string `json:"serial_number" binding:"required"`
}

// InwardRepair moves an existing board into the repair workflow.
func (h *InwardHandler) InwardRepair(c *gin.Context) {
	var req InwardRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := h.Service.InwardRepair(c.Request.Context(), middleware.CurrentUser(c), req.CategoryID, req.SerialNumber)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// NextSerial suggests the next serial number for a category.
func (h *InwardHandler) NextSerial(c *gin.Context) {
	serial, err := h.Service.NextSerial(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"next_serial": serial})
}

type ValidateRangeRequest struct {
	CategoryID  string `json:"category_id" binding:"required"`
	StartSerial string `json:"start_serial" binding:"required"`
	EndSerial   string `json:"end_serial" binding:"required"`
}

// ValidateRange checks a serial range without creating anything, so the
// client can surface conflicts before submitting.
func (h *InwardHandler) ValidateRange(c *gin.Context) {
	var req ValidateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.ValidateSerialRange(c.Request.Context(), req.CategoryID, req.StartSerial, req.EndSerial); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}
