package handlers

import (
	"net/http"

	"board-inventory-api-server/internal/api/middleware"
	"board-inventory-api-server/internal/inventory"
	"board-inventory-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	Store   inventory.Store
	Service *inventory.Service
}

// SearchBoards lists boards filtered by category, location, condition
// and a free-text search over serial, recipient, project and comments.
func (h *BoardHandler) SearchBoards(c *gin.Context) {
	filter := models.BoardFilter{
		CategoryID: c.Query("category_id"),
		Location:   c.Query("location"),
		Condition:  c.Query("condition"),
		SearchText: c.Query("search"),
	}
	boards, err := h.Service.SearchBoards(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query boards"})
		return
	}
	c.JSON(http.StatusOK, boards)
}

// GetBoardByID returns one board.
func (h *BoardHandler) GetBoardByID(c *gin.Context) {
	board, err := h.Store.BoardByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query board"})
		return
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return
	}
	c.JSON(http.StatusOK, board)
}

// GetAvailableBoards lists the boards of a category currently eligible
// for issue, in ascending serial order.
func (h *BoardHandler) GetAvailableBoards(c *gin.Context) {
	boards, err := h.Service.AvailableBoards(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

type UpdateBoardRequest struct {
	Location      *string `json:"location"`
	Condition     *string `json:"condition"`
	IssuedTo      *string `json:"issued_to"`
	QCBy          *string `json:"qc_by"`
	ProjectNumber *string `json:"project_number"`
	Comments      *string `json:"comments"`
}

// UpdateBoard applies a partial edit. Category and serial number are
// not accepted here; they never change after creation.
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := models.BoardPatch{
		Location:      req.Location,
		Condition:     req.Condition,
		IssuedTo:      req.IssuedTo,
		QCBy:          req.QCBy,
		ProjectNumber: req.ProjectNumber,
		Comments:      req.Comments,
	}
	board, err := h.Service.UpdateBoard(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// DeleteBoard removes a board permanently.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	if err := h.Service.DeleteBoard(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}
