package handlers

import (
	"fmt"
	"net/http"

	"board-inventory-api-server/internal/api/middleware"
	"board-inventory-api-server/internal/inventory"

	"github.com/gin-gonic/gin"
)

type OutwardHandler struct {
	Service *inventory.Service
}

type IssueFromRequestRequest struct {
	RequestID string `json:"request_id" binding:"required"`
	IssuedTo  string `json:"issued_to"`
	IssuedBy  string `json:"issued_by"`
	Comments  string `json:"comments"`
}

// IssueFromRequest fulfils an approved request, single or bulk. A bulk
// result can be partial: the response reports how many boards went out
// and which ones failed.
func (h *OutwardHandler) IssueFromRequest(c *gin.Context) {
	var req IssueFromRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Service.IssueFromRequest(c.Request.Context(), middleware.CurrentUser(c), req.RequestID, inventory.OutwardOverrides{
		IssuedTo: req.IssuedTo,
		IssuedBy: req.IssuedBy,
		Comments: req.Comments,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	total := len(result.Issued) + len(result.Failed)
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d of %d boards issued", len(result.Issued), total),
		"result":  result,
	})
}

type DirectIssueRequest struct {
	IssuedTo      string `json:"issued_to" binding:"required"`
	ProjectNumber string `json:"project_number"`
	Comments      string `json:"comments"`
}

// DirectIssue issues a board outside the request workflow.
func (h *OutwardHandler) DirectIssue(c *gin.Context) {
	var req DirectIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := h.Service.IssueDirect(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), inventory.DirectIssueInput{
		IssuedTo:      req.IssuedTo,
		ProjectNumber: req.ProjectNumber,
		Comments:      req.Comments,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}
