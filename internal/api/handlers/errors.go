package handlers

import (
	"errors"
	"net/http"

	"board-inventory-api-server/internal/inventory"

	"github.com/gin-gonic/gin"
)

// writeError maps engine failures onto HTTP statuses. Anything
// unrecognized is a 500 with the detail kept out of the response.
func writeError(c *gin.Context, err error) {
	var duplicate *inventory.DuplicateSerialError
	var stock *inventory.InsufficientStockError

	switch {
	case errors.Is(err, inventory.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &duplicate):
		c.JSON(http.StatusConflict, gin.H{"error": duplicate.Error()})
	case errors.As(err, &stock):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     stock.Error(),
			"shortages": stock.Shortages,
		})
	case errors.Is(err, inventory.ErrValidation),
		errors.Is(err, inventory.ErrInvalidRange),
		errors.Is(err, inventory.ErrInvalidTransition),
		errors.Is(err, inventory.ErrBoardUnavailable),
		errors.Is(err, inventory.ErrBoardNoLongerAvailable),
		errors.Is(err, inventory.ErrRequestNotApproved),
		errors.Is(err, inventory.ErrNoBoardsIssued):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
