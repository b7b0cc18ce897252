package handlers

import (
	"net/http"

	"board-inventory-api-server/internal/inventory"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Service *inventory.Service
}

// Dashboard returns the headline inventory counters.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.Service.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// LowStock lists categories below their minimum stock quantity.
func (h *ReportHandler) LowStock(c *gin.Context) {
	report, err := h.Service.LowStockReport(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// UnderRepair lists boards currently in the repair workflow.
func (h *ReportHandler) UnderRepair(c *gin.Context) {
	report, err := h.Service.UnderRepairReport(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// SerialHistory returns the paper trail of one serial number.
func (h *ReportHandler) SerialHistory(c *gin.Context) {
	history, err := h.Service.SerialHistoryReport(c.Request.Context(), c.Param("serialNumber"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// SerialNumbers lists every serial of a category with its state.
func (h *ReportHandler) SerialNumbers(c *gin.Context) {
	categoryName, serials, err := h.Service.SerialNumbersReport(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category_name":  categoryName,
		"serial_numbers": serials,
	})
}

// CategoryExport returns everything known about one category.
func (h *ReportHandler) CategoryExport(c *gin.Context) {
	export, err := h.Service.CategoryExportReport(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, export)
}
