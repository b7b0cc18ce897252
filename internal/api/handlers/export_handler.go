package handlers

import (
	"fmt"
	"net/http"
	"time"

	"board-inventory-api-server/internal/excel"
	"board-inventory-api-server/internal/inventory"
	"board-inventory-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type ExportHandler struct {
	Service *inventory.Service
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func writeWorkbook(c *gin.Context, f *excelize.File, baseName string) {
	filename := fmt.Sprintf("%s_%s.xlsx", baseName, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", xlsxContentType)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write workbook"})
	}
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

// ExportLowStock downloads the low-stock report as a workbook.
func (h *ExportHandler) ExportLowStock(c *gin.Context) {
	report, err := h.Service.LowStockReport(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	rows := make([][]interface{}, 0, len(report))
	for _, entry := range report {
		rows = append(rows, []interface{}{
			entry.CategoryName, entry.Manufacturer, entry.Version,
			entry.CurrentStock, entry.MinimumStockQuantity, entry.ShortageQuantity,
		})
	}
	f, err := excel.Build(excel.Sheet{
		Name:    "Low Stock",
		Headers: []string{"Category", "Manufacturer", "Version", "Current Stock", "Minimum Stock", "Shortage"},
		Rows:    rows,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
		return
	}
	writeWorkbook(c, f, "low_stock_report")
}

// ExportUnderRepair downloads the under-repair report as a workbook.
func (h *ExportHandler) ExportUnderRepair(c *gin.Context) {
	report, err := h.Service.UnderRepairReport(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	rows := make([][]interface{}, 0, len(report))
	for _, entry := range report {
		rows = append(rows, []interface{}{
			entry.SerialNumber, entry.CategoryName, entry.Manufacturer, entry.Version,
			entry.Condition, entry.Location, entry.InwardDate, entry.Comments,
		})
	}
	f, err := excel.Build(excel.Sheet{
		Name:    "Under Repair",
		Headers: []string{"Serial Number", "Category", "Manufacturer", "Version", "Condition", "Location", "Inward Date", "Comments"},
		Rows:    rows,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
		return
	}
	writeWorkbook(c, f, "under_repair_report")
}

// ExportSerialNumbers downloads a category's serial listing as a
// workbook.
func (h *ExportHandler) ExportSerialNumbers(c *gin.Context) {
	categoryName, serials, err := h.Service.SerialNumbersReport(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		writeError(c, err)
		return
	}

	rows := make([][]interface{}, 0, len(serials))
	for _, entry := range serials {
		rows = append(rows, []interface{}{entry.SerialNumber, entry.Condition, entry.Location, entry.Status})
	}
	f, err := excel.Build(excel.Sheet{
		Name:    "Serial Numbers",
		Headers: []string{"Serial Number", "Condition", "Location", "Status"},
		Rows:    rows,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
		return
	}
	writeWorkbook(c, f, fmt.Sprintf("serial_numbers_%s", categoryName))
}

// ExportCategory downloads a category's boards and request history as a
// multi-sheet workbook.
func (h *ExportHandler) ExportCategory(c *gin.Context) {
	export, err := h.Service.CategoryExportReport(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		writeError(c, err)
		return
	}

	boardRows := make([][]interface{}, 0, len(export.Boards))
	for _, b := range export.Boards {
		boardRows = append(boardRows, []interface{}{
			b.SerialNumber, b.Condition, b.Location, b.IssuedTo, b.IssuedBy,
			b.ProjectNumber, formatTime(b.InwardDateTime), formatTimePtr(b.IssuedDateTime), b.Comments,
		})
	}

	requestRows := make([][]interface{}, 0, len(export.IssueRequests))
	for _, r := range export.IssueRequests {
		requestRows = append(requestRows, []interface{}{
			r.SerialNumber, r.IssuedTo, r.ProjectNumber, r.RequestedBy,
			r.Status, formatTime(r.CreatedDateTime), r.ApprovedBy, formatTimePtr(r.ApprovedDateTime),
		})
	}

	bulkRows := make([][]interface{}, 0, len(export.BulkRequests))
	for _, r := range export.BulkRequests {
		serials := ""
		for _, assignment := range r.Boards {
			if assignment.CategoryID != export.Category.ID {
				continue
			}
			if serials != "" {
				serials += ", "
			}
			serials += assignment.SerialNumber
		}
		bulkRows = append(bulkRows, []interface{}{
			r.IssuedTo, r.ProjectNumber, r.RequestedBy, r.Status,
			serials, formatTime(r.CreatedDateTime), r.ApprovedBy, formatTimePtr(r.ApprovedDateTime),
		})
	}

	f, err := excel.Build(
		excel.Sheet{
			Name:    "Boards",
			Headers: []string{"Serial Number", "Condition", "Location", "Issued To", "Issued By", "Project Number", "Inward Date", "Issued Date", "Comments"},
			Rows:    boardRows,
		},
		excel.Sheet{
			Name:    "Issue Requests",
			Headers: []string{"Serial Number", "Issued To", "Project Number", "Requested By", "Status", "Created", "Approved By", "Approved"},
			Rows:    requestRows,
		},
		excel.Sheet{
			Name:    "Bulk Requests",
			Headers: []string{"Issued To", "Project Number", "Requested By", "Status", "Serial Numbers", "Created", "Approved By", "Approved"},
			Rows:    bulkRows,
		},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
		return
	}
	writeWorkbook(c, f, fmt.Sprintf("category_export_%s", export.Category.Name))
}

// ExportBoards downloads the current board search result as a workbook.
func (h *ExportHandler) ExportBoards(c *gin.Context) {
	filter := models.BoardFilter{
		CategoryID: c.Query("category_id"),
		Location:   c.Query("location"),
		Condition:  c.Query("condition"),
		SearchText: c.Query("search"),
	}
	boards, err := h.Service.SearchBoards(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	rows := make([][]interface{}, 0, len(boards))
	for _, b := range boards {
		rows = append(rows, []interface{}{
			b.CategoryID, b.SerialNumber, b.Condition, b.Location,
			b.IssuedTo, b.IssuedBy, b.ProjectNumber,
			formatTime(b.InwardDateTime), formatTimePtr(b.IssuedDateTime), b.Comments,
		})
	}
	f, err := excel.Build(excel.Sheet{
		Name:    "Boards",
		Headers: []string{"Category ID", "Serial Number", "Condition", "Location", "Issued To", "Issued By", "Project Number", "Inward Date", "Issued Date", "Comments"},
		Rows:    rows,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
		return
	}
	writeWorkbook(c, f, "boards_export")
}
