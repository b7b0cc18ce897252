package inventory

import (
	"context"
	"fmt"

	"board-inventory-api-server/internal/models"
)

// LowStockEntry is one category whose stock fell below its minimum.
type LowStockEntry struct {
	CategoryID           string `json:"category_id"`
	CategoryName         string `json:"category_name"`
	Manufacturer         string `json:"manufacturer"`
	Version              string `json:"version"`
	CurrentStock         int    `json:"current_stock"`
	MinimumStockQuantity int    `json:"minimum_stock_quantity"`
	ShortageQuantity     int    `json:"shortage_quantity"`
}

// LowStockReport lists categories below their minimum stock. Stock is
// counted with the extended predicate: repaired boards waiting at the
// repair location still count as stock on hand.
func (s *Service) LowStockReport(ctx context.Context) ([]LowStockEntry, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	report := []LowStockEntry{}
	for _, category := range categories {
		boards, err := s.store.BoardsByCategory(ctx, category.ID)
		if err != nil {
			return nil, fmt.Errorf("listing category boards: %w", err)
		}
		stock := 0
		for i := range boards {
			if countableAsStock(&boards[i]) {
				stock++
			}
		}
		if stock < category.MinimumStockQuantity {
			report = append(report, LowStockEntry{
				CategoryID:           category.ID,
				CategoryName:         category.Name,
				Manufacturer:         category.Manufacturer,
				Version:              category.Version,
				CurrentStock:         stock,
				MinimumStockQuantity: category.MinimumStockQuantity,
				ShortageQuantity:     category.MinimumStockQuantity - stock,
			})
		}
	}
	return report, nil
}

// UnderRepairEntry is one board currently in the repair workflow.
type UnderRepairEntry struct {
	SerialNumber string `json:"serial_number"`
	CategoryName string `json:"category_name"`
	Manufacturer string `json:"manufacturer"`
	Version      string `json:"version"`
	Condition    string `json:"condition"`
	Location     string `json:"location"`
	InwardDate   string `json:"inward_date"`
	Comments     string `json:"comments"`
}

func underRepair(b *models.Board) bool {
	if b.Condition == models.ConditionRepairing {
		return true
	}
	return b.Location == models.LocationRepairing && b.Condition != models.ConditionRepaired
}

// UnderRepairReport lists boards being repaired. Repaired boards still
// parked at the repair location are done, not under repair.
func (s *Service) UnderRepairReport(ctx context.Context) ([]UnderRepairEntry, error) {
	boards, err := s.store.ListBoards(ctx, models.BoardFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	categories, err := s.categoryMap(ctx)
	if err != nil {
		return nil, err
	}

	report := []UnderRepairEntry{}
	for i := range boards {
		b := &boards[i]
		if !underRepair(b) {
			continue
		}
		category := categories[b.CategoryID]
		entry := UnderRepairEntry{
			SerialNumber: b.SerialNumber,
			CategoryName: "Unknown",
			Manufacturer: "Unknown",
			Version:      "Unknown",
			Condition:    b.Condition,
			Location:     b.Location,
			InwardDate:   b.InwardDateTime.Format("2006-01-02 15:04:05"),
			Comments:     b.Comments,
		}
		if category != nil {
			entry.CategoryName = category.Name
			entry.Manufacturer = category.Manufacturer
			entry.Version = category.Version
		}
		report = append(report, entry)
	}
	return report, nil
}

// SerialHistory is the full paper trail of one serial number.
type SerialHistory struct {
	SerialNumber string                    `json:"serial_number"`
	CategoryName string                    `json:"category_name"`
	Manufacturer string                    `json:"manufacturer"`
	Version      string                    `json:"version"`
	Board        models.Board              `json:"board_details"`
	IssueHistory []models.IssueRequest     `json:"issue_history"`
	BulkHistory  []models.BulkIssueRequest `json:"bulk_request_history"`
}

// SerialHistoryReport collects a board's current state plus every
// single and bulk request that names its serial.
func (s *Service) SerialHistoryReport(ctx context.Context, serialNumber string) (*SerialHistory, error) {
	boards, err := s.store.ListBoards(ctx, models.BoardFilter{SearchText: serialNumber})
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	var board *models.Board
	for i := range boards {
		if boards[i].SerialNumber == serialNumber {
			board = &boards[i]
			break
		}
	}
	if board == nil {
		return nil, fmt.Errorf("serial number: %w", ErrNotFound)
	}

	history := &SerialHistory{
		SerialNumber: serialNumber,
		CategoryName: "Unknown",
		Manufacturer: "Unknown",
		Version:      "Unknown",
		Board:        *board,
		IssueHistory: []models.IssueRequest{},
		BulkHistory:  []models.BulkIssueRequest{},
	}
	category, err := s.store.CategoryByID(ctx, board.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("looking up category: %w", err)
	}
	if category != nil {
		history.CategoryName = category.Name
		history.Manufacturer = category.Manufacturer
		history.Version = category.Version
	}

	singles, err := s.store.ListIssueRequests(ctx, RequestFilter{CategoryID: board.CategoryID})
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	for _, r := range singles {
		if r.SerialNumber == serialNumber {
			history.IssueHistory = append(history.IssueHistory, r)
		}
	}

	bulks, err := s.store.ListBulkRequests(ctx, RequestFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing bulk requests: %w", err)
	}
	for _, r := range bulks {
		for _, assignment := range r.Boards {
			if assignment.CategoryID == board.CategoryID && assignment.SerialNumber == serialNumber {
				history.BulkHistory = append(history.BulkHistory, r)
				break
			}
		}
	}
	return history, nil
}

// SerialStatus is one line of the per-category serial listing.
type SerialStatus struct {
	SerialNumber string `json:"serial_number"`
	Condition    string `json:"condition"`
	Location     string `json:"location"`
	Status       string `json:"status"`
}

// SerialNumbersReport lists every serial of a category with its state,
// sorted ascending.
func (s *Service) SerialNumbersReport(ctx context.Context, categoryID string) (string, []SerialStatus, error) {
	category, err := s.store.CategoryByID(ctx, categoryID)
	if err != nil {
		return "", nil, fmt.Errorf("looking up category: %w", err)
	}
	if category == nil {
		return "", nil, fmt.Errorf("category: %w", ErrNotFound)
	}

	boards, err := s.store.BoardsByCategory(ctx, categoryID)
	if err != nil {
		return "", nil, fmt.Errorf("listing category boards: %w", err)
	}
	sortBySerial(boards)

	serials := make([]SerialStatus, 0, len(boards))
	for _, b := range boards {
		serials = append(serials, SerialStatus{
			SerialNumber: b.SerialNumber,
			Condition:    b.Condition,
			Location:     b.Location,
			Status:       b.Condition + " - " + b.Location,
		})
	}
	return category.Name, serials, nil
}

// CategoryExportStats summarizes a category export.
type CategoryExportStats struct {
	TotalBoards       int `json:"total_boards"`
	InStock           int `json:"in_stock"`
	Issued            int `json:"issued"`
	Repairing         int `json:"repairing"`
	TotalRequests     int `json:"total_requests"`
	TotalBulkRequests int `json:"total_bulk_requests"`
}

// CategoryExport is everything known about one category.
type CategoryExport struct {
	Category      models.Category           `json:"category"`
	Boards        []models.Board            `json:"boards"`
	IssueRequests []models.IssueRequest     `json:"issue_requests"`
	BulkRequests  []models.BulkIssueRequest `json:"bulk_issue_requests"`
	Statistics    CategoryExportStats       `json:"statistics"`
}

// CategoryExportReport gathers a category's boards and request history
// for export.
func (s *Service) CategoryExportReport(ctx context.Context, categoryID string) (*CategoryExport, error) {
	category, err := s.store.CategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("looking up category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category: %w", ErrNotFound)
	}

	boards, err := s.store.BoardsByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("listing category boards: %w", err)
	}
	sortBySerial(boards)

	singles, err := s.store.ListIssueRequests(ctx, RequestFilter{CategoryID: categoryID})
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}

	allBulks, err := s.store.ListBulkRequests(ctx, RequestFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing bulk requests: %w", err)
	}
	bulks := []models.BulkIssueRequest{}
	for _, r := range allBulks {
		for _, entry := range r.Categories {
			if entry.CategoryID == categoryID {
				bulks = append(bulks, r)
				break
			}
		}
	}

	stats := CategoryExportStats{
		TotalBoards:       len(boards),
		TotalRequests:     len(singles),
		TotalBulkRequests: len(bulks),
	}
	for _, b := range boards {
		switch b.Location {
		case models.LocationInStock:
			stats.InStock++
		case models.LocationIssuedMachine:
			stats.Issued++
		case models.LocationRepairing:
			stats.Repairing++
		}
	}

	return &CategoryExport{
		Category:      *category,
		Boards:        boards,
		IssueRequests: singles,
		BulkRequests:  bulks,
		Statistics:    stats,
	}, nil
}

// DashboardStats are the headline counters.
type DashboardStats struct {
	TotalCategories int `json:"total_categories"`
	TotalBoards     int `json:"total_boards"`
	InStock         int `json:"in_stock"`
	Issued          int `json:"issued"`
	Repaired        int `json:"repaired"`
	Scrap           int `json:"scrap"`
	PendingRequests int `json:"pending_requests"`
}

// Dashboard computes the headline counters from current state.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	boards, err := s.store.ListBoards(ctx, models.BoardFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	pending, err := s.store.ListIssueRequests(ctx, RequestFilter{Status: models.StatusPending})
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}

	stats := &DashboardStats{
		TotalCategories: len(categories),
		TotalBoards:     len(boards),
		PendingRequests: len(pending),
	}
	for i := range boards {
		b := &boards[i]
		if AvailableForIssue(b) {
			stats.InStock++
		}
		if b.Location != models.LocationInStock {
			stats.Issued++
		}
		if b.Condition == models.ConditionRepaired {
			stats.Repaired++
		}
		if b.Condition == models.ConditionScrap {
			stats.Scrap++
		}
	}
	return stats, nil
}

func (s *Service) categoryMap(ctx context.Context) (map[string]*models.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	m := make(map[string]*models.Category, len(categories))
	for i := range categories {
		m[categories[i].ID] = &categories[i]
	}
	return m, nil
}
