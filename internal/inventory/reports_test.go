package inventory_test

import (
	"context"
	"testing"

	"board-inventory-api-server/internal/inventory"
	"board-inventory-api-server/internal/models"
)

func TestLowStockCountsRepairedAtRepairLocation(t *testing.T) {
	svc, _ := newTestService(t)
	// Minimum stock quantity is 2 in the fixture.
	category := mustCreateCategory(t, svc, "FPGA Carrier")

	// One strictly available board plus one repaired board parked at the
	// repair location: together they meet the minimum.
	mustInwardBoard(t, svc, category.ID, "0001")
	second := mustInwardBoard(t, svc, category.ID, "0002")
	if _, err := svc.InwardRepair(context.Background(), adminUser(), category.ID, "0002"); err != nil {
		t.Fatalf("InwardRepair: %v", err)
	}
	repaired := models.ConditionRepaired
	if _, err := svc.UpdateBoard(context.Background(), adminUser(), second.ID, models.BoardPatch{Condition: &repaired}); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}

	report, err := svc.LowStockReport(context.Background())
	if err != nil {
		t.Fatalf("LowStockReport: %v", err)
	}
	if len(report) != 0 {
		t.Errorf("category flagged low stock with %d countable boards", 2)
	}

	// Take the available board; stock drops to 1 and the category is
	// flagged.
	boards, err := svc.SearchBoards(context.Background(), models.BoardFilter{CategoryID: category.ID, SearchText: "0001"})
	if err != nil {
		t.Fatalf("SearchBoards: %v", err)
	}
	if _, err := svc.IssueDirect(context.Background(), adminUser(), boards[0].ID, inventory.DirectIssueInput{IssuedTo: "eng@example.com"}); err != nil {
		t.Fatalf("IssueDirect: %v", err)
	}

	report, err = svc.LowStockReport(context.Background())
	if err != nil {
		t.Fatalf("LowStockReport: %v", err)
	}
	if len(report) != 1 {
		t.Fatalf("got %d low-stock entries, want 1", len(report))
	}
	if report[0].CurrentStock != 1 || report[0].ShortageQuantity != 1 {
		t.Errorf("stock = %d, shortage = %d; want 1, 1", report[0].CurrentStock, report[0].ShortageQuantity)
	}
}

func TestUnderRepairReportExcludesRepaired(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")

	mustInwardBoard(t, svc, category.ID, "0001")
	done := mustInwardBoard(t, svc, category.ID, "0002")

	for _, serial := range []string{"0001", "0002"} {
		if _, err := svc.InwardRepair(context.Background(), adminUser(), category.ID, serial); err != nil {
			t.Fatalf("InwardRepair(%s): %v", serial, err)
		}
	}
	repaired := models.ConditionRepaired
	if _, err := svc.UpdateBoard(context.Background(), adminUser(), done.ID, models.BoardPatch{Condition: &repaired}); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}

	report, err := svc.UnderRepairReport(context.Background())
	if err != nil {
		t.Fatalf("UnderRepairReport: %v", err)
	}
	if len(report) != 1 {
		t.Fatalf("got %d under-repair entries, want 1", len(report))
	}
	if report[0].SerialNumber != "0001" {
		t.Errorf("under-repair serial = %s, want 0001", report[0].SerialNumber)
	}
}

func TestSerialHistoryReport(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")
	mustInwardBoard(t, svc, category.ID, "0001")

	request := mustCreateRequest(t, svc, adminUser(), category.ID, "0001")

	bulk, err := svc.CreateBulkRequest(context.Background(), adminUser(), inventory.CreateBulkRequestInput{
		Categories:    []inventory.BulkEntryInput{{CategoryID: category.ID, SerialNumbers: []string{"0001"}}},
		IssuedTo:      "eng@example.com",
		ProjectNumber: "PRJ-100",
	})
	if err != nil {
		t.Fatalf("CreateBulkRequest: %v", err)
	}
	if _, err := svc.ApproveBulkRequest(context.Background(), adminUser(), bulk.ID); err != nil {
		t.Fatalf("ApproveBulkRequest: %v", err)
	}

	history, err := svc.SerialHistoryReport(context.Background(), "0001")
	if err != nil {
		t.Fatalf("SerialHistoryReport: %v", err)
	}
	if history.CategoryName != category.Name {
		t.Errorf("category name = %s, want %s", history.CategoryName, category.Name)
	}
	if len(history.IssueHistory) != 1 || history.IssueHistory[0].ID != request.ID {
		t.Errorf("issue history = %d entries, want the single request", len(history.IssueHistory))
	}
	if len(history.BulkHistory) != 1 || history.BulkHistory[0].ID != bulk.ID {
		t.Errorf("bulk history = %d entries, want the approved bulk request", len(history.BulkHistory))
	}
}

func TestDashboardCounters(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")

	mustInwardBoard(t, svc, category.ID, "0001")
	taken := mustInwardBoard(t, svc, category.ID, "0002")
	if _, err := svc.IssueDirect(context.Background(), adminUser(), taken.ID, inventory.DirectIssueInput{IssuedTo: "eng@example.com"}); err != nil {
		t.Fatalf("IssueDirect: %v", err)
	}
	mustCreateRequest(t, svc, adminUser(), category.ID, "0001")

	stats, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if stats.TotalCategories != 1 {
		t.Errorf("total categories = %d, want 1", stats.TotalCategories)
	}
	if stats.TotalBoards != 2 {
		t.Errorf("total boards = %d, want 2", stats.TotalBoards)
	}
	if stats.InStock != 1 {
		t.Errorf("in stock = %d, want 1", stats.InStock)
	}
	if stats.Issued != 1 {
		t.Errorf("issued = %d, want 1", stats.Issued)
	}
	if stats.PendingRequests != 1 {
		t.Errorf("pending requests = %d, want 1", stats.PendingRequests)
	}
}

func TestSerialNumbersReportSorted(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")

	mustInwardBoard(t, svc, category.ID, "0003")
	mustInwardBoard(t, svc, category.ID, "0001")

	name, serials, err := svc.SerialNumbersReport(context.Background(), category.ID)
	if err != nil {
		t.Fatalf("SerialNumbersReport: %v", err)
	}
	if name != category.Name {
		t.Errorf("category name = %s, want %s", name, category.Name)
	}
	if len(serials) != 2 || serials[0].SerialNumber != "0001" || serials[1].SerialNumber != "0003" {
		t.Errorf("serials not sorted ascending: %+v", serials)
	}
	if serials[0].Status != "New - In stock" {
		t.Errorf("status = %q, want %q", serials[0].Status, "New - In stock")
	}
}
