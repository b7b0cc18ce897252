package inventory_test

import (
	"context"
	"errors"
	"testing"

	"board-inventory-api-server/internal/inventory"
	"board-inventory-api-server/internal/models"
)

func TestCreateIssueRequestUnavailableBoard(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")
	board := mustInwardBoard(t, svc, category.ID, "0001")

	if _, err := svc.IssueDirect(context.Background(), adminUser(), board.ID, inventory.DirectIssueInput{IssuedTo: "eng@example.com"}); err != nil {
		t.Fatalf("IssueDirect: %v", err)
	}

	_, err := svc.CreateIssueRequest(context.Background(), adminUser(), inventory.CreateIssueRequestInput{
		CategoryID:   category.ID,
		SerialNumber: "0001",
		IssuedTo:     "eng@example.com",
	})
	if !errors.Is(err, inventory.ErrBoardUnavailable) {
		t.Errorf("error = %v, want ErrBoardUnavailable", err)
	}
}

func TestCreateIssueRequestWithoutPermission(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")
	mustInwardBoard(t, svc, category.ID, "0001")

	_, err := svc.CreateIssueRequest(context.Background(), regularUser(), inventory.CreateIssueRequestInput{
		CategoryID:   category.ID,
		SerialNumber: "0001",
		IssuedTo:     "eng@example.com",
	})
	if !errors.Is(err, inventory.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}

func TestApproveRejectTerminalStates(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")
	mustInwardBoard(t, svc, category.ID, "0001")

	request := mustCreateRequest(t, svc, adminUser(), category.ID, "0001")
	if _, err := svc.RejectIssueRequest(context.Background(), adminUser(), request.ID); err != nil {
		t.Fatalf("RejectIssueRequest: %v", err)
	}

	// A rejected request can go nowhere.
	if _, err := svc.ApproveIssueRequest(context.Background(), adminUser(), request.ID); !errors.Is(err, inventory.ErrInvalidTransition) {
		t.Errorf("approve after reject: error = %v, want ErrInvalidTransition", err)
	}
	if _, err := svc.RejectIssueRequest(context.Background(), adminUser(), request.ID); !errors.Is(err, inventory.ErrInvalidTransition) {
		t.Errorf("reject after reject: error = %v, want ErrInvalidTransition", err)
	}
}

func TestIssuedRequestIsTerminal(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")
	mustInwardBoard(t, svc, category.ID, "0001")

	request := mustCreateRequest(t, svc, adminUser(), category.ID, "0001")
	if _, err := svc.ApproveIssueRequest(context.Background(), adminUser(), request.ID); err != nil {
		t.Fatalf("ApproveIssueRequest: %v", err)
	}
	if _, err := svc.IssueFromRequest(context.Background(), adminUser(), request.ID, inventory.OutwardOverrides{}); err != nil {
		t.Fatalf("IssueFromRequest: %v", err)
	}

	if _, err := svc.ApproveIssueRequest(context.Background(), adminUser(), request.ID); !errors.Is(err, inventory.ErrInvalidTransition) {
		t.Errorf("approve after issue: error = %v, want ErrInvalidTransition", err)
	}
	if _, err := svc.RejectIssueRequest(context.Background(), adminUser(), request.ID); !errors.Is(err, inventory.ErrInvalidTransition) {
		t.Errorf("reject after issue: error = %v, want ErrInvalidTransition", err)
	}

	// Delete alone works in a terminal state.
	if err := svc.DeleteIssueRequest(context.Background(), adminUser(), request.ID); err != nil {
		t.Errorf("delete after issue: %v", err)
	}
}

func TestApproveRechecksAvailability(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")
	board := mustInwardBoard(t, svc, category.ID, "0001")

	request := mustCreateRequest(t, svc, adminUser(), category.ID, "0001")

	// Another actor takes the board between creation and approval.
	if _, err := svc.IssueDirect(context.Background(), adminUser(), board.ID, inventory.DirectIssueInput{IssuedTo: "eng@example.com"}); err != nil {
		t.Fatalf("IssueDirect: %v", err)
	}

	_, err := svc.ApproveIssueRequest(context.Background(), adminUser(), request.ID)
	if !errors.Is(err, inventory.ErrBoardUnavailable) {
		t.Errorf("error = %v, want ErrBoardUnavailable", err)
	}
}

func TestCreateBulkRequestEntryShape(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")
	mustInwardBoard(t, svc, category.ID, "0001")

	// Neither serials nor quantity.
	_, err := svc.CreateBulkRequest(context.Background(), adminUser(), inventory.CreateBulkRequestInput{
		Categories:    []inventory.BulkEntryInput{{CategoryID: category.ID}},
		IssuedTo:      "eng@example.com",
		ProjectNumber: "PRJ-100",
	})
	if !errors.Is(err, inventory.ErrValidation) {
		t.Errorf("empty entry: error = %v, want ErrValidation", err)
	}

	// Both serials and quantity.
	_, err = svc.CreateBulkRequest(context.Background(), adminUser(), inventory.CreateBulkRequestInput{
		Categories: []inventory.BulkEntryInput{{
			CategoryID:    category.ID,
			SerialNumbers: []string{"0001"},
			Quantity:      1,
		}},
		IssuedTo:      "eng@example.com",
		ProjectNumber: "PRJ-100",
	})
	if !errors.Is(err, inventory.ErrValidation) {
		t.Errorf("both modes: error = %v, want ErrValidation", err)
	}
}

func TestCreateBulkRequestTooManyCategories(t *testing.T) {
	svc, _ := newTestService(t)

	entries := make([]inventory.BulkEntryInput, 6)
	for i := range entries {
		entries[i] = inventory.BulkEntryInput{CategoryID: "x", Quantity: 1}
	}
	_, err := svc.CreateBulkRequest(context.Background(), adminUser(), inventory.CreateBulkRequestInput{
		Categories:    entries,
		IssuedTo:      "eng@example.com",
		ProjectNumber: "PRJ-100",
	})
	if !errors.Is(err, inventory.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestCreateBulkRequestInsufficientStockPersistsNothing(t *testing.T) {
	svc, st := newTestService(t)
	first := mustCreateCategory(t, svc, "FPGA Carrier")
	second := mustCreateCategory(t, svc, "Power Board")

	mustInwardBoard(t, svc, first.ID, "0001")
	mustInwardBoard(t, svc, first.ID, "0002")
	mustInwardBoard(t, svc, second.ID, "0001")

	// The second entry asks for more than exists; the whole request must
	// fail and nothing may be stored.
	_, err := svc.CreateBulkRequest(context.Background(), adminUser(), inventory.CreateBulkRequestInput{
		Categories: []inventory.BulkEntryInput{
			{CategoryID: first.ID, Quantity: 2},
			{CategoryID: second.ID, Quantity: 5},
		},
		IssuedTo:      "eng@example.com",
		ProjectNumber: "PRJ-100",
	})

	var stock *inventory.InsufficientStockError
	if !errors.As(err, &stock) {
		t.Fatalf("error = %v, want InsufficientStockError", err)
	}
	if len(stock.Shortages) != 1 {
		t.Errorf("got %d shortages, want 1", len(stock.Shortages))
	}
	if stock.Shortages[0].CategoryID != second.ID {
		t.Errorf("shortage category = %s, want %s", stock.Shortages[0].CategoryID, second.ID)
	}

	requests, err := st.ListBulkRequests(context.Background(), inventory.RequestFilter{})
	if err != nil {
		t.Fatalf("ListBulkRequests: %v", err)
	}
	if len(requests) != 0 {
		t.Errorf("got %d persisted bulk requests, want 0", len(requests))
	}
}

func TestApproveBulkRequestFreezesAscendingSerials(t *testing.T) {
	svc, st := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")

	mustInwardBoard(t, svc, category.ID, "0005")
	mustInwardBoard(t, svc, category.ID, "0002")
	mustInwardBoard(t, svc, category.ID, "0009")

	request, err := svc.CreateBulkRequest(context.Background(), adminUser(), inventory.CreateBulkRequestInput{
		Categories:    []inventory.BulkEntryInput{{CategoryID: category.ID, Quantity: 2}},
		IssuedTo:      "eng@example.com",
		ProjectNumber: "PRJ-100",
	})
	if err != nil {
		t.Fatalf("CreateBulkRequest: %v", err)
	}

	approved, err := svc.ApproveBulkRequest(context.Background(), adminUser(), request.ID)
	if err != nil {
		t.Fatalf("ApproveBulkRequest: %v", err)
	}
	if len(approved.Boards) != 2 {
		t.Fatalf("froze %d boards, want 2", len(approved.Boards))
	}
	if approved.Boards[0].SerialNumber != "0002" || approved.Boards[1].SerialNumber != "0005" {
		t.Errorf("frozen serials = %s, %s; want 0002, 0005", approved.Boards[0].SerialNumber, approved.Boards[1].SerialNumber)
	}

	stored, err := st.BulkRequestByID(context.Background(), request.ID)
	if err != nil {
		t.Fatalf("BulkRequestByID: %v", err)
	}
	if stored.Status != models.StatusApproved {
		t.Errorf("stored status = %s, want approved", stored.Status)
	}
}

func TestApproveBulkRequestNoDoubleAssignment(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")

	mustInwardBoard(t, svc, category.ID, "0001")
	mustInwardBoard(t, svc, category.ID, "0002")

	// Two entries for the same category must not receive the same board.
	request, err := svc.CreateBulkRequest(context.Background(), adminUser(), inventory.CreateBulkRequestInput{
		Categories: []inventory.BulkEntryInput{
			{CategoryID: category.ID, Quantity: 1},
			{CategoryID: category.ID, Quantity: 1},
		},
		IssuedTo:      "eng@example.com",
		ProjectNumber: "PRJ-100",
	})
	if err != nil {
		t.Fatalf("CreateBulkRequest: %v", err)
	}

	approved, err := svc.ApproveBulkRequest(context.Background(), adminUser(), request.ID)
	if err != nil {
		t.Fatalf("ApproveBulkRequest: %v", err)
	}
	if len(approved.Boards) != 2 {
		t.Fatalf("froze %d boards, want 2", len(approved.Boards))
	}
	if approved.Boards[0].SerialNumber == approved.Boards[1].SerialNumber {
		t.Errorf("board %s assigned twice", approved.Boards[0].SerialNumber)
	}
}

func TestApproveBulkRequestShortageLeavesPending(t *testing.T) {
	svc, st := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")

	board := mustInwardBoard(t, svc, category.ID, "0001")
	mustInwardBoard(t, svc, category.ID, "0002")

	request, err := svc.CreateBulkRequest(context.Background(), adminUser(), inventory.CreateBulkRequestInput{
		Categories:    []inventory.BulkEntryInput{{CategoryID: category.ID, Quantity: 2}},
		IssuedTo:      "eng@example.com",
		ProjectNumber: "PRJ-100",
	})
	if err != nil {
		t.Fatalf("CreateBulkRequest: %v", err)
	}

	// Stock shrinks between creation and approval.
	if _, err := svc.IssueDirect(context.Background(), adminUser(), board.ID, inventory.DirectIssueInput{IssuedTo: "eng@example.com"}); err != nil {
		t.Fatalf("IssueDirect: %v", err)
	}

	_, err = svc.ApproveBulkRequest(context.Background(), adminUser(), request.ID)
	var stock *inventory.InsufficientStockError
	if !errors.As(err, &stock) {
		t.Fatalf("error = %v, want InsufficientStockError", err)
	}

	stored, err := st.BulkRequestByID(context.Background(), request.ID)
	if err != nil {
		t.Fatalf("BulkRequestByID: %v", err)
	}
	if stored.Status != models.StatusPending {
		t.Errorf("stored status = %s, want pending", stored.Status)
	}
	if len(stored.Boards) != 0 {
		t.Errorf("stored %d assignments, want 0", len(stored.Boards))
	}
}

func TestListIssueRequestsScopedToRequester(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")
	mustInwardBoard(t, svc, category.ID, "0001")
	mustInwardBoard(t, svc, category.ID, "0002")

	requester := regularUser(inventory.PermCreateIssueRequests)
	mustCreateRequest(t, svc, adminUser(), category.ID, "0001")
	mustCreateRequest(t, svc, requester, category.ID, "0002")

	mine, err := svc.ListIssueRequests(context.Background(), requester, "")
	if err != nil {
		t.Fatalf("ListIssueRequests: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("requester sees %d requests, want 1", len(mine))
	}
	if mine[0].RequestedBy != requester.Email {
		t.Errorf("requested_by = %s, want %s", mine[0].RequestedBy, requester.Email)
	}

	all, err := svc.ListIssueRequests(context.Background(), adminUser(), "")
	if err != nil {
		t.Fatalf("ListIssueRequests: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin sees %d requests, want 2", len(all))
	}
}

func TestPreviewAutoSelectDeterministic(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")

	mustInwardBoard(t, svc, category.ID, "0004")
	mustInwardBoard(t, svc, category.ID, "0001")
	mustInwardBoard(t, svc, category.ID, "0003")

	first, err := svc.PreviewAutoSelect(context.Background(), category.ID, 2)
	if err != nil {
		t.Fatalf("PreviewAutoSelect: %v", err)
	}
	second, err := svc.PreviewAutoSelect(context.Background(), category.ID, 2)
	if err != nil {
		t.Fatalf("PreviewAutoSelect: %v", err)
	}

	for i := range first {
		if first[i].SerialNumber != second[i].SerialNumber {
			t.Errorf("preview %d differs: %s vs %s", i, first[i].SerialNumber, second[i].SerialNumber)
		}
	}
	if first[0].SerialNumber != "0001" || first[1].SerialNumber != "0003" {
		t.Errorf("preview serials = %s, %s; want 0001, 0003", first[0].SerialNumber, first[1].SerialNumber)
	}
}
