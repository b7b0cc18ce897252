package inventory_test

import (
	"context"
	"errors"
	"testing"

	"board-inventory-api-server/internal/inventory"
	"board-inventory-api-server/internal/models"
)

func TestIssueFromSingleRequest(t *testing.T) {
	svc, st := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")
	board := mustInwardBoard(t, svc, category.ID, "0001")

	request := mustCreateRequest(t, svc, adminUser(), category.ID, "0001")
	if _, err := svc.ApproveIssueRequest(context.Background(), adminUser(), request.ID); err != nil {
		t.Fatalf("ApproveIssueRequest: %v", err)
	}

	result, err := svc.IssueFromRequest(context.Background(), adminUser(), request.ID, inventory.OutwardOverrides{})
	if err != nil {
		t.Fatalf("IssueFromRequest: %v", err)
	}
	if len(result.Issued) != 1 || len(result.Failed) != 0 {
		t.Fatalf("issued %d, failed %d; want 1, 0", len(result.Issued), len(result.Failed))
	}

	issued, err := st.BoardByID(context.Background(), board.ID)
	if err != nil {
		t.Fatalf("BoardByID: %v", err)
	}
	if issued.Location != models.LocationIssuedMachine {
		t.Errorf("board location = %s, want %s", issued.Location, models.LocationIssuedMachine)
	}
	if issued.IssuedTo != "engineer@example.com" {
		t.Errorf("issued_to = %s, want engineer@example.com", issued.IssuedTo)
	}
	if issued.IssuedDateTime == nil {
		t.Error("issued_date_time not set")
	}

	stored, err := st.IssueRequestByID(context.Background(), request.ID)
	if err != nil {
		t.Fatalf("IssueRequestByID: %v", err)
	}
	if stored.Status != models.StatusIssued {
		t.Errorf("request status = %s, want issued", stored.Status)
	}
}

func TestIssueFromRequestNotApproved(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")
	mustInwardBoard(t, svc, category.ID, "0001")

	request := mustCreateRequest(t, svc, adminUser(), category.ID, "0001")

	_, err := svc.IssueFromRequest(context.Background(), adminUser(), request.ID, inventory.OutwardOverrides{})
	if !errors.Is(err, inventory.ErrRequestNotApproved) {
		t.Errorf("error = %v, want ErrRequestNotApproved", err)
	}
}

func TestIssueFromRequestStaleBoard(t *testing.T) {
	svc, st := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")
	board := mustInwardBoard(t, svc, category.ID, "0001")

	request := mustCreateRequest(t, svc, adminUser(), category.ID, "0001")
	if _, err := svc.ApproveIssueRequest(context.Background(), adminUser(), request.ID); err != nil {
		t.Fatalf("ApproveIssueRequest: %v", err)
	}

	// The board is taken after approval but before fulfillment.
	if _, err := svc.IssueDirect(context.Background(), adminUser(), board.ID, inventory.DirectIssueInput{IssuedTo: "other@example.com"}); err != nil {
		t.Fatalf("IssueDirect: %v", err)
	}

	_, err := svc.IssueFromRequest(context.Background(), adminUser(), request.ID, inventory.OutwardOverrides{})
	if !errors.Is(err, inventory.ErrBoardNoLongerAvailable) {
		t.Fatalf("error = %v, want ErrBoardNoLongerAvailable", err)
	}

	// The request stays approved so it can be retried or rejected.
	stored, err := st.IssueRequestByID(context.Background(), request.ID)
	if err != nil {
		t.Fatalf("IssueRequestByID: %v", err)
	}
	if stored.Status != models.StatusApproved {
		t.Errorf("request status = %s, want approved", stored.Status)
	}
}

func TestIssueBulkPartialFailure(t *testing.T) {
	svc, st := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")

	mustInwardBoard(t, svc, category.ID, "0001")
	second := mustInwardBoard(t, svc, category.ID, "0002")

	request, err := svc.CreateBulkRequest(context.Background(), adminUser(), inventory.CreateBulkRequestInput{
		Categories:    []inventory.BulkEntryInput{{CategoryID: category.ID, SerialNumbers: []string{"0001", "0002"}}},
		IssuedTo:      "eng@example.com",
		ProjectNumber: "PRJ-100",
	})
	if err != nil {
		t.Fatalf("CreateBulkRequest: %v", err)
	}
	if _, err := svc.ApproveBulkRequest(context.Background(), adminUser(), request.ID); err != nil {
		t.Fatalf("ApproveBulkRequest: %v", err)
	}

	// One of the two frozen boards goes out another door first.
	if _, err := svc.IssueDirect(context.Background(), adminUser(), second.ID, inventory.DirectIssueInput{IssuedTo: "other@example.com"}); err != nil {
		t.Fatalf("IssueDirect: %v", err)
	}

	result, err := svc.IssueFromRequest(context.Background(), adminUser(), request.ID, inventory.OutwardOverrides{})
	if err != nil {
		t.Fatalf("IssueFromRequest: %v", err)
	}
	if len(result.Issued) != 1 {
		t.Errorf("issued %d boards, want 1", len(result.Issued))
	}
	if len(result.Failed) != 1 {
		t.Fatalf("failed %d boards, want 1", len(result.Failed))
	}
	if result.Failed[0].SerialNumber != "0002" {
		t.Errorf("failed serial = %s, want 0002", result.Failed[0].SerialNumber)
	}

	// At least one board went out, so the request is issued.
	stored, err := st.BulkRequestByID(context.Background(), request.ID)
	if err != nil {
		t.Fatalf("BulkRequestByID: %v", err)
	}
	if stored.Status != models.StatusIssued {
		t.Errorf("request status = %s, want issued", stored.Status)
	}
}

func TestIssueBulkTotalFailure(t *testing.T) {
	svc, st := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")

	first := mustInwardBoard(t, svc, category.ID, "0001")
	second := mustInwardBoard(t, svc, category.ID, "0002")

	request, err := svc.CreateBulkRequest(context.Background(), adminUser(), inventory.CreateBulkRequestInput{
		Categories:    []inventory.BulkEntryInput{{CategoryID: category.ID, SerialNumbers: []string{"0001", "0002"}}},
		IssuedTo:      "eng@example.com",
		ProjectNumber: "PRJ-100",
	})
	if err != nil {
		t.Fatalf("CreateBulkRequest: %v", err)
	}
	if _, err := svc.ApproveBulkRequest(context.Background(), adminUser(), request.ID); err != nil {
		t.Fatalf("ApproveBulkRequest: %v", err)
	}

	for _, board := range []*models.Board{first, second} {
		if _, err := svc.IssueDirect(context.Background(), adminUser(), board.ID, inventory.DirectIssueInput{IssuedTo: "other@example.com"}); err != nil {
			t.Fatalf("IssueDirect: %v", err)
		}
	}

	_, err = svc.IssueFromRequest(context.Background(), adminUser(), request.ID, inventory.OutwardOverrides{})
	if !errors.Is(err, inventory.ErrNoBoardsIssued) {
		t.Fatalf("error = %v, want ErrNoBoardsIssued", err)
	}

	// Nothing went out, so the request stays approved.
	stored, err := st.BulkRequestByID(context.Background(), request.ID)
	if err != nil {
		t.Fatalf("BulkRequestByID: %v", err)
	}
	if stored.Status != models.StatusApproved {
		t.Errorf("request status = %s, want approved", stored.Status)
	}
}

func TestIssueFromRequestOverrides(t *testing.T) {
	svc, st := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")
	board := mustInwardBoard(t, svc, category.ID, "0001")

	request := mustCreateRequest(t, svc, adminUser(), category.ID, "0001")
	if _, err := svc.ApproveIssueRequest(context.Background(), adminUser(), request.ID); err != nil {
		t.Fatalf("ApproveIssueRequest: %v", err)
	}

	_, err := svc.IssueFromRequest(context.Background(), adminUser(), request.ID, inventory.OutwardOverrides{
		IssuedTo: "replacement@example.com",
	})
	if err != nil {
		t.Fatalf("IssueFromRequest: %v", err)
	}

	issued, err := st.BoardByID(context.Background(), board.ID)
	if err != nil {
		t.Fatalf("BoardByID: %v", err)
	}
	if issued.IssuedTo != "replacement@example.com" {
		t.Errorf("issued_to = %s, want replacement@example.com", issued.IssuedTo)
	}
}

func TestDirectIssueRepairedAtRepairLocation(t *testing.T) {
	svc, st := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")
	board := mustInwardBoard(t, svc, category.ID, "0001")

	// Move the board through repair and mark it repaired, still at the
	// repair location.
	if _, err := svc.InwardRepair(context.Background(), adminUser(), category.ID, "0001"); err != nil {
		t.Fatalf("InwardRepair: %v", err)
	}
	repaired := models.ConditionRepaired
	if _, err := svc.UpdateBoard(context.Background(), adminUser(), board.ID, models.BoardPatch{Condition: &repaired}); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}

	// Not eligible for the request workflow.
	_, err := svc.CreateIssueRequest(context.Background(), adminUser(), inventory.CreateIssueRequestInput{
		CategoryID:   category.ID,
		SerialNumber: "0001",
		IssuedTo:     "eng@example.com",
	})
	if !errors.Is(err, inventory.ErrBoardUnavailable) {
		t.Errorf("request path: error = %v, want ErrBoardUnavailable", err)
	}

	// Eligible for direct issue.
	issued, err := svc.IssueDirect(context.Background(), adminUser(), board.ID, inventory.DirectIssueInput{IssuedTo: "eng@example.com"})
	if err != nil {
		t.Fatalf("IssueDirect: %v", err)
	}
	if issued.Location != models.LocationIssuedMachine {
		t.Errorf("board location = %s, want %s", issued.Location, models.LocationIssuedMachine)
	}

	stored, err := st.BoardByID(context.Background(), board.ID)
	if err != nil {
		t.Fatalf("BoardByID: %v", err)
	}
	if stored.IssuedTo != "eng@example.com" {
		t.Errorf("issued_to = %s, want eng@example.com", stored.IssuedTo)
	}
}

func TestDirectIssueRequiresRecipient(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")
	board := mustInwardBoard(t, svc, category.ID, "0001")

	_, err := svc.IssueDirect(context.Background(), adminUser(), board.ID, inventory.DirectIssueInput{})
	if !errors.Is(err, inventory.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestIssueFromRequestUnknownID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.IssueFromRequest(context.Background(), adminUser(), "nope", inventory.OutwardOverrides{})
	if !errors.Is(err, inventory.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
