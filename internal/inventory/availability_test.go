package inventory_test

import (
	"context"
	"testing"

	"board-inventory-api-server/internal/inventory"
	"board-inventory-api-server/internal/models"
)

func TestAvailableForIssue(t *testing.T) {
	tests := []struct {
		name      string
		location  string
		condition string
		want      bool
	}{
		{"new in stock", models.LocationInStock, models.ConditionNew, true},
		{"repaired in stock", models.LocationInStock, models.ConditionRepaired, true},
		{"repairing in stock", models.LocationInStock, models.ConditionRepairing, false},
		{"scrap in stock", models.LocationInStock, models.ConditionScrap, false},
		{"new but issued", models.LocationIssuedMachine, models.ConditionNew, false},
		{"repaired at repair location", models.LocationRepairing, models.ConditionRepaired, false},
		{"repairing at repair location", models.LocationRepairing, models.ConditionRepairing, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := &models.Board{Location: tt.location, Condition: tt.condition}
			if got := inventory.AvailableForIssue(board); got != tt.want {
				t.Errorf("AvailableForIssue(%s/%s) = %v, want %v", tt.location, tt.condition, got, tt.want)
			}
		})
	}
}

func TestAvailableForDirectIssue(t *testing.T) {
	tests := []struct {
		name      string
		location  string
		condition string
		want      bool
	}{
		{"new in stock", models.LocationInStock, models.ConditionNew, true},
		{"repaired at repair location", models.LocationRepairing, models.ConditionRepaired, true},
		{"repairing at repair location", models.LocationRepairing, models.ConditionRepairing, false},
		{"new but issued", models.LocationIssuedMachine, models.ConditionNew, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := &models.Board{Location: tt.location, Condition: tt.condition}
			if got := inventory.AvailableForDirectIssue(board); got != tt.want {
				t.Errorf("AvailableForDirectIssue(%s/%s) = %v, want %v", tt.location, tt.condition, got, tt.want)
			}
		})
	}
}

func TestAvailableBoardsSortedAndFiltered(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")

	mustInwardBoard(t, svc, category.ID, "0003")
	mustInwardBoard(t, svc, category.ID, "0001")
	mustInwardBoard(t, svc, category.ID, "0002")

	// Issue one board directly so it drops out of availability.
	middle, err := svc.SearchBoards(context.Background(), models.BoardFilter{CategoryID: category.ID, SearchText: "0002"})
	if err != nil {
		t.Fatalf("SearchBoards: %v", err)
	}
	if _, err := svc.IssueDirect(context.Background(), adminUser(), middle[0].ID, inventory.DirectIssueInput{IssuedTo: "eng@example.com"}); err != nil {
		t.Fatalf("IssueDirect: %v", err)
	}

	available, err := svc.AvailableBoards(context.Background(), category.ID)
	if err != nil {
		t.Fatalf("AvailableBoards: %v", err)
	}
	if len(available) != 2 {
		t.Fatalf("got %d available boards, want 2", len(available))
	}
	if available[0].SerialNumber != "0001" || available[1].SerialNumber != "0003" {
		t.Errorf("available serials = %s, %s; want 0001, 0003", available[0].SerialNumber, available[1].SerialNumber)
	}
}
