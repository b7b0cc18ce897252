package inventory_test

import (
	"context"
	"errors"
	"testing"

	"board-inventory-api-server/internal/inventory"
)

func TestCreateCategoryDuplicateName(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateCategory(t, svc, "FPGA Carrier")

	_, err := svc.CreateCategory(context.Background(), adminUser(), inventory.CategoryInput{Name: "FPGA Carrier"})
	if !errors.Is(err, inventory.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestCreateCategoryNegativeQuantities(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateCategory(context.Background(), adminUser(), inventory.CategoryInput{
		Name:                 "FPGA Carrier",
		MinimumStockQuantity: -1,
	})
	if !errors.Is(err, inventory.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestUpdateCategoryRenameCollision(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateCategory(t, svc, "FPGA Carrier")
	other := mustCreateCategory(t, svc, "Power Board")

	_, err := svc.UpdateCategory(context.Background(), other.ID, inventory.CategoryInput{Name: "FPGA Carrier"})
	if !errors.Is(err, inventory.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestDeleteCategoryWithBoards(t *testing.T) {
	svc, _ := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")
	mustInwardBoard(t, svc, category.ID, "0001")

	err := svc.DeleteCategory(context.Background(), category.ID)
	if !errors.Is(err, inventory.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestDeleteEmptyCategory(t *testing.T) {
	svc, st := newTestService(t)
	category := mustCreateCategory(t, svc, "FPGA Carrier")

	if err := svc.DeleteCategory(context.Background(), category.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	stored, err := st.CategoryByID(context.Background(), category.ID)
	if err != nil {
		t.Fatalf("CategoryByID: %v", err)
	}
	if stored != nil {
		t.Error("category still present after delete")
	}
}
