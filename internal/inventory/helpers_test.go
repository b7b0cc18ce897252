package inventory_test

import (
	"context"
	"testing"
	"time"

	"board-inventory-api-server/internal/inventory"
	"board-inventory-api-server/internal/models"
	"board-inventory-api-server/internal/store"
)

func newTestService(t *testing.T) (*inventory.Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	return inventory.NewService(st, nil), st
}

func adminUser() *models.User {
	return &models.User{
		ID:        "admin-id",
		Email:     "admin@example.com",
		FirstName: "Admin",
		Role:      models.RoleAdmin,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}

func regularUser(permissions ...string) *models.User {
	return &models.User{
		ID:          "user-id",
		Email:       "user@example.com",
		FirstName:   "Regular",
		LastName:    "User",
		Role:        models.RoleUser,
		Permissions: permissions,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
}

func mustCreateCategory(t *testing.T, svc *inventory.Service, name string) *models.Category {
	t.Helper()
	category, err := svc.CreateCategory(context.Background(), adminUser(), inventory.CategoryInput{
		Name:                 name,
		Manufacturer:         "Acme",
		Version:              "v2",
		LeadTimeDays:         14,
		MinimumStockQuantity: 2,
	})
	if err != nil {
		t.Fatalf("creating category %s: %v", name, err)
	}
	return category
}

func mustInwardBoard(t *testing.T, svc *inventory.Service, categoryID, serial string) *models.Board {
	t.Helper()
	board, err := svc.InwardBoard(context.Background(), adminUser(), inventory.NewBoard{
		CategoryID:   categoryID,
		SerialNumber: serial,
	})
	if err != nil {
		t.Fatalf("inwarding board %s: %v", serial, err)
	}
	return board
}

func mustCreateRequest(t *testing.T, svc *inventory.Service, actor *models.User, categoryID, serial string) *models.IssueRequest {
	t.Helper()
	request, err := svc.CreateIssueRequest(context.Background(), actor, inventory.CreateIssueRequestInput{
		CategoryID:    categoryID,
		SerialNumber:  serial,
		IssuedTo:      "engineer@example.com",
		ProjectNumber: "PRJ-100",
	})
	if err != nil {
		t.Fatalf("creating request for %s: %v", serial, err)
	}
	return request
}
