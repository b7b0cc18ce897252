package inventory_test

import (
	"testing"

	"board-inventory-api-server/internal/inventory"
	"board-inventory-api-server/internal/models"
)

func TestCanAdminHoldsEverything(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin}
	for _, p := range inventory.AvailablePermissions {
		if !inventory.Can(admin, p) {
			t.Errorf("admin missing permission %s", p)
		}
	}
}

func TestCanExplicitSetOnly(t *testing.T) {
	user := &models.User{
		Role:        models.RoleUser,
		Permissions: []string{inventory.PermCreateIssueRequests},
	}
	if !inventory.Can(user, inventory.PermCreateIssueRequests) {
		t.Error("user denied a permission they hold")
	}
	if inventory.Can(user, inventory.PermApproveIssueRequests) {
		t.Error("user granted a permission they do not hold")
	}
	if inventory.Can(nil, inventory.PermCreateIssueRequests) {
		t.Error("nil user granted a permission")
	}
}

func TestValidPermission(t *testing.T) {
	if !inventory.ValidPermission("manage_users") {
		t.Error("manage_users rejected")
	}
	if inventory.ValidPermission("launch_rockets") {
		t.Error("unknown permission accepted")
	}
}

func TestEffectivePermissions(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin}
	if got := inventory.EffectivePermissions(admin); len(got) != len(inventory.AvailablePermissions) {
		t.Errorf("admin effective permissions = %d, want %d", len(got), len(inventory.AvailablePermissions))
	}

	user := &models.User{Role: models.RoleUser}
	if got := inventory.EffectivePermissions(user); len(got) != 0 {
		t.Errorf("user with no permissions got %d effective permissions", len(got))
	}
}
