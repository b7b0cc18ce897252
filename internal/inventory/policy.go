package inventory

import "board-inventory-api-server/internal/models"

// AvailablePermissions is the full permission catalog. User documents
// hold a subset; the admin role implies all of them.
var AvailablePermissions = []string{
	"view_dashboard",
	"view_categories",
	"create_categories",
	"edit_categories",
	"view_boards",
	"create_boards",
	"edit_boards",
	"view_inward",
	"create_inward",
	"view_search",
	"view_issue_requests",
	"create_issue_requests",
	"approve_issue_requests",
	"view_outward",
	"create_outward",
	"view_reports",
	"export_reports",
	"view_user_management",
	"manage_users",
}

// Permissions consulted by the workflow engine itself.
const (
	PermCreateIssueRequests  = "create_issue_requests"
	PermApproveIssueRequests = "approve_issue_requests"
	PermCreateOutward        = "create_outward"
	PermCreateInward         = "create_inward"
)

// ValidPermission reports whether name is part of the catalog.
func ValidPermission(name string) bool {
	for _, p := range AvailablePermissions {
		if p == name {
			return true
		}
	}
	return false
}

// Can reports whether the user holds the given permission. Admins hold
// every permission; everyone else needs it in their explicit set.
func Can(user *models.User, permission string) bool {
	if user == nil {
		return false
	}
	if user.Role == models.RoleAdmin {
		return true
	}
	for _, p := range user.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// EffectivePermissions returns the permission set Can consults.
func EffectivePermissions(user *models.User) []string {
	if user.Role == models.RoleAdmin {
		perms := make([]string, len(AvailablePermissions))
		copy(perms, AvailablePermissions)
		return perms
	}
	if user.Permissions == nil {
		return []string{}
	}
	return user.Permissions
}
