package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"board-inventory-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

func testContext(user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if user != nil {
		c.Set(UserKey, user)
	}
	return c, w
}

func TestRequireAdminBlocksRegularUsers(t *testing.T) {
	c, w := testContext(&models.User{
		Role:        models.RoleUser,
		Permissions: []string{"view_boards"},
	})

	RequireAdmin()(c)

	if !c.IsAborted() {
		t.Error("request was not aborted")
	}
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestRequireAdminAllowsAdmins(t *testing.T) {
	c, w := testContext(&models.User{Role: models.RoleAdmin})

	RequireAdmin()(c)

	if c.IsAborted() {
		t.Errorf("admin was rejected with status %d", w.Code)
	}
}

func TestRequirePermissionHonorsGrants(t *testing.T) {
	c, _ := testContext(&models.User{
		Role:        models.RoleUser,
		Permissions: []string{"view_boards"},
	})

	RequirePermission("view_boards")(c)
	if c.IsAborted() {
		t.Error("granted permission was rejected")
	}

	c, w := testContext(&models.User{Role: models.RoleUser})
	RequirePermission("view_boards")(c)
	if !c.IsAborted() || w.Code != http.StatusForbidden {
		t.Errorf("missing permission passed, status = %d", w.Code)
	}
}
