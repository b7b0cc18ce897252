package handlers

import (
	"net/http"
	"time"

	"board-inventory-api-server/internal/api/middleware"
	"board-inventory-api-server/internal/auth"
	"board-inventory-api-server/internal/inventory"
	"board-inventory-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	Store inventory.Store
}

type CreateUserRequest struct {
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required,min=6"`
	FirstName   string   `json:"first_name" binding:"required"`
	LastName    string   `json:"last_name"`
	Designation string   `json:"designation"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// CreateUser registers a new account.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, p := range req.Permissions {
		if !inventory.ValidPermission(p) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown permission: " + p})
			return
		}
	}

	existing, err := h.Store.UserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for user"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	permissions := req.Permissions
	if permissions == nil {
		permissions = []string{}
	}

	user := &models.User{
		ID:          uuid.New().String(),
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Designation: req.Designation,
		Password:    hashedPassword,
		Role:        role,
		Permissions: permissions,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	if err := h.Store.InsertUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// AvailablePermissions returns the permission catalog so admin UIs can
// render checkboxes without hardcoding it.
func (h *UserHandler) AvailablePermissions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"permissions": inventory.AvailablePermissions})
}

// GetAllUsers lists every account.
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.Store.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUserByID returns one account.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	user, err := h.Store.UserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type UpdateUserRequest struct {
	FirstName   *string   `json:"first_name"`
	LastName    *string   `json:"last_name"`
	Designation *string   `json:"designation"`
	Role        *string   `json:"role"`
	Permissions *[]string `json:"permissions"`
	IsActive    *bool     `json:"is_active"`
}

// UpdateUser applies a partial edit to an account. Email and password
// never change through this endpoint.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Permissions != nil {
		for _, p := range *req.Permissions {
			if !inventory.ValidPermission(p) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown permission: " + p})
				return
			}
		}
	}

	patch := models.UserPatch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Designation: req.Designation,
		Role:        req.Role,
		Permissions: req.Permissions,
		IsActive:    req.IsActive,
	}
	ok, err := h.Store.UpdateUser(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user, err := h.Store.UserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ResetPassword sets a new password for an account.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}
	ok, err := h.Store.SetUserPassword(c.Request.Context(), c.Param("id"), hashed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// DeleteUser removes an account. Deleting yourself is blocked so an
// admin cannot lock everyone out by accident.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if middleware.CurrentUser(c).ID == c.Param("id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account"})
		return
	}

	ok, err := h.Store.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
