package middleware

import (
	"errors"
	"net/http"
	"strings"

	"board-inventory-api-server/internal/auth"
	"board-inventory-api-server/internal/inventory"
	"board-inventory-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

// UserKey is the gin context key holding the authenticated *models.User.
const UserKey = "user"

// Authenticate validates the bearer token and loads the user document
// into the request context. Authorization decisions read the stored
// document, not the token, so a permission change takes effect without
// waiting for the token to expire.
func Authenticate(store inventory.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := auth.ParseJWT(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := store.UserByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not load user"})
			return
		}
		if user == nil || !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// bearerToken extracts the JWT from the Authorization header, falling
// back to a ?token= query parameter for browser-initiated downloads
// that cannot set headers.
func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return "", errors.New("invalid token format")
		}
		return tokenString, nil
	}
	if token := c.Query("token"); token != "" {
		return token, nil
	}
	return "", errors.New("authorization header is required")
}

// RequirePermission rejects users that do not hold the permission.
// Admins pass every check.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "User not found in context"})
			return
		}
		if !inventory.Can(user, permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects everyone but admins.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Authenticate, or
// nil when the middleware did not run.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(UserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
