package middleware

import (
	"errors"
	"net/http"
	"strings"

	"client_monitoring_backend/internal/models"
	"client_monitoring_backend/internal/repositories"
	"client_monitoring_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys populated by AuthMiddleware for downstream handlers.
const (
	ContextUserKey     = "currentUser"
	ContextUserIDKey   = "userID"
	ContextUsernameKey = "username"
	ContextUserRoleKey = "userRole"
)

// AuthMiddleware creates a Gin middleware for JWT authentication. Beyond
// verifying the signature it resolves the user behind the token, so a
// token for a deleted account is rejected and handlers always see a live
// user in the context.
func AuthMiddleware(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Authorization header required", "No token provided"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Invalid authorization header format. Use Bearer <token>", ""))
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Invalid or expired token", err.Error()))
			return
		}

		user, err := userRepo.FindUserByID(claims.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
					"User not found", ""))
				return
			}
			utils.LogError(err, "AuthMiddleware: failed to resolve user from token")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Authentication failed", err.Error()))
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUsernameKey, user.Username)
		c.Set(ContextUserRoleKey, user.Role)

		c.Next()
	}
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It requires AuthMiddleware to have run first.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Authentication required", ""))
			return
		}

		for _, role := range allowedRoles {
			if strings.EqualFold(user.Role, role) {
				c.Next()
				return
			}
		}

		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
			"Insufficient permissions", "Required roles: "+strings.Join(allowedRoles, ", ")))
	}
}

// CurrentUser returns the authenticated user attached by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	raw, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := raw.(*models.User)
	return user, ok
}
