package middleware

import (
	"errors"
	"net/http"
	"strings"

	"gradebook/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ContextUserID is the gin context key under which RequireAuth stores
// the authenticated caller's id.
const ContextUserID = "userID"

// TokenParser verifies a token string and returns its claims.
type TokenParser interface {
	ParseToken(tokenString string) (*models.Claims, error)
}

// RoleChecker reports whether a user holds a named role.
type RoleChecker interface {
	HasRole(userID int64, role string) (bool, error)
}

// RequireAuth rejects requests without a valid bearer token before any
// handler logic runs.
func RequireAuth(parser TokenParser, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header format must be Bearer <token>"})
			return
		}

		claims, err := parser.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token expired"})
				return
			}
			logger.Debug("Invalid token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// RequireRole enforces membership in a named role. It must be mounted
// after RequireAuth.
func RequireRole(roles RoleChecker, role string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64(ContextUserID)
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
			return
		}

		has, err := roles.HasRole(userID, role)
		if err != nil {
			logger.Error("Role lookup failed", zap.Int64("user_id", userID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}
		if !has {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}
